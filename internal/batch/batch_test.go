package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vaxtrack/vfc-cli/internal/extract"
	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// stubExtractor maps county names to canned results or errors.
type stubExtractor struct {
	results map[string]*extract.Result
	errs    map[string]error
}

func (s *stubExtractor) County(ctx context.Context, name string, radius int) (*extract.Result, error) {
	if err, ok := s.errs[name]; ok {
		return nil, err
	}
	if r, ok := s.results[name]; ok {
		return r, nil
	}
	return &extract.Result{County: name}, nil
}

func readProviders(t *testing.T, path string) []locator.Provider {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var providers []locator.Provider
	require.NoError(t, json.Unmarshal(data, &providers))
	return providers
}

func TestRun_OneFailingCountyStillProducesBothFiles(t *testing.T) {
	dir := t.TempDir()
	ex := &stubExtractor{
		results: map[string]*extract.Result{
			"Fresno": {County: "Fresno", Providers: []locator.Provider{
				{Name: "A", Address: "1 St, Fresno, CA", Type: "Public"},
			}},
		},
		errs: map[string]error{
			"Kern": eris.New("endpoint exploded"),
		},
	}

	summary, err := Run(context.Background(), ex, []string{"Fresno", "Kern"}, Options{Radius: 200, OutputDir: dir})
	require.NoError(t, err, "a failing county must not abort the batch")

	assert.Equal(t, 2, summary.TotalCounties)
	assert.Equal(t, 1, summary.SuccessfulCounties)
	assert.Equal(t, 1, summary.FailedCounties)
	assert.Equal(t, 1, summary.TotalProviders)

	fresno := readProviders(t, filepath.Join(dir, "fresno.json"))
	assert.Len(t, fresno, 1)

	kern := readProviders(t, filepath.Join(dir, "kern.json"))
	assert.Empty(t, kern, "failed county still gets an empty-list file")

	_, err = os.Stat(filepath.Join(dir, SummaryFilename))
	assert.NoError(t, err)
}

func TestRun_EmptyCountyCountsAsFailed(t *testing.T) {
	dir := t.TempDir()
	ex := &stubExtractor{}

	summary, err := Run(context.Background(), ex, []string{"Alpine"}, Options{Radius: 100, OutputDir: dir})
	require.NoError(t, err)

	assert.Zero(t, summary.SuccessfulCounties)
	assert.Equal(t, 1, summary.FailedCounties)
	assert.Empty(t, readProviders(t, filepath.Join(dir, "alpine.json")))
}

func TestRun_SummaryFileContents(t *testing.T) {
	dir := t.TempDir()
	ex := &stubExtractor{
		results: map[string]*extract.Result{
			"Napa": {County: "Napa", Providers: []locator.Provider{
				{Name: "A", Address: "1 St, Napa, CA", Type: "Public"},
				{Name: "B", Address: "2 St, Napa, CA", Type: "Private"},
			}},
		},
	}

	_, err := Run(context.Background(), ex, []string{"Napa"}, Options{Radius: 150, OutputDir: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, SummaryFilename))
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 150, summary.SearchRadius)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "Napa", summary.Results[0].County)
	assert.Equal(t, 2, summary.Results[0].Providers)
	assert.Equal(t, map[string]int{"Public": 1, "Private": 1}, summary.Results[0].Types)
	assert.Equal(t, "napa.json", summary.Results[0].File)
}

func TestRun_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &stubExtractor{}, []string{"Fresno", "Kern"}, Options{Radius: 100, OutputDir: t.TempDir()})
	assert.Error(t, err)
}

func TestCountyFilename(t *testing.T) {
	assert.Equal(t, "fresno.json", CountyFilename("Fresno"))
	assert.Equal(t, "san_luis_obispo.json", CountyFilename("San Luis Obispo"))
	assert.Equal(t, "contra_costa.json", CountyFilename("Contra Costa"))
}

func TestWriteProviders_NilBecomesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteProviders(dir, "Mono", nil)
	require.NoError(t, err)
	assert.Equal(t, "mono.json", name)

	data, err := os.ReadFile(filepath.Join(dir, "mono.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestTopCounties(t *testing.T) {
	results := []CountyResult{
		{County: "A", Providers: 3},
		{County: "B", Providers: 0},
		{County: "C", Providers: 9},
		{County: "D", Providers: 9},
		{County: "E", Providers: 1},
	}

	top := TopCounties(results, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "C", top[0].County, "ties break alphabetically")
	assert.Equal(t, "D", top[1].County)
	assert.Equal(t, "A", top[2].County)
}

func TestTopCounties_FewerThanN(t *testing.T) {
	top := TopCounties([]CountyResult{{County: "A", Providers: 1}}, 10)
	assert.Len(t, top, 1)
}

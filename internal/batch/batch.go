// Package batch orchestrates all-county extraction runs: one output file per
// county plus an aggregate summary. A single county's failure never aborts
// the batch; only cancellation does.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vaxtrack/vfc-cli/internal/extract"
)

// SummaryFilename is the aggregate statistics file written next to the
// per-county output files.
const SummaryFilename = "_summary.json"

// Extractor runs a county extraction. Satisfied by *extract.Engine.
type Extractor interface {
	County(ctx context.Context, name string, radius int) (*extract.Result, error)
}

// Options configures a batch run.
type Options struct {
	Radius    int
	OutputDir string
}

// CountyResult is one county's line in the run summary.
type CountyResult struct {
	County    string         `json:"county"`
	Providers int            `json:"providers"`
	Types     map[string]int `json:"types"`
	File      string         `json:"file"`
}

// Summary aggregates a batch run. A county counts as successful when it
// produced at least one provider; failures and empty counties both land in
// FailedCounties.
type Summary struct {
	TotalCounties      int            `json:"total_counties"`
	SuccessfulCounties int            `json:"successful_counties"`
	FailedCounties     int            `json:"failed_counties"`
	TotalProviders     int            `json:"total_providers"`
	SearchRadius       int            `json:"search_radius"`
	Results            []CountyResult `json:"results"`
}

// Run extracts every county in names (assumed sorted) and writes one JSON
// file per county under opts.OutputDir, then the summary file. Per-county
// errors are logged, produce an empty output file, and count as failed.
// Cancellation stops the batch immediately and returns the context error.
func Run(ctx context.Context, ex Extractor, names []string, opts Options) (*Summary, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "batch: create output dir %s", opts.OutputDir)
	}

	summary := &Summary{
		TotalCounties: len(names),
		SearchRadius:  opts.Radius,
	}

	for i, county := range names {
		if err := ctx.Err(); err != nil {
			return summary, eris.Wrap(err, "batch: interrupted")
		}

		log := zap.L().With(
			zap.String("county", county),
			zap.Int("index", i+1),
			zap.Int("total", len(names)),
		)
		log.Info("processing county")

		result, err := ex.County(ctx, county, opts.Radius)
		if err != nil {
			if ctx.Err() != nil {
				return summary, eris.Wrap(ctx.Err(), "batch: interrupted")
			}
			log.Error("county extraction failed", zap.Error(err))
			summary.FailedCounties++
			file, wErr := WriteProviders(opts.OutputDir, county, nil)
			if wErr != nil {
				log.Error("failed to write empty county file", zap.Error(wErr))
			}
			summary.Results = append(summary.Results, CountyResult{
				County: county,
				Types:  map[string]int{},
				File:   file,
			})
			continue
		}

		file, err := WriteProviders(opts.OutputDir, county, result.Providers)
		if err != nil {
			log.Error("county file write failed", zap.Error(err))
			summary.FailedCounties++
			summary.Results = append(summary.Results, CountyResult{
				County: county,
				Types:  map[string]int{},
			})
			continue
		}

		types := extract.TypeCounts(result.Providers)
		summary.Results = append(summary.Results, CountyResult{
			County:    county,
			Providers: len(result.Providers),
			Types:     types,
			File:      file,
		})

		if len(result.Providers) > 0 {
			summary.SuccessfulCounties++
			summary.TotalProviders += len(result.Providers)
			log.Info("county complete",
				zap.Int("providers", len(result.Providers)),
				zap.String("file", file),
			)
		} else {
			summary.FailedCounties++
			log.Warn("no providers found")
		}
	}

	if err := WriteJSON(filepath.Join(opts.OutputDir, SummaryFilename), summary); err != nil {
		return summary, err
	}

	return summary, nil
}

// TopCounties returns up to n results with the most providers, descending.
// Counties without providers are excluded.
func TopCounties(results []CountyResult, n int) []CountyResult {
	var top []CountyResult
	for _, r := range results {
		if r.Providers > 0 {
			top = append(top, r)
		}
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Providers != top[j].Providers {
			return top[i].Providers > top[j].Providers
		}
		return top[i].County < top[j].County
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

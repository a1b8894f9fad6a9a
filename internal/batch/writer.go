package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

// CountyFilename derives the output filename for a county: lowercased, spaces
// replaced with underscores.
func CountyFilename(county string) string {
	return strings.ReplaceAll(strings.ToLower(county), " ", "_") + ".json"
}

// WriteJSON writes v to path as indented JSON.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "batch: marshal %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "batch: write %s", path)
	}
	return nil
}

// WriteProviders writes a county's provider list to its file under dir. A nil
// list is written as an empty JSON array, never null.
func WriteProviders(dir, county string, providers []locator.Provider) (string, error) {
	if providers == nil {
		providers = []locator.Provider{}
	}
	name := CountyFilename(county)
	if err := WriteJSON(filepath.Join(dir, name), providers); err != nil {
		return "", err
	}
	return name, nil
}

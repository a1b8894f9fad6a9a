package counties

import (
	"strings"

	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

// cityKeywords maps counties to city names that appear in provider addresses.
// Addresses carry city names, not county names, so matching on the seat and
// major cities catches what a bare county-name match would miss. The list is
// hand-maintained and intentionally incomplete; the keep-ratio guard in
// FilterByCounty covers the gaps.
var cityKeywords = map[string][]string{
	"Alameda":        {"Alameda", "Oakland", "Berkeley", "Fremont"},
	"Contra Costa":   {"Contra Costa", "Martinez", "Richmond", "Concord", "Pleasant Hill"},
	"Fresno":         {"Fresno", "Clovis", "Sanger"},
	"Kern":           {"Kern", "Bakersfield"},
	"Los Angeles":    {"Los Angeles", "LA", "L.A.", "Beverly Hills", "Long Beach", "Pasadena"},
	"Orange":         {"Orange", "Santa Ana", "Anaheim", "Irvine", "Huntington Beach"},
	"Riverside":      {"Riverside", "Palm Springs", "Moreno Valley", "Corona"},
	"Sacramento":     {"Sacramento", "Folsom", "Elk Grove"},
	"San Bernardino": {"San Bernardino", "Fontana", "Rancho Cucamonga", "Ontario"},
	"San Diego":      {"San Diego", "Chula Vista", "Oceanside"},
	"San Francisco":  {"San Francisco", "SF"},
	"San Joaquin":    {"San Joaquin", "Stockton", "Lodi", "Tracy"},
	"Santa Clara":    {"Santa Clara", "San Jose", "Sunnyvale", "Palo Alto", "Cupertino", "Mountain View"},
	"Stanislaus":     {"Stanislaus", "Modesto", "Turlock", "Ceres"},
}

// Keywords returns the address-match keywords for a county: the county name
// plus its known cities, or the name with any " County" suffix stripped for
// counties absent from the city table.
func Keywords(county string) []string {
	keywords := []string{county}
	if cities, ok := cityKeywords[county]; ok {
		keywords = append(keywords, cities...)
	} else {
		keywords = append(keywords, strings.ReplaceAll(county, " County", ""))
	}
	return keywords
}

// FilterByCounty retains providers whose address contains any county keyword,
// case-insensitively. If the filtered set would hold less than minKeepRatio of
// the input, the filter is judged over-aggressive and the input is returned
// unchanged. It reports whether filtering was applied.
func FilterByCounty(providers []locator.Provider, county string, minKeepRatio float64) ([]locator.Provider, bool) {
	if len(providers) == 0 {
		return providers, false
	}

	keywords := Keywords(county)
	upper := make([]string, len(keywords))
	for i, kw := range keywords {
		upper[i] = strings.ToUpper(kw)
	}

	filtered := make([]locator.Provider, 0, len(providers))
	for _, p := range providers {
		address := strings.ToUpper(p.Address)
		for _, kw := range upper {
			if strings.Contains(address, kw) {
				filtered = append(filtered, p)
				break
			}
		}
	}

	if float64(len(filtered)) < minKeepRatio*float64(len(providers)) {
		return providers, false
	}
	return filtered, true
}

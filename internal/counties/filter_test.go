package counties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

func provider(name, address string) locator.Provider {
	return locator.Provider{Name: name, Address: address}
}

func TestKeywords_KnownCounty(t *testing.T) {
	kws := Keywords("Santa Clara")
	assert.Contains(t, kws, "Santa Clara")
	assert.Contains(t, kws, "San Jose")
	assert.Contains(t, kws, "Palo Alto")
}

func TestKeywords_UnknownCountyFallsBackToName(t *testing.T) {
	kws := Keywords("Merced")
	assert.Equal(t, []string{"Merced", "Merced"}, kws)

	kws = Keywords("Inyo County")
	assert.Equal(t, []string{"Inyo County", "Inyo"}, kws)
}

func TestFilterByCounty_MatchesCaseInsensitively(t *testing.T) {
	providers := []locator.Provider{
		provider("A", "100 Main St, FRESNO, CA 93701"),
		provider("B", "200 Oak Ave, clovis, CA 93612"),
		provider("C", "300 Pine Rd, Visalia, CA 93277"),
	}

	got, applied := FilterByCounty(providers, "Fresno", 0.5)
	assert.True(t, applied)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestFilterByCounty_GuardKeepsUnfilteredSet(t *testing.T) {
	// Only one of four addresses matches; below the 50% floor the filter is
	// discarded and the full input comes back.
	providers := []locator.Provider{
		provider("A", "1 St, Fresno, CA"),
		provider("B", "2 St, Visalia, CA"),
		provider("C", "3 St, Merced, CA"),
		provider("D", "4 St, Madera, CA"),
	}

	got, applied := FilterByCounty(providers, "Fresno", 0.5)
	assert.False(t, applied)
	assert.Equal(t, providers, got)
}

func TestFilterByCounty_NeverBelowKeepRatio(t *testing.T) {
	providers := []locator.Provider{
		provider("A", "1 St, Fresno, CA"),
		provider("B", "2 St, Visalia, CA"),
		provider("C", "3 St, Merced, CA"),
	}

	got, _ := FilterByCounty(providers, "Fresno", 0.5)
	assert.GreaterOrEqual(t, float64(len(got)), 0.5*float64(len(providers)))
}

func TestFilterByCounty_ExactlyHalfIsKept(t *testing.T) {
	providers := []locator.Provider{
		provider("A", "1 St, Fresno, CA"),
		provider("B", "2 St, Visalia, CA"),
	}

	got, applied := FilterByCounty(providers, "Fresno", 0.5)
	assert.True(t, applied, "half the input meets the >= ratio threshold")
	assert.Len(t, got, 1)
}

func TestFilterByCounty_ZeroRatioAlwaysFilters(t *testing.T) {
	providers := []locator.Provider{
		provider("A", "1 St, Visalia, CA"),
		provider("B", "2 St, Merced, CA"),
	}

	got, applied := FilterByCounty(providers, "Fresno", 0)
	assert.True(t, applied)
	assert.Empty(t, got)
}

func TestFilterByCounty_EmptyInput(t *testing.T) {
	got, applied := FilterByCounty(nil, "Fresno", 0.5)
	assert.False(t, applied)
	assert.Empty(t, got)
}

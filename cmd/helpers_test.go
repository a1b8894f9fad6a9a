package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer
	got, err := promptLine(reader("  Fresno  \n"), &out, "county: ")
	require.NoError(t, err)
	assert.Equal(t, "Fresno", got)
	assert.Equal(t, "county: ", out.String())
}

func TestPromptLine_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := promptLine(reader(""), &out, "county: ")
	assert.Error(t, err)
}

func TestSelectCounty_ByNumber(t *testing.T) {
	var out bytes.Buffer
	county, done, err := selectCounty(reader("1\n"), &out)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "Alameda", county)
}

func TestSelectCounty_RetriesOnBadInput(t *testing.T) {
	var out bytes.Buffer
	county, done, err := selectCounty(reader("zzz\nfres\n"), &out)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "Fresno", county)
	assert.Contains(t, out.String(), "zzz")
}

func TestSelectCounty_Quit(t *testing.T) {
	var out bytes.Buffer
	_, done, err := selectCounty(reader("q\n"), &out)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSelectCounty_EOFQuits(t *testing.T) {
	var out bytes.Buffer
	_, done, err := selectCounty(reader(""), &out)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSelectRadius(t *testing.T) {
	var out bytes.Buffer

	radius, err := selectRadius(reader("250\n"), &out, 100)
	require.NoError(t, err)
	assert.Equal(t, 250, radius)

	radius, err = selectRadius(reader("\n"), &out, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, radius, "empty input takes the default")

	radius, err = selectRadius(reader("nope\n"), &out, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, radius, "non-numeric input takes the default")

	radius, err = selectRadius(reader("-5\n"), &out, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, radius, "non-positive input takes the default")
}

func TestPrintProviderSummary(t *testing.T) {
	var out bytes.Buffer
	providers := []locator.Provider{
		{Name: "A Clinic", Address: "1 St, Napa, CA", Phone: "555", Type: "Public"},
		{Name: "B Clinic", Address: "2 St, Napa, CA", Phone: "556", Type: "Private"},
	}

	printProviderSummary(&out, "Napa", providers)
	s := out.String()
	assert.Contains(t, s, "Results for Napa County")
	assert.Contains(t, s, "Total providers: 2")
	assert.Contains(t, s, "Private: 1")
	assert.Contains(t, s, "Public: 1")
	assert.Contains(t, s, "1. A Clinic")
	assert.NotContains(t, s, "more providers")
}

func TestPrintProviderSummary_TruncatesAfterFive(t *testing.T) {
	var out bytes.Buffer
	providers := make([]locator.Provider, 8)
	for i := range providers {
		providers[i] = locator.Provider{Name: string(rune('A' + i)), Type: "Public"}
	}

	printProviderSummary(&out, "Kern", providers)
	s := out.String()
	assert.Contains(t, s, "... and 3 more providers")
}

func TestPrintProviderSummary_Empty(t *testing.T) {
	var out bytes.Buffer
	printProviderSummary(&out, "Alpine", nil)
	assert.Contains(t, out.String(), "Total providers: 0")
}

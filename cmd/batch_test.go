package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaxtrack/vfc-cli/internal/batch"
)

func TestPrintBatchSummary(t *testing.T) {
	var out bytes.Buffer
	summary := &batch.Summary{
		TotalCounties:      58,
		SuccessfulCounties: 55,
		FailedCounties:     3,
		TotalProviders:     1234,
		SearchRadius:       200,
		Results: []batch.CountyResult{
			{County: "Los Angeles", Providers: 400},
			{County: "San Diego", Providers: 200},
			{County: "Alpine", Providers: 0},
		},
	}

	printBatchSummary(&out, summary, "json_counties")
	s := out.String()
	assert.Contains(t, s, "EXTRACTION COMPLETE")
	assert.Contains(t, s, "Total counties processed: 58")
	assert.Contains(t, s, "Successful: 55")
	assert.Contains(t, s, "Failed/No data: 3")
	assert.Contains(t, s, "Total providers found: 1234")
	assert.Contains(t, s, "Top 2 counties")
	assert.Contains(t, s, "Los Angeles")
	assert.NotContains(t, s, "Alpine", "zero-provider counties stay out of the top list")
}

func TestPrintBatchSummary_NoResults(t *testing.T) {
	var out bytes.Buffer
	printBatchSummary(&out, &batch.Summary{TotalCounties: 2, FailedCounties: 2}, "out")
	assert.NotContains(t, out.String(), "Top")
}

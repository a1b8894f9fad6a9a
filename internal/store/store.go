// Package store persists extraction run history so past results can be
// listed and served without re-querying the locator endpoint.
package store

import (
	"context"
	"time"

	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

// Run scopes.
const (
	ScopeCounty = "county"
	ScopeState  = "state"
	ScopeBatch  = "batch"
)

// Run is one recorded extraction.
type Run struct {
	ID            string    `json:"id"`
	Scope         string    `json:"scope"`
	County        string    `json:"county,omitempty"`
	Radius        int       `json:"radius"`
	ProviderCount int       `json:"provider_count"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Store defines the persistence interface for extraction history.
type Store interface {
	CreateRun(ctx context.Context, scope, county string, radius int) (*Run, error)
	FinishRun(ctx context.Context, runID string, providerCount int) error
	SaveProviders(ctx context.Context, runID string, providers []locator.Provider) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	RunProviders(ctx context.Context, runID string) ([]locator.Provider, error)

	Migrate(ctx context.Context) error
	Close() error
}

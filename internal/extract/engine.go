// Package extract runs query plans against the locator endpoint and merges
// the responses into a deduplicated provider set.
package extract

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vaxtrack/vfc-cli/internal/counties"
	"github.com/vaxtrack/vfc-cli/internal/planner"
	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

// Fetcher issues one locator query per call.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lng float64, radius int) ([]locator.Provider, error)
}

// Result is the outcome of running a query plan.
type Result struct {
	County    string             `json:"county,omitempty"`
	Providers []locator.Provider `json:"providers"`
	// Fetched counts every record returned across all query points, before
	// deduplication.
	Fetched int `json:"fetched"`
	// Filtered reports whether the county keyword filter was applied (it is
	// discarded when it would over-prune; see counties.FilterByCounty).
	Filtered bool `json:"filtered"`
}

// Engine extracts providers for counties or the whole state. A failed query
// point degrades to zero results for that point; only context cancellation
// stops a plan early.
type Engine struct {
	fetcher      Fetcher
	minKeepRatio float64
}

// New creates an Engine. minKeepRatio is the county filter's keep-ratio
// guard; 0.5 matches the historical behavior.
func New(fetcher Fetcher, minKeepRatio float64) *Engine {
	return &Engine{fetcher: fetcher, minKeepRatio: minKeepRatio}
}

// County extracts the deduplicated provider set for one county by querying
// its nine-point grid, then applies the county keyword filter.
func (e *Engine) County(ctx context.Context, name string, radius int) (*Result, error) {
	seat, ok := counties.SeatOf(name)
	if !ok {
		return nil, eris.Errorf("extract: unknown county %q", name)
	}

	log := zap.L().With(zap.String("county", name), zap.Int("radius", radius))
	log.Info("extracting county providers")

	set, fetched, err := e.run(ctx, planner.CountyGrid(seat.Lat, seat.Lng, radius))
	if err != nil {
		return nil, err
	}

	providers := set.Providers()
	filtered, applied := counties.FilterByCounty(providers, name, e.minKeepRatio)
	if applied {
		log.Info("applied county keyword filter",
			zap.Int("before", len(providers)),
			zap.Int("after", len(filtered)),
		)
	}

	return &Result{
		County:    name,
		Providers: filtered,
		Fetched:   fetched,
		Filtered:  applied,
	}, nil
}

// State extracts the deduplicated provider set for the whole state via the
// representative-city sweep. No keyword filter applies.
func (e *Engine) State(ctx context.Context, radius int) (*Result, error) {
	zap.L().Info("extracting statewide providers", zap.Int("radius", radius))

	set, fetched, err := e.run(ctx, planner.Statewide(radius))
	if err != nil {
		return nil, err
	}

	return &Result{Providers: set.Providers(), Fetched: fetched}, nil
}

// run fetches every point in the plan sequentially, merging results into a
// set. Per-point errors are logged and skipped; the plan always visits every
// remaining point unless the context is cancelled.
func (e *Engine) run(ctx context.Context, points []planner.QueryPoint) (*locator.Set, int, error) {
	set := locator.NewSet()
	fetched := 0

	for i, pt := range points {
		if err := ctx.Err(); err != nil {
			return nil, 0, eris.Wrap(err, "extract: plan interrupted")
		}

		providers, err := e.fetcher.Fetch(ctx, pt.Lat, pt.Lng, pt.Radius)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, eris.Wrap(ctx.Err(), "extract: plan interrupted")
			}
			zap.L().Warn("query point failed",
				zap.Int("point", i+1),
				zap.Float64("lat", pt.Lat),
				zap.Float64("lng", pt.Lng),
				zap.Error(err),
			)
			continue
		}

		newCount := 0
		for _, p := range providers {
			if set.Add(p) {
				newCount++
			}
		}
		fetched += len(providers)

		zap.L().Debug("query point complete",
			zap.Int("point", i+1),
			zap.Int("points", len(points)),
			zap.Int("found", len(providers)),
			zap.Int("new", newCount),
			zap.Int("unique", set.Len()),
		)
	}

	return set, fetched, nil
}

// TypeCounts groups providers by their category, using "Unknown" for records
// without one.
func TypeCounts(providers []locator.Provider) map[string]int {
	counts := make(map[string]int)
	for _, p := range providers {
		typ := p.Type
		if typ == "" {
			typ = "Unknown"
		}
		counts[typ]++
	}
	return counts
}

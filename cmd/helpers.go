package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/vaxtrack/vfc-cli/internal/extract"
	"github.com/vaxtrack/vfc-cli/internal/store"
	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

// newEngine builds the extraction engine from the loaded config.
func newEngine() *extract.Engine {
	client := locator.New(locator.Config{
		BaseURL:           cfg.Locator.BaseURL,
		UserAgent:         cfg.Locator.UserAgent,
		Timeout:           cfg.Locator.Timeout(),
		RequestsPerSecond: cfg.Locator.RequestsPerSecond,
	})
	return extract.New(client, cfg.Filter.MinKeepRatio)
}

// openStore opens the run-history store when one is configured. Returns nil
// when history is disabled.
func openStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.Path == "" {
		return nil, nil
	}
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

// recordRun persists an extraction to the store, if one is open. History is
// best-effort; failures are logged and ignored.
func recordRun(ctx context.Context, s store.Store, scope, county string, radius int, providers []locator.Provider) {
	if s == nil {
		return
	}
	run, err := s.CreateRun(ctx, scope, county, radius)
	if err != nil {
		zap.L().Warn("failed to record run", zap.Error(err))
		return
	}
	if err := s.SaveProviders(ctx, run.ID, providers); err != nil {
		zap.L().Warn("failed to record run providers", zap.Error(err))
		return
	}
	if err := s.FinishRun(ctx, run.ID, len(providers)); err != nil {
		zap.L().Warn("failed to finish run record", zap.Error(err))
	}
}

// promptLine prints a prompt and reads one trimmed line.
func promptLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// printProviderSummary prints a county's result: totals, type breakdown, and
// the first few providers.
func printProviderSummary(out io.Writer, county string, providers []locator.Provider) {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Results for %s County\n", county)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Total providers: %d\n", len(providers))

	if len(providers) == 0 {
		return
	}

	types := extract.TypeCounts(providers)
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "\nProviders by type:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %d\n", name, types[name])
	}

	const sampleSize = 5
	fmt.Fprintf(out, "\nFirst %d providers:\n", min(sampleSize, len(providers)))
	for i, p := range providers {
		if i == sampleSize {
			break
		}
		fmt.Fprintf(out, "\n%d. %s\n", i+1, p.Name)
		fmt.Fprintf(out, "   Address: %s\n", p.Address)
		fmt.Fprintf(out, "   Phone: %s\n", p.Phone)
		fmt.Fprintf(out, "   Type: %s\n", p.Type)
	}

	if len(providers) > sampleSize {
		fmt.Fprintf(out, "\n... and %d more providers\n", len(providers)-sampleSize)
	}
}

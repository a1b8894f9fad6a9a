package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vaxtrack/vfc-cli/internal/batch"
	"github.com/vaxtrack/vfc-cli/internal/counties"
	"github.com/vaxtrack/vfc-cli/internal/extract"
	"github.com/vaxtrack/vfc-cli/internal/store"
	"github.com/vaxtrack/vfc-cli/pkg/locator"
)

var (
	extractRadius int
	extractOut    string
)

var extractCmd = &cobra.Command{
	Use:   "extract [county]",
	Short: "Extract providers for one county",
	Long:  "Extracts the deduplicated provider set for a county. With no argument, runs an interactive county-selection loop.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine := newEngine()
		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		if len(args) == 1 {
			county, err := counties.Lookup(args[0])
			if err != nil {
				return err
			}
			radius := extractRadius
			if radius <= 0 {
				radius = cfg.Locator.DefaultRadius
			}
			return extractOne(ctx, cmd.OutOrStdout(), engine, st, county, radius, extractOut)
		}

		return interactiveLoop(ctx, cmd, engine, st)
	},
}

func init() {
	extractCmd.Flags().IntVar(&extractRadius, "radius", 0, "search radius in miles (default from config)")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "output file (default vfc_providers_<county>.json)")
	rootCmd.AddCommand(extractCmd)
}

// extractOne runs a single county extraction, prints its summary, and writes
// the output file.
func extractOne(ctx context.Context, out io.Writer, engine *extract.Engine, st store.Store, county string, radius int, outFile string) error {
	fmt.Fprintf(out, "\nFetching providers for %s County (radius %d miles)...\n", county, radius)

	result, err := engine.County(ctx, county, radius)
	if err != nil {
		return err
	}

	printProviderSummary(out, county, result.Providers)

	if len(result.Providers) == 0 {
		fmt.Fprintf(out, "\nNo providers found for %s County. Try a larger radius.\n", county)
	}

	providers := result.Providers
	if providers == nil {
		providers = []locator.Provider{}
	}
	if outFile == "" {
		outFile = "vfc_providers_" + batch.CountyFilename(county)
	}
	if err := batch.WriteJSON(outFile, providers); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSaved %d providers to %s\n", len(result.Providers), outFile)

	recordRun(ctx, st, store.ScopeCounty, county, radius, result.Providers)
	return nil
}

// interactiveLoop is the prompt-driven county selection flow: pick a county
// by number or partial name, pick a radius, extract, repeat until q/n.
func interactiveLoop(ctx context.Context, cmd *cobra.Command, engine *extract.Engine, st store.Store) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "interrupted")
		}

		countiesCmd.Run(cmd, nil)

		county, done, err := selectCounty(in, out)
		if err != nil {
			return err
		}
		if done {
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		}

		radius, err := selectRadius(in, out, cfg.Locator.DefaultRadius)
		if err != nil {
			return err
		}

		if err := extractOne(ctx, out, engine, st, county, radius, ""); err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}

		again, err := promptLine(in, out, "\nExtract another county? (y/n): ")
		if err != nil || !strings.EqualFold(again, "y") {
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		}
	}
}

// selectCounty prompts until the input resolves to exactly one county. The
// second return is true when the user quit.
func selectCounty(in *bufio.Reader, out io.Writer) (string, bool, error) {
	for {
		input, err := promptLine(in, out, "\nEnter county number or name (q to quit): ")
		if err != nil {
			return "", true, nil // EOF quits
		}
		if strings.EqualFold(input, "q") {
			return "", true, nil
		}

		county, err := counties.Lookup(input)
		if err != nil {
			fmt.Fprintf(out, "%v\n", eris.Cause(err))
			continue
		}
		return county, false, nil
	}
}

// selectRadius prompts for a radius, accepting empty input as the default.
func selectRadius(in *bufio.Reader, out io.Writer, def int) (int, error) {
	input, err := promptLine(in, out, fmt.Sprintf("\nEnter search radius in miles (default %d, press Enter for default): ", def))
	if err != nil {
		return def, nil
	}
	if n, convErr := strconv.Atoi(input); convErr == nil && n > 0 {
		return n, nil
	}
	return def, nil
}

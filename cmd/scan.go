package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vaxtrack/vfc-cli/internal/batch"
	"github.com/vaxtrack/vfc-cli/internal/store"
)

var (
	scanRadius int
	scanOut    string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the whole state for providers",
	Long:  "Queries the locator from representative cities across California plus one wide pass from the state center, and writes the deduplicated provider list.",
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

		radius := scanRadius
		if radius <= 0 {
			radius = cfg.Locator.StateRadius
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scanning California at radius %d miles...\n", radius)

		result, err := engine.State(ctx, radius)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Found %d unique providers from %d total results\n", len(result.Providers), result.Fetched)

		if err := batch.WriteJSON(scanOut, result.Providers); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %d providers to %s\n", len(result.Providers), scanOut)

		recordRun(ctx, st, store.ScopeState, "", radius, result.Providers)
		return nil
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanRadius, "radius", 0, "per-city search radius in miles (default from config)")
	scanCmd.Flags().StringVar(&scanOut, "out", "vfc_providers.json", "output file")
	rootCmd.AddCommand(scanCmd)
}

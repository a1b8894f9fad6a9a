package main

import (
	"bufio"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vaxtrack/vfc-cli/internal/batch"
	"github.com/vaxtrack/vfc-cli/internal/counties"
	"github.com/vaxtrack/vfc-cli/internal/store"
)

var (
	batchRadius int
	batchOutput string
	batchYes    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract providers for all California counties",
	Long:  "Extracts every county in sequence, writing one JSON file per county plus a _summary.json. A county's failure is logged and skipped; only an interrupt stops the run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		radius := batchRadius
		if radius <= 0 {
			radius = cfg.Batch.Radius
		}
		output := batchOutput
		if output == "" {
			output = cfg.Batch.OutputDir
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "This will extract providers for all %d California counties.\n", counties.Count())
		fmt.Fprintf(out, "Output folder: %s\n", output)
		fmt.Fprintf(out, "Search radius: %d miles\n", radius)

		if !batchYes {
			in := bufio.NewReader(cmd.InOrStdin())
			answer, err := promptLine(in, out, "\nThis may take a while. Proceed? (y/n): ")
			if err != nil || !strings.EqualFold(answer, "y") {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		engine := newEngine()
		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		summary, err := batch.Run(ctx, engine, counties.Names(), batch.Options{
			Radius:    radius,
			OutputDir: output,
		})
		if err != nil {
			return err
		}

		printBatchSummary(out, summary, output)
		recordRun(ctx, st, store.ScopeBatch, "", radius, nil)
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchRadius, "radius", 0, "search radius in miles (default from config)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output folder (default from config)")
	batchCmd.Flags().BoolVar(&batchYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(batchCmd)
}

func printBatchSummary(out io.Writer, summary *batch.Summary, output string) {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "EXTRACTION COMPLETE")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "\nTotal counties processed: %d\n", summary.TotalCounties)
	fmt.Fprintf(out, "Successful: %d\n", summary.SuccessfulCounties)
	fmt.Fprintf(out, "Failed/No data: %d\n", summary.FailedCounties)
	fmt.Fprintf(out, "Total providers found: %d\n", summary.TotalProviders)
	fmt.Fprintf(out, "\nOutput folder: %s\n", output)

	top := batch.TopCounties(summary.Results, 10)
	if len(top) == 0 {
		return
	}
	fmt.Fprintf(out, "\nTop %d counties by provider count:\n", len(top))
	for i, r := range top {
		fmt.Fprintf(out, "  %2d. %-25s - %3d providers\n", i+1, r.County, r.Providers)
	}
}

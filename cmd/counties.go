package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaxtrack/vfc-cli/internal/counties"
)

var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "List California counties and their selection numbers",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\nCalifornia Counties:")
		fmt.Fprintln(out, strings.Repeat("=", 60))
		for i, name := range counties.Names() {
			fmt.Fprintf(out, "%2d. %s\n", i+1, name)
		}
		fmt.Fprintln(out, strings.Repeat("=", 60))
	},
}

func init() {
	rootCmd.AddCommand(countiesCmd)
}

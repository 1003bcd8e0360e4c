// cmd/plottimings/summary.go
package plottimings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/plottimings/internal/report"
	"github.com/mwiater/plottimings/internal/timings"
)

// summaryCmd implements 'summary', which prints per-series statistics.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print per-series timing statistics",
	Long:  `The 'summary' command reads the timings CSV and prints one row per (compiler, variant) series with its thread range, best time, mean, median and speedup over the lowest thread count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := loadTable()
		if err != nil {
			return err
		}
		if tbl.Empty() {
			logger.Warn("no timing rows found", "input", cfg.Input)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Table(timings.Summarize(tbl)))
		return nil
	},
}

func init() {
	addInputFlags(summaryCmd.Flags())
	rootCmd.AddCommand(summaryCmd)
}

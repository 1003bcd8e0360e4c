// cmd/plottimings/browse.go
package plottimings

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mwiater/plottimings/internal/browse"
	"github.com/mwiater/plottimings/internal/timings"
)

// Swapped in tests.
var browseTable = browse.Run

// browseCmd implements 'browse', an interactive series browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the timing series interactively",
	Long:  `The 'browse' command opens a terminal UI listing every (compiler, variant) series. Press enter to see a series' points and statistics, esc to go back and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := loadTable()
		if err != nil {
			return err
		}
		err = browseTable(cmd.Context(), tbl)
		if errors.Is(err, timings.ErrNoSeries) {
			logger.Warn("no timing rows found", "input", cfg.Input)
			return nil
		}
		return err
	},
}

func init() {
	addInputFlags(browseCmd.Flags())
	rootCmd.AddCommand(browseCmd)
}

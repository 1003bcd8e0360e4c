// cmd/plottimings/render.go
package plottimings

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/plottimings/internal/display"
	"github.com/mwiater/plottimings/internal/render"
	"github.com/mwiater/plottimings/internal/sysinfo"
)

// Swapped in tests.
var (
	openImage   = display.Open
	cpuSubtitle = sysinfo.CPUSummary
)

// renderCmd implements 'render', which draws the timings chart.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the timings chart to an image",
	Long:  `The 'render' command reads the timings CSV, groups it by compiler and variant and writes a log-scale chart of execution time against thread count, then opens it in the desktop viewer unless --show=false.`,
	RunE:  runRender,
}

func init() {
	addInputFlags(renderCmd.Flags())
	addRenderFlags(renderCmd.Flags())
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tbl, err := loadTable()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if tbl.Empty() {
		logger.Warn("no timing rows found, nothing to render", "input", cfg.Input)
		return nil
	}

	subtitle := ""
	if cfg.CPUSubtitle {
		if subtitle = cpuSubtitle(); subtitle == "" {
			logger.Warn("CPU brand unavailable, rendering without subtitle")
		}
	}
	opts, err := cfg.RenderOptions(subtitle, logger)
	if err != nil {
		return err
	}

	paths, err := render.Render(ctx, tbl, opts)
	if errors.Is(err, render.ErrNoSeries) {
		logger.Warn("no drawable series, nothing written", "input", cfg.Input)
		return nil
	}
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", p)
	}

	if !cfg.Show {
		return nil
	}
	for _, p := range paths {
		shown, err := openImage(p)
		if err != nil {
			logger.Warn("could not open viewer", "path", p, "error", err)
			continue
		}
		if !shown {
			logger.Debug("headless session, not opening viewer", "path", p)
		}
	}
	return nil
}

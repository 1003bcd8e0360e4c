// cmd/plottimings/load.go
package plottimings

import (
	"github.com/mwiater/plottimings/internal/timings"
)

// loadTable reads cfg.Input and groups it.
func loadTable() (*timings.Table, error) {
	in, err := timings.ReadFile(cfg.Input, cfg.ReadOptions(logger))
	if err != nil {
		return nil, err
	}
	tbl := timings.Group(in.Records)
	logger.Info("timings loaded",
		"input", cfg.Input,
		"rows", len(in.Records),
		"skipped", len(in.Skipped),
		"compilers", len(tbl.Compilers),
	)
	return tbl, nil
}

// cmd/plottimings/group.go
package plottimings

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mwiater/plottimings/internal/timings"
)

// groupCmd implements 'group', which dumps the grouped table.
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Dump the grouped timings as JSON or YAML",
	Long:  `The 'group' command reads the timings CSV and writes the compiler -> variant -> series grouping, in first-seen order, as JSON (default) or YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := loadTable()
		if err != nil {
			return err
		}
		return writeTable(cmd.OutOrStdout(), tbl, cfg.Format)
	},
}

func init() {
	addInputFlags(groupCmd.Flags())
	groupCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(groupCmd)
}

// writeTable encodes tbl to w in the given format.
func writeTable(w io.Writer, tbl *timings.Table, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tbl); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tbl); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// cmd/plottimings/root.go
package plottimings

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/plottimings/internal/config"
	"github.com/mwiater/plottimings/internal/logging"
)

var (
	// cfgFile is the --config flag.
	cfgFile string

	// cfg and logger are resolved once per invocation in PersistentPreRunE.
	cfg    config.Config
	logger *slog.Logger
)

// rootCmd is the base Cobra command for the plottimings application.
// Run without a subcommand it behaves like 'render'.
var rootCmd = &cobra.Command{
	Use:   "plottimings",
	Short: "Plot benchmark timings against thread count",
	Long: `plottimings reads a benchmark timings CSV (compiler, version, -, -, variant, threads, seconds),
groups the rows by compiler and variant and renders a log-scale chart of execution time
against thread count. Run without a subcommand it renders timings.csv to timings.png.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRender,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./plottimings.yaml if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging and print the resolved configuration")
	addInputFlags(rootCmd.Flags())
	addRenderFlags(rootCmd.Flags())
}

// setup binds the executing command's flags into a fresh viper instance,
// loads the configuration and installs the logger. Only the keys the command
// binds are validated.
func setup(cmd *cobra.Command, args []string) error {
	v := viper.New()
	var (
		keys    []string
		bindErr error
	)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || bindErr != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		keys = append(keys, key)
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return bindErr
	}

	loaded, err := config.Load(v, cfgFile, keys...)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.Init(cmd.ErrOrStderr(), cfg.Debug)

	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), cfg)
	}
	return nil
}

// addInputFlags registers the flags shared by every command that reads a
// timings file.
func addInputFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "timings.csv", "timings CSV to read")
	fs.Bool("strict", false, "fail on the first malformed row instead of skipping it")
}

// addRenderFlags registers the chart flags used by 'render' and the root command.
func addRenderFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "timings.png", "image to write; the extension picks the format (png, svg, pdf, ...)")
	fs.String("mode", "combined", "combined: one figure for all compilers; split: one figure per compiler")
	fs.String("title-compiler", "", "compiler whose name and version title a combined figure")
	fs.String("duplicates", "append", "repeated thread counts in a series: append, mean or last")
	fs.Bool("show", true, "open the written image in the desktop viewer")
	fs.Bool("cpu-subtitle", false, "add the CPU brand string under the title")
	fs.String("width", "6in", "figure width (e.g. 6in, 15cm)")
	fs.String("height", "4.5in", "figure height (e.g. 4.5in, 11cm)")
}

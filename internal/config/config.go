// Package config resolves plottimings settings from flags, environment,
// an optional config file and defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/mwiater/plottimings/internal/render"
	"github.com/mwiater/plottimings/internal/timings"
)

// Keys understood in the config file and as PLOTTIMINGS_* variables.
const (
	KeyInput         = "input"
	KeyOutput        = "output"
	KeyMode          = "mode"
	KeyTitleCompiler = "title_compiler"
	KeyDuplicates    = "duplicates"
	KeyShow          = "show"
	KeyCPUSubtitle   = "cpu_subtitle"
	KeyWidth         = "width"
	KeyHeight        = "height"
	KeyStrict        = "strict"
	KeyDebug         = "debug"
	KeyFormat        = "format"
)

// EnvPrefix is prepended to every key looked up in the environment.
const EnvPrefix = "PLOTTIMINGS"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved set of options for one run.
type Config struct {
	Input         string
	Output        string
	Mode          string
	TitleCompiler string
	Duplicates    string
	Show          bool
	CPUSubtitle   bool
	Width         string
	Height        string
	Strict        bool
	Debug         bool
	Format        string
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInput, "timings.csv")
	v.SetDefault(KeyOutput, render.DefaultOutput)
	v.SetDefault(KeyMode, string(render.ModeCombined))
	v.SetDefault(KeyTitleCompiler, "")
	v.SetDefault(KeyDuplicates, string(timings.DuplicatesAppend))
	v.SetDefault(KeyShow, true)
	v.SetDefault(KeyCPUSubtitle, false)
	v.SetDefault(KeyWidth, "6in")
	v.SetDefault(KeyHeight, "4.5in")
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyFormat, "json")
}

// Load reads .env (if present), the config file and the environment into v
// and returns the result with keys validated (all keys when none are given).
// An empty cfgFile looks for an optional plottimings.yaml in the working
// directory; a named file must exist.
func Load(v *viper.Viper, cfgFile string, keys ...string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("plottimings")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(keys...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromViper copies the current values of v into a Config.
func FromViper(v *viper.Viper) Config {
	return Config{
		Input:         v.GetString(KeyInput),
		Output:        v.GetString(KeyOutput),
		Mode:          v.GetString(KeyMode),
		TitleCompiler: strings.TrimSpace(v.GetString(KeyTitleCompiler)),
		Duplicates:    v.GetString(KeyDuplicates),
		Show:          v.GetBool(KeyShow),
		CPUSubtitle:   v.GetBool(KeyCPUSubtitle),
		Width:         v.GetString(KeyWidth),
		Height:        v.GetString(KeyHeight),
		Strict:        v.GetBool(KeyStrict),
		Debug:         v.GetBool(KeyDebug),
		Format:        v.GetString(KeyFormat),
	}
}

// Validate checks the named keys that have a fixed vocabulary or syntax, so
// a command is not failed by settings it never reads. With no keys it checks
// all of them.
func (c Config) Validate(keys ...string) error {
	checked := func(key string) bool {
		return len(keys) == 0 || slices.Contains(keys, key)
	}

	var errs []error
	if checked(KeyInput) && c.Input == "" {
		errs = append(errs, errors.New("input must not be empty"))
	}
	if checked(KeyOutput) {
		if _, err := render.Format(c.Output); err != nil {
			errs = append(errs, fmt.Errorf("output: %w", err))
		}
	}
	if checked(KeyMode) {
		if _, err := render.ParseMode(c.Mode); err != nil {
			errs = append(errs, err)
		}
	}
	if checked(KeyDuplicates) {
		if _, err := timings.ParseDuplicatePolicy(c.Duplicates); err != nil {
			errs = append(errs, err)
		}
	}
	if checked(KeyWidth) || checked(KeyHeight) {
		if _, _, err := c.Size(); err != nil {
			errs = append(errs, err)
		}
	}
	if checked(KeyFormat) {
		switch c.Format {
		case "json", "yaml":
		default:
			errs = append(errs, fmt.Errorf("unknown format %q (want json or yaml)", c.Format))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Size parses Width and Height as gonum lengths such as "6in" or "15cm".
func (c Config) Size() (vg.Length, vg.Length, error) {
	w, err := parsePositiveLength(KeyWidth, c.Width)
	if err != nil {
		return 0, 0, err
	}
	h, err := parsePositiveLength(KeyHeight, c.Height)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func parsePositiveLength(key, s string) (vg.Length, error) {
	l, err := vg.ParseLength(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if l <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %q", key, s)
	}
	return l, nil
}

// ReadOptions converts the ingestion settings.
func (c Config) ReadOptions(logger *slog.Logger) timings.ReadOptions {
	return timings.ReadOptions{Strict: c.Strict, Logger: logger}
}

// RenderOptions converts the rendering settings. subtitle is used only when
// CPUSubtitle is set.
func (c Config) RenderOptions(subtitle string, logger *slog.Logger) (render.Options, error) {
	mode, err := render.ParseMode(c.Mode)
	if err != nil {
		return render.Options{}, err
	}
	dups, err := timings.ParseDuplicatePolicy(c.Duplicates)
	if err != nil {
		return render.Options{}, err
	}
	w, h, err := c.Size()
	if err != nil {
		return render.Options{}, err
	}
	opts := render.Options{
		Output:        c.Output,
		Mode:          mode,
		TitleCompiler: c.TitleCompiler,
		Duplicates:    dups,
		Width:         w,
		Height:        h,
		Logger:        logger,
	}
	if c.CPUSubtitle {
		opts.Subtitle = subtitle
	}
	return opts, nil
}

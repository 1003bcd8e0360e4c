// internal/render/render.go
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/mwiater/plottimings/internal/timings"
)

// Axis labels used on every figure.
const (
	XLabel = "OMP_NUM_THREADS"
	YLabel = "execution time (s)"
)

// DefaultOutput is the image written when no output path is configured.
const DefaultOutput = "timings.png"

var (
	// ErrNoSeries is returned when there is nothing drawable in the table.
	ErrNoSeries = timings.ErrNoSeries
	// ErrUnknownCompiler is returned when the title compiler is not in the table.
	ErrUnknownCompiler = errors.New("unknown compiler")
	// ErrUnsupportedFormat is returned for output extensions gonum/plot cannot write.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Mode selects how compilers are laid out across figures.
type Mode string

const (
	// ModeCombined draws every compiler on one shared figure.
	ModeCombined Mode = "combined"
	// ModeSplit draws one figure per compiler.
	ModeSplit Mode = "split"
)

// ParseMode validates a mode name. The empty string means combined.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeCombined, nil
	case ModeCombined, ModeSplit:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want combined or split)", s)
	}
}

// Options configures Plan and Render.
type Options struct {
	// Output is the image path. Its extension picks the format.
	Output string
	Mode   Mode
	// TitleCompiler names the compiler whose name and version title a
	// combined figure.
	TitleCompiler string
	Duplicates    timings.DuplicatePolicy
	// Subtitle is printed under the title when non-empty.
	Subtitle      string
	Width, Height vg.Length
	Logger        *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Line is one drawable series: only points with a positive time survive.
type Line struct {
	Label    string
	Compiler string
	Variant  string
	Points   []timings.Point
}

// Figure is one image to be written.
type Figure struct {
	Title    string
	Subtitle string
	Path     string
	Lines    []Line
}

var formats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "svg": true,
	"pdf": true, "eps": true, "tif": true, "tiff": true,
}

// Format returns the image format for path, taken from its extension.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !formats[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return ext, nil
}

// Plan decides the figures for t without drawing anything.
func Plan(t *timings.Table, opts Options) ([]Figure, error) {
	if t.Empty() {
		return nil, ErrNoSeries
	}
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if _, err := Format(opts.Output); err != nil {
		return nil, err
	}

	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	var figs []Figure
	switch mode {
	case ModeSplit:
		for _, g := range t.Compilers {
			fig := Figure{
				Title:    g.Label(),
				Subtitle: opts.Subtitle,
				Path:     splitPath(opts.Output, g.Name),
				Lines:    lines(opts, []*timings.CompilerGroup{g}, false),
			}
			if len(fig.Lines) == 0 {
				opts.logger().Warn("no drawable series for compiler", "compiler", g.Name)
				continue
			}
			figs = append(figs, fig)
		}
	default:
		title, err := combinedTitle(t, opts.TitleCompiler)
		if err != nil {
			return nil, err
		}
		fig := Figure{
			Title:    title,
			Subtitle: opts.Subtitle,
			Path:     opts.Output,
			Lines:    lines(opts, t.Compilers, len(t.Compilers) > 1),
		}
		if len(fig.Lines) > 0 {
			figs = append(figs, fig)
		}
	}

	if len(figs) == 0 {
		return nil, ErrNoSeries
	}
	return figs, nil
}

// combinedTitle picks the title of the shared figure: the named compiler,
// the only compiler, or every compiler in table order.
func combinedTitle(t *timings.Table, name string) (string, error) {
	if name != "" {
		g := t.Compiler(name)
		if g == nil {
			return "", fmt.Errorf("%w %q", ErrUnknownCompiler, name)
		}
		return g.Label(), nil
	}
	labels := make([]string, 0, len(t.Compilers))
	for _, g := range t.Compilers {
		labels = append(labels, g.Label())
	}
	return strings.Join(labels, " / "), nil
}

func lines(opts Options, groups []*timings.CompilerGroup, qualify bool) []Line {
	var out []Line
	for _, g := range groups {
		for _, s := range g.Variants {
			kept := s.Positive()
			if dropped := s.Len() - kept.Len(); dropped > 0 {
				opts.logger().Warn("dropping non-positive times from log-scale plot",
					"compiler", g.Name, "variant", s.Variant, "points", dropped)
			}
			if kept.Len() == 0 {
				continue
			}
			out = append(out, Line{
				Label:    timings.Label(g.Name, s.Variant, qualify),
				Compiler: g.Name,
				Variant:  s.Variant,
				Points:   kept.Points(opts.Duplicates),
			})
		}
	}
	return out
}

// splitPath inserts the compiler name before the extension:
// timings.png -> timings-gcc.png.
func splitPath(output, compiler string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "-" + sanitize(compiler) + ext
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// Render plans the figures for t and writes each one. It returns the paths
// written.
func Render(ctx context.Context, t *timings.Table, opts Options) ([]string, error) {
	figs, err := Plan(t, opts)
	if err != nil {
		return nil, err
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var written []string
	for _, fig := range figs {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := Draw(fig, width, height); err != nil {
			return written, fmt.Errorf("render %s: %w", fig.Path, err)
		}
		opts.logger().Debug("figure written", "path", fig.Path, "series", len(fig.Lines))
		written = append(written, fig.Path)
	}
	return written, nil
}

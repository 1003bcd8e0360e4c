// internal/render/draw.go
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default figure size, 4:3.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4.5 * vg.Inch
)

// lightGrey is the legend backdrop, rgb(225,225,225).
var lightGrey = color.RGBA{R: 225, G: 225, B: 225, A: 255}

// Draw writes fig to fig.Path at the given size.
func Draw(fig Figure, width, height vg.Length) error {
	format, err := Format(fig.Path)
	if err != nil {
		return err
	}

	p := newPlot(fig)
	// the plot's own legend stays empty; ours is drawn over a backdrop below
	legend := p.Legend
	legend.Top = true
	legend.Padding = vg.Millimeter

	colors, err := seriesColors(len(fig.Lines))
	if err != nil {
		return err
	}

	for i, ln := range fig.Lines {
		xys := make(plotter.XYs, len(ln.Points))
		for j, pt := range ln.Points {
			xys[j].X = float64(pt.Threads)
			xys[j].Y = pt.Seconds
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", ln.Label, err)
		}
		c := colors[i%len(colors)]
		line.Color = c
		line.Width = vg.Points(1.5)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(2)

		p.Add(line, points)
		legend.Add(ln.Label, line, points)
	}
	fitLogY(p, fig.Lines)

	canvas, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}
	dc := draw.New(canvas)
	p.Draw(dc)
	drawLegend(p.DataCanvas(dc), &legend)

	f, err := os.Create(fig.Path)
	if err != nil {
		return err
	}
	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// newPlot sets up titles, labels and the log-scaled y axis. gonum/plot only
// draws the bottom and left axes, so there is no top or right frame and
// ticks sit on the bottom and left edges.
func newPlot(fig Figure) *plot.Plot {
	p := plot.New()

	p.Title.Text = fig.Title
	if fig.Subtitle != "" {
		p.Title.Text += "\n" + fig.Subtitle
	}
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	return p
}

// fitLogY sets the y range from the data. A log axis cannot take the
// default widening of a flat range (min-1), so a single distinct value is
// padded by a factor of two either way.
func fitLogY(p *plot.Plot, lines []Line) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ln := range lines {
		for _, pt := range ln.Points {
			lo = math.Min(lo, pt.Seconds)
			hi = math.Max(hi, pt.Seconds)
		}
	}
	if math.IsInf(lo, 0) {
		return
	}
	if lo == hi {
		lo, hi = lo/2, hi*2
	}
	p.Y.Min, p.Y.Max = lo, hi
}

// drawLegend fills a flat, borderless light-grey box behind the legend and
// then draws the legend entries on top of it.
func drawLegend(c draw.Canvas, l *plot.Legend) {
	r := l.Rectangle(c)
	pad := l.Padding
	lo := vg.Point{X: r.Min.X - pad, Y: r.Min.Y - pad}
	hi := vg.Point{X: r.Max.X + pad, Y: r.Max.Y + pad}
	c.FillPolygon(lightGrey, []vg.Point{
		lo,
		{X: hi.X, Y: lo.Y},
		hi,
		{X: lo.X, Y: hi.Y},
	})
	l.Draw(c)
}

// seriesColors returns n colours from the ColorBrewer Paired palette. The
// palette exists in sizes 3 through 12; larger figures reuse colours.
func seriesColors(n int) ([]color.Color, error) {
	size := min(max(n, 3), 12)
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", size)
	if err != nil {
		return nil, err
	}
	return pal.Colors(), nil
}

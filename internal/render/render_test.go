package render

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/plottimings/internal/timings"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func table(records ...timings.Record) *timings.Table { return timings.Group(records) }

func rec(compiler, version, variant string, threads int, seconds float64) timings.Record {
	return timings.Record{Compiler: compiler, Version: version, Variant: variant, Threads: threads, Seconds: seconds}
}

func twoCompilers() *timings.Table {
	return table(
		rec("gcc", "9.0", "fht", 4, 1.2),
		rec("gcc", "9.0", "fht", 8, 0.7),
		rec("clang", "15", "fht", 4, 1.0),
		rec("clang", "15", "hankel", 4, 2.0),
	)
}

func TestPlan_EmptyTable(t *testing.T) {
	_, err := Plan(timings.NewTable(), Options{TitleCompiler: "gcc", Logger: quiet()})
	assert.ErrorIs(t, err, ErrNoSeries)
}

func TestPlan_SingleCompilerUsesPlainLabels(t *testing.T) {
	tbl := table(rec("gcc", "9.0", "fht", 4, 1.2), rec("gcc", "9.0", "hankel", 4, 2.0))
	figs, err := Plan(tbl, Options{Logger: quiet()})
	require.NoError(t, err)
	require.Len(t, figs, 1)

	fig := figs[0]
	assert.Equal(t, "gcc 9.0", fig.Title)
	assert.Equal(t, DefaultOutput, fig.Path)
	require.Len(t, fig.Lines, 2)
	assert.Equal(t, "fht", fig.Lines[0].Label)
	assert.Equal(t, "hankel", fig.Lines[1].Label)
}

func TestPlan_CombinedQualifiesLabelsAndJoinsTitle(t *testing.T) {
	figs, err := Plan(twoCompilers(), Options{Output: "out.svg", Logger: quiet()})
	require.NoError(t, err)
	require.Len(t, figs, 1)

	fig := figs[0]
	assert.Equal(t, "gcc 9.0 / clang 15", fig.Title)
	labels := []string{}
	for _, ln := range fig.Lines {
		labels = append(labels, ln.Label)
	}
	assert.Equal(t, []string{"gcc: fht", "clang: fht", "clang: hankel"}, labels)
}

func TestPlan_ExplicitTitleCompiler(t *testing.T) {
	figs, err := Plan(twoCompilers(), Options{TitleCompiler: "clang", Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, "clang 15", figs[0].Title)

	_, err = Plan(twoCompilers(), Options{TitleCompiler: "icc", Logger: quiet()})
	assert.ErrorIs(t, err, ErrUnknownCompiler)
}

func TestPlan_SplitOneFigurePerCompiler(t *testing.T) {
	tbl := twoCompilers()
	tbl.Add(rec("g++ (GCC)", "13", "fht", 1, 3))
	figs, err := Plan(tbl, Options{Mode: ModeSplit, Output: filepath.Join("out", "timings.png"), Logger: quiet()})
	require.NoError(t, err)
	require.Len(t, figs, 3)

	assert.Equal(t, "gcc 9.0", figs[0].Title)
	assert.Equal(t, filepath.Join("out", "timings-gcc.png"), figs[0].Path)
	assert.Equal(t, "fht", figs[0].Lines[0].Label)
	assert.Equal(t, filepath.Join("out", "timings-clang.png"), figs[1].Path)
	assert.Equal(t, filepath.Join("out", "timings-g____GCC_.png"), figs[2].Path)
}

func TestPlan_DropsNonPositiveTimes(t *testing.T) {
	var logs bytes.Buffer
	tbl := table(
		rec("gcc", "9", "fht", 1, 0),
		rec("gcc", "9", "fht", 2, 1),
		rec("gcc", "9", "broken", 1, -1),
	)
	figs, err := Plan(tbl, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	require.NoError(t, err)
	require.Len(t, figs[0].Lines, 1)
	assert.Equal(t, []timings.Point{{Threads: 2, Seconds: 1}}, figs[0].Lines[0].Points)
	assert.Contains(t, logs.String(), "dropping non-positive times")

	_, err = Plan(table(rec("gcc", "9", "broken", 1, 0)), Options{Logger: quiet()})
	assert.ErrorIs(t, err, ErrNoSeries)
}

func TestPlan_DuplicatePolicy(t *testing.T) {
	tbl := table(rec("gcc", "9", "fht", 4, 1), rec("gcc", "9", "fht", 4, 3))
	figs, err := Plan(tbl, Options{Duplicates: timings.DuplicatesMean, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, []timings.Point{{Threads: 4, Seconds: 2}}, figs[0].Lines[0].Points)
}

func TestPlan_CollapsesOnlyPositiveTimes(t *testing.T) {
	tbl := table(
		rec("gcc", "9", "fht", 4, -1),
		rec("gcc", "9", "fht", 4, 3),
		rec("gcc", "9", "fht", 8, 2),
		rec("gcc", "9", "fht", 8, 0),
	)

	figs, err := Plan(tbl, Options{Duplicates: timings.DuplicatesMean, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, []timings.Point{{Threads: 4, Seconds: 3}, {Threads: 8, Seconds: 2}}, figs[0].Lines[0].Points)

	figs, err = Plan(tbl, Options{Duplicates: timings.DuplicatesLast, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, []timings.Point{{Threads: 4, Seconds: 3}, {Threads: 8, Seconds: 2}}, figs[0].Lines[0].Points)
}

func TestPlan_RejectsBadOptions(t *testing.T) {
	_, err := Plan(twoCompilers(), Options{Output: "timings.bmp", Logger: quiet()})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Plan(twoCompilers(), Options{Mode: "grid", Logger: quiet()})
	assert.Error(t, err)
}

func TestRender_WritesImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"timings.png", "timings.svg"} {
		out := filepath.Join(dir, name)
		paths, err := Render(context.Background(), twoCompilers(), Options{
			Output:   out,
			Subtitle: "Test CPU",
			Logger:   quiet(),
		})
		require.NoError(t, err)
		require.Equal(t, []string{out}, paths)

		b, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.NotEmpty(t, b)
	}

	png, err := os.ReadFile(filepath.Join(dir, "timings.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestRender_SinglePointSeries(t *testing.T) {
	out := filepath.Join(t.TempDir(), "one.png")
	_, err := Render(context.Background(), table(rec("gcc", "9", "fht", 4, 0.7)), Options{Output: out, Logger: quiet()})
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRender_EmptyWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "timings.png")
	paths, err := Render(context.Background(), timings.NewTable(), Options{Output: out, Logger: quiet()})
	assert.ErrorIs(t, err, ErrNoSeries)
	assert.Empty(t, paths)
	assert.NoFileExists(t, out)
}

func TestRender_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "timings.png")
	_, err := Render(ctx, twoCompilers(), Options{Output: out, Logger: quiet()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, out)
}

func TestFormat(t *testing.T) {
	f, err := Format("a/b/C.PNG")
	require.NoError(t, err)
	assert.Equal(t, "png", f)
}

func TestSeriesColors(t *testing.T) {
	for _, n := range []int{1, 3, 12, 20} {
		cs, err := seriesColors(n)
		require.NoError(t, err)
		assert.NotEmpty(t, cs)
	}
}

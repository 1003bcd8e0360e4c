// internal/timings/group.go
package timings

import "errors"

// ErrNoSeries is returned when a table holds nothing to draw or browse.
var ErrNoSeries = errors.New("no series to render")

// Label is the legend text of a series; qualify prefixes the compiler, as
// needed when several compilers share one figure.
func Label(compiler, variant string, qualify bool) string {
	if !qualify {
		return variant
	}
	return compiler + ": " + variant
}

// Series holds the timings of one (compiler, variant) pair in the order the
// rows appeared in the file. Threads and Seconds always have equal length.
type Series struct {
	Compiler string    `json:"compiler" yaml:"compiler"`
	Variant  string    `json:"variant" yaml:"variant"`
	Threads  []int     `json:"threads" yaml:"threads"`
	Seconds  []float64 `json:"seconds" yaml:"seconds"`
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.Threads) }

func (s *Series) add(threads int, seconds float64) {
	s.Threads = append(s.Threads, threads)
	s.Seconds = append(s.Seconds, seconds)
}

// CompilerGroup is every series measured with one compiler. Version comes
// from the first row seen for the compiler.
type CompilerGroup struct {
	Name     string    `json:"name" yaml:"name"`
	Version  string    `json:"version" yaml:"version"`
	Variants []*Series `json:"variants" yaml:"variants"`

	index map[string]*Series
}

// Variant returns the series for the named variant, or nil.
func (g *CompilerGroup) Variant(name string) *Series {
	return g.index[name]
}

func (g *CompilerGroup) variant(name string) *Series {
	if s, ok := g.index[name]; ok {
		return s
	}
	s := &Series{Compiler: g.Name, Variant: name}
	g.index[name] = s
	g.Variants = append(g.Variants, s)
	return s
}

// Label returns "<name> <version>", or just the name when the version is blank.
func (g *CompilerGroup) Label() string {
	if g.Version == "" {
		return g.Name
	}
	return g.Name + " " + g.Version
}

// Table is the grouped form of a timings file. Compilers and their variants
// keep first-encounter order.
type Table struct {
	Compilers []*CompilerGroup `json:"compilers" yaml:"compilers"`

	index map[string]*CompilerGroup
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]*CompilerGroup)}
}

// Compiler returns the group for name, or nil.
func (t *Table) Compiler(name string) *CompilerGroup {
	return t.index[name]
}

// Add appends one record to its (compiler, variant) series, creating either
// on first sight.
func (t *Table) Add(rec Record) {
	g, ok := t.index[rec.Compiler]
	if !ok {
		g = &CompilerGroup{
			Name:    rec.Compiler,
			Version: rec.Version,
			index:   make(map[string]*Series),
		}
		t.index[rec.Compiler] = g
		t.Compilers = append(t.Compilers, g)
	}
	g.variant(rec.Variant).add(rec.Threads, rec.Seconds)
}

// Empty reports whether the table holds no series.
func (t *Table) Empty() bool { return len(t.Compilers) == 0 }

// Series returns every series in table order: compilers first, then their
// variants.
func (t *Table) Series() []*Series {
	var out []*Series
	for _, g := range t.Compilers {
		out = append(out, g.Variants...)
	}
	return out
}

// Group builds a table from records in a single pass.
func Group(records []Record) *Table {
	t := NewTable()
	for _, rec := range records {
		t.Add(rec)
	}
	return t
}

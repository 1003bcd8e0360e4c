// internal/timings/summary.go
package timings

import "slices"

// Summary aggregates one series for reporting.
type Summary struct {
	Compiler string `json:"compiler"`
	Version  string `json:"version"`
	Variant  string `json:"variant"`
	Points   int    `json:"points"`

	MinThreads int `json:"min_threads"`
	MaxThreads int `json:"max_threads"`

	// Best is the smallest positive time and BestThreads the thread count
	// that produced it. Both are zero when no time is positive.
	Best        float64 `json:"best_s"`
	BestThreads int     `json:"best_threads"`

	Mean float64 `json:"mean_s"`
	Std  float64 `json:"std_s"`
	P50  float64 `json:"p50_s"`

	// Speedup is the time at the lowest thread count with a positive time
	// divided by Best.
	Speedup float64 `json:"speedup"`
}

// Summarize builds one summary per series in table order.
func Summarize(t *Table) []Summary {
	var out []Summary
	for _, g := range t.Compilers {
		for _, s := range g.Variants {
			out = append(out, summarizeSeries(g, s))
		}
	}
	return out
}

func summarizeSeries(g *CompilerGroup, s *Series) Summary {
	sum := Summary{
		Compiler: g.Name,
		Version:  g.Version,
		Variant:  s.Variant,
		Points:   s.Len(),
	}
	if s.Len() == 0 {
		return sum
	}

	sum.MinThreads, sum.MaxThreads = slices.Min(s.Threads), slices.Max(s.Threads)

	st, ok := statsOf(s)
	if !ok {
		return sum
	}
	sum.Best, sum.BestThreads = st.best, st.bestThreads
	sum.Mean, sum.Std, sum.P50 = st.mean, st.std, st.median
	sum.Speedup = st.speedup()
	return sum
}

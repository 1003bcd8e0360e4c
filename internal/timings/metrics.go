// internal/timings/metrics.go
package timings

import (
	"math"
	"slices"
)

// timeStats describes the positive times of one series.
type timeStats struct {
	best        float64
	bestThreads int
	// baseline is the first time measured at the lowest thread count.
	baseline float64
	mean     float64
	std      float64 // population
	median   float64
}

// statsOf summarises the positive samples of s. ok is false when no time
// is above zero.
func statsOf(s *Series) (st timeStats, ok bool) {
	p := s.Positive()
	if p.Len() == 0 {
		return timeStats{}, false
	}

	st.best, st.bestThreads = p.Seconds[0], p.Threads[0]
	st.baseline = p.Seconds[0]
	lowest := p.Threads[0]
	var sum float64
	for i, sec := range p.Seconds {
		n := p.Threads[i]
		if sec < st.best {
			st.best, st.bestThreads = sec, n
		}
		if n < lowest {
			lowest, st.baseline = n, sec
		}
		sum += sec
	}

	count := float64(p.Len())
	st.mean = sum / count
	var sq float64
	for _, sec := range p.Seconds {
		d := sec - st.mean
		sq += d * d
	}
	st.std = math.Sqrt(sq / count)
	st.median = median(p.Seconds)
	return st, true
}

// speedup is the baseline time over the best time.
func (st timeStats) speedup() float64 {
	if st.best == 0 {
		return 0
	}
	return st.baseline / st.best
}

// median averages the two middle values of an even-length input.
func median(secs []float64) float64 {
	if len(secs) == 0 {
		return 0
	}
	sorted := slices.Clone(secs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

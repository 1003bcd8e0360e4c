// internal/timings/points.go
package timings

import "fmt"

// DuplicatePolicy decides how rows that repeat a thread count within one
// series are drawn.
type DuplicatePolicy string

const (
	// DuplicatesAppend keeps every row as its own point.
	DuplicatesAppend DuplicatePolicy = "append"
	// DuplicatesMean averages the times of rows sharing a thread count.
	DuplicatesMean DuplicatePolicy = "mean"
	// DuplicatesLast keeps the last time seen for each thread count.
	DuplicatesLast DuplicatePolicy = "last"
)

// ParseDuplicatePolicy validates a policy name. The empty string means append.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case "":
		return DuplicatesAppend, nil
	case DuplicatesAppend, DuplicatesMean, DuplicatesLast:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want append, mean or last)", s)
	}
}

// Point is one (threads, seconds) sample.
type Point struct {
	Threads int
	Seconds float64
}

// Positive returns a copy of the series holding only the samples with a
// time above zero. Log axes and speedups ignore the rest.
func (s *Series) Positive() *Series {
	out := &Series{Compiler: s.Compiler, Variant: s.Variant}
	for i, sec := range s.Seconds {
		if sec > 0 {
			out.add(s.Threads[i], sec)
		}
	}
	return out
}

// Points returns the series samples under policy. Collapsed points keep the
// position of the first row with that thread count.
func (s *Series) Points(policy DuplicatePolicy) []Point {
	if policy == DuplicatesAppend || policy == "" {
		out := make([]Point, s.Len())
		for i := range s.Threads {
			out[i] = Point{Threads: s.Threads[i], Seconds: s.Seconds[i]}
		}
		return out
	}

	pos := make(map[int]int)
	counts := make(map[int]int)
	var out []Point
	for i, n := range s.Threads {
		sec := s.Seconds[i]
		j, seen := pos[n]
		if !seen {
			pos[n] = len(out)
			counts[n] = 1
			out = append(out, Point{Threads: n, Seconds: sec})
			continue
		}
		switch policy {
		case DuplicatesMean:
			c := counts[n]
			out[j].Seconds = (out[j].Seconds*float64(c) + sec) / float64(c+1)
			counts[n] = c + 1
		case DuplicatesLast:
			out[j].Seconds = sec
		}
	}
	return out
}

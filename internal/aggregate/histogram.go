package aggregate

import (
	"github.com/paveg/salarydash/internal/dataset"
)

// DefaultBins is the bucket count used when none is given.
const DefaultBins = 30

// Bin is one equal-width bucket. Each bin covers [Start, End); the last bin
// also includes End.
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Histogram buckets value over v into bins equal-width bins spanning the
// observed minimum and maximum. bins <= 0 uses DefaultBins. An empty view
// yields an empty slice. When every value is equal the range is widened to
// [v-0.5, v+0.5], so all mass falls in a single bin.
func Histogram(v dataset.View, value func(dataset.Record) float64, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultBins
	}
	n := v.Len()
	if n == 0 {
		return []Bin{}
	}

	lo, hi := value(v.At(0)), value(v.At(0))
	for i := 1; i < n; i++ {
		x := value(v.At(i))
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Start = lo + float64(i)*width
		out[i].End = lo + float64(i+1)*width
	}
	out[bins-1].End = hi

	for i := 0; i < n; i++ {
		idx := int((value(v.At(i)) - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// SalaryHistogram buckets salaries over v.
func SalaryHistogram(v dataset.View, bins int) []Bin {
	return Histogram(v, salary, bins)
}

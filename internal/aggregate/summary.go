// Package aggregate computes summary metrics and grouped reductions over a
// filtered view. Every function is a pure reduction that returns a defined
// zero or empty result for an empty view instead of failing.
package aggregate

import (
	"github.com/paveg/salarydash/internal/dataset"
)

// Summary holds the headline metrics of a view.
type Summary struct {
	MeanSalary float64 `json:"mean_salary"`
	MaxSalary  float64 `json:"max_salary"`
	Count      int     `json:"count"`
	TopRole    string  `json:"top_role"`
}

// Summarize reduces v to its headline metrics. An empty view yields the zero
// Summary.
func Summarize(v dataset.View) Summary {
	n := v.Len()
	if n == 0 {
		return Summary{}
	}

	var total float64
	maxSalary := v.At(0).SalaryUSD
	for i := 0; i < n; i++ {
		s := v.At(i).SalaryUSD
		total += s
		if s > maxSalary {
			maxSalary = s
		}
	}

	return Summary{
		MeanSalary: total / float64(n),
		MaxSalary:  maxSalary,
		Count:      n,
		TopRole:    Mode(v, func(r dataset.Record) string { return r.Role }),
	}
}

// Mode returns the most frequent value of key over v. Ties go to the value
// encountered first. An empty view yields "".
func Mode(v dataset.View, key func(dataset.Record) string) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := 0; i < v.Len(); i++ {
		k := key(v.At(i))
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	var best string
	bestCount := 0
	for _, k := range order {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

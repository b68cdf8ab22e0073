package aggregate

import (
	"sort"

	"github.com/paveg/salarydash/internal/dataset"
)

// DefaultTopN is the number of groups kept by the role ranking.
const DefaultTopN = 10

// Group is one grouped reduction: a key with the mean of the measure and the
// number of records that produced it.
type Group struct {
	Key   string  `json:"key"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// MeanBy groups v by key and averages value within each group. Groups are
// returned sorted by key ascending. An empty view yields an empty slice.
func MeanBy(v dataset.View, key func(dataset.Record) string, value func(dataset.Record) float64) []Group {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		k := key(r)
		sums[k] += value(r)
		counts[k]++
	}

	groups := make([]Group, 0, len(counts))
	for k, c := range counts {
		groups = append(groups, Group{Key: k, Mean: sums[k] / float64(c), Count: c})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// TopNByMean keeps the n groups with the largest mean and returns them in
// ascending order of mean. Groups tied at the cutoff are kept in input
// order, so for MeanBy output the alphabetically earlier key wins. n larger
// than len(groups) keeps every group; n <= 0 keeps none.
func TopNByMean(groups []Group, n int) []Group {
	if n <= 0 {
		return []Group{}
	}

	ranked := make([]Group, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Mean > ranked[j].Mean })
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Mean < ranked[j].Mean })
	return ranked
}

// CountBy counts records per key, largest count first. Equal counts keep
// the order in which keys were first encountered. Mean is left zero.
func CountBy(v dataset.View, key func(dataset.Record) string) []Group {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := 0; i < v.Len(); i++ {
		k := key(v.At(i))
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	groups := make([]Group, len(order))
	for i, k := range order {
		groups[i] = Group{Key: k, Count: counts[k]}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	return groups
}

// MeanSalaryByRole averages salary per role.
func MeanSalaryByRole(v dataset.View) []Group {
	return MeanBy(v, byRole, salary)
}

// MeanSalaryByCountry restricts v to records whose role equals role and
// averages salary per country of residence. No matching record yields an
// empty slice.
func MeanSalaryByCountry(v dataset.View, role string) []Group {
	sub := v.Where(func(r dataset.Record) bool { return r.Role == role })
	return MeanBy(sub, byResidence, salary)
}

// RemoteCounts counts records per remote-work category.
func RemoteCounts(v dataset.View) []Group {
	return CountBy(v, func(r dataset.Record) string { return r.Remote })
}

func byRole(r dataset.Record) string      { return r.Role }
func byResidence(r dataset.Record) string { return r.ResidenceISO3 }
func salary(r dataset.Record) float64     { return r.SalaryUSD }

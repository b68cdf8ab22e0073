package dataset

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Distinct returns every unique value of get over v, ascending.
func Distinct[V constraints.Ordered](v View, get func(Record) V) []V {
	seen := make(map[V]struct{})
	out := make([]V, 0)
	for i := 0; i < v.Len(); i++ {
		val := get(v.At(i))
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	slices.Sort(out)
	return out
}

// Options lists the values a user may choose for each filterable column.
type Options struct {
	Years        []int    `json:"year"`
	Seniorities  []string `json:"seniority"`
	Contracts    []string `json:"contract"`
	CompanySizes []string `json:"company_size"`
}

// OptionsOf derives filter options from the full dataset. Options never
// come from a filtered view, so filters stay independent.
func OptionsOf(d *Dataset) Options {
	all := d.All()
	return Options{
		Years:        Distinct(all, func(r Record) int { return r.Year }),
		Seniorities:  Distinct(all, func(r Record) string { return r.Seniority }),
		Contracts:    Distinct(all, func(r Record) string { return r.Contract }),
		CompanySizes: Distinct(all, func(r Record) string { return r.CompanySize }),
	}
}

// DefaultSelection selects every option, which is equivalent to the zero
// Selection.
func (o Options) DefaultSelection() Selection {
	return Selection{
		Year:        Allow(o.Years...),
		Seniority:   Allow(o.Seniorities...),
		Contract:    Allow(o.Contracts...),
		CompanySize: Allow(o.CompanySizes...),
	}
}

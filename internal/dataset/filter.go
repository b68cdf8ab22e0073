package dataset

import (
	"encoding/json"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/paveg/salarydash/internal/validation"
	"golang.org/x/exp/constraints"
)

// Filter restricts one column to a set of allowed values.
// The zero Filter is unconstrained; Allow with no values excludes everything.
type Filter[V constraints.Ordered] struct {
	allowed map[V]struct{}
}

// Allow returns a Filter admitting exactly values.
func Allow[V constraints.Ordered](values ...V) Filter[V] {
	allowed := make(map[V]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return Filter[V]{allowed: allowed}
}

// Active reports whether the filter constrains its column.
func (f Filter[V]) Active() bool {
	return f.allowed != nil
}

// Allows reports whether v passes the filter.
func (f Filter[V]) Allows(v V) bool {
	if f.allowed == nil {
		return true
	}
	_, ok := f.allowed[v]
	return ok
}

// Values returns the allowed values in ascending order, or nil when the
// filter is unconstrained.
func (f Filter[V]) Values() []V {
	if f.allowed == nil {
		return nil
	}
	out := make([]V, 0, len(f.allowed))
	for v := range f.allowed {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Selection holds the current filter per filterable column.
type Selection struct {
	Year        Filter[int]
	Seniority   Filter[string]
	Contract    Filter[string]
	CompanySize Filter[string]
}

// Matches reports whether r satisfies every constrained column.
func (s Selection) Matches(r Record) bool {
	return s.Year.Allows(r.Year) &&
		s.Seniority.Allows(r.Seniority) &&
		s.Contract.Allows(r.Contract) &&
		s.CompanySize.Allows(r.CompanySize)
}

// Apply returns the records of v that satisfy sel: AND across columns,
// OR within a column's allowed set.
func Apply(v View, sel Selection) View {
	return v.Where(sel.Matches)
}

// Wire returns the selection as column name -> allowed values, omitting
// unconstrained columns.
func (s Selection) Wire() map[string][]string {
	out := make(map[string][]string)
	if s.Year.Active() {
		years := s.Year.Values()
		vals := make([]string, len(years))
		for i, y := range years {
			vals[i] = strconv.Itoa(y)
		}
		out[string(ColumnYear)] = vals
	}
	put := func(c Column, f Filter[string]) {
		if f.Active() {
			out[string(c)] = f.Values()
		}
	}
	put(ColumnSeniority, s.Seniority)
	put(ColumnContract, s.Contract)
	put(ColumnCompanySize, s.CompanySize)
	return out
}

// Canonical returns a deterministic text form of the selection, suitable
// as a cache key.
func (s Selection) Canonical() string {
	wire := s.Wire()
	var sb strings.Builder
	for _, c := range FilterColumns {
		vals, ok := wire[string(c)]
		if !ok {
			continue
		}
		sb.WriteString(string(c))
		sb.WriteByte('=')
		sb.WriteString(strings.Join(vals, "\x1f"))
		sb.WriteByte(';')
	}
	return sb.String()
}

// MarshalJSON encodes the selection in wire form.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Wire())
}

// ParseSelection builds a Selection from wire form. A column whose values
// are all empty strings becomes an empty allowed set.
func ParseSelection(wire map[string][]string) (Selection, error) {
	const op = "ParseSelection"

	keys := make([]string, 0, len(wire))
	for k := range wire {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := validation.ValidateKeys(op, ColumnNames(FilterColumns), keys...); err != nil {
		return Selection{}, err
	}

	var sel Selection
	for _, k := range keys {
		vals := nonEmpty(wire[k])
		switch Column(k) {
		case ColumnYear:
			if err := validation.ValidateIntegers(op, k, vals...); err != nil {
				return Selection{}, err
			}
			years := make([]int, len(vals))
			for i, v := range vals {
				years[i], _ = strconv.Atoi(strings.TrimSpace(v))
			}
			sel.Year = Allow(years...)
		case ColumnSeniority:
			sel.Seniority = Allow(vals...)
		case ColumnContract:
			sel.Contract = Allow(vals...)
		case ColumnCompanySize:
			sel.CompanySize = Allow(vals...)
		}
	}
	return sel, nil
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

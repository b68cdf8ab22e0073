package dataset

import "github.com/paveg/salarydash/internal/validation"

// Header maps the column positions of a tabular source onto record columns.
// Unrecognised source columns are ignored; when a column appears twice the
// first occurrence wins.
type Header struct {
	index map[Column]int
}

// NewHeader resolves source column names with ParseColumn.
func NewHeader(names []string) Header {
	h := Header{index: make(map[Column]int, len(Columns))}
	for i, name := range names {
		c, ok := ParseColumn(name)
		if !ok {
			continue
		}
		if _, seen := h.index[c]; !seen {
			h.index[c] = i
		}
	}
	return h
}

// Index returns the source position of c.
func (h Header) Index(c Column) (int, bool) {
	i, ok := h.index[c]
	return i, ok
}

// HasColumn reports whether the source provides the named column.
func (h Header) HasColumn(name string) bool {
	c, ok := ParseColumn(name)
	if !ok {
		return false
	}
	_, ok = h.index[c]
	return ok
}

// Columns returns the wire names of the recognised columns in canonical order.
func (h Header) Columns() []string {
	out := make([]string, 0, len(h.index))
	for _, c := range Columns {
		if _, ok := h.index[c]; ok {
			out = append(out, string(c))
		}
	}
	return out
}

// Require fails with a column-not-found error naming the first record
// column the source lacks.
func (h Header) Require(op string) error {
	return validation.ValidateColumns(h, op, ColumnNames(Columns)...)
}

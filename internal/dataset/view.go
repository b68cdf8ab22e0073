package dataset

// View is a read-only subset of a Dataset, kept as an ordered list of
// record indices. The zero View is empty.
type View struct {
	ds  *Dataset
	idx []int
}

// Len returns the number of records in the view.
func (v View) Len() int {
	return len(v.idx)
}

// IsEmpty reports whether the view has no records.
func (v View) IsEmpty() bool {
	return len(v.idx) == 0
}

// At returns the i-th record of the view.
func (v View) At(i int) Record {
	return v.ds.records[v.idx[i]]
}

// Records copies the view's records into a new slice.
func (v View) Records() []Record {
	out := make([]Record, len(v.idx))
	for i, j := range v.idx {
		out[i] = v.ds.records[j]
	}
	return out
}

// Where returns the records of v for which keep returns true, in order.
func (v View) Where(keep func(Record) bool) View {
	idx := make([]int, 0, len(v.idx))
	for _, j := range v.idx {
		if keep(v.ds.records[j]) {
			idx = append(idx, j)
		}
	}
	return View{ds: v.ds, idx: idx}
}

// Head returns at most n leading records of v.
func (v View) Head(n int) View {
	if n < 0 || n >= len(v.idx) {
		return v
	}
	return View{ds: v.ds, idx: v.idx[:n]}
}

package dataset

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Dataset is an immutable, ordered collection of records.
type Dataset struct {
	records     []Record
	fingerprint uint64
}

// New creates a Dataset from records. The slice is copied, so later changes
// by the caller are not observed.
func New(records []Record) *Dataset {
	owned := make([]Record, len(records))
	copy(owned, records)
	return &Dataset{
		records:     owned,
		fingerprint: fingerprint(owned),
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the record at index i.
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// All returns a view over every record.
func (d *Dataset) All() View {
	idx := make([]int, len(d.records))
	for i := range idx {
		idx[i] = i
	}
	return View{ds: d, idx: idx}
}

// Fingerprint returns a content hash of the dataset, stable across loads of
// the same snapshot.
func (d *Dataset) Fingerprint() uint64 {
	return d.fingerprint
}

func fingerprint(records []Record) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, r := range records {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(r.Year))) //nolint:gosec // sign is irrelevant for hashing
		_, _ = h.Write(buf[:])
		for _, s := range []string{r.Seniority, r.Contract, r.CompanySize, r.Role, r.Remote, r.ResidenceISO3} {
			_, _ = h.WriteString(s)
			_, _ = h.Write([]byte{0})
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(r.SalaryUSD))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

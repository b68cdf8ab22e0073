package dataset_test

import (
	"encoding/json"
	"testing"

	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetIsImmutable(t *testing.T) {
	records := testutil.SampleRecords()
	ds := dataset.New(records)

	records[0].Role = "Mutated"
	assert.Equal(t, "Data Scientist", ds.At(0).Role)

	out := ds.All().Records()
	out[0].Role = "Mutated"
	assert.Equal(t, "Data Scientist", ds.At(0).Role)
}

func TestDatasetFingerprint(t *testing.T) {
	a := testutil.SampleDataset()
	b := testutil.SampleDataset()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	records := testutil.SampleRecords()
	records[3].SalaryUSD++
	c := dataset.New(records)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in   string
		want dataset.Column
		ok   bool
	}{
		{"year", dataset.ColumnYear, true},
		{"ano", dataset.ColumnYear, true},
		{" Cargo ", dataset.ColumnRole, true},
		{"usd", dataset.ColumnSalary, true},
		{"residencia_iso3", dataset.ColumnResidence, true},
		{"moeda", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := dataset.ParseColumn(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistinctAndOptions(t *testing.T) {
	ds := testutil.SampleDataset()
	opts := dataset.OptionsOf(ds)

	assert.Equal(t, []int{2023, 2024}, opts.Years)
	assert.Equal(t, []string{"junior", "pleno", "senior"}, opts.Seniorities)
	assert.Equal(t, []string{"freelancer", "integral"}, opts.Contracts)
	assert.Equal(t, []string{"grande", "media", "pequena"}, opts.CompanySizes)

	t.Run("options ignore the current filter", func(t *testing.T) {
		filtered := dataset.Apply(ds.All(), dataset.Selection{Year: dataset.Allow(2023)})
		require.Equal(t, 4, filtered.Len())
		// Derived from the dataset, not the view.
		assert.Equal(t, opts, dataset.OptionsOf(ds))
	})

	t.Run("distinct over empty view", func(t *testing.T) {
		got := dataset.Distinct(dataset.View{}, func(r dataset.Record) string { return r.Role })
		assert.Empty(t, got)
	})
}

func TestApply(t *testing.T) {
	ds := testutil.SampleDataset()
	all := ds.All()

	tests := []struct {
		name string
		sel  dataset.Selection
		want int
	}{
		{name: "zero selection keeps all", sel: dataset.Selection{}, want: 10},
		{name: "single year", sel: dataset.Selection{Year: dataset.Allow(2023)}, want: 4},
		{name: "or within column", sel: dataset.Selection{Year: dataset.Allow(2023, 2024)}, want: 10},
		{
			name: "and across columns",
			sel:  dataset.Selection{Year: dataset.Allow(2024), Contract: dataset.Allow("freelancer")},
			want: 2,
		},
		{name: "unknown value matches nothing", sel: dataset.Selection{Seniority: dataset.Allow("executivo")}, want: 0},
		{name: "empty set excludes everything", sel: dataset.Selection{CompanySize: dataset.Allow[string]()}, want: 0},
		{name: "full option set", sel: dataset.OptionsOf(ds).DefaultSelection(), want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dataset.Apply(all, tt.sel)
			assert.Equal(t, tt.want, got.Len())
		})
	}
}

func TestApplySoundAndComplete(t *testing.T) {
	ds := testutil.SampleDataset()
	sel := dataset.Selection{
		Seniority:   dataset.Allow("senior", "pleno"),
		CompanySize: dataset.Allow("grande"),
	}

	view := dataset.Apply(ds.All(), sel)
	require.LessOrEqual(t, view.Len(), ds.Len())

	kept := make(map[dataset.Record]int)
	for _, r := range view.Records() {
		assert.True(t, sel.Matches(r), "kept record violates selection: %+v", r)
		kept[r]++
	}
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		if kept[r] == 0 {
			assert.False(t, sel.Matches(r), "excluded record satisfies selection: %+v", r)
		}
	}
}

func TestApplyIdempotent(t *testing.T) {
	ds := testutil.SampleDataset()
	sel := dataset.Selection{Year: dataset.Allow(2024), Seniority: dataset.Allow("junior", "senior")}

	first := dataset.Apply(ds.All(), sel)
	second := dataset.Apply(ds.All(), sel)
	assert.Equal(t, first.Records(), second.Records())

	// Re-applying to the filtered view changes nothing.
	again := dataset.Apply(first, sel)
	assert.Equal(t, first.Records(), again.Records())
}

func TestParseSelection(t *testing.T) {
	t.Run("valid wire form", func(t *testing.T) {
		sel, err := dataset.ParseSelection(map[string][]string{
			"year":      {"2024", " 2023"},
			"seniority": {"senior"},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{2023, 2024}, sel.Year.Values())
		assert.Equal(t, []string{"senior"}, sel.Seniority.Values())
		assert.False(t, sel.Contract.Active())
	})

	t.Run("present but empty means empty set", func(t *testing.T) {
		sel, err := dataset.ParseSelection(map[string][]string{"contract": {""}})
		require.NoError(t, err)
		assert.True(t, sel.Contract.Active())
		assert.Empty(t, sel.Contract.Values())
		assert.Equal(t, 0, dataset.Apply(testutil.SampleDataset().All(), sel).Len())
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := dataset.ParseSelection(map[string][]string{"role": {"Data Scientist"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown column "role"`)
	})

	t.Run("non integer year", func(t *testing.T) {
		_, err := dataset.ParseSelection(map[string][]string{"year": {"last"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not an integer")
	})
}

func TestSelectionWireAndCanonical(t *testing.T) {
	sel := dataset.Selection{
		Year:      dataset.Allow(2024, 2023),
		Seniority: dataset.Allow("senior"),
		Contract:  dataset.Allow[string](),
	}

	data, err := json.Marshal(sel)
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":["2023","2024"],"seniority":["senior"],"contract":[]}`, string(data))

	same := dataset.Selection{
		Seniority: dataset.Allow("senior"),
		Year:      dataset.Allow(2023, 2024),
		Contract:  dataset.Allow[string](),
	}
	assert.Equal(t, sel.Canonical(), same.Canonical())
	assert.NotEqual(t, sel.Canonical(), dataset.Selection{}.Canonical())
	assert.Empty(t, dataset.Selection{}.Canonical())
}

func TestViewHelpers(t *testing.T) {
	ds := testutil.SampleDataset()
	all := ds.All()

	assert.Equal(t, 3, all.Head(3).Len())
	assert.Equal(t, 10, all.Head(-1).Len())
	assert.Equal(t, 10, all.Head(50).Len())
	assert.True(t, dataset.View{}.IsEmpty())

	ds2 := all.Where(func(r dataset.Record) bool { return r.ResidenceISO3 == "DEU" })
	assert.Equal(t, 2, ds2.Len())
	assert.Equal(t, "70000", ds2.At(0).Value(dataset.ColumnSalary))
	assert.Equal(t, []string{"2023", "pleno", "integral", "media", "Data Engineer", "presencial", "DEU", "70000"}, ds2.At(0).Strings())
}

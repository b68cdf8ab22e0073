package dashboard_test

import (
	"encoding/json"
	"testing"

	"github.com/paveg/salarydash/internal/config"
	"github.com/paveg/salarydash/internal/dashboard"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/monitoring"
	"github.com/paveg/salarydash/internal/parallel"
	"github.com/paveg/salarydash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T, collector *monitoring.MetricsCollector) *dashboard.Builder {
	t.Helper()
	return dashboard.NewBuilder(config.NewConfig(), collector, testutil.NewTestLogger(t))
}

func TestBuildDefaultSelection(t *testing.T) {
	ds := testutil.SampleDataset()
	d := newBuilder(t, nil).Build(ds, dataset.Selection{})

	assert.False(t, d.Empty)
	assert.Equal(t, 10, d.Summary.Count)
	assert.InDelta(t, 94000.0, d.Summary.MeanSalary, 1e-9)
	assert.Equal(t, []int{2023, 2024}, d.Options.Years)

	ids := make([]string, len(d.Charts))
	for i, c := range d.Charts {
		ids[i] = c.ID
		assert.False(t, c.Empty, c.ID)
	}
	assert.Equal(t, []string{
		"top_roles",
		"salary_histogram",
		"remote_share",
		"country_data_scientist",
		"country_data_engineer",
		"country_data_analyst",
	}, ids)

	top, ok := d.Chart("top_roles")
	require.True(t, ok)
	assert.Equal(t, dashboard.KindBar, top.Kind)
	assert.Equal(t, dashboard.OrientationHorizontal, top.Orientation)
	assert.Equal(t, "Top 10 roles by mean salary", top.Title)
	require.Len(t, top.Points, 4)
	assert.Equal(t, "Data Analyst", top.Points[0].Label)
	assert.Equal(t, "ML Engineer", top.Points[3].Label)

	hist, _ := d.Chart("salary_histogram")
	assert.Len(t, hist.Bins, 30)

	pie, _ := d.Chart("remote_share")
	assert.InDelta(t, dashboard.DefaultHole, pie.Hole, 0)
	require.Len(t, pie.Points, 3)
	assert.Equal(t, "remoto", pie.Points[0].Label)
	assert.InDelta(t, 0.5, pie.Points[0].Share, 1e-9)

	ds1, _ := d.Chart("country_data_scientist")
	assert.Equal(t, dashboard.DefaultColorScale, ds1.ColorScale)
	assert.Equal(t, []dashboard.Point{
		{Label: "BRA", Value: 40000, Count: 1},
		{Label: "DEU", Value: 100000, Count: 1},
		{Label: "USA", Value: 130000, Count: 2},
	}, ds1.Points)
}

func TestBuildEmptySelection(t *testing.T) {
	ds := testutil.SampleDataset()
	d := newBuilder(t, nil).Build(ds, dataset.Selection{Contract: dataset.Allow[string]()})

	assert.True(t, d.Empty)
	assert.Equal(t, dashboard.NoDataMessage, d.Message)
	assert.Zero(t, d.Summary.Count)
	assert.Empty(t, d.Summary.TopRole)
	assert.Equal(t, []string{"freelancer", "integral"}, d.Options.Contracts, "options ignore the selection")

	require.Len(t, d.Charts, 6)
	for _, c := range d.Charts {
		assert.True(t, c.Empty, c.ID)
		assert.Equal(t, dashboard.NoDataMessage, c.Message, c.ID)
	}
}

func TestBuildPerPanelEmptiness(t *testing.T) {
	// 2024 freelancers are a Data Analyst and a Data Engineer, both in BRA.
	sel := dataset.Selection{Year: dataset.Allow(2024), Contract: dataset.Allow("freelancer")}
	d := newBuilder(t, nil).Build(testutil.SampleDataset(), sel)

	assert.False(t, d.Empty)
	assert.Equal(t, 2, d.Summary.Count)

	scientist, _ := d.Chart("country_data_scientist")
	assert.True(t, scientist.Empty)

	engineer, _ := d.Chart("country_data_engineer")
	assert.False(t, engineer.Empty)
	assert.Equal(t, []dashboard.Point{{Label: "BRA", Value: 95000, Count: 1}}, engineer.Points)
}

func TestBuilderSettings(t *testing.T) {
	b := &dashboard.Builder{
		TopN:  2,
		Bins:  5,
		Roles: []config.RoleTarget{{Role: "ML Engineer", Title: "ML pay by country"}},
	}
	d := b.Build(testutil.SampleDataset(), dataset.Selection{})

	require.Len(t, d.Charts, 4)
	top, _ := d.Chart("top_roles")
	require.Len(t, top.Points, 2)
	assert.Equal(t, "Data Scientist", top.Points[0].Label)
	assert.Equal(t, "ML Engineer", top.Points[1].Label)

	hist, _ := d.Chart("salary_histogram")
	assert.Len(t, hist.Bins, 5)

	ml, ok := d.Chart("country_ml_engineer")
	require.True(t, ok)
	assert.Equal(t, "ML pay by country", ml.Title)
}

func TestBuilderSettingsKey(t *testing.T) {
	base := dashboard.NewBuilder(config.NewConfig(), nil, nil)
	assert.Equal(t, (&dashboard.Builder{}).Settings(), base.Settings(), "zero builder uses the defaults")

	workers := dashboard.NewBuilder(config.NewConfig(), nil, nil)
	workers.Workers = 4
	assert.Equal(t, base.Settings(), workers.Settings(), "worker count does not change output")

	for name, mutate := range map[string]func(*dashboard.Builder){
		"top n": func(b *dashboard.Builder) { b.TopN = 3 },
		"bins":  func(b *dashboard.Builder) { b.Bins = 12 },
		"roles": func(b *dashboard.Builder) { b.Roles = []config.RoleTarget{{Role: "ML Engineer", Title: "ML"}} },
		"title": func(b *dashboard.Builder) {
			b.Roles = config.DefaultRoles()
			b.Roles[0].Title = "Scientists"
		},
	} {
		t.Run(name, func(t *testing.T) {
			b := dashboard.NewBuilder(config.NewConfig(), nil, nil)
			mutate(b)
			assert.NotEqual(t, base.Settings(), b.Settings())
		})
	}
}

func TestBuildRecordsStages(t *testing.T) {
	collector := monitoring.NewMetricsCollector(true)
	newBuilder(t, collector).Build(testutil.SampleDataset(), dataset.Selection{})

	summary := collector.GetSummary()
	assert.Equal(t, 1, summary.OperationCounts["filter"])
	assert.Equal(t, 1, summary.OperationCounts["histogram"])
	assert.Equal(t, 1, summary.OperationCounts["country:Data Analyst"])
	assert.Equal(t, 9, summary.TotalOperations)
}

func TestDashboardJSON(t *testing.T) {
	d := newBuilder(t, nil).Build(testutil.SampleDataset(), dataset.Selection{Year: dataset.Allow(2023)})

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, map[string]interface{}{"year": []interface{}{"2023"}}, decoded["selection"])
	assert.Contains(t, decoded, "summary")
	assert.Len(t, decoded["charts"], 6)
}

func TestBuildLargeViewFansOut(t *testing.T) {
	var records []dataset.Record
	for len(records) < parallel.Threshold {
		records = append(records, testutil.SampleRecords()...)
	}
	ds := dataset.New(records)

	sequential := &dashboard.Builder{Workers: 1}
	collector := monitoring.NewMetricsCollector(true)
	fanned := &dashboard.Builder{Workers: 3, Collector: collector}

	want := sequential.Build(ds, dataset.Selection{})
	got := fanned.Build(ds, dataset.Selection{})

	assert.Equal(t, want.Charts, got.Charts)
	assert.Equal(t, 1, collector.GetSummary().OperationCounts["country:Data Engineer"])

	engineer, ok := got.Chart("country_data_engineer")
	require.True(t, ok)
	require.Len(t, engineer.Points, 3)
	assert.Equal(t, "BRA", engineer.Points[0].Label)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$94,000", dashboard.Money(94000))
	assert.Equal(t, "$1,235", dashboard.Money(1234.5))
	assert.Equal(t, "$0", dashboard.Money(0))
}

// Package salarydash explores a snapshot of data industry salaries: distinct
// filter options, conjunctive filtering, summary metrics and chart-ready
// aggregates over the filtered records.
// This package is the sole public API for the library.
//
// A typical session loads the dataset once and builds dashboards for as many
// selections as needed:
//
//	ds, err := salarydash.Load(ctx, "salaries.csv")
//	if err != nil {
//		return err
//	}
//	sel := salarydash.Selection{Year: salarydash.Allow(2024)}
//	d := ds.Dashboard(sel)
//	fmt.Println(d.Summary.MeanSalary)
package salarydash

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/salarydash/internal/aggregate"
	"github.com/paveg/salarydash/internal/config"
	"github.com/paveg/salarydash/internal/dashboard"
	"github.com/paveg/salarydash/internal/dataset"
	sio "github.com/paveg/salarydash/internal/io"
	"github.com/paveg/salarydash/internal/series"
	"golang.org/x/exp/constraints"
)

// Data types shared with the internal packages.
type (
	// Record is one salary observation.
	Record = dataset.Record
	// Selection holds the filter for each filterable column. The zero value
	// selects everything.
	Selection = dataset.Selection
	// Filter is the allowed set for one column.
	Filter[V constraints.Ordered] = dataset.Filter[V]
	// Options lists the distinct values of each filterable column.
	Options = dataset.Options
	// Summary holds the general metrics of a filtered view.
	Summary = aggregate.Summary
	// Group is one key of a grouped aggregation.
	Group = aggregate.Group
	// Bin is one histogram bucket.
	Bin = aggregate.Bin
	// Dashboard is the full set of metrics and charts for a selection.
	Dashboard = dashboard.Dashboard
	// Chart is a declarative chart payload.
	Chart = dashboard.Chart
	// RoleTarget names a role that gets a per-country chart.
	RoleTarget = config.RoleTarget
	// Format is an export format.
	Format = sio.Format
)

// Export formats.
const (
	FormatCSV       = sio.FormatCSV
	FormatJSON      = sio.FormatJSON
	FormatJSONLines = sio.FormatJSONLines
	FormatParquet   = sio.FormatParquet
)

// DefaultDataSource is the published snapshot of the salary dataset.
const DefaultDataSource = config.DefaultDataSource

// Allow returns a filter admitting exactly values. With no values it admits
// nothing.
func Allow[V constraints.Ordered](values ...V) Filter[V] {
	return dataset.Allow(values...)
}

// ParseSelection builds a Selection from column name -> values, the form
// used by query strings. A column whose values are all empty selects nothing.
func ParseSelection(wire map[string][]string) (Selection, error) {
	return dataset.ParseSelection(wire)
}

// ParseFormat resolves an export format name. The empty string means CSV.
func ParseFormat(name string) (Format, error) {
	return sio.ParseFormat(name)
}

// Dataset is the public type for a loaded salary dataset.
// It wraps the internal dataset to hide implementation details.
// A Dataset is immutable and safe for concurrent use.
type Dataset struct {
	ds *dataset.Dataset
}

// NewDataset creates a Dataset from records. The slice is copied.
func NewDataset(records []Record) *Dataset {
	return &Dataset{ds: dataset.New(records)}
}

// LoadOption configures Load.
type LoadOption func(*sio.SourceOptions)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoadOption {
	return func(o *sio.SourceOptions) { o.Client = c }
}

// WithTimeout bounds the whole fetch and parse.
func WithTimeout(d time.Duration) LoadOption {
	return func(o *sio.SourceOptions) { o.Timeout = d }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *sio.SourceOptions) { o.Logger = l }
}

// WithProgress wraps the source stream, e.g. to drive a progress bar.
func WithProgress(wrap func(r io.Reader, size int64) io.Reader) LoadOption {
	return func(o *sio.SourceOptions) { o.Progress = wrap }
}

// Load reads the dataset at location: an http(s) URL, or a local path.
// Paths ending in .parquet or .pq are read as Parquet, anything else as CSV.
func Load(ctx context.Context, location string, opts ...LoadOption) (*Dataset, error) {
	var o sio.SourceOptions
	for _, opt := range opts {
		opt(&o)
	}
	ds, err := sio.Load(ctx, location, o)
	if err != nil {
		return nil, err
	}
	return &Dataset{ds: ds}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return d.ds.Len()
}

// Fingerprint returns a content hash of the dataset.
func (d *Dataset) Fingerprint() uint64 {
	return d.ds.Fingerprint()
}

// Options returns the distinct values of each filterable column, always
// taken from the full dataset.
func (d *Dataset) Options() Options {
	return dataset.OptionsOf(d.ds)
}

// Filter returns the records matching sel, in dataset order.
func (d *Dataset) Filter(sel Selection) []Record {
	return d.view(sel).Records()
}

// Summary returns the general metrics of the records matching sel.
func (d *Dataset) Summary(sel Selection) Summary {
	return aggregate.Summarize(d.view(sel))
}

// TopRoles returns the n roles with the highest mean salary among the
// records matching sel, in ascending order of mean.
func (d *Dataset) TopRoles(sel Selection, n int) []Group {
	return aggregate.TopNByMean(aggregate.MeanSalaryByRole(d.view(sel)), n)
}

// SalaryHistogram buckets the salaries of the records matching sel into
// equal-width bins. bins <= 0 means 30.
func (d *Dataset) SalaryHistogram(sel Selection, bins int) []Bin {
	return aggregate.SalaryHistogram(d.view(sel), bins)
}

// RemoteCounts counts the records matching sel per work arrangement, most
// frequent first.
func (d *Dataset) RemoteCounts(sel Selection) []Group {
	return aggregate.RemoteCounts(d.view(sel))
}

// MeanSalaryByCountry returns the mean salary per residence country of the
// records matching sel whose role is role.
func (d *Dataset) MeanSalaryByCountry(sel Selection, role string) []Group {
	return aggregate.MeanSalaryByCountry(d.view(sel), role)
}

// DashboardOption configures Dashboard.
type DashboardOption func(*dashboard.Builder)

// WithTopN sets how many roles the top roles chart shows.
func WithTopN(n int) DashboardOption {
	return func(b *dashboard.Builder) { b.TopN = n }
}

// WithHistogramBins sets the number of salary histogram bins.
func WithHistogramBins(n int) DashboardOption {
	return func(b *dashboard.Builder) { b.Bins = n }
}

// WithRoles sets the roles that get a per-country chart. Blank titles get
// the default "Mean <role> salary by country".
func WithRoles(roles ...RoleTarget) DashboardOption {
	return func(b *dashboard.Builder) {
		b.Roles = config.Config{Roles: slices.Clone(roles)}.WithDefaults().Roles
	}
}

// Dashboard builds the metrics and every chart for sel.
func (d *Dataset) Dashboard(sel Selection, opts ...DashboardOption) *Dashboard {
	b := dashboard.NewBuilder(config.NewConfig(), nil, nil)
	for _, opt := range opts {
		opt(b)
	}
	return b.Build(d.ds, sel)
}

// Export writes the records matching sel to w in format f.
func (d *Dataset) Export(w io.Writer, f Format, sel Selection) error {
	return sio.NewWriter(f, w).Write(d.view(sel))
}

// Table returns the records matching sel as an Arrow table. The caller must
// call Release on the result.
func (d *Dataset) Table(sel Selection, mem memory.Allocator) arrow.Table {
	return series.Table(d.view(sel), mem)
}

func (d *Dataset) view(sel Selection) dataset.View {
	return dataset.Apply(d.ds.All(), sel)
}

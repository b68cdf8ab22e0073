// Package dashboard assembles the full dashboard for one filter selection:
// summary metrics plus every chart panel, each carrying its own empty state.
package dashboard

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/paveg/salarydash/internal/aggregate"
	"github.com/paveg/salarydash/internal/config"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/monitoring"
	"github.com/paveg/salarydash/internal/parallel"
)

// Dashboard is the result of one Build.
type Dashboard struct {
	Selection dataset.Selection `json:"selection"`
	Options   dataset.Options   `json:"options"`
	Summary   aggregate.Summary `json:"summary"`
	// Empty is true when the selection matches no records.
	Empty   bool    `json:"empty"`
	Message string  `json:"message,omitempty"`
	Charts  []Chart `json:"charts"`
}

// Chart returns the panel with the given id.
func (d *Dashboard) Chart(id string) (Chart, bool) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}

// Builder computes dashboards. The zero Builder uses the default top-N,
// bin count and roles.
type Builder struct {
	TopN  int
	Bins  int
	Roles []config.RoleTarget
	// Workers bounds the goroutines computing per-country panels once the
	// view reaches parallel.Threshold records. Zero means one per CPU and
	// one disables fan-out.
	Workers   int
	Collector *monitoring.MetricsCollector
	Logger    *slog.Logger
}

// NewBuilder creates a Builder from configuration.
func NewBuilder(cfg config.Config, collector *monitoring.MetricsCollector, logger *slog.Logger) *Builder {
	return &Builder{
		TopN:      cfg.TopN,
		Bins:      cfg.HistogramBins,
		Roles:     cfg.Roles,
		Workers:   cfg.Workers,
		Collector: collector,
		Logger:    logger,
	}
}

func (b *Builder) topN() int {
	if b.TopN <= 0 {
		return aggregate.DefaultTopN
	}
	return b.TopN
}

func (b *Builder) bins() int {
	if b.Bins <= 0 {
		return aggregate.DefaultBins
	}
	return b.Bins
}

// Settings describes the options that shape Build output. Builders with
// equal Settings produce equal dashboards for the same dataset and selection.
func (b *Builder) Settings() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "top_n=%d;bins=%d", b.topN(), b.bins())
	for _, r := range b.roles() {
		fmt.Fprintf(&sb, ";role=%q:%q", r.Role, r.Title)
	}
	return sb.String()
}

func (b *Builder) roles() []config.RoleTarget {
	if len(b.Roles) == 0 {
		return config.DefaultRoles()
	}
	return b.Roles
}

// stage runs fn as a recorded pipeline stage.
func (b *Builder) stage(name string, rows int, fn func()) {
	_ = b.Collector.RecordOperation(name, rows, func() error {
		fn()
		return nil
	})
}

// Build filters ds by sel and computes every panel from the result. Options
// always come from the unfiltered dataset. Nothing is cached between calls.
func (b *Builder) Build(ds *dataset.Dataset, sel dataset.Selection) *Dashboard {
	d := &Dashboard{Selection: sel}

	b.stage("options", ds.Len(), func() { d.Options = dataset.OptionsOf(ds) })

	var view dataset.View
	b.stage("filter", ds.Len(), func() { view = dataset.Apply(ds.All(), sel) })

	b.stage("summary", view.Len(), func() { d.Summary = aggregate.Summarize(view) })
	if view.IsEmpty() {
		d.Empty = true
		d.Message = NoDataMessage
	}

	b.stage("top_roles", view.Len(), func() { d.Charts = append(d.Charts, b.topRoles(view)) })
	b.stage("histogram", view.Len(), func() { d.Charts = append(d.Charts, b.histogram(view)) })
	b.stage("remote", view.Len(), func() { d.Charts = append(d.Charts, remoteShare(view)) })
	d.Charts = append(d.Charts, b.countries(view)...)

	if b.Logger != nil {
		b.Logger.Debug("dashboard built",
			"selection", sel.Canonical(),
			"records", view.Len(),
			"charts", len(d.Charts))
	}
	return d
}

func (b *Builder) topRoles(v dataset.View) Chart {
	c := Chart{
		ID:          "top_roles",
		Kind:        KindBar,
		Title:       fmt.Sprintf("Top %d roles by mean salary", b.topN()),
		XLabel:      "Mean annual salary (USD)",
		Orientation: OrientationHorizontal,
		Points:      groupPoints(aggregate.TopNByMean(aggregate.MeanSalaryByRole(v), b.topN())),
	}
	c.markEmpty()
	return c
}

func (b *Builder) histogram(v dataset.View) Chart {
	c := Chart{
		ID:     "salary_histogram",
		Kind:   KindHistogram,
		Title:  "Annual salary distribution",
		XLabel: "Salary range (USD)",
		Points: []Point{},
		Bins:   aggregate.SalaryHistogram(v, b.bins()),
	}
	c.markEmpty()
	return c
}

func remoteShare(v dataset.View) Chart {
	c := Chart{
		ID:     "remote_share",
		Kind:   KindPie,
		Title:  "Share of work arrangements",
		Hole:   DefaultHole,
		Points: sharePoints(aggregate.RemoteCounts(v)),
	}
	c.markEmpty()
	return c
}

// countries computes one choropleth per configured role, fanning out over a
// worker pool for large views.
func (b *Builder) countries(v dataset.View) []Chart {
	roles := b.roles()
	one := func(_ int, role config.RoleTarget) Chart {
		var c Chart
		b.stage("country:"+role.Role, v.Len(), func() { c = byCountry(v, role) })
		return c
	}

	if b.Workers == 1 || len(roles) < 2 || v.Len() < parallel.Threshold {
		charts := make([]Chart, len(roles))
		for i, role := range roles {
			charts[i] = one(i, role)
		}
		return charts
	}

	pool := parallel.NewWorkerPool(b.Workers)
	defer pool.Close()
	return parallel.Map(pool, roles, one)
}

func byCountry(v dataset.View, role config.RoleTarget) Chart {
	c := Chart{
		ID:         "country_" + slug(role.Role),
		Kind:       KindChoropleth,
		Title:      role.Title,
		XLabel:     "Country",
		YLabel:     "Mean salary (USD)",
		ColorScale: DefaultColorScale,
		Points:     groupPoints(aggregate.MeanSalaryByCountry(v, role.Role)),
	}
	c.markEmpty()
	return c
}

// slug lowercases s and joins its words with underscores.
func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

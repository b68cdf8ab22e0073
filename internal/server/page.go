package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/paveg/salarydash/internal/dashboard"
	"github.com/paveg/salarydash/internal/dataset"
)

// previewRows is how many filtered records the page lists.
const previewRows = 50

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"money":   dashboard.Money,
	"percent": percent,
	"comma":   func(n int) string { return humanize.Comma(int64(n)) },
	"width":   barWidth,
	"float":   func(n int) float64 { return float64(n) },
	"checked": checked,
}).ParseFS(templateFS, "templates/dashboard.html"))

// pageData feeds the dashboard template.
type pageData struct {
	*dashboard.Dashboard
	Filters  []filterGroup
	Preview  []dataset.Record
	Query    template.URL
	Filtered int
}

// filterGroup is one column's checkbox list.
type filterGroup struct {
	Column string
	Label  string
	Values []filterValue
}

type filterValue struct {
	Value   string
	Checked bool
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

// barWidth scales v against max to a CSS percentage.
func barWidth(v, max float64) string {
	if max <= 0 {
		return "0%"
	}
	return strconv.FormatFloat(v/max*100, 'f', 1, 64) + "%"
}

func checked(b bool) template.HTMLAttr {
	if b {
		return "checked"
	}
	return ""
}

// filterGroups renders the options with the current selection ticked. An
// unconstrained column shows every value ticked.
func filterGroups(opts dataset.Options, sel dataset.Selection) []filterGroup {
	wire := sel.Wire()
	group := func(c dataset.Column, label string, values []string) filterGroup {
		chosen, constrained := wire[string(c)]
		g := filterGroup{Column: string(c), Label: label}
		for _, v := range values {
			g.Values = append(g.Values, filterValue{
				Value:   v,
				Checked: !constrained || slices.Contains(chosen, v),
			})
		}
		return g
	}

	years := make([]string, len(opts.Years))
	for i, y := range opts.Years {
		years[i] = strconv.Itoa(y)
	}
	return []filterGroup{
		group(dataset.ColumnYear, "Year", years),
		group(dataset.ColumnSeniority, "Seniority", opts.Seniorities),
		group(dataset.ColumnContract, "Contract type", opts.Contracts),
		group(dataset.ColumnCompanySize, "Company size", opts.CompanySizes),
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d := s.builder.Build(s.ds, sel)
	view := dataset.Apply(s.ds.All(), sel)
	data := pageData{
		Dashboard: d,
		Filters:   filterGroups(d.Options, sel),
		Preview:   view.Head(previewRows).Records(),
		Query:     template.URL(r.URL.RawQuery), //nolint:gosec // re-emits the request's own query
		Filtered:  view.Len(),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("rendering page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/paveg/salarydash/internal/dashboard"
	"github.com/pterm/pterm"
)

// Salary colour thresholds in USD.
const (
	salaryHigh   = 400000
	salaryUpper  = 300000
	salaryMiddle = 100000
)

// colorizeSalary renders an amount coloured by salary band.
func colorizeSalary(v float64) string {
	s := dashboard.Money(v)
	switch {
	case v >= salaryHigh:
		return pterm.Green(s)
	case v >= salaryUpper:
		return pterm.LightGreen(s)
	case v >= salaryMiddle:
		return pterm.Yellow(s)
	default:
		return pterm.Red(s)
	}
}

// renderTable writes a light-styled table to w.
func renderTable(w io.Writer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}

// heading writes a bold section title followed by a blank line.
func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", pterm.Bold.Sprint(title))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

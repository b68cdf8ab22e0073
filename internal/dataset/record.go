// Package dataset holds the immutable salary dataset and the filter engine
// that derives filtered views from it.
//
// A Dataset is loaded once and never mutated. Every filter produces a View,
// an index list into the parent Dataset, so filtering never copies records.
package dataset

import (
	"strconv"
	"strings"
)

// Column identifies one attribute of a Record by its wire name.
type Column string

// Record columns, in canonical output order.
const (
	ColumnYear        Column = "year"
	ColumnSeniority   Column = "seniority"
	ColumnContract    Column = "contract"
	ColumnCompanySize Column = "company_size"
	ColumnRole        Column = "role"
	ColumnRemote      Column = "remote"
	ColumnResidence   Column = "residence_iso3"
	ColumnSalary      Column = "salary_usd"
)

// Columns lists every record column in canonical order.
var Columns = []Column{
	ColumnYear,
	ColumnSeniority,
	ColumnContract,
	ColumnCompanySize,
	ColumnRole,
	ColumnRemote,
	ColumnResidence,
	ColumnSalary,
}

// FilterColumns lists the columns a Selection can constrain.
var FilterColumns = []Column{
	ColumnYear,
	ColumnSeniority,
	ColumnContract,
	ColumnCompanySize,
}

// headerAliases maps source header names onto columns. The published
// snapshot uses Portuguese headers.
var headerAliases = map[string]Column{
	"ano":             ColumnYear,
	"senioridade":     ColumnSeniority,
	"contrato":        ColumnContract,
	"tamanho_empresa": ColumnCompanySize,
	"cargo":           ColumnRole,
	"remoto":          ColumnRemote,
	"residencia_iso3": ColumnResidence,
	"usd":             ColumnSalary,
}

// ParseColumn resolves a header or wire name to a Column.
func ParseColumn(name string) (Column, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range Columns {
		if string(c) == key {
			return c, true
		}
	}
	c, ok := headerAliases[key]
	return c, ok
}

// ColumnNames returns the wire names of cols.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	return names
}

// Record is one salary observation.
type Record struct {
	Year          int     `json:"year"`
	Seniority     string  `json:"seniority"`
	Contract      string  `json:"contract"`
	CompanySize   string  `json:"company_size"`
	Role          string  `json:"role"`
	Remote        string  `json:"remote"`
	ResidenceISO3 string  `json:"residence_iso3"`
	SalaryUSD     float64 `json:"salary_usd"`
}

// Value returns the textual form of column c.
func (r Record) Value(c Column) string {
	switch c {
	case ColumnYear:
		return strconv.Itoa(r.Year)
	case ColumnSeniority:
		return r.Seniority
	case ColumnContract:
		return r.Contract
	case ColumnCompanySize:
		return r.CompanySize
	case ColumnRole:
		return r.Role
	case ColumnRemote:
		return r.Remote
	case ColumnResidence:
		return r.ResidenceISO3
	case ColumnSalary:
		return strconv.FormatFloat(r.SalaryUSD, 'f', -1, 64)
	default:
		return ""
	}
}

// Strings returns all column values in canonical order.
func (r Record) Strings() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = r.Value(c)
	}
	return out
}

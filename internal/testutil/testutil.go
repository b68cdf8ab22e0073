// Package testutil provides shared fixtures for tests across the salarydash
// packages: a small deterministic salary dataset, its CSV rendition, and a
// slog logger that writes through t.Log.
package testutil

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/paveg/salarydash/internal/dataset"
)

// SampleRecords returns ten records spanning two years, three seniorities,
// two contract types and three company sizes.
//
// Overall mean 94000, max 150000. Role means: Data Scientist 100000
// (USA 130000, BRA 40000, DEU 100000), Data Engineer 95000, Data Analyst
// 52500, ML Engineer 150000. Remote counts: remoto 5, hibrido 3, presencial 2.
func SampleRecords() []dataset.Record {
	return []dataset.Record{
		{Year: 2023, Seniority: "senior", Contract: "integral", CompanySize: "grande", Role: "Data Scientist", Remote: "remoto", ResidenceISO3: "USA", SalaryUSD: 150000},
		{Year: 2023, Seniority: "junior", Contract: "integral", CompanySize: "media", Role: "Data Scientist", Remote: "presencial", ResidenceISO3: "BRA", SalaryUSD: 40000},
		{Year: 2024, Seniority: "pleno", Contract: "integral", CompanySize: "grande", Role: "Data Engineer", Remote: "hibrido", ResidenceISO3: "USA", SalaryUSD: 120000},
		{Year: 2024, Seniority: "junior", Contract: "freelancer", CompanySize: "pequena", Role: "Data Analyst", Remote: "remoto", ResidenceISO3: "BRA", SalaryUSD: 30000},
		{Year: 2024, Seniority: "senior", Contract: "integral", CompanySize: "grande", Role: "ML Engineer", Remote: "remoto", ResidenceISO3: "USA", SalaryUSD: 150000},
		{Year: 2023, Seniority: "pleno", Contract: "integral", CompanySize: "media", Role: "Data Engineer", Remote: "presencial", ResidenceISO3: "DEU", SalaryUSD: 70000},
		{Year: 2024, Seniority: "pleno", Contract: "integral", CompanySize: "media", Role: "Data Analyst", Remote: "hibrido", ResidenceISO3: "USA", SalaryUSD: 75000},
		{Year: 2024, Seniority: "senior", Contract: "integral", CompanySize: "grande", Role: "Data Scientist", Remote: "remoto", ResidenceISO3: "USA", SalaryUSD: 110000},
		{Year: 2023, Seniority: "pleno", Contract: "integral", CompanySize: "grande", Role: "Data Scientist", Remote: "hibrido", ResidenceISO3: "DEU", SalaryUSD: 100000},
		{Year: 2024, Seniority: "junior", Contract: "freelancer", CompanySize: "pequena", Role: "Data Engineer", Remote: "remoto", ResidenceISO3: "BRA", SalaryUSD: 95000},
	}
}

// SampleDataset wraps SampleRecords in a Dataset.
func SampleDataset() *dataset.Dataset {
	return dataset.New(SampleRecords())
}

// SampleCSV renders SampleRecords with the Portuguese headers used by the
// published snapshot, plus an unused extra column.
func SampleCSV() string {
	var sb strings.Builder
	sb.WriteString("ano,senioridade,contrato,cargo,usd,remoto,tamanho_empresa,residencia_iso3,moeda\n")
	for _, r := range SampleRecords() {
		fmt.Fprintf(&sb, "%d,%s,%s,%s,%.0f,%s,%s,%s,USD\n",
			r.Year, r.Seniority, r.Contract, r.Role, r.SalaryUSD, r.Remote, r.CompanySize, r.ResidenceISO3)
	}
	return sb.String()
}

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(tb testing.TB) *slog.Logger {
	tb.Helper()
	return slog.New(slog.NewTextHandler(testWriter{tb}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}

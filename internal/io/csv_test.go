package io_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/errors"
	dio "github.com/paveg/salarydash/internal/io"
	"github.com/paveg/salarydash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, data string) (*dataset.Dataset, error) {
	t.Helper()
	return dio.NewCSVReader(strings.NewReader(data), dio.DefaultCSVOptions()).Read()
}

func TestCSVReader(t *testing.T) {
	t.Run("portuguese headers with extra column", func(t *testing.T) {
		ds, err := readCSV(t, testutil.SampleCSV())
		require.NoError(t, err)
		assert.Equal(t, testutil.SampleRecords(), ds.All().Records())
	})

	t.Run("wire headers in any order", func(t *testing.T) {
		data := "salary_usd,role,year,seniority,contract,company_size,remote,residence_iso3\n" +
			"85000.5,Data Scientist,2025,senior,integral,grande,remoto,USA\n"
		ds, err := readCSV(t, data)
		require.NoError(t, err)
		require.Equal(t, 1, ds.Len())
		assert.Equal(t, dataset.Record{
			Year: 2025, Seniority: "senior", Contract: "integral", CompanySize: "grande",
			Role: "Data Scientist", Remote: "remoto", ResidenceISO3: "USA", SalaryUSD: 85000.5,
		}, ds.At(0))
	})

	t.Run("integral float year", func(t *testing.T) {
		data := "ano,senioridade,contrato,tamanho_empresa,cargo,remoto,residencia_iso3,usd\n" +
			"2023.0,junior,integral,media,Data Analyst,remoto,BRA,1000\n"
		ds, err := readCSV(t, data)
		require.NoError(t, err)
		assert.Equal(t, 2023, ds.At(0).Year)
	})

	t.Run("header only", func(t *testing.T) {
		ds, err := readCSV(t, "ano,senioridade,contrato,tamanho_empresa,cargo,remoto,residencia_iso3,usd\n")
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := readCSV(t, "")
		require.ErrorIs(t, err, errors.ErrEmptySource)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		data := "ano;senioridade;contrato;tamanho_empresa;cargo;remoto;residencia_iso3;usd\n" +
			"2024;pleno;integral;media;Data Engineer;hibrido;DEU;70000\n"
		opts := dio.DefaultCSVOptions()
		opts.Delimiter = ';'
		ds, err := dio.NewCSVReader(strings.NewReader(data), opts).Read()
		require.NoError(t, err)
		assert.Equal(t, "DEU", ds.At(0).ResidenceISO3)
	})
}

func TestCSVReaderErrors(t *testing.T) {
	const header = "ano,senioridade,contrato,tamanho_empresa,cargo,remoto,residencia_iso3,usd\n"

	tests := []struct {
		name     string
		data     string
		column   string
		contains string
	}{
		{
			name:     "missing column",
			data:     "ano,senioridade,contrato,tamanho_empresa,cargo,remoto,residencia_iso3\n2023,a,b,c,d,e,f\n",
			column:   "salary_usd",
			contains: "column does not exist",
		},
		{
			name:     "salary not a number",
			data:     header + "2023,junior,integral,media,Data Analyst,remoto,BRA,lots\n",
			column:   "salary_usd",
			contains: `malformed value "lots" at line 2`,
		},
		{
			name:     "fractional year",
			data:     header + "2023.5,junior,integral,media,Data Analyst,remoto,BRA,100\n",
			column:   "year",
			contains: "at line 2",
		},
		{
			name:     "year out of range",
			data:     header + "99999999999,junior,integral,media,Data Analyst,remoto,BRA,100\n",
			column:   "year",
			contains: "out of range",
		},
		{
			name:     "nan salary",
			data:     header + "2023,junior,integral,media,Data Analyst,remoto,BRA,1000\n2023,junior,integral,media,Data Analyst,remoto,BRA,NaN\n",
			column:   "salary_usd",
			contains: `malformed value "NaN" at line 3`,
		},
		{
			name:     "infinite salary",
			data:     header + "2023,junior,integral,media,Data Analyst,remoto,BRA,+Inf\n",
			column:   "salary_usd",
			contains: `malformed value "+Inf" at line 2`,
		},
		{
			name:     "negative salary",
			data:     header + "2023,junior,integral,media,Data Analyst,remoto,BRA,100\n2023,junior,integral,media,Data Analyst,remoto,BRA,-5\n",
			column:   "salary_usd",
			contains: "negative value -5 at line 3",
		},
		{
			name:     "short row",
			data:     header + "2023,junior\n",
			column:   "contract",
			contains: "row has 2 fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readCSV(t, tt.data)
			require.Error(t, err)

			var dashErr *errors.DashboardError
			require.ErrorAs(t, err, &dashErr)
			assert.Equal(t, tt.column, dashErr.Column)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCSVWriter(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ds := testutil.SampleDataset()
		var buf bytes.Buffer
		require.NoError(t, dio.NewCSVWriter(&buf, dio.DefaultCSVOptions()).Write(ds.All()))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 11)
		assert.Equal(t, "year,seniority,contract,company_size,role,remote,residence_iso3,salary_usd", lines[0])
		assert.Equal(t, "2023,senior,integral,grande,Data Scientist,remoto,USA,150000", lines[1])

		back, err := readCSV(t, buf.String())
		require.NoError(t, err)
		assert.Equal(t, ds.All().Records(), back.All().Records())
	})

	t.Run("empty view writes header only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dio.NewCSVWriter(&buf, dio.DefaultCSVOptions()).Write(dataset.View{}))
		assert.Equal(t, "year,seniority,contract,company_size,role,remote,residence_iso3,salary_usd\n", buf.String())
	})
}

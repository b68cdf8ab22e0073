package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/errors"
	"github.com/paveg/salarydash/internal/validation"
)

const opReadCSV = "ReadCSV"

// Read reads CSV data and returns a Dataset. Header names are resolved with
// dataset.ParseColumn; extra columns are ignored and missing ones are an
// error. Numbers that do not parse are reported with their line.
func (r *CSVReader) Read() (*dataset.Dataset, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace
	csvReader.FieldsPerRecord = -1
	csvReader.ReuseRecord = true

	names, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	header := dataset.NewHeader(names)
	if err := header.Require(opReadCSV); err != nil {
		return nil, err
	}

	var records []dataset.Record
	for line := 2; ; line++ {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}

		rec, err := parseRow(header, row, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return dataset.New(records), nil
}

func parseRow(h dataset.Header, row []string, line int) (dataset.Record, error) {
	var rec dataset.Record
	for _, c := range dataset.Columns {
		idx, _ := h.Index(c)
		if idx >= len(row) {
			return dataset.Record{}, errors.NewMalformedValueError(opReadCSV, string(c), line, "", fmt.Errorf("row has %d fields", len(row)))
		}
		cell := strings.TrimSpace(row[idx])

		switch c {
		case dataset.ColumnYear:
			year, err := parseYear(cell)
			if err != nil {
				return dataset.Record{}, errors.NewMalformedValueError(opReadCSV, string(c), line, cell, err)
			}
			if err := validation.NewWholeNumberValidator(opReadCSV, string(c), line, year).Validate(); err != nil {
				return dataset.Record{}, err
			}
			rec.Year = int(year)
		case dataset.ColumnSalary:
			salary, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return dataset.Record{}, errors.NewMalformedValueError(opReadCSV, string(c), line, cell, err)
			}
			if err := validation.NewNonNegativeValidator(opReadCSV, string(c), line, salary).Validate(); err != nil {
				return dataset.Record{}, err
			}
			rec.SalaryUSD = salary
		case dataset.ColumnSeniority:
			rec.Seniority = cell
		case dataset.ColumnContract:
			rec.Contract = cell
		case dataset.ColumnCompanySize:
			rec.CompanySize = cell
		case dataset.ColumnRole:
			rec.Role = cell
		case dataset.ColumnRemote:
			rec.Remote = cell
		case dataset.ColumnResidence:
			rec.ResidenceISO3 = cell
		}
	}
	return rec, nil
}

// parseYear accepts integers and floats such as "2023.0", which spreadsheet
// exports produce. The caller checks the result is whole.
func parseYear(s string) (float64, error) {
	if y, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(y), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Write writes the view as CSV, header first.
func (w *CSVWriter) Write(v dataset.View) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter

	if err := csvWriter.Write(dataset.ColumnNames(dataset.Columns)); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i := range v.Len() {
		if err := csvWriter.Write(v.At(i).Strings()); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

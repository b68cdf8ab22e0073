package series

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/errors"
	"github.com/paveg/salarydash/internal/validation"
)

// column is the type-erased form of a Series used when assembling tables.
type column interface {
	Field() arrow.Field
	Array() arrow.Array
	Release()
}

// Schema returns the Arrow schema Table produces.
func Schema() *arrow.Schema {
	fields := make([]arrow.Field, len(dataset.Columns))
	for i, c := range dataset.Columns {
		fields[i] = arrow.Field{Name: string(c), Type: columnType(c)}
	}
	return arrow.NewSchema(fields, nil)
}

func columnType(c dataset.Column) arrow.DataType {
	switch c {
	case dataset.ColumnYear:
		return arrow.PrimitiveTypes.Int64
	case dataset.ColumnSalary:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// columnsOf builds one Series per record column from v, in canonical order.
// The caller releases every returned column.
func columnsOf(v dataset.View, mem memory.Allocator) []column {
	n := v.Len()
	years := make([]int64, n)
	salaries := make([]float64, n)
	text := make(map[dataset.Column][]string, len(dataset.Columns))
	for _, c := range dataset.Columns {
		if columnType(c) == arrow.BinaryTypes.String {
			text[c] = make([]string, n)
		}
	}

	for i := range n {
		r := v.At(i)
		years[i] = int64(r.Year)
		salaries[i] = r.SalaryUSD
		for c, vals := range text {
			vals[i] = r.Value(c)
		}
	}

	cols := make([]column, 0, len(dataset.Columns))
	for _, c := range dataset.Columns {
		switch c {
		case dataset.ColumnYear:
			cols = append(cols, New(string(c), years, mem))
		case dataset.ColumnSalary:
			cols = append(cols, New(string(c), salaries, mem))
		default:
			cols = append(cols, New(string(c), text[c], mem))
		}
	}
	return cols
}

// Table converts a filtered view to an Arrow table. The caller releases it.
func Table(v dataset.View, mem memory.Allocator) arrow.Table {
	cols := columnsOf(v, mem)
	fields := make([]arrow.Field, 0, len(cols))
	columns := make([]arrow.Column, 0, len(cols))

	for _, c := range cols {
		arr := c.Array()
		chunked := arrow.NewChunked(arr.DataType(), []arrow.Array{arr})
		col := arrow.NewColumn(c.Field(), chunked)

		fields = append(fields, c.Field())
		columns = append(columns, *col)

		arr.Release()
		chunked.Release()
		c.Release()
	}

	table := array.NewTable(arrow.NewSchema(fields, nil), columns, int64(v.Len()))
	for i := range columns {
		columns[i].Release()
	}
	return table
}

// Records reads an Arrow table back into records. Columns are matched with
// dataset.ParseColumn, so both wire names and source header names work;
// unrecognised columns are ignored. Year and salary accept any integer or
// floating point Arrow type; years must be whole and salaries finite and
// non-negative. Errors report the 1-based row as the line.
func Records(table arrow.Table) ([]dataset.Record, error) {
	const op = "ReadArrow"

	schema := table.Schema()
	names := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		names[i] = f.Name
	}
	header := dataset.NewHeader(names)
	if err := header.Require(op); err != nil {
		return nil, err
	}

	n := int(table.NumRows())
	records := make([]dataset.Record, n)

	for _, c := range dataset.Columns {
		idx, _ := header.Index(c)
		col := table.Column(idx)

		switch c {
		case dataset.ColumnYear, dataset.ColumnSalary:
			vals, err := numbers(col)
			if err != nil {
				return nil, errors.NewMalformedValueError(op, string(c), 0, col.DataType().String(), err)
			}
			for i, v := range vals {
				if c == dataset.ColumnYear {
					if err := validation.NewWholeNumberValidator(op, string(c), i+1, v).Validate(); err != nil {
						return nil, err
					}
					records[i].Year = int(v)
					continue
				}
				if err := validation.NewNonNegativeValidator(op, string(c), i+1, v).Validate(); err != nil {
					return nil, err
				}
				records[i].SalaryUSD = v
			}
		default:
			vals, err := texts(col)
			if err != nil {
				return nil, errors.NewMalformedValueError(op, string(c), 0, col.DataType().String(), err)
			}
			for i, v := range vals {
				setText(&records[i], c, v)
			}
		}
	}
	return records, nil
}

func setText(r *dataset.Record, c dataset.Column, v string) {
	switch c {
	case dataset.ColumnSeniority:
		r.Seniority = v
	case dataset.ColumnContract:
		r.Contract = v
	case dataset.ColumnCompanySize:
		r.CompanySize = v
	case dataset.ColumnRole:
		r.Role = v
	case dataset.ColumnRemote:
		r.Remote = v
	case dataset.ColumnResidence:
		r.ResidenceISO3 = v
	}
}

// numbers flattens a numeric column to float64 across chunks.
func numbers(col *arrow.Column) ([]float64, error) {
	out := make([]float64, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				return nil, fmt.Errorf("null at row %d", len(out)+1)
			}
			switch arr := chunk.(type) {
			case *array.Int64:
				out = append(out, float64(arr.Value(i)))
			case *array.Int32:
				out = append(out, float64(arr.Value(i)))
			case *array.Float64:
				out = append(out, arr.Value(i))
			case *array.Float32:
				out = append(out, float64(arr.Value(i)))
			default:
				return nil, fmt.Errorf("unsupported Arrow type: %s", chunk.DataType())
			}
		}
	}
	return out, nil
}

// texts flattens a string column across chunks. Nulls read as "".
func texts(col *arrow.Column) ([]string, error) {
	out := make([]string, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				out = append(out, "")
				continue
			}
			switch arr := chunk.(type) {
			case *array.String:
				out = append(out, arr.Value(i))
			case *array.LargeString:
				out = append(out, arr.Value(i))
			default:
				return nil, fmt.Errorf("unsupported Arrow type: %s", chunk.DataType())
			}
		}
	}
	return out, nil
}

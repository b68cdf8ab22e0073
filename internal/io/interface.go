// Package io provides I/O operations for the salary dataset.
//
// Readers turn a CSV or Parquet source into an immutable *dataset.Dataset;
// writers export a filtered dataset.View as CSV, JSON, JSON Lines or
// Parquet. Load resolves a data source location (http(s) URL or local
// path) and picks the reader from the file extension.
package io

import (
	"context"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/errors"
)

// DefaultBatchSize is the default batch size for Parquet operations
const DefaultBatchSize = 1000

// DataReader defines the interface for reading the dataset from a source
type DataReader interface {
	// Read reads every record from the source
	Read() (*dataset.Dataset, error)
}

// DataWriter defines the interface for exporting filtered records
type DataWriter interface {
	// Write writes every record of the view to the destination
	Write(v dataset.View) error
}

// Format names an export or source format.
type Format string

// Supported formats.
const (
	FormatCSV       Format = "csv"
	FormatJSON      Format = "json"
	FormatJSONLines Format = "jsonl"
	FormatParquet   Format = "parquet"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatJSON, FormatJSONLines, FormatParquet}

// ParseFormat resolves a format name. The empty string means CSV.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONLines, nil
	case "parquet", "pq":
		return FormatParquet, nil
	default:
		return "", errors.NewUnsupportedFormatError("Export", name)
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatJSONLines:
		return "application/x-ndjson"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// NewWriter returns the default-configured writer for f.
func NewWriter(f Format, w io.Writer) DataWriter {
	switch f {
	case FormatJSON:
		return NewJSONWriter(w, JSONOptions{Format: JSONArray})
	case FormatJSONLines:
		return NewJSONWriter(w, JSONOptions{Format: JSONLines})
	case FormatParquet:
		return NewParquetWriter(w, DefaultParquetOptions())
	default:
		return NewCSVWriter(w, DefaultCSVOptions())
	}
}

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// SkipInitialSpace indicates whether to skip initial whitespace
	SkipInitialSpace bool
}

// DefaultCSVOptions returns default CSV options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter: ',',
	}
}

// CSVReader reads CSV data into a Dataset. The first row is the header.
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions) *CSVReader {
	return &CSVReader{
		reader:  reader,
		options: options,
	}
}

// CSVWriter writes views in CSV format with wire column names as header
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a new CSV writer with the specified options
func NewCSVWriter(writer io.Writer, options CSVOptions) *CSVWriter {
	return &CSVWriter{
		writer:  writer,
		options: options,
	}
}

// JSONFormat selects the JSON layout.
type JSONFormat int

// JSON layouts.
const (
	// JSONArray writes a single array of objects.
	JSONArray JSONFormat = iota
	// JSONLines writes one object per line.
	JSONLines
)

// JSONOptions contains configuration options for JSON export
type JSONOptions struct {
	Format JSONFormat
	// Indent pretty-prints JSONArray output.
	Indent bool
}

// JSONWriter writes views as JSON
type JSONWriter struct {
	writer  io.Writer
	options JSONOptions
}

// NewJSONWriter creates a new JSON writer with the specified options
func NewJSONWriter(writer io.Writer, options JSONOptions) *JSONWriter {
	return &JSONWriter{
		writer:  writer,
		options: options,
	}
}

// ParquetOptions contains configuration options for Parquet operations
type ParquetOptions struct {
	// Compression is one of snappy, gzip, lz4, zstd, uncompressed
	Compression string
	// BatchSize for reading/writing operations
	BatchSize int
}

// DefaultParquetOptions returns default Parquet options
func DefaultParquetOptions() ParquetOptions {
	return ParquetOptions{
		Compression: "snappy",
		BatchSize:   DefaultBatchSize,
	}
}

// ParquetReader reads Parquet data into a Dataset
type ParquetReader struct {
	reader  io.Reader
	options ParquetOptions
	mem     memory.Allocator
	ctx     context.Context
}

// NewParquetReader creates a new Parquet reader with the specified options
func NewParquetReader(reader io.Reader, options ParquetOptions, mem memory.Allocator) *ParquetReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ParquetReader{
		reader:  reader,
		options: options,
		mem:     mem,
		ctx:     context.Background(),
	}
}

// WithContext returns a copy of r whose Read stops once ctx is done.
func (r *ParquetReader) WithContext(ctx context.Context) *ParquetReader {
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// ParquetWriter writes views in Parquet format
type ParquetWriter struct {
	writer  io.Writer
	options ParquetOptions
}

// NewParquetWriter creates a new Parquet writer with the specified options
func NewParquetWriter(writer io.Writer, options ParquetOptions) *ParquetWriter {
	return &ParquetWriter{
		writer:  writer,
		options: options,
	}
}

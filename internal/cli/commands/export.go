package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/paveg/salarydash/internal/dataset"
	sio "github.com/paveg/salarydash/internal/io"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command, which writes the filtered
// records to a file or stdout.
func NewExportCommand() *cobra.Command {
	var (
		format      string
		out         string
		compression string
		indent      bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered records as CSV, JSON, JSON lines or Parquet",
		Long: `Export the records matching the selection given by the column flags.

Examples:
  salarydash export --year 2024 > salaries.csv
  salarydash export --format parquet --compression zstd --out salaries.parquet
  salarydash export --format json --indent --seniority senior`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := sio.ParseFormat(format)
			if err != nil {
				return err
			}
			sel, err := selectionFromFlags(cmd)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, quiet)
			if err != nil {
				return err
			}
			view := dataset.Apply(ds.All(), sel)

			write := func(w io.Writer) error {
				return exportWriter(f, w, compression, indent).Write(view)
			}
			if out == "" || out == "-" {
				err = write(cmd.OutOrStdout())
			} else {
				err = writeFile(out, write)
			}
			if err != nil {
				return err
			}
			GetLogger(cmd.Context()).Info("records exported",
				"format", string(f),
				"records", view.Len(),
				"out", out)
			return nil
		},
	}

	addSelectionFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(sio.FormatCSV), "output format (csv|json|jsonl|parquet)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&compression, "compression", "snappy", "parquet compression (snappy|gzip|lz4|zstd|uncompressed)")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON array output")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the download progress bar")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(sio.Formats))
		for i, f := range sio.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// writeFile creates path and runs write on it. A failed close is reported,
// since buffered output may only reach the disk then.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(file)
}

func exportWriter(f sio.Format, w io.Writer, compression string, indent bool) sio.DataWriter {
	switch f {
	case sio.FormatParquet:
		opts := sio.DefaultParquetOptions()
		opts.Compression = compression
		return sio.NewParquetWriter(w, opts)
	case sio.FormatJSON:
		return sio.NewJSONWriter(w, sio.JSONOptions{Format: sio.JSONArray, Indent: indent})
	default:
		return sio.NewWriter(f, w)
	}
}

package io

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/errors"
	"github.com/paveg/salarydash/internal/version"
)

// SourceOptions configures Load.
type SourceOptions struct {
	// Client fetches http(s) sources. Defaults to http.DefaultClient.
	Client *http.Client
	// Timeout bounds the whole fetch and parse. Zero means no limit.
	Timeout time.Duration
	// Progress, when set, wraps the source stream, e.g. to drive a progress
	// bar. size is -1 when unknown.
	Progress func(r io.Reader, size int64) io.Reader
	// Logger receives load diagnostics. Defaults to a discard logger.
	Logger *slog.Logger
	// Allocator backs Arrow buffers when reading Parquet.
	Allocator memory.Allocator
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// SourceFormat infers the reader for location from its extension. Anything
// other than .parquet or .pq is read as CSV.
func SourceFormat(location string) Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".parquet", ".pq":
		return FormatParquet
	default:
		return FormatCSV
	}
}

// Load reads the dataset at location, an http(s) URL or a local path.
// Every failure is wrapped in a load error naming the location.
func Load(ctx context.Context, location string, opts SourceOptions) (*dataset.Dataset, error) {
	if location == "" {
		return nil, errors.NewLoadError(location, fmt.Errorf("no data source configured"))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	rc, size, err := open(ctx, location, opts.Client)
	if err != nil {
		return nil, errors.NewLoadError(location, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if opts.Progress != nil {
		r = opts.Progress(r, size)
	}

	format := SourceFormat(location)
	var reader DataReader
	switch format {
	case FormatParquet:
		reader = NewParquetReader(r, DefaultParquetOptions(), opts.Allocator).WithContext(ctx)
	default:
		reader = NewCSVReader(r, DefaultCSVOptions())
	}

	ds, err := reader.Read()
	if err != nil {
		return nil, errors.NewLoadError(location, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewLoadError(location, err)
	}

	logger.Debug("dataset loaded",
		"source", location,
		"format", string(format),
		"records", ds.Len(),
		"duration", time.Since(start))
	return ds, nil
}

// open returns a stream over location and its size, or -1 when unknown.
func open(ctx context.Context, location string, client *http.Client) (io.ReadCloser, int64, error) {
	if !IsRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, 0, err
		}
		size := int64(-1)
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		return &ctxReader{ctx: ctx, ReadCloser: f}, size, nil
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, resp.ContentLength, nil
}

// ctxReader stops local reads once ctx is done; http bodies already do.
type ctxReader struct {
	ctx context.Context
	io.ReadCloser
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.ReadCloser.Read(p)
}

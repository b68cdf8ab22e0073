package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/errors"
	dio "github.com/paveg/salarydash/internal/io"
)

const maxBodyBytes = 1 << 20

// selectionFromQuery parses the filter parameters of q, ignoring the
// listed non-filter keys.
func selectionFromQuery(q url.Values, ignore ...string) (dataset.Selection, error) {
	wire := make(map[string][]string, len(q))
	for k, v := range q {
		wire[k] = v
	}
	for _, k := range ignore {
		delete(wire, k)
	}
	return dataset.ParseSelection(wire)
}

// selectionFromBody parses a JSON object of column -> values. Values may
// be strings or numbers.
func selectionFromBody(w http.ResponseWriter, r *http.Request) (dataset.Selection, error) {
	var body map[string][]interface{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		return dataset.Selection{}, errors.NewInvalidInputError("ParseSelection", fmt.Sprintf("invalid JSON body: %v", err))
	}

	wire := make(map[string][]string, len(body))
	for k, vals := range body {
		out := make([]string, 0, len(vals))
		for _, v := range vals {
			switch v := v.(type) {
			case string:
				out = append(out, v)
			case float64:
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			default:
				return dataset.Selection{}, errors.NewInvalidInputError("ParseSelection", fmt.Sprintf("unsupported value %v for %q", v, k))
			}
		}
		wire[k] = out
	}
	return dataset.ParseSelection(wire)
}

// etag identifies a response derived from the dataset, the builder settings
// and a selection.
func (s *Server) etag(kind string, sel dataset.Selection) string {
	key := fmt.Sprintf("%016x|%s|%s|%s", s.ds.Fingerprint(), s.builder.Settings(), kind, sel.Canonical())
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64String(key))
}

// notModified sets the ETag header and reports whether the client copy is current.
func notModified(w http.ResponseWriter, r *http.Request, tag string) bool {
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if notModified(w, r, s.etag("options", dataset.Selection{})) {
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.options)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		sel dataset.Selection
		err error
	)
	if r.Method == http.MethodPost {
		sel, err = selectionFromBody(w, r)
	} else {
		sel, err = selectionFromQuery(r.URL.Query())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if notModified(w, r, s.etag("dashboard", sel)) {
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.builder.Build(s.ds, sel))
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := dio.ParseFormat(q.Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sel, err := selectionFromQuery(q, "format")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if notModified(w, r, s.etag("records:"+string(format), sel)) {
		return
	}

	view := dataset.Apply(s.ds.All(), sel)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="salaries%s"`, format.Extension()))

	err = s.collector.RecordOperation("export:"+string(format), view.Len(), func() error {
		return dio.NewWriter(format, w).Write(view)
	})
	if err != nil {
		// Headers are already sent; all we can do is log.
		s.logger.Error("export failed", "format", format, "error", err)
	}
}

// writeError maps input errors to 400 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var dashErr *errors.DashboardError
	if stderrors.As(err, &dashErr) {
		status = http.StatusBadRequest
	}
	s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	s.writeJSON(w, r, status, errorBody(err))
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// writeJSON encodes v before sending any header, so an encoding failure
// still turns into a 500 with an error body.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encoding response", "path", r.URL.Path, "error", err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorBody(fmt.Errorf("encoding response: %w", err)))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

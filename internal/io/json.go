package io

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/paveg/salarydash/internal/dataset"
)

// Write writes the view as JSON. An empty view is "[]" for JSONArray and
// no output for JSONLines.
func (w *JSONWriter) Write(v dataset.View) error {
	switch w.options.Format {
	case JSONArray:
		return w.writeJSONArray(v)
	case JSONLines:
		return w.writeJSONLines(v)
	default:
		return fmt.Errorf("unsupported JSON format: %d", w.options.Format)
	}
}

func (w *JSONWriter) writeJSONArray(v dataset.View) error {
	enc := json.NewEncoder(w.writer)
	if w.options.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v.Records()); err != nil {
		return fmt.Errorf("marshaling JSON array: %w", err)
	}
	return nil
}

func (w *JSONWriter) writeJSONLines(v dataset.View) error {
	buf := bufio.NewWriter(w.writer)
	enc := json.NewEncoder(buf)
	for i := range v.Len() {
		if err := enc.Encode(v.At(i)); err != nil {
			return fmt.Errorf("marshaling JSON line %d: %w", i+1, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing JSON lines: %w", err)
	}
	return nil
}

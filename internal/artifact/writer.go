// Package artifact writes finished pipeline documents to the output
// directory as indented JSON.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFilename is where an unnamed run lands, matching the fixed
// relative path the pipeline has always written to.
const DefaultFilename = "result.json"

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write marshals doc with two-space indentation and writes it under the
// output directory, creating the directory as needed. Returns the path.
func (w *Writer) Write(doc any, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal output: %w", err)
	}
	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

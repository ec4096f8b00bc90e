package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"pyscan/pkg/record"
)

type table struct {
	RunID     string    `json:"run_id"`
	Root      string    `json:"root"`
	ScannedAt time.Time `json:"scanned_at"`
	Records   []row     `json:"records"`
}

type row struct {
	Imported  []string `json:"imported"`
	Alias     string   `json:"alias,omitempty"`
	Original  string   `json:"original"`
	Path      string   `json:"path"`
	File      string   `json:"file"`
	Filename  string   `json:"filename"`
	Extension string   `json:"extension"`
	Directory string   `json:"directory"`
}

// WriteJSON encodes a record table as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(t *record.Table, w io.Writer) error {
	out := table{
		RunID:     t.RunID,
		Root:      t.Root,
		ScannedAt: t.ScannedAt,
		Records:   make([]row, len(t.Records)),
	}
	for i, r := range t.Records {
		out.Records[i] = row{
			Imported:  r.Imported,
			Alias:     r.Alias,
			Original:  r.Original,
			Path:      r.Path,
			File:      r.File,
			Filename:  r.Filename,
			Extension: r.Extension,
			Directory: r.Directory,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a record table to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(t *record.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, f)
}

// WriteCSV encodes a record table as CSV and writes it to w. Tables with
// varying import depths pad shorter rows with empty segment columns.
func WriteCSV(t *record.Table, w io.Writer) error {
	width := t.Width()

	header := make([]string, 0, width+7)
	for i := 0; i < width; i++ {
		header = append(header, fmt.Sprintf("imported_%d", i))
	}
	header = append(header, "alias", "directory", "extension", "file", "filename", "original", "path")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range t.Records {
		rec := make([]string, 0, len(header))
		for i := 0; i < width; i++ {
			if i < len(r.Imported) {
				rec = append(rec, r.Imported[i])
			} else {
				rec = append(rec, "")
			}
		}
		rec = append(rec, r.Alias, r.Directory, r.Extension, r.File, r.Filename, r.Original, r.Path)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes a record table to a CSV file at path.
func ExportCSV(t *record.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSV(t, f)
}

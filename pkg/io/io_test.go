package io

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pyscan/pkg/record"
)

func sampleTable() *record.Table {
	t := record.NewTable("/project")
	t.Append(
		record.Record{
			Imported:  []string{"numpy"},
			Alias:     "np",
			Original:  "import numpy as np",
			Path:      "/project/a.py",
			File:      "a.py",
			Filename:  "a",
			Extension: "py",
			Directory: "/project",
		},
		record.Record{
			Imported:  []string{"os", "path", "join"},
			Original:  "from os.path import join",
			Path:      "/project/sub/b.py",
			File:      "b.py",
			Filename:  "b",
			Extension: "py",
			Directory: "/project/sub",
		},
	)
	return t
}

func TestJSONRoundTrip(t *testing.T) {
	table := sampleTable()

	var buf bytes.Buffer
	if err := WriteJSON(table, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got.RunID != table.RunID || got.Root != table.Root {
		t.Errorf("metadata mismatch: %q/%q", got.RunID, got.Root)
	}
	if got.Len() != table.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), table.Len())
	}
	for i := range table.Records {
		if !got.Records[i].Equal(table.Records[i]) {
			t.Errorf("record %d mismatch:\n got %+v\nwant %+v", i, got.Records[i], table.Records[i])
		}
	}
}

func TestReadJSONRejectsEmptySegments(t *testing.T) {
	input := `{"run_id": "x", "root": "/p", "scanned_at": "2026-01-01T00:00:00Z",
		"records": [{"imported": [], "original": "import"}]}`

	if _, err := ReadJSON(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for record without imported segments")
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{nope")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestWriteCSV(t *testing.T) {
	table := sampleTable()

	var buf bytes.Buffer
	if err := WriteCSV(table, &buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	wantHeader := []string{
		"imported_0", "imported_1", "imported_2",
		"alias", "directory", "extension", "file", "filename", "original", "path",
	}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}

	// Shorter rows are padded with empty segment columns
	if rows[1][0] != "numpy" || rows[1][1] != "" || rows[1][2] != "" {
		t.Errorf("row 1 segments = %v", rows[1][:3])
	}
	if rows[2][0] != "os" || rows[2][1] != "path" || rows[2][2] != "join" {
		t.Errorf("row 2 segments = %v", rows[2][:3])
	}
}

func TestExportImportFiles(t *testing.T) {
	table := sampleTable()
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "out.json")
	if err := ExportJSON(table, jsonPath); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(jsonPath)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if got.Len() != table.Len() {
		t.Errorf("Len() = %d, want %d", got.Len(), table.Len())
	}

	csvPath := filepath.Join(dir, "out.csv")
	if err := ExportCSV(table, csvPath); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"pyscan/pkg/record"
)

// ReadJSON decodes a JSON record table from r.
//
// The input must be an object with run metadata and a "records" array:
//
//	{
//	  "run_id": "...",
//	  "root": "./project",
//	  "scanned_at": "2025-...",
//	  "records": [{"imported": ["os", "path"], "original": "import os.path", ...}]
//	}
//
// ReadJSON returns an error if the JSON is malformed or a record has no
// imported segments. The returned table is independent of r and can be
// modified safely after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*record.Table, error) {
	var data table
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	t := &record.Table{
		RunID:     data.RunID,
		Root:      data.Root,
		ScannedAt: data.ScannedAt,
	}
	for i, rec := range data.Records {
		if len(rec.Imported) == 0 {
			return nil, fmt.Errorf("record %d: missing imported segments", i)
		}
		t.Append(record.Record{
			Imported:  rec.Imported,
			Alias:     rec.Alias,
			Original:  rec.Original,
			Path:      rec.Path,
			File:      rec.File,
			Filename:  rec.Filename,
			Extension: rec.Extension,
			Directory: rec.Directory,
		})
	}
	return t, nil
}

// ImportJSON reads a record table from a JSON file at path.
func ImportJSON(path string) (*record.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

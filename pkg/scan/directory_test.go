package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pyscan/pkg/errors"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestNewMissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want INVALID_PATH", errors.GetCode(err))
	}
}

func TestPaths(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.py":            "import os\n",
		"sub/helper.py":     "import sys\n",
		"sub/notes.txt":     "not python\n",
		"sub/analysis.ipynb": `{"cells": []}`,
		"README.md":         "docs\n",
	})

	s, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := s.Paths()
	if err != nil {
		t.Fatalf("Paths() error = %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("got %d paths, want 3: %v", len(paths), paths)
	}
}

func TestPathsSingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{"only.py": "import os\n"})
	file := filepath.Join(root, "only.py")

	s, err := New(file)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := s.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != file {
		t.Errorf("Paths() = %v, want [%s]", paths, file)
	}
}

func TestScan(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.py":        "import os\nimport pandas as pd\n",
		"sub/helper.py": "from flask import Flask\n",
	})

	s, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	table, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if table.Root != root {
		t.Errorf("Root = %q, want %q", table.Root, root)
	}
	if table.Len() != 3 {
		t.Fatalf("got %d records, want 3", table.Len())
	}
	if table.RunID == "" {
		t.Error("RunID is empty")
	}

	byPackage := make(map[string]bool)
	for _, r := range table.Records {
		byPackage[r.Package()] = true
	}
	for _, name := range []string{"os", "pandas", "flask"} {
		if !byPackage[name] {
			t.Errorf("missing package %q", name)
		}
	}
}

func TestScanRecordFields(t *testing.T) {
	root := writeTree(t, map[string]string{
		"sub/data.loader.py": "import numpy as np\n",
	})

	s, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	table, err := s.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d records, want 1", table.Len())
	}

	r := table.Records[0]
	if r.File != "data.loader.py" {
		t.Errorf("File = %q", r.File)
	}
	// Filename stops at the first dot, extension is the last component
	if r.Filename != "data" {
		t.Errorf("Filename = %q, want data", r.Filename)
	}
	if r.Extension != "py" {
		t.Errorf("Extension = %q, want py", r.Extension)
	}
	if r.Alias != "np" {
		t.Errorf("Alias = %q, want np", r.Alias)
	}
	if r.Directory != filepath.Join(root, "sub") {
		t.Errorf("Directory = %q", r.Directory)
	}
	if r.Original != "import numpy as np" {
		t.Errorf("Original = %q", r.Original)
	}
}

func TestScanSkipsMalformedNotebook(t *testing.T) {
	root := writeTree(t, map[string]string{
		"ok.py":         "import os\n",
		"broken.ipynb":  "not json",
	})

	s, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	table, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("got %d records, want 1 (broken notebook skipped)", table.Len())
	}
}

func TestScanCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "import os\n"})

	s, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Scan(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

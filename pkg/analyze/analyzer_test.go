package analyze

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

func TestCleanRecordsDropsDuplicates(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "import os\nimport os\nimport sys\n",
	})

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	clean, err := a.CleanRecords(context.Background())
	if err != nil {
		t.Fatalf("CleanRecords() error = %v", err)
	}
	if len(clean) != 2 {
		t.Errorf("got %d records, want 2", len(clean))
	}
}

func TestCleanRecordsKeepsSameImportAcrossFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "import os\n",
		"b.py": "import os\n",
	})

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	clean, err := a.CleanRecords(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// Same statement in different files is not a duplicate
	if len(clean) != 2 {
		t.Errorf("got %d records, want 2", len(clean))
	}
}

func TestCleanRecordsDropsRelativeImports(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pkg/a.py": "from . import helpers\nfrom .models import User\nimport os\n",
	})

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	clean, err := a.CleanRecords(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(clean) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(clean), clean)
	}
	if clean[0].Package() != "os" {
		t.Errorf("Package() = %q, want os", clean[0].Package())
	}
}

func TestTableIsCached(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "import os\n"})

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	first, err := a.Table(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Table(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Table() should return the cached table on repeat calls")
	}
}

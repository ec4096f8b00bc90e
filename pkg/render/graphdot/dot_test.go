package graphdot

import (
	"path/filepath"
	"strings"
	"testing"

	"pyscan/pkg/record"
)

func testTable() *record.Table {
	root := filepath.Join("/proj")
	table := record.NewTable(root)
	table.Append(
		record.Record{Imported: []string{"pandas"}, Path: filepath.Join(root, "app.py")},
		record.Record{Imported: []string{"os", "path"}, Path: filepath.Join(root, "app.py")},
		record.Record{Imported: []string{"pandas"}, Path: filepath.Join(root, "lib", "utils.py")},
		record.Record{Imported: []string{"", "", "helpers"}, Path: filepath.Join(root, "app.py")},
	)
	return table
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTable(), Options{})

	if !strings.HasPrefix(dot, "digraph imports {") {
		t.Fatalf("missing digraph header: %q", dot[:30])
	}
	for _, want := range []string{
		`"app.py" [shape=box`,
		filepath.Join("lib", "utils.py"),
		`"pandas" [shape=ellipse`,
		`"os" [shape=ellipse`,
		`"app.py" -> "pandas";`,
		`"app.py" -> "os";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Relative imports have no package node
	if strings.Contains(dot, "helpers") {
		t.Error("relative import leaked into the graph")
	}
}

func TestToDOTExclude(t *testing.T) {
	dot := ToDOT(testTable(), Options{Exclude: []string{"os"}})

	if strings.Contains(dot, `"os"`) {
		t.Error("excluded package still present")
	}
	if !strings.Contains(dot, `"pandas"`) {
		t.Error("non-excluded package missing")
	}
}

func TestToDOTShowCounts(t *testing.T) {
	root := "/proj"
	table := record.NewTable(root)
	table.Append(
		record.Record{Imported: []string{"numpy"}, Path: filepath.Join(root, "a.py"), Original: "import numpy"},
		record.Record{Imported: []string{"numpy", "linalg"}, Path: filepath.Join(root, "a.py"), Original: "from numpy import linalg"},
	)

	dot := ToDOT(table, Options{ShowCounts: true})
	if !strings.Contains(dot, `"a.py" -> "numpy" [label="2"];`) {
		t.Errorf("missing counted edge label in:\n%s", dot)
	}

	// Single-statement edges stay unlabeled even with counts enabled
	dot = ToDOT(testTable(), Options{ShowCounts: true})
	if strings.Contains(dot, `"app.py" -> "os" [label=`) {
		t.Error("count label on a single-statement edge")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	table := testTable()
	first := ToDOT(table, Options{})
	for i := 0; i < 5; i++ {
		if got := ToDOT(table, Options{}); got != first {
			t.Fatal("repeated runs produced different DOT output")
		}
	}
}

func TestRelLabel(t *testing.T) {
	root := filepath.Join("/proj")
	if got := relLabel(root, filepath.Join(root, "sub", "x.py")); got != filepath.Join("sub", "x.py") {
		t.Errorf("relLabel = %q", got)
	}
	// Paths outside the root keep their full form
	outside := filepath.Join("/elsewhere", "x.py")
	if got := relLabel(root, outside); got != outside {
		t.Errorf("relLabel outside root = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not rewritten: %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("point units survived: %s", out)
	}

	// Input without a viewBox passes through unchanged
	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("svg without viewBox was modified")
	}
}

// Package record defines the import record table produced by scanning.
//
// Each [Record] represents exactly one imported name extracted from exactly
// one import statement. Multi-name statements (`import a, b`) expand to
// multiple records sharing the same original text. Records are collected
// into an ordered [Table]; insertion order reflects file-system traversal
// order, then statement order within a file, then name order within a
// statement.
package record

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Record is one imported name extracted from one import statement.
type Record struct {
	// Imported holds the dotted import path split into segments, outermost
	// package first. For `from a.b import c` this is ["a", "b", "c"].
	// Relative imports yield an empty first segment.
	Imported []string

	// Alias is the `as` name, empty if none.
	Alias string

	// Original is the raw statement text the name was extracted from.
	Original string

	// Path is the full path of the file containing the statement.
	Path string

	// File is the base name of the file (e.g. "utils.py").
	File string

	// Filename is the base name up to the first dot (e.g. "utils").
	Filename string

	// Extension is the file extension without a dot ("py" or "ipynb").
	Extension string

	// Directory is the directory containing the file.
	Directory string
}

// Package returns the top-level package being imported (the first path
// segment), or the empty string for relative imports.
func (r Record) Package() string {
	if len(r.Imported) == 0 {
		return ""
	}
	return r.Imported[0]
}

// Equal reports whether two records are identical in every field.
func (r Record) Equal(other Record) bool {
	return r.Alias == other.Alias &&
		r.Original == other.Original &&
		r.Path == other.Path &&
		r.File == other.File &&
		r.Filename == other.Filename &&
		r.Extension == other.Extension &&
		r.Directory == other.Directory &&
		slices.Equal(r.Imported, other.Imported)
}

// Table is an ordered collection of import records plus scan metadata.
type Table struct {
	// RunID uniquely identifies the scan that produced this table.
	RunID string

	// Root is the path the scan started from.
	Root string

	// ScannedAt is when the scan ran.
	ScannedAt time.Time

	// Records holds the rows in insertion order.
	Records []Record
}

// NewTable creates an empty table for a scan of root, assigning a fresh
// run ID and timestamp.
func NewTable(root string) *Table {
	return &Table{
		RunID:     uuid.NewString(),
		Root:      root,
		ScannedAt: time.Now().UTC(),
	}
}

// Append adds records to the table, preserving insertion order.
func (t *Table) Append(records ...Record) {
	t.Records = append(t.Records, records...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Records) }

// Width returns the maximum number of import path segments across all rows.
// Serialized tables carry imported_0 .. imported_{Width-1} columns.
func (t *Table) Width() int {
	w := 0
	for _, r := range t.Records {
		if len(r.Imported) > w {
			w = len(r.Imported)
		}
	}
	return w
}

// Packages returns the distinct top-level packages in first-seen order.
func (t *Table) Packages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records {
		p := r.Package()
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

package analyze

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"pyscan/pkg/record"
	"pyscan/pkg/scan"
)

// Analyzer computes statistics over the import record table of a
// directory tree. The underlying table is scanned lazily on first use
// and reused by subsequent calls.
type Analyzer struct {
	// Exclude lists top-level package names left out of frequency
	// results when FrequencyOptions.ApplyExclude is set. Callers may
	// mutate it between calls.
	Exclude []string

	scanner *scan.Scanner

	table      *record.Table
	clean      []record.Record
	ownResult  []record.Record
	ownModules []string
}

// New creates an Analyzer rooted at path. It fails if the path does not
// exist.
func New(path string) (*Analyzer, error) {
	s, err := scan.New(path)
	if err != nil {
		return nil, err
	}
	return &Analyzer{scanner: s}, nil
}

// FromTable creates an Analyzer over an already scanned table, for
// example one re-imported from a JSON export. No filesystem access
// happens; the table is served as-is.
func FromTable(t *record.Table) *Analyzer {
	return &Analyzer{table: t}
}

// SetLogger routes scanner warnings to l.
func (a *Analyzer) SetLogger(l *log.Logger) {
	if a.scanner != nil {
		a.scanner.Logger = l
	}
}

// Root returns the scanned root path.
func (a *Analyzer) Root() string {
	if a.scanner == nil {
		return a.table.Root
	}
	return a.scanner.Root
}

// Table returns the full import record table, scanning on first call.
func (a *Analyzer) Table(ctx context.Context) (*record.Table, error) {
	if a.table == nil {
		t, err := a.scanner.Scan(ctx)
		if err != nil {
			return nil, err
		}
		a.table = t
	}
	return a.table, nil
}

// CleanRecords returns the table rows with exact duplicates and relative
// imports (empty first segment) removed.
func (a *Analyzer) CleanRecords(ctx context.Context) ([]record.Record, error) {
	if a.clean != nil {
		return a.clean, nil
	}

	table, err := a.Table(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	clean := make([]record.Record, 0, len(table.Records))
	for _, r := range table.Records {
		if r.Package() == "" {
			continue
		}
		key := dedupeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		clean = append(clean, r)
	}

	a.clean = clean
	return a.clean, nil
}

// dedupeKey builds a collision-safe identity string over all record fields.
func dedupeKey(r record.Record) string {
	parts := append([]string{}, r.Imported...)
	parts = append(parts, r.Alias, r.Original, r.Path)
	return strings.Join(parts, "\x00")
}

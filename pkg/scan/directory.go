package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"pyscan/pkg/errors"
	"pyscan/pkg/record"
)

// Scanner walks a directory tree and builds the import record table.
// The root may also be a single .py or .ipynb file.
type Scanner struct {
	// Root is the path to scan.
	Root string

	// Logger receives warnings about unreadable files. If nil, the
	// default logger is used.
	Logger *log.Logger
}

// New creates a Scanner for root. It fails if the path does not exist.
func New(root string) (*Scanner, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "path %q does not exist", root)
	}
	return &Scanner{Root: root}, nil
}

// Scan walks the tree and returns one record per imported name.
// Unreadable or malformed files are logged and skipped; they contribute
// zero rows rather than failing the scan.
func (s *Scanner) Scan(ctx context.Context) (*record.Table, error) {
	paths, err := s.Paths()
	if err != nil {
		return nil, err
	}

	table := record.NewTable(s.Root)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := ParseFile(path)
		if err != nil {
			// Zip extraction artifacts on macOS produce unreadable
			// shadow files; skip those without noise.
			if !strings.Contains(path, "__MACOSX") {
				s.logger().Warnf("Skipping %s: %v", path, err)
			}
			continue
		}

		appendRecords(table, f)
	}

	return table, nil
}

// Paths returns the .py and .ipynb files under Root in traversal order.
// If Root is itself a file, it is the only entry.
func (s *Scanner) Paths() ([]string, error) {
	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", s.Root)
	}

	if !info.IsDir() {
		return []string{s.Root}, nil
	}

	var paths []string
	err = filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger().Warnf("Skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if sourceFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *Scanner) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// sourceFile reports whether name is a Python source file or notebook.
func sourceFile(name string) bool {
	return strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".ipynb")
}

// appendRecords expands a parsed file into table rows, one per imported name.
func appendRecords(table *record.Table, f *File) {
	base := filepath.Base(f.Path)
	filename := strings.Split(base, ".")[0]
	dir := filepath.Dir(f.Path)

	for _, st := range f.Statements {
		for _, name := range st.Names {
			table.Append(record.Record{
				Imported:  name.Segments,
				Alias:     name.Alias,
				Original:  st.Original,
				Path:      f.Path,
				File:      base,
				Filename:  filename,
				Extension: f.Extension,
				Directory: dir,
			})
		}
	}
}

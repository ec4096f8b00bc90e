package scan

import (
	"os"
	"regexp"
	"strings"

	"pyscan/pkg/errors"
)

// commentRE strips triple-quoted strings and # line comments before
// statement extraction. Removing docstrings first keeps import examples
// inside documentation from being counted.
var commentRE = regexp.MustCompile(`(?s:""".*?""")|(?s:'''.*?''')|#[^\n]*`)

// File holds the import statements extracted from one source file.
type File struct {
	// Path is the full path of the file.
	Path string

	// Extension is the final dot-separated component ("py" or "ipynb").
	Extension string

	// Statements holds the parsed import statements in source order.
	Statements []Statement
}

// HasImports reports whether any import statements were found.
func (f *File) HasImports() bool { return len(f.Statements) > 0 }

// ParseFile reads a Python file or notebook and extracts its import
// statements. Notebooks contribute only their code cells.
func ParseFile(path string) (*File, error) {
	f := &File{Path: path, Extension: extensionOf(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}

	code := string(data)
	if f.Extension == "ipynb" {
		code, err = notebookCode(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "parse notebook %s", path)
		}
	}

	f.Statements = extractStatements(code)
	return f, nil
}

// extractStatements strips comments from code and parses every line that
// begins an import statement.
func extractStatements(code string) []Statement {
	if code == "" {
		return nil
	}
	code = commentRE.ReplaceAllString(code, "")

	var out []Statement
	for _, line := range strings.Split(code, "\n") {
		if importLineRE.MatchString(line) {
			out = append(out, ParseStatement(strings.TrimSpace(line)))
		}
	}
	return out
}

// extensionOf returns the final dot-separated component of the file name.
func extensionOf(path string) string {
	parts := strings.Split(path, ".")
	return parts[len(parts)-1]
}

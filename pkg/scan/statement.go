package scan

import (
	"regexp"
	"strings"
)

var (
	// importLineRE matches lines that begin an import statement,
	// optionally preceded by whitespace (indented imports count).
	importLineRE = regexp.MustCompile(`^\s*(import|from) `)

	// fromImportRE splits a statement into its `from` and `import` parts.
	// The from clause is optional; the import part carries the name list.
	// The \b keeps module names like importlib from being split mid-word.
	fromImportRE = regexp.MustCompile(`(?:from\s+(\S+)\s+)?import\b\s*(.*)`)

	// aliasRE splits a trailing `as` alias off an imported name.
	aliasRE = regexp.MustCompile(`(.*?)\bas\b( .*)`)
)

// Name is a single imported name within a statement.
type Name struct {
	// Segments is the dotted import path split into components,
	// outermost package first.
	Segments []string

	// Alias is the `as` name, empty if none.
	Alias string
}

// Statement is a parsed import statement. One statement can import several
// names (`import a, b` or `from x import c, d`), each with its own alias.
type Statement struct {
	// Original is the raw statement text.
	Original string

	// From is the module path of the `from` clause, empty for plain imports.
	From string

	// Names holds one entry per imported name.
	Names []Name
}

// ParseStatement parses a single import statement into its names.
//
// The from-clause path is prepended to each name, so `from a.b import c`
// yields segments ["a", "b", "c"]. A relative import like `from . import x`
// produces an empty first segment, which the analyzer later filters out.
// Parenthesis characters from multi-line import forms are stripped.
func ParseStatement(text string) Statement {
	st := Statement{Original: text}

	m := fromImportRE.FindStringSubmatch(text)
	if m == nil {
		// A line starting with `from` but missing the import keyword.
		// Emit a single empty name so the row is visible to cleaning.
		st.Names = []Name{{Segments: []string{""}}}
		return st
	}

	from := cleanPart(m[1])
	imports := cleanPart(m[2])
	st.From = from

	var fromSegs []string
	if from != "" {
		fromSegs = strings.Split(from, ".")
	}

	for _, item := range strings.Split(imports, ",") {
		item = strings.TrimSpace(item)
		segs := append(append([]string(nil), fromSegs...), strings.Split(item, ".")...)
		alias := ""
		last := segs[len(segs)-1]
		if am := aliasRE.FindStringSubmatch(last); am != nil {
			segs[len(segs)-1] = strings.TrimSpace(am[1])
			alias = strings.TrimSpace(am[2])
		}
		st.Names = append(st.Names, Name{Segments: segs, Alias: alias})
	}

	return st
}

// cleanPart trims a regex capture and removes parenthesis characters left
// over from parenthesized import lists.
func cleanPart(s string) string {
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return strings.TrimSpace(s)
}

// Package analyze computes statistics over scanned import tables.
//
// The [Analyzer] wraps a directory scan and derives cleaned views of the
// record table: duplicates and relative imports removed, locally authored
// ("own") modules optionally substituted by their inner imports, and
// frequency counts by top-level package with a configurable exclude list.
// It can also diff observed imports against the dependencies declared in
// pyproject.toml.
package analyze

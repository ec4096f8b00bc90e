// Package scan extracts Python import statements from directory trees.
//
// The scanner walks a root directory collecting .py files and .ipynb
// notebooks, strips comments and docstrings, matches import lines with
// regular expressions, and expands each statement into one entry per
// imported name. Results are collected into a [record.Table].
//
// # Usage
//
//	s, err := scan.New("./myproject")
//	if err != nil {
//	    return err
//	}
//	table, err := s.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, r := range table.Records {
//	    fmt.Println(r.Package(), r.Original)
//	}
//
// Scanning is synchronous and single-threaded; unreadable files are logged
// and contribute zero rows.
package scan

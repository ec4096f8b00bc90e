// Package pkg provides the core libraries for pyscan import analysis.
//
// # Overview
//
// Pyscan walks a Python project tree, extracts import statements from
// scripts and notebooks, and turns them into frequency tables and
// visualizations. The pkg directory is organized into five main areas:
//
//  1. [scan] - Import extraction (statements, files, directory walks)
//  2. [analyze] - Record cleaning, own-module substitution, frequencies
//  3. [render] - Visualization (word cloud, spiral chart, import graph)
//  4. [pipeline] - Orchestration (scan → analyze → render) with caching
//  5. [server] - HTTP exposure of results and plots
//
// # Architecture
//
// The typical data flow through pyscan:
//
//	Project tree (.py / .ipynb)
//	         ↓
//	    [scan] package (extract import statements)
//	         ↓
//	    [record] package (tabular import records)
//	         ↓
//	    [analyze] package (clean, substitute own modules, count)
//	         ↓
//	    [render] package (cloud, spiral, graph)
//	         ↓
//	    SVG/PNG/PDF/DOT output
//
// # Quick Start
//
// Scan a project and compute import frequencies:
//
//	import (
//	    "context"
//	    "pyscan/pkg/analyze"
//	)
//
//	analyzer, _ := analyze.New("./myproject")
//	freqs, _ := analyzer.Frequencies(context.Background(),
//	    analyze.DefaultFrequencyOptions())
//	for _, f := range freqs {
//	    fmt.Printf("%s: %d\n", f.Name, f.Count)
//	}
//
// Or run the complete pipeline with artifact caching:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Root:    "./myproject",
//	    Plot:    pipeline.PlotCloud,
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// [scan] - Statement parsing and tree walking. Handles plain scripts,
// Jupyter notebooks, comment and docstring stripping, aliases, and
// multi-name imports.
//
// [record] - The tabular import record model shared by all stages.
//
// [analyze] - Cleaning (dedupe, drop relative imports), own-module
// substitution, frequency tables, and pyproject.toml comparison.
//
// [render] - SVG generation for word clouds, spiral bar charts, and
// Graphviz import graphs, plus PDF/PNG conversion.
//
// [pipeline] - The scan → analyze → render flow used by CLI and server,
// with content-addressed artifact caching.
//
// [server] - HTTP endpoints for frequencies, the record table, and
// plots, with LRU memoization and optional filesystem watching.
//
// [cache] - File, Redis, and null cache backends for rendered artifacts.
//
// [io] - JSON and CSV export/import of record tables.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hook interfaces for instrumenting scans, renders,
// cache operations, and HTTP serving.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/scan/...       # Specific package
//
// [scan]: https://pkg.go.dev/pyscan/pkg/scan
// [record]: https://pkg.go.dev/pyscan/pkg/record
// [analyze]: https://pkg.go.dev/pyscan/pkg/analyze
// [render]: https://pkg.go.dev/pyscan/pkg/render
// [pipeline]: https://pkg.go.dev/pyscan/pkg/pipeline
// [server]: https://pkg.go.dev/pyscan/pkg/server
// [cache]: https://pkg.go.dev/pyscan/pkg/cache
// [io]: https://pkg.go.dev/pyscan/pkg/io
// [errors]: https://pkg.go.dev/pyscan/pkg/errors
// [observability]: https://pkg.go.dev/pyscan/pkg/observability
package pkg

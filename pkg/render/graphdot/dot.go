// Package graphdot renders the file-to-package import graph with Graphviz.
//
// Every scanned source file and every imported top-level package becomes
// a node; each import statement contributes one edge. The DOT output can
// be rendered to SVG in-process via goccy/go-graphviz, then converted
// onward with [pyscan/pkg/render.ToPDF] or [pyscan/pkg/render.ToPNG].
package graphdot

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"pyscan/pkg/record"
)

// Options configures DOT generation.
type Options struct {
	// Exclude lists top-level packages left out of the graph, typically
	// ubiquitous stdlib modules that would clutter it.
	Exclude []string

	// ShowCounts appends import counts to edge labels when an edge
	// represents more than one statement.
	ShowCounts bool
}

// ToDOT converts an import table to Graphviz DOT format. File nodes are
// filled boxes labeled with paths relative to the scan root; package
// nodes are ellipses.
func ToDOT(table *record.Table, opts Options) string {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	type edge struct{ file, pkg string }
	edgeCount := make(map[edge]int)
	files := make(map[string]bool)
	pkgs := make(map[string]bool)

	for _, r := range table.Records {
		pkg := r.Package()
		if pkg == "" || excluded[pkg] {
			continue
		}
		file := relLabel(table.Root, r.Path)
		files[file] = true
		pkgs[pkg] = true
		edgeCount[edge{file, pkg}]++
	}

	var buf bytes.Buffer
	buf.WriteString("digraph imports {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for _, f := range sortedKeys(files) {
		fmt.Fprintf(&buf, "  %q [shape=box, style=\"rounded,filled\", fillcolor=lightyellow];\n", f)
	}
	for _, p := range sortedKeys(pkgs) {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, style=filled, fillcolor=lightblue];\n", p)
	}

	buf.WriteString("\n")
	edges := make([]edge, 0, len(edgeCount))
	for e := range edgeCount {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].file != edges[j].file {
			return edges[i].file < edges[j].file
		}
		return edges[i].pkg < edges[j].pkg
	})
	for _, e := range edges {
		if n := edgeCount[e]; opts.ShowCounts && n > 1 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"%d\"];\n", e.file, e.pkg, n)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.file, e.pkg)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// relLabel shortens a file path to be relative to the scan root.
func relLabel(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header so the image scales
// to its container instead of using fixed point dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Package pipeline provides the core scan → analyze → render pipeline.
//
// This package implements the complete flow shared by the CLI and the
// HTTP server. By centralizing this logic, we ensure consistent behavior
// across entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Scan: walk the tree and build the import record table
//  2. Analyze: clean the table and compute frequencies
//  3. Render: generate a plot in one or more formats (SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Root:    "./myproject",
//	    Plot:    pipeline.PlotCloud,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"pyscan/pkg/analyze"
	"pyscan/pkg/errors"
	"pyscan/pkg/record"
	"pyscan/pkg/render/styles"
)

// Plot kinds.
const (
	PlotCloud  = "cloud"
	PlotSpiral = "spiral"
	PlotGraph  = "graph"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// ValidPlots is the set of supported plot kinds.
var ValidPlots = map[string]bool{
	PlotCloud:  true,
	PlotSpiral: true,
	PlotGraph:  true,
}

// Defaults shared by CLI and server.
const (
	// DefaultTop is how many packages a spiral chart shows.
	DefaultTop = 25

	// DefaultPNGScale renders PNGs at 2x resolution.
	DefaultPNGScale = 2.0
)

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Scan + analyze options
	Root              string   `json:"root"`
	Exclude           []string `json:"exclude,omitempty"`
	ProcessOwnModules bool     `json:"process_own_modules"`

	// Table, when set, skips scanning and analyzes this table instead.
	// Tables re-imported from a JSON export plug in here.
	Table *record.Table `json:"-"`

	// Plot selection
	Plot    string   `json:"plot,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Shared plot options
	Colormap string  `json:"colormap,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`

	// Cloud options
	MaxWords int    `json:"max_words,omitempty"`
	Seed     uint64 `json:"seed,omitempty"`

	// Spiral options
	Top    int    `json:"top,omitempty"`
	ZeroAt string `json:"zero_at,omitempty"`

	// Graph options
	ShowCounts bool `json:"show_counts,omitempty"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Root == "" && o.Table == nil {
		return errors.New(errors.ErrCodeInvalidPath, "root path is required")
	}
	if o.Plot == "" {
		o.Plot = PlotCloud
	}
	if !ValidPlots[o.Plot] {
		return errors.New(errors.ErrCodeInvalidOption,
			"invalid plot kind %q (must be one of: cloud, spiral, graph)", o.Plot)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format %q (must be one of: svg, png, pdf, dot)", f)
		}
		if f == FormatDOT && o.Plot != PlotGraph {
			return errors.New(errors.ErrCodeInvalidFormat, "dot output is only available for graph plots")
		}
	}
	if o.Colormap == "" {
		o.Colormap = styles.DefaultColormap
	}
	if err := styles.ValidateColormap(o.Colormap); err != nil {
		return err
	}
	if o.Top <= 0 {
		o.Top = DefaultTop
	}
	if o.ZeroAt == "" {
		o.ZeroAt = "NE"
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table is the scanned import record table.
	Table *record.Table

	// TableHash is the content hash of the table.
	TableHash string

	// Frequencies is the computed frequency table.
	Frequencies []analyze.Frequency

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FileCount   int
	RowCount    int
	ScanTime    time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

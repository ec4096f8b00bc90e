package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"pyscan/pkg/analyze"
	"pyscan/pkg/cache"
	"pyscan/pkg/observability"
	"pyscan/pkg/record"
	"pyscan/pkg/render"
	"pyscan/pkg/render/cloud"
	"pyscan/pkg/render/graphdot"
	"pyscan/pkg/render/spiral"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results between runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete scan → analyze → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	analyzer, err := r.Analyze(ctx, opts, result)
	if err != nil {
		return nil, err
	}

	if err := r.renderInto(ctx, analyzer, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Analyze runs the scan and frequency stages, filling table and
// frequency fields of result. The returned analyzer can serve further
// queries over the same table.
func (r *Runner) Analyze(ctx context.Context, opts Options, result *Result) (*analyze.Analyzer, error) {
	var analyzer *analyze.Analyzer
	if opts.Table != nil {
		analyzer = analyze.FromTable(opts.Table)
	} else {
		var err error
		analyzer, err = analyze.New(opts.Root)
		if err != nil {
			return nil, err
		}
	}
	analyzer.SetLogger(r.Logger)
	analyzer.Exclude = opts.Exclude

	start := time.Now()
	observability.Scan().OnScanStart(ctx, analyzer.Root())
	table, err := analyzer.Table(ctx)
	scanTime := time.Since(start)
	observability.Scan().OnScanComplete(ctx, analyzer.Root(), fileCount(table), table.Len(), scanTime, err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	observability.Scan().OnAnalyzeStart(ctx, analyzer.Root())
	freqs, err := analyzer.Frequencies(ctx, analyze.FrequencyOptions{
		ProcessOwnModules: opts.ProcessOwnModules,
		ApplyExclude:      true,
	})
	analyzeTime := time.Since(start)
	observability.Scan().OnAnalyzeComplete(ctx, analyzer.Root(), len(freqs), analyzeTime, err)
	if err != nil {
		return nil, err
	}

	result.Table = table
	result.TableHash = tableHash(table)
	result.Frequencies = freqs
	result.Stats.FileCount = fileCount(table)
	result.Stats.RowCount = table.Len()
	result.Stats.ScanTime = scanTime
	result.Stats.AnalyzeTime = analyzeTime
	return analyzer, nil
}

// renderInto renders the requested plot into every requested format,
// reusing cached artifacts where possible.
func (r *Runner) renderInto(ctx context.Context, analyzer *analyze.Analyzer, opts Options, result *Result) error {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Plot, opts.Formats)

	allHit := true
	missing := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.artifactKey(result.TableHash, opts, format)
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warnf("Cache read failed: %v", err)
		}
		if hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			result.Artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allHit = false
		missing = append(missing, format)
	}

	var renderErr error
	if len(missing) > 0 {
		renderErr = r.renderMissing(ctx, analyzer, opts, result, missing)
	}

	renderTime := time.Since(start)
	result.Stats.RenderTime = renderTime
	result.CacheInfo.RenderHit = allHit
	observability.Render().OnRenderComplete(ctx, opts.Plot, opts.Formats, renderTime, renderErr)
	return renderErr
}

func (r *Runner) renderMissing(ctx context.Context, analyzer *analyze.Analyzer, opts Options, result *Result, formats []string) error {
	svg, dot, err := r.renderBase(ctx, analyzer, opts, result)
	if err != nil {
		return err
	}

	for _, format := range formats {
		var data []byte
		switch format {
		case FormatSVG:
			data = svg
		case FormatDOT:
			data = dot
		case FormatPNG:
			data, err = render.ToPNG(svg, DefaultPNGScale)
		case FormatPDF:
			data, err = render.ToPDF(svg)
		}
		if err != nil {
			return fmt.Errorf("convert to %s: %w", format, err)
		}

		result.Artifacts[format] = data
		key := r.artifactKey(result.TableHash, opts, format)
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Warnf("Cache write failed: %v", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return nil
}

// renderBase produces the SVG (and, for graph plots, DOT) for the run.
func (r *Runner) renderBase(ctx context.Context, analyzer *analyze.Analyzer, opts Options, result *Result) (svg, dot []byte, err error) {
	switch opts.Plot {
	case PlotCloud:
		words := make([]cloud.Word, len(result.Frequencies))
		for i, f := range result.Frequencies {
			words[i] = cloud.Word{Text: f.Name, Weight: float64(f.Count)}
		}
		svg, err = cloud.Render(words, cloud.Options{
			Width:    opts.Width,
			Height:   opts.Height,
			MaxWords: opts.MaxWords,
			Colormap: opts.Colormap,
			Seed:     opts.Seed,
		})
		return svg, nil, err

	case PlotSpiral:
		asc := analyze.Ascending(analyze.Top(result.Frequencies, opts.Top))
		labels := make([]string, len(asc))
		values := make([]float64, len(asc))
		for i, f := range asc {
			labels[i] = f.Name
			values[i] = float64(f.Count)
		}
		svg, err = spiral.Render(labels, values, spiral.Options{
			Width:    opts.Width,
			Height:   opts.Height,
			ZeroAt:   opts.ZeroAt,
			Colormap: opts.Colormap,
		})
		return svg, nil, err

	case PlotGraph:
		d := graphdot.ToDOT(result.Table, graphdot.Options{
			Exclude:    opts.Exclude,
			ShowCounts: opts.ShowCounts,
		})
		svg, err = graphdot.RenderSVG(ctx, d)
		return svg, []byte(d), err
	}
	return nil, nil, fmt.Errorf("unknown plot kind %q", opts.Plot)
}

// artifactKey builds the cache key for one rendered format.
func (r *Runner) artifactKey(tableHash string, opts Options, format string) string {
	return cache.ArtifactKey(tableHash, opts.Plot, format, opts.Colormap,
		opts.Width, opts.Height, opts.MaxWords, opts.Seed, opts.Top,
		opts.ZeroAt, opts.ShowCounts, opts.Exclude, opts.ProcessOwnModules)
}

// tableHash fingerprints the table contents for cache keys. Run ID and
// timestamp are deliberately left out so re-scans of an unchanged tree
// hit the cache.
func tableHash(t *record.Table) string {
	h := make([]byte, 0, t.Len()*32)
	for _, r := range t.Records {
		for _, seg := range r.Imported {
			h = append(h, seg...)
			h = append(h, 0)
		}
		h = append(h, r.Alias...)
		h = append(h, 0)
		h = append(h, r.Path...)
		h = append(h, 0)
		h = append(h, r.Original...)
		h = append(h, 1)
	}
	return cache.Hash(h)
}

// fileCount counts distinct file paths in the table.
func fileCount(t *record.Table) int {
	seen := make(map[string]bool)
	for _, r := range t.Records {
		seen[r.Path] = true
	}
	return len(seen)
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "pyscan/pkg/io"
	"pyscan/pkg/pipeline"
	"pyscan/pkg/record"
)

// plotOpts holds the command-line flags shared by the plot commands.
type plotOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: svg, png, pdf, dot
	colormap string   // color ramp name
	exclude  []string // packages to drop before plotting
	noOwn    bool     // skip own-module substitution
	noCache  bool     // bypass the artifact cache
	redis    string   // Redis address for the artifact cache
	width    float64  // frame width in pixels
	height   float64  // frame height in pixels

	// cloud
	maxWords int
	seed     uint64

	// spiral
	top    int
	zeroAt string

	// graph
	counts bool
}

// addPlotFlags registers the flags shared by all plot commands.
func addPlotFlags(cmd *cobra.Command, opts *plotOpts, formatsStr, excludeStr *string) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.colormap, "colormap", "", "color ramp: viridis (default), plasma, blues, greens, greys")
	cmd.Flags().StringVar(excludeStr, "exclude", "", "comma-separated packages to exclude")
	cmd.Flags().BoolVar(&opts.noOwn, "no-own", false, "count own modules directly instead of substituting their imports")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the artifact cache (e.g. localhost:6379)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height")
}

// cloudCommand creates the cloud command.
func (c *CLI) cloudCommand() *cobra.Command {
	opts := plotOpts{}
	var formatsStr, excludeStr string

	cmd := &cobra.Command{
		Use:   "cloud <path>",
		Short: "Render import frequencies as a word cloud",
		Long: `Cloud renders the import frequency table as a word cloud. Font size
scales with import count and placement follows a spiral search from the
center outward.

The path is either a project tree to scan or a JSON table written by
"pyscan scan -o imports.json".

Examples:
  pyscan cloud ./myproject
  pyscan cloud imports.json
  pyscan cloud ./myproject -o imports.png -f png --colormap plasma
  pyscan cloud ./myproject --seed 7 --max-words 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.exclude = splitList(excludeStr)
			return c.runPlot(cmd, args[0], pipeline.PlotCloud, opts)
		},
	}

	addPlotFlags(cmd, &opts, &formatsStr, &excludeStr)
	cmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "maximum words to draw (default 200)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "layout seed (default 42)")

	return cmd
}

// spiralCommand creates the spiral command.
func (c *CLI) spiralCommand() *cobra.Command {
	opts := plotOpts{}
	var formatsStr, excludeStr string

	cmd := &cobra.Command{
		Use:   "spiral <path>",
		Short: "Render import frequencies as a spiral bar chart",
		Long: `Spiral renders the most frequent imports as bars on a polar axis,
winding counterclockwise from the zero point with bar height scaled to
import count.

Examples:
  pyscan spiral ./myproject
  pyscan spiral ./myproject --top 15 --zero-at N
  pyscan spiral ./myproject -o spiral.pdf -f pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.exclude = splitList(excludeStr)
			return c.runPlot(cmd, args[0], pipeline.PlotSpiral, opts)
		},
	}

	addPlotFlags(cmd, &opts, &formatsStr, &excludeStr)
	cmd.Flags().IntVar(&opts.top, "top", 0, "number of packages to show (default 25)")
	cmd.Flags().StringVar(&opts.zeroAt, "zero-at", "", "compass point of the zero angle: N, NE (default), E, SE, S, SW, W, NW")

	return cmd
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := plotOpts{}
	var formatsStr, excludeStr string

	cmd := &cobra.Command{
		Use:   "graph <path>",
		Short: "Render the file-to-package import graph",
		Long: `Graph renders a bipartite graph of source files and the packages they
import, laid out with Graphviz.

Examples:
  pyscan graph ./myproject
  pyscan graph ./myproject -f dot -o imports.dot
  pyscan graph ./myproject --counts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.exclude = splitList(excludeStr)
			return c.runPlot(cmd, args[0], pipeline.PlotGraph, opts)
		},
	}

	addPlotFlags(cmd, &opts, &formatsStr, &excludeStr)
	cmd.Flags().BoolVar(&opts.counts, "counts", false, "label edges with import counts")

	return cmd
}

// runPlot executes the pipeline for a plot command and writes the
// resulting artifacts. The path argument is either a project tree to
// scan or a JSON table previously written by "pyscan scan".
func (c *CLI) runPlot(cmd *cobra.Command, path, plot string, opts plotOpts) error {
	ctx := cmd.Context()

	var table *record.Table
	root := path
	message := fmt.Sprintf("Scanning %s...", path)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		t, err := pkgio.ImportJSON(path)
		if err != nil {
			return err
		}
		table = t
		root = filepath.Dir(path)
		message = fmt.Sprintf("Rendering %s...", path)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if opts.colormap == "" {
		opts.colormap = cfg.Colormap
	}
	if opts.seed == 0 {
		opts.seed = cfg.Seed
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, message)
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Root:              root,
		Table:             table,
		Exclude:           append(cfg.Exclude, opts.exclude...),
		ProcessOwnModules: cfg.ProcessOwnModules() && !opts.noOwn,
		Plot:              plot,
		Formats:           opts.formats,
		Colormap:          opts.colormap,
		Width:             opts.width,
		Height:            opts.height,
		MaxWords:          opts.maxWords,
		Seed:              opts.seed,
		Top:               opts.top,
		ZeroAt:            opts.zeroAt,
		ShowCounts:        opts.counts,
	})
	if err != nil {
		if spin.Cancelled() {
			spin.Stop()
			return err
		}
		spin.StopWithError(fmt.Sprintf("Plot failed: %v", err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Rendered %s plot", plot))
	printScanStats(result.Stats.FileCount, result.Stats.RowCount, result.CacheInfo.RenderHit)

	base := plotBasePath(opts.output, plot)
	for _, format := range opts.formats {
		outPath := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			outPath = opts.output
		}
		if err := os.WriteFile(outPath, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		printFile(outPath)
	}
	return nil
}

// plotBasePath derives the base output path for artifacts. If output has
// a known format extension, it is stripped.
func plotBasePath(output, plot string) string {
	if output == "" {
		return plot
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

package cli

import (
	"github.com/spf13/cobra"

	"pyscan/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string   // listen address
	exclude []string // packages to drop from frequency results
	noOwn   bool     // skip own-module substitution
	noCache bool     // bypass the artifact cache
	redis   string   // Redis address for the artifact cache
	watch   bool     // re-scan when Python sources change
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}
	var excludeStr string

	cmd := &cobra.Command{
		Use:   "serve <path>",
		Short: "Serve scan results and plots over HTTP",
		Long: `Serve exposes frequency tables and plots for one project tree over
HTTP. Responses are memoized in-process; with --watch, changes to
Python sources invalidate them and the next request re-scans.

Endpoints:
  GET /api/frequencies       frequency table as JSON
  GET /api/table             full import record table as JSON
  GET /plot/cloud.svg        word cloud
  GET /plot/spiral.svg       spiral bar chart
  GET /plot/graph.svg        file-to-package graph

Examples:
  pyscan serve ./myproject
  pyscan serve ./myproject --addr :9000 --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.exclude = splitList(excludeStr)
			return c.runServe(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&excludeStr, "exclude", "", "comma-separated packages to exclude")
	cmd.Flags().BoolVar(&opts.noOwn, "no-own", false, "count own modules directly instead of substituting their imports")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the artifact cache (e.g. localhost:6379)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-scan when Python sources change")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, path string, opts serveOpts) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	addr := opts.addr
	if !cmd.Flags().Changed("addr") && cfg.Serve.Addr != "" {
		addr = cfg.Serve.Addr
	}
	watch := opts.watch || cfg.Serve.Watch

	runner, err := c.newRunner(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv, err := server.New(server.Config{
		Addr:              addr,
		Root:              path,
		Exclude:           append(cfg.Exclude, opts.exclude...),
		ProcessOwnModules: cfg.ProcessOwnModules() && !opts.noOwn,
		Watch:             watch,
	}, runner, c.Logger)
	if err != nil {
		return err
	}

	printInfo("Serving %s on http://localhost%s", path, addr)
	printNextStep("Try", "curl http://localhost"+addr+"/api/frequencies")
	return srv.Start(ctx)
}

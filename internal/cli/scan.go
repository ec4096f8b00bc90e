package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyscan/pkg/analyze"
	"pyscan/pkg/errors"
	pkgio "pyscan/pkg/io"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	output string // output file path (stdout if empty)
	format string // json or csv
	clean  bool   // dedupe and drop relative imports
}

// scanCommand creates the scan command.
//
// Scan walks a directory tree, extracts every import statement from
// Python scripts and notebooks, and exports the record table.
func (c *CLI) scanCommand() *cobra.Command {
	opts := scanOpts{format: "json"}

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a project tree and export the import record table",
		Long: `Scan walks a directory tree for Python scripts (.py) and Jupyter
notebooks (.ipynb), extracts their import statements, and exports one
record per imported name.

Examples:
  pyscan scan ./myproject                      # JSON to stdout
  pyscan scan ./myproject -o imports.csv --format csv
  pyscan scan script.py --clean`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: json or csv")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "drop duplicates and relative imports")

	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, path string, opts scanOpts) error {
	if opts.format != "json" && opts.format != "csv" {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be json or csv)", opts.format)
	}

	analyzer, err := analyze.New(path)
	if err != nil {
		return err
	}
	analyzer.SetLogger(c.Logger)

	ctx := cmd.Context()
	prog := newProgress(c.Logger)
	table, err := analyzer.Table(ctx)
	if err != nil {
		return err
	}
	if opts.clean {
		records, err := analyzer.CleanRecords(ctx)
		if err != nil {
			return err
		}
		table.Records = records
	}
	prog.done(fmt.Sprintf("Scanned %s", path))

	if opts.output == "" {
		if opts.format == "csv" {
			return pkgio.WriteCSV(table, os.Stdout)
		}
		return pkgio.WriteJSON(table, os.Stdout)
	}

	if opts.format == "csv" {
		err = pkgio.ExportCSV(table, opts.output)
	} else {
		err = pkgio.ExportJSON(table, opts.output)
	}
	if err != nil {
		return err
	}

	printSuccess("Exported %d import records", table.Len())
	printFile(opts.output)
	printNextStep("Next", fmt.Sprintf("pyscan freq %s", path))
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"pyscan/pkg/analyze"
)

// freqOpts holds the command-line flags for the freq command.
type freqOpts struct {
	top         int      // limit output to the N most frequent packages
	exclude     []string // packages to drop from the result
	noOwn       bool     // skip own-module substitution
	jsonOut     bool     // print JSON instead of a table
	interactive bool     // pick excludes in a TUI
	diff        bool     // compare against pyproject.toml
}

// freqCommand creates the freq command.
func (c *CLI) freqCommand() *cobra.Command {
	opts := freqOpts{}
	var excludeFlag string

	cmd := &cobra.Command{
		Use:   "freq <path>",
		Short: "Show import frequencies for a project tree",
		Long: `Freq counts how often each top-level package is imported across a
project tree. Modules authored inside the tree are substituted by their
own imports, so the counts reflect external usage.

Examples:
  pyscan freq ./myproject
  pyscan freq ./myproject --top 10 --exclude os,sys
  pyscan freq ./myproject --interactive     # pick excludes in a TUI
  pyscan freq ./myproject --diff            # compare with pyproject.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.exclude = splitList(excludeFlag)
			return c.runFreq(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.top, "top", 0, "show only the N most frequent packages")
	cmd.Flags().StringVar(&excludeFlag, "exclude", "", "comma-separated packages to exclude")
	cmd.Flags().BoolVar(&opts.noOwn, "no-own", false, "count own modules directly instead of substituting their imports")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "output JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick excluded packages interactively")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "compare scanned imports with pyproject.toml dependencies")

	return cmd
}

func (c *CLI) runFreq(cmd *cobra.Command, path string, opts freqOpts) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	analyzer, err := analyze.New(path)
	if err != nil {
		return err
	}
	analyzer.SetLogger(c.Logger)
	analyzer.Exclude = append(cfg.Exclude, opts.exclude...)

	ctx := cmd.Context()
	processOwn := cfg.ProcessOwnModules() && !opts.noOwn

	if opts.diff {
		return c.runFreqDiff(cmd, analyzer)
	}

	prog := newProgress(c.Logger)
	freqs, err := analyzer.Frequencies(ctx, analyze.FrequencyOptions{
		ProcessOwnModules: processOwn,
		ApplyExclude:      !opts.interactive,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %s", path))

	if opts.interactive {
		excluded, err := pickExcludes(freqs, analyzer.Exclude)
		if err != nil {
			return err
		}
		analyzer.Exclude = excluded
		freqs, err = analyzer.Frequencies(ctx, analyze.FrequencyOptions{
			ProcessOwnModules: processOwn,
			ApplyExclude:      true,
		})
		if err != nil {
			return err
		}
	}

	freqs = analyze.Top(freqs, opts.top)

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(freqs)
	}

	printFreqTable(freqs)
	return nil
}

// runFreqDiff compares scanned imports with the dependencies declared in
// pyproject.toml.
func (c *CLI) runFreqDiff(cmd *cobra.Command, analyzer *analyze.Analyzer) error {
	unused, undeclared, err := analyzer.DependencyDiff(cmd.Context())
	if err != nil {
		return err
	}

	if len(unused) == 0 && len(undeclared) == 0 {
		printSuccess("Imports and pyproject.toml dependencies match")
		return nil
	}

	if len(unused) > 0 {
		printWarning("Declared but never imported:")
		for _, name := range unused {
			printDetail("%s", name)
		}
	}
	if len(undeclared) > 0 {
		printWarning("Imported but not declared:")
		for _, name := range undeclared {
			printDetail("%s", name)
		}
	}
	return nil
}

// printFreqTable renders frequencies as a two-column table.
func printFreqTable(freqs []analyze.Frequency) {
	if len(freqs) == 0 {
		printInfo("No imports found")
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("PACKAGE", "COUNT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return StyleTitle.Padding(0, 1)
			}
			if col == 1 {
				return StyleNumber.Padding(0, 1).Align(lipgloss.Right)
			}
			return StyleValue.Padding(0, 1)
		})

	for _, f := range freqs {
		t.Row(f.Name, strconv.Itoa(f.Count))
	}
	fmt.Println(t)
}

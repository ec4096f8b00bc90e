package analyze

import (
	"context"
	"slices"
	"sort"
)

// Frequency is one entry of a frequency table: a top-level package name
// and how often it is imported across the scanned tree.
type Frequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FrequencyOptions controls how frequencies are computed.
type FrequencyOptions struct {
	// ProcessOwnModules substitutes locally authored modules with their
	// own imports before counting.
	ProcessOwnModules bool

	// ApplyExclude removes packages listed in Analyzer.Exclude from the
	// result.
	ApplyExclude bool
}

// DefaultFrequencyOptions enables own-module processing and the exclude
// list, matching the analyzer's default behavior.
func DefaultFrequencyOptions() FrequencyOptions {
	return FrequencyOptions{ProcessOwnModules: true, ApplyExclude: true}
}

// Frequencies counts imports by top-level package, sorted by count
// descending. Ties are broken alphabetically so output is deterministic.
func (a *Analyzer) Frequencies(ctx context.Context, opts FrequencyOptions) ([]Frequency, error) {
	records, err := a.CleanRecords(ctx)
	if err != nil {
		return nil, err
	}
	if opts.ProcessOwnModules {
		records, _, err = a.OwnProcessed(ctx)
		if err != nil {
			return nil, err
		}
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Package()]++
	}

	if opts.ApplyExclude {
		for _, name := range a.Exclude {
			delete(counts, name)
		}
	}

	out := make([]Frequency, 0, len(counts))
	for name, count := range counts {
		out = append(out, Frequency{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Top returns the first n entries of freqs, or all of them when n <= 0 or
// exceeds the table size.
func Top(freqs []Frequency, n int) []Frequency {
	if n <= 0 || n >= len(freqs) {
		return freqs
	}
	return freqs[:n]
}

// Ascending returns a copy of freqs sorted by count ascending. Spiral
// plots use ascending values for the winding effect.
func Ascending(freqs []Frequency) []Frequency {
	out := slices.Clone(freqs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Name > out[j].Name
	})
	return out
}

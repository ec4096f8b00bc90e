package analyze

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// depNameRE extracts the distribution name from a PEP 508 requirement
// string like "requests>=2.28" or "click ==8.1".
var depNameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// pyproject is the slice of pyproject.toml needed for declared
// dependencies: PEP 621 [project] lists and the Poetry table.
type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// DeclaredDependencies reads the pyproject.toml at the analyzer root and
// returns the declared distribution names, normalized (lowercase,
// underscores folded to hyphens) and sorted. Returns nil without error if
// no pyproject.toml exists.
func (a *Analyzer) DeclaredDependencies() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(a.Root(), "pyproject.toml"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pp pyproject
	if err := toml.Unmarshal(data, &pp); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		name = normalizeName(name)
		if name == "" || name == "python" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, req := range pp.Project.Dependencies {
		if m := depNameRE.FindStringSubmatch(strings.TrimSpace(req)); len(m) > 1 {
			add(m[1])
		}
	}
	for name := range pp.Tool.Poetry.Dependencies {
		add(name)
	}

	sort.Strings(out)
	return out, nil
}

// DependencyDiff compares declared dependencies against the observed
// import frequencies. It returns declared distributions that are never
// imported and imported packages that are not declared.
//
// Distribution and import names can legitimately differ (pillow installs
// PIL), so the diff is a hint, not a verdict.
func (a *Analyzer) DependencyDiff(ctx context.Context) (unused, undeclared []string, err error) {
	declared, err := a.DeclaredDependencies()
	if err != nil {
		return nil, nil, err
	}

	freqs, err := a.Frequencies(ctx, FrequencyOptions{ProcessOwnModules: true, ApplyExclude: false})
	if err != nil {
		return nil, nil, err
	}

	imported := make(map[string]bool)
	for _, f := range freqs {
		imported[normalizeName(f.Name)] = true
	}

	declaredSet := make(map[string]bool)
	for _, d := range declared {
		declaredSet[d] = true
		if !imported[d] {
			unused = append(unused, d)
		}
	}
	for _, f := range freqs {
		if !declaredSet[normalizeName(f.Name)] {
			undeclared = append(undeclared, f.Name)
		}
	}

	sort.Strings(unused)
	sort.Strings(undeclared)
	return unused, undeclared, nil
}

// normalizeName folds a distribution name to PyPI canonical form.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

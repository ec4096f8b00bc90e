package analyze

import (
	"context"
	"os"
	"sort"
	"strings"

	"pyscan/pkg/record"
)

// ownKey identifies a locally authored module: the imported name together
// with the directory it was imported from.
type ownKey struct {
	module    string
	directory string
}

// OwnProcessed returns the cleaned records with own-module imports
// resolved. An import is an own-module import when its top-level name
// matches a .py file in the same directory as the importing file. Each
// such row is dropped and replaced by the import rows found inside that
// module's file (excluding the module's own own-module imports),
// duplicated once per usage.
//
// Resolution is single-level: imports pulled in from an own module are
// not themselves re-resolved. The second return value lists the own
// module names that were substituted.
func (a *Analyzer) OwnProcessed(ctx context.Context) ([]record.Record, []string, error) {
	if a.ownResult != nil {
		return a.ownResult, a.ownModules, nil
	}

	clean, err := a.CleanRecords(ctx)
	if err != nil {
		return nil, nil, err
	}

	scripts := scriptsByDirectory(clean)

	isOwn := make([]bool, len(clean))
	usage := make(map[ownKey]int)
	var modules []string
	seenModule := make(map[string]bool)

	for i, r := range clean {
		if !scripts[r.Directory][r.Package()] {
			continue
		}
		isOwn[i] = true
		usage[ownKey{r.Package(), r.Directory}]++
		if !seenModule[r.Package()] {
			seenModule[r.Package()] = true
			modules = append(modules, r.Package())
		}
	}

	var result []record.Record
	for i, r := range clean {
		if !isOwn[i] {
			result = append(result, r)
		}
	}

	// Deterministic substitution order.
	keys := make([]ownKey, 0, len(usage))
	for k := range usage {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].module != keys[j].module {
			return keys[i].module < keys[j].module
		}
		return keys[i].directory < keys[j].directory
	})

	for _, k := range keys {
		inner := ownModuleRecords(clean, isOwn, k)
		for n := 0; n < usage[k]; n++ {
			result = append(result, inner...)
		}
	}

	a.ownResult = result
	a.ownModules = modules
	return a.ownResult, a.ownModules, nil
}

// OwnModules returns the names of locally authored modules found during
// own-module processing.
func (a *Analyzer) OwnModules(ctx context.Context) ([]string, error) {
	_, modules, err := a.OwnProcessed(ctx)
	return modules, err
}

// ownModuleRecords collects the external imports declared inside an own
// module's file.
func ownModuleRecords(clean []record.Record, isOwn []bool, k ownKey) []record.Record {
	var out []record.Record
	for i, r := range clean {
		if isOwn[i] {
			continue
		}
		if r.Filename == k.module && r.Directory == k.directory {
			out = append(out, r)
		}
	}
	return out
}

// scriptsByDirectory lists the .py scripts (without extension) residing in
// each directory that appears in the table.
func scriptsByDirectory(records []record.Record) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, r := range records {
		if _, ok := out[r.Directory]; ok {
			continue
		}
		scripts := make(map[string]bool)
		entries, err := os.ReadDir(r.Directory)
		if err == nil {
			for _, e := range entries {
				if name := e.Name(); strings.HasSuffix(name, ".py") {
					scripts[strings.TrimSuffix(name, ".py")] = true
				}
			}
		}
		out[r.Directory] = scripts
	}
	return out
}

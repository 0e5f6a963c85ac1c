package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProjectResult pairs a project name with the outcome of its run.
type ProjectResult struct {
	Project string
	Result  Result
}

// RunAll runs the backup workflow for every immediate subdirectory of root,
// sorted by name. Each project is fully isolated: one failure is recorded
// and later projects still run. The returned error is non-nil if the root
// is unusable or if any project failed, and names every failed project.
func RunAll(ctx context.Context, root string, opts Options) ([]ProjectResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &Error{Stage: StageStart, Kind: KindConfig, Err: fmt.Errorf("resolve projects root %s: %w", root, err)}
	}
	fi, err := os.Stat(absRoot)
	if err != nil || !fi.IsDir() {
		return nil, &Error{Stage: StageStart, Kind: KindConfig, Err: fmt.Errorf("projects root does not exist or is not a directory: %s", absRoot)}
	}
	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, &Error{Stage: StageStart, Kind: KindConfig, Err: fmt.Errorf("read projects root: %w", err)}
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	if len(dirs) == 0 {
		return nil, &Error{Stage: StageStart, Kind: KindConfig, Err: fmt.Errorf("no project directories found in %s", absRoot)}
	}

	results := make([]ProjectResult, 0, len(dirs))
	var failed []string
	for _, name := range dirs {
		projOpts := opts
		projOpts.ProjectDir = filepath.Join(absRoot, name)
		if opts.Out != nil {
			fmt.Fprintf(opts.Out, "\n%s\nStarting backup for project: %s\n%s\n",
				strings.Repeat("=", 72), name, strings.Repeat("=", 72))
		}
		res := Run(ctx, projOpts)
		results = append(results, ProjectResult{Project: name, Result: res})
		if res.Failed() {
			failed = append(failed, fmt.Sprintf("%s: %v", name, res.Err))
		}
	}
	if len(failed) > 0 {
		return results, fmt.Errorf("completed with failures: %s", strings.Join(failed, "; "))
	}
	return results, nil
}

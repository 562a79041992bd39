package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"

	"keymap-tools/internal/types"
)

// sourcePatterns are the files the checker scans in a configuration
// directory: the keymap itself plus any included fragment files.
var sourcePatterns = []string{"*.keymap", "**/*.dtsi"}

type SourceScanAdapter struct{}

func NewSourceScanAdapter() SourceScanAdapter {
	return SourceScanAdapter{}
}

// Scan discovers source files under dir and reads them into memory, in
// a deterministic path order.
func (a SourceScanAdapter) Scan(dir string) ([]types.SourceFile, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("configuration directory not found: %s", dir)).
			WithCause(err)
	}

	seen := map[string]struct{}{}
	var paths []string
	fsys := os.DirFS(dir)
	for _, pattern := range sourcePatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("bad source glob %q", pattern)).
				WithCause(err)
		}
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)

	files := make([]types.SourceFile, 0, len(paths))
	for _, rel := range paths {
		full := filepath.Join(dir, rel)
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("failed to read source file %s", full)).
				WithCause(err)
		}
		files = append(files, types.SourceFile{Path: full, Content: string(data)})
	}
	return files, nil
}

package runner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/platinummonkey/vlint/pkg/linter"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"third_party":  true,
	"build":        true,
	"node_modules": true,
}

func skipDir(name string) bool {
	return (strings.HasPrefix(name, ".") && name != "." && name != "..") || skipDirs[name]
}

// FindFiles expands roots into lintable files. Directories are walked,
// skipping hidden and vendored trees; files named explicitly are kept even
// without a lintable extension. Paths matching cfg's ignore patterns are
// dropped. The result is sorted and free of duplicates.
func FindFiles(cfg *linter.Config, roots ...string) ([]string, error) {
	if cfg == nil {
		cfg = linter.DefaultConfig()
	}
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if cfg.IsIgnored(path) || seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.HasLintableExtension(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

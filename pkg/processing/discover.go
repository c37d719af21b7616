package processing

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/systemstart/stepchain/pkg/api"
)

// DiscoverChains globs root for chain files matching pattern up to maxDepth.
// A maxDepth of -1 means unlimited. 0 means only root itself.
// Results are sorted by path depth (parents before children).
func DiscoverChains(root, pattern string, maxDepth int) ([]*api.ChainFile, error) {
	if pattern == "" {
		pattern = api.DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(absRoot), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %q: %w", pattern, err)
	}

	matches = slices.DeleteFunc(matches, func(m string) bool {
		return maxDepth >= 0 && pathDepth(path.Dir(m)) > maxDepth
	})
	slices.Sort(matches)
	slices.SortStableFunc(matches, func(a, b string) int {
		return pathDepth(path.Dir(a)) - pathDepth(path.Dir(b))
	})

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(absRoot, filepath.FromSlash(m)))
	}
	return loadAll(paths)
}

func loadAll(paths []string) ([]*api.ChainFile, error) {
	chains := make([]*api.ChainFile, 0, len(paths))
	for _, p := range paths {
		c, err := api.LoadChain(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		chains = append(chains, c)
	}
	return chains, nil
}

func pathDepth(p string) int {
	if p == "." || p == "" {
		return 0
	}
	return strings.Count(filepath.ToSlash(p), "/") + 1
}

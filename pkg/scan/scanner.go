// Package scan resolves scope patterns against an HQ root and builds
// filtered trees of directories and markdown files.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/indigotools/hq/pkg/models"
	"github.com/indigotools/hq/pkg/note"
)

// MaxDepth bounds recursion. It also guarantees termination when the
// filesystem contains symlink cycles.
const MaxDepth = 15

// ScanScopes expands each scope pattern under hqPath and scans every
// resulting directory. Roots containing no markdown files anywhere are
// omitted. Result order follows pattern order, then expansion order.
func ScanScopes(hqPath string, scopes []string) ([]*models.TreeNode, error) {
	if !resolvesToDir(hqPath) {
		return nil, fmt.Errorf("HQ path is not a directory: %s", hqPath)
	}

	var results []*models.TreeNode
	for _, scope := range scopes {
		for _, dir := range ExpandScope(hqPath, scope) {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				// The scope may only be reachable through symlink
				// resolution. Scan it anyway but keep reporting the
				// path the caller can address.
				resolved, rerr := filepath.EvalSymlinks(dir)
				if rerr != nil || !resolvesToDir(resolved) {
					continue
				}
				if node := scanDir(dir, 0, MaxDepth); node != nil && node.FileCount > 0 {
					node.Path = dir
					results = append(results, node)
				}
				continue
			}
			if node := scanDir(dir, 0, MaxDepth); node != nil && node.FileCount > 0 {
				results = append(results, node)
			}
		}
	}
	return results, nil
}

// scanDir recursively builds the tree rooted at path. It returns nil
// when the depth bound is exceeded or the directory cannot be read;
// callers prune children whose subtree holds no markdown files.
func scanDir(path string, depth, maxDepth int) *models.TreeNode {
	if depth > maxDepth {
		return nil
	}

	// Read through the resolved target but report the original path.
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		canonical = path
	}

	entries, err := os.ReadDir(canonical)
	if err != nil {
		return nil
	}

	// Directories first, then bytewise by name. Symlinks sort by their
	// link type, matching how they were listed.
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return entries[i].Name() < entries[j].Name()
	})

	node := &models.TreeNode{
		Name:        filepath.Base(path),
		Path:        path,
		IsDirectory: true,
		Depth:       depth,
		Modified:    modifiedSecs(path),
	}

	for _, entry := range entries {
		name := entry.Name()
		if IsExcluded(name) {
			continue
		}

		entryPath := filepath.Join(canonical, name)

		// Follow symlinks; skip broken links and unreadable entries.
		info, err := os.Stat(entryPath)
		if err != nil {
			continue
		}

		if info.IsDir() {
			child := scanDir(entryPath, depth+1, maxDepth)
			if child != nil && child.FileCount > 0 {
				node.FileCount += child.FileCount
				node.Children = append(node.Children, child)
			}
		} else if info.Mode().IsRegular() && strings.HasSuffix(name, ".md") {
			node.FileCount++
			node.Children = append(node.Children, &models.TreeNode{
				Name:     name,
				Path:     entryPath,
				Title:    note.ExtractTitle(entryPath),
				Depth:    depth + 1,
				Modified: modifiedSecs(entryPath),
			})
		}
	}

	return node
}

// modifiedSecs returns the last-modified time in whole seconds since
// epoch, or 0 when metadata is unavailable.
func modifiedSecs(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}

package scan

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandScope expands a scope pattern like "companies/*/knowledge" into
// concrete directories under hqPath. Segments are separated by "/"; a
// single "*" segment matches every non-excluded subdirectory at that
// level. Without a wildcard the joined path is returned unchecked —
// existence is the caller's concern.
func ExpandScope(hqPath, scope string) []string {
	parts := strings.Split(scope, "/")

	pos := -1
	for i, p := range parts {
		if p == "*" {
			pos = i
			break
		}
	}
	if pos < 0 {
		return []string{joinSegments(hqPath, parts)}
	}

	prefix := joinSegments(hqPath, parts[:pos])
	entries, err := os.ReadDir(prefix)
	if err != nil {
		return nil
	}

	suffix := parts[pos+1:]
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		if IsExcluded(entry.Name()) {
			continue
		}
		full := joinSegments(filepath.Join(prefix, entry.Name()), suffix)
		if resolvesToDir(full) {
			dirs = append(dirs, full)
		}
	}
	return dirs
}

func joinSegments(base string, segments []string) string {
	return filepath.Join(append([]string{base}, segments...)...)
}

// resolvesToDir reports whether path is a directory, following symlinks.
func resolvesToDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

package scan

import "strings"

// excludedNames holds directory and file names that are invisible to
// scanning, wildcard expansion and watching alike.
var excludedNames = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	".next":        {},
	".turbo":       {},
	".vercel":      {},
	"target":       {},
	".DS_Store":    {},
	"thumbs.db":    {},
}

// IsExcluded reports whether a path segment name should be skipped.
// Dotfiles and dot-directories are always excluded.
func IsExcluded(name string) bool {
	if _, ok := excludedNames[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".")
}

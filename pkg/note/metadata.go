package note

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigotools/hq/pkg/models"
)

// wordsPerMinute is the reading-speed assumption behind the estimate.
const wordsPerMinute = 200

// Metadata returns word count, estimated reading time, size, modified
// time and symlink-resolution info for one file.
func Metadata(path string) (*models.FileMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	wordCount := len(strings.Fields(string(content)))
	readingTime := wordCount / wordsPerMinute
	if readingTime < 1 {
		readingTime = 1
	}

	meta := &models.FileMetadata{
		WordCount:          wordCount,
		ReadingTimeMinutes: readingTime,
		FileSize:           info.Size(),
		Modified:           info.ModTime().Unix(),
		FilePath:           path,
	}

	meta.SymlinkTarget = symlinkTarget(path)
	meta.SourceRepoName = repoNameFromPath(meta.SymlinkTarget)
	return meta, nil
}

// symlinkTarget returns the resolved path when the file itself is a
// symlink, or when resolution through a symlinked ancestor lands
// somewhere else. Returns "" for plain paths.
func symlinkTarget(path string) string {
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			return resolved
		}
		if target, err := os.Readlink(path); err == nil {
			return target
		}
		return ""
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err == nil && resolved != path {
		return resolved
	}
	return ""
}

// repoNameFromPath extracts a repository name from a resolved path of
// the form .../repos/<visibility>/<name>/...
func repoNameFromPath(path string) string {
	parts := strings.Split(path, "/repos/")
	for _, part := range parts[1:] {
		segments := strings.Split(part, "/")
		if len(segments) >= 2 && segments[1] != "" {
			return segments[1]
		}
	}
	return ""
}

package note

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LastCommitDate returns the ISO 8601 committer date of the last commit
// touching path. A missing git binary, a non-repository directory or an
// untracked file all yield "" with a nil error.
func LastCommitDate(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", path)
	}

	cmd := exec.Command("git", "log", "-1", "--format=%cI", "--", path)
	cmd.Dir = filepath.Dir(path)

	out, err := cmd.Output()
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

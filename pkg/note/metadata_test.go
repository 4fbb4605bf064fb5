package note

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "doc.md", "# Title\n\none two three four five\n")

	meta, err := Metadata(path)
	require.NoError(t, err)

	assert.Equal(t, 7, meta.WordCount)
	assert.Equal(t, 1, meta.ReadingTimeMinutes)
	assert.Equal(t, int64(33), meta.FileSize)
	assert.NotZero(t, meta.Modified)
	assert.Equal(t, path, meta.FilePath)
	assert.Empty(t, meta.SymlinkTarget)
	assert.Empty(t, meta.SourceRepoName)
}

func TestMetadataMissingFile(t *testing.T) {
	_, err := Metadata(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMetadataSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "repos", "public", "knowledge-base", "doc.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("# Linked\n"), 0644))

	link := filepath.Join(dir, "doc.md")
	require.NoError(t, os.Symlink(target, link))

	meta, err := Metadata(link)
	require.NoError(t, err)
	assert.NotEmpty(t, meta.SymlinkTarget)
	assert.Contains(t, meta.SymlinkTarget, "knowledge-base")
	assert.Equal(t, "knowledge-base", meta.SourceRepoName)
}

func TestLastCommitDate(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "untracked.md", "# Untracked\n")

	// Outside any repository (or without git) this must degrade to
	// "no date", never an error.
	date, err := LastCommitDate(path)
	require.NoError(t, err)
	assert.Empty(t, date)

	_, err = LastCommitDate(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
}

package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(filepath.Join(t.TempDir(), "data", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIndexAndSearch(t *testing.T) {
	idx := newTestIndex(t)
	dir := t.TempDir()

	deploy := writeDoc(t, dir, "deploy.md", "# Deployment Guide\n\nRolling restarts avoid downtime.\n")
	meeting := writeDoc(t, dir, "meeting.md", "# Weekly Sync\n\nDiscussed the quarterly roadmap.\n")

	require.NoError(t, idx.IndexFile(deploy, "knowledge/public"))
	require.NoError(t, idx.IndexFile(meeting, "knowledge/public"))

	docs, err := idx.Search("downtime", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, deploy, docs[0].Path)
	assert.Equal(t, "Deployment Guide", docs[0].Title)
	assert.Equal(t, "knowledge/public", docs[0].Scope)
	assert.Positive(t, docs[0].WordCount)
}

func TestIndexScopeFilter(t *testing.T) {
	idx := newTestIndex(t)
	dir := t.TempDir()

	a := writeDoc(t, dir, "a.md", "# Alpha\n\nshared term\n")
	b := writeDoc(t, dir, "b.md", "# Beta\n\nshared term\n")

	require.NoError(t, idx.IndexFile(a, "teams/alpha"))
	require.NoError(t, idx.IndexFile(b, "teams/beta"))

	docs, err := idx.Search("shared", &Options{Scope: "teams/alpha"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, a, docs[0].Path)
}

func TestIndexTitleFallbacks(t *testing.T) {
	idx := newTestIndex(t)
	dir := t.TempDir()

	// Frontmatter title wins when the body has no heading.
	fm := writeDoc(t, dir, "fm.md", "---\ntitle: From Frontmatter\ntags: [ops]\n---\n\nplain body\n")
	// Neither heading nor frontmatter falls back to the filename.
	bare := writeDoc(t, dir, "release-checklist.md", "items only\n")

	require.NoError(t, idx.IndexFile(fm, "s"))
	require.NoError(t, idx.IndexFile(bare, "s"))

	docs, err := idx.Search("body", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "From Frontmatter", docs[0].Title)
	assert.Equal(t, []string{"ops"}, docs[0].Tags)

	docs, err = idx.Search("items", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Release Checklist", docs[0].Title)
}

func TestIndexReindexReplaces(t *testing.T) {
	idx := newTestIndex(t)
	dir := t.TempDir()

	path := writeDoc(t, dir, "doc.md", "# First\n\noriginal body\n")
	require.NoError(t, idx.IndexFile(path, "s"))

	require.NoError(t, os.WriteFile(path, []byte("# Second\n\nrewritten body\n"), 0644))
	require.NoError(t, idx.IndexFile(path, "s"))

	docs, err := idx.Search("original", nil)
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = idx.Search("rewritten", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Second", docs[0].Title)
}

func TestIndexRemoveAndReset(t *testing.T) {
	idx := newTestIndex(t)
	dir := t.TempDir()

	a := writeDoc(t, dir, "a.md", "# A\n\nkeep me\n")
	b := writeDoc(t, dir, "b.md", "# B\n\nkeep me\n")
	require.NoError(t, idx.IndexFile(a, "s"))
	require.NoError(t, idx.IndexFile(b, "s"))

	require.NoError(t, idx.Remove(a))
	docs, err := idx.Search("keep", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, b, docs[0].Path)

	require.NoError(t, idx.Reset())
	docs, err = idx.Search("keep", nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPlainTextStripsMarkup(t *testing.T) {
	out := plainText([]byte("# Heading\n\nSome *emphasis* and a [link](https://example.com).\n"))
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "emphasis")
	assert.Contains(t, out, "link")
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "*")
	assert.NotContains(t, out, "example.com")
}

package note

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractTitle(t *testing.T) {
	dir := t.TempDir()

	path := writeNote(t, dir, "a.md", "some intro\n\n#  Spaced Title  \n\nbody\n")
	assert.Equal(t, "Spaced Title", ExtractTitle(path))

	path = writeNote(t, dir, "b.md", "## Only Subheadings\n\ntext\n")
	assert.Empty(t, ExtractTitle(path))

	path = writeNote(t, dir, "c.md", "# \n# Real Title\n")
	assert.Equal(t, "Real Title", ExtractTitle(path))

	assert.Empty(t, ExtractTitle(filepath.Join(dir, "missing.md")))
}

func TestExtractTitleStopsAfter50Lines(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("filler\n", 60) + "# Too Late\n"
	path := writeNote(t, dir, "late.md", content)

	assert.Empty(t, ExtractTitle(path))
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "Api Design Notes", TitleFromFilename("api-design-notes.md"))
	assert.Equal(t, "State of The Union", TitleFromFilename("state_of_the_union.md"))
	assert.Equal(t, "Readme", TitleFromFilename("README.md"))
	assert.Empty(t, TitleFromFilename(".md"))
}

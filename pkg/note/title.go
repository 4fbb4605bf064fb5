// Package note holds per-file helpers: title extraction, metadata and
// version-control lookups. Nothing here touches the scan tree.
package note

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleScanLines bounds how far into a file ExtractTitle looks.
const titleScanLines = 50

// ExtractTitle returns the first "# " heading within the first 50
// lines of a markdown file, trimmed. Returns "" when no heading is
// found or the file cannot be read.
func ExtractTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < titleScanLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, "# ")
		if !ok {
			continue
		}
		if title := strings.TrimSpace(rest); title != "" {
			return title
		}
	}
	return ""
}

var titleCaser = cases.Title(language.English)

// TitleFromFilename derives a display title from a markdown filename:
// "api-design_notes.md" becomes "Api Design Notes". Short words after
// the first stay lowercase.
func TitleFromFilename(name string) string {
	stem := strings.TrimSuffix(name, ".md")
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, word := range words {
		if i == 0 || len(word) > 2 {
			words[i] = titleCaser.String(strings.ToLower(word))
		} else {
			words[i] = strings.ToLower(word)
		}
	}
	return strings.Join(words, " ")
}

// Package frontmatter parses the optional YAML block at the top of a
// markdown document.
package frontmatter

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)`)

// Frontmatter holds the fields the indexer cares about. Unknown keys
// are ignored.
type Frontmatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,flow"`
}

// Parse splits content into parsed frontmatter and body. Content
// without a frontmatter block returns a nil Frontmatter and the whole
// content as body.
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("parse frontmatter: %w", err)
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	return &fm, matches[2], nil
}

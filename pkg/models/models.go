package models

import "encoding/json"

// TreeNode is a node in the filtered file tree produced by a scan.
// It is either a directory or a markdown file; files are always leaves.
type TreeNode struct {
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	IsDirectory bool        `json:"isDirectory"`
	Title       string      `json:"title,omitempty"`
	Children    []*TreeNode `json:"children"`
	Depth       int         `json:"depth"`
	FileCount   int         `json:"fileCount"`
	Modified    int64       `json:"modified,omitempty"`
}

// ChangeKind classifies a filesystem change event.
type ChangeKind string

const (
	ChangeCreate ChangeKind = "create"
	ChangeModify ChangeKind = "modify"
	ChangeRemove ChangeKind = "remove"
)

// ChangeEvent is a debounced, classified filesystem change delivered to
// a watch subscriber.
type ChangeEvent struct {
	Path string     `json:"path"`
	Kind ChangeKind `json:"kind"`
}

// FileMetadata describes a single file independent of any scan tree.
type FileMetadata struct {
	WordCount          int    `json:"wordCount"`
	ReadingTimeMinutes int    `json:"readingTimeMinutes"`
	FileSize           int64  `json:"fileSize"`
	Modified           int64  `json:"modified,omitempty"`
	FilePath           string `json:"filePath"`
	SymlinkTarget      string `json:"symlinkTarget,omitempty"`
	SourceRepoName     string `json:"sourceRepoName,omitempty"`
}

// SearchResult is a single record returned by the external qmd indexer.
type SearchResult struct {
	DocID    string  `json:"docId"`
	Score    float64 `json:"score"`
	Title    string  `json:"title"`
	FilePath string  `json:"filePath"`
	Snippet  string  `json:"snippet"`
}

// UnmarshalJSON accepts "file" as an alias for "filePath", which older
// qmd releases emit.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	type alias SearchResult
	aux := struct {
		*alias
		File string `json:"file"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.FilePath == "" {
		r.FilePath = aux.File
	}
	return nil
}

// SearchResponse is the outcome of a qmd search. A failed search is
// reported as an empty result set plus a message, not an error.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Error   string         `json:"error,omitempty"`
}

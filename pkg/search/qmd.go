// Package search wraps the external qmd indexer and maintains a local
// sqlite full-text index as an offline fallback.
package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/indigotools/hq/pkg/models"
)

// Client shells out to the qmd command-line indexer.
type Client struct {
	bin string
}

// NewClient returns a client using the qmd binary from PATH.
func NewClient() *Client {
	return &Client{bin: "qmd"}
}

// Available reports whether the qmd binary can be executed.
func (c *Client) Available() bool {
	return exec.Command(c.bin, "--version").Run() == nil
}

// Search runs a qmd query. Mode "keyword" maps to the search
// subcommand, "semantic" to vsearch, anything else to the hybrid query
// subcommand. A non-zero exit becomes an empty response carrying the
// stderr message; only a missing binary or an unstartable process is
// an error.
func (c *Client) Search(query, mode, collection string, limit int) (*models.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return &models.SearchResponse{Results: []models.SearchResult{}}, nil
	}

	subcmd := "query"
	switch mode {
	case "keyword":
		subcmd = "search"
	case "semantic":
		subcmd = "vsearch"
	}

	if limit <= 0 {
		limit = 10
	}

	args := []string{subcmd, query, "--json", "-n", strconv.Itoa(limit)}
	if collection != "" && collection != "all" {
		args = append(args, "-c", collection)
	}

	cmd := exec.Command(c.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &models.SearchResponse{
				Results: []models.SearchResult{},
				Error:   fmt.Sprintf("qmd error: %s", strings.TrimSpace(stderr.String())),
			}, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("qmd not found in PATH; install qmd for search functionality")
		}
		return nil, fmt.Errorf("execute qmd: %w", err)
	}

	results := parseResults(stdout.Bytes())
	return &models.SearchResponse{Results: results, Total: len(results)}, nil
}

// parseResults accepts either a JSON array or newline-delimited JSON
// objects; unparsable lines are dropped.
func parseResults(data []byte) []models.SearchResult {
	var results []models.SearchResult
	if err := json.Unmarshal(data, &results); err == nil {
		return results
	}

	results = nil
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var r models.SearchResult
		if err := json.Unmarshal([]byte(line), &r); err == nil {
			results = append(results, r)
		}
	}
	return results
}

// Collections lists the qmd collections available for scoping. A
// failing qmd yields an empty list; a missing binary is an error.
func (c *Client) Collections() ([]string, error) {
	cmd := exec.Command(c.bin, "collection", "list")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("qmd not found in PATH")
		}
		return nil, fmt.Errorf("execute qmd: %w", err)
	}

	var collections []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			collections = append(collections, line)
		}
	}
	return collections, nil
}

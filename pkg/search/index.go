package search

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/indigotools/hq/pkg/frontmatter"
	"github.com/indigotools/hq/pkg/note"
)

// Document is one indexed markdown file.
type Document struct {
	Path      string
	Scope     string
	Title     string
	Tags      []string
	Modified  int64
	WordCount int
	Snippet   string
}

// Index is a local sqlite full-text index over scanned markdown files.
// FTS5 is used when the sqlite build supports it, with a LIKE fallback
// otherwise.
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex opens (or creates) the index database at dbPath.
func NewIndex(dbPath string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS docs_meta (
		path TEXT PRIMARY KEY,
		scope TEXT,
		title TEXT,
		tags TEXT,
		body TEXT,
		modified INTEGER,
		word_count INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_docs_meta_scope ON docs_meta(scope);
	CREATE INDEX IF NOT EXISTS idx_docs_meta_title ON docs_meta(title);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
			path UNINDEXED,
			scope,
			title,
			tags,
			body,
			tokenize = 'porter unicode61'
		);
		`
		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// Fall back to LIKE queries over docs_meta.
			idx.useFTS = false
		}
	}

	return nil
}

func (idx *Index) checkFTS5Support() bool {
	if _, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(body)"); err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// IndexFile reads, parses and (re)indexes one markdown file under the
// given scope label. The display title falls back from the first
// heading to the frontmatter title to the filename.
func (idx *Index) IndexFile(path, scope string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	fm, bodySource, err := frontmatter.Parse(string(raw))
	if err != nil {
		// Malformed frontmatter still gets indexed as plain content.
		bodySource = string(raw)
	}

	title := note.ExtractTitle(path)
	if title == "" && fm != nil {
		title = fm.Title
	}
	if title == "" {
		title = note.TitleFromFilename(filepath.Base(path))
	}

	var tags []string
	if fm != nil {
		tags = fm.Tags
	}

	body := plainText([]byte(bodySource))
	doc := &Document{
		Path:      path,
		Scope:     scope,
		Title:     title,
		Tags:      tags,
		Modified:  fileModified(path),
		WordCount: len(strings.Fields(body)),
	}
	return idx.indexDocument(doc, body)
}

func (idx *Index) indexDocument(doc *Document, body string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM docs_fts WHERE path = ?", doc.Path); err != nil {
			return err
		}
	}
	if _, err = tx.Exec("DELETE FROM docs_meta WHERE path = ?", doc.Path); err != nil {
		return err
	}

	tags := strings.Join(doc.Tags, " ")

	if idx.useFTS {
		_, err = tx.Exec(`
			INSERT INTO docs_fts (path, scope, title, tags, body)
			VALUES (?, ?, ?, ?, ?)
		`, doc.Path, doc.Scope, doc.Title, tags, body)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO docs_meta (path, scope, title, tags, body, modified, word_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.Path, doc.Scope, doc.Title, tags, body, doc.Modified, doc.WordCount)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Options restrict a local search.
type Options struct {
	Scope string
	Limit int
}

// Search performs a full-text query against the local index.
func (idx *Index) Search(query string, opts *Options) ([]*Document, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

func (idx *Index) searchWithFTS(query string, opts *Options) ([]*Document, error) {
	var conditions []string
	var args []any

	if opts.Scope != "" {
		conditions = append(conditions, "m.scope = ?")
		args = append(args, opts.Scope)
	}
	conditions = append(conditions, "docs_fts MATCH ?")
	args = append(args, query, opts.Limit)

	searchQuery := fmt.Sprintf(`
		SELECT
			f.path, f.scope, f.title, f.tags,
			m.modified, m.word_count,
			snippet(docs_fts, 4, '<match>', '</match>', '...', 32) AS snippet
		FROM docs_fts f
		JOIN docs_meta m ON f.path = m.path
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows, true)
}

func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]*Document, error) {
	var conditions []string
	var args []any

	if opts.Scope != "" {
		conditions = append(conditions, "scope = ?")
		args = append(args, opts.Scope)
	}

	pattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions = append(conditions, "(title LIKE ? OR tags LIKE ? OR body LIKE ?)")
	args = append(args, pattern, pattern, pattern, opts.Limit)

	searchQuery := fmt.Sprintf(`
		SELECT path, scope, title, tags, modified, word_count
		FROM docs_meta
		WHERE %s
		ORDER BY modified DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows, false)
}

func scanDocuments(rows *sql.Rows, withSnippet bool) ([]*Document, error) {
	var results []*Document
	for rows.Next() {
		doc := &Document{}
		var tags string

		var err error
		if withSnippet {
			err = rows.Scan(&doc.Path, &doc.Scope, &doc.Title, &tags, &doc.Modified, &doc.WordCount, &doc.Snippet)
		} else {
			err = rows.Scan(&doc.Path, &doc.Scope, &doc.Title, &tags, &doc.Modified, &doc.WordCount)
		}
		if err != nil {
			return nil, err
		}

		if tags != "" {
			doc.Tags = strings.Fields(tags)
		}
		results = append(results, doc)
	}
	return results, rows.Err()
}

// Remove deletes one document from the index.
func (idx *Index) Remove(path string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM docs_fts WHERE path = ?", path); err != nil {
			return err
		}
	}
	if _, err = tx.Exec("DELETE FROM docs_meta WHERE path = ?", path); err != nil {
		return err
	}

	return tx.Commit()
}

// Reset drops every indexed document.
func (idx *Index) Reset() error {
	if idx.useFTS {
		if _, err := idx.db.Exec("DELETE FROM docs_fts"); err != nil {
			return err
		}
	}
	_, err := idx.db.Exec("DELETE FROM docs_meta")
	return err
}

// Close closes the index database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func fileModified(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}

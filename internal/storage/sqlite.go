package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/preprint/internal/paper"
	_ "modernc.org/sqlite"
)

// SQLite is the durable backend. List- and map-valued fields serialize as
// JSON text blobs; timestamps persist as ISO-8601 text (raw feed text
// passes through unchanged). A secondary index on arxiv_id accelerates
// version lookups.
type SQLite struct {
	db   *sql.DB
	path string
}

var _ Backend = (*SQLite)(nil)

// selectPaperFields is the standard field list for SELECT queries.
const selectPaperFields = `arxiv_id, version, title, authors_json, abstract,
	categories_json, published, updated, pdf_url, source_url,
	keywords_json, summary, embedding_json, extra_json`

// OpenSQLite opens or creates the papers database at the given path.
// Schema creation is idempotent, so repeated startups against the same
// file are safe.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			unique_key TEXT PRIMARY KEY,
			arxiv_id TEXT NOT NULL,
			version TEXT NOT NULL,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			abstract TEXT,
			categories_json TEXT NOT NULL,
			published TEXT,
			updated TEXT,
			pdf_url TEXT,
			source_url TEXT,
			keywords_json TEXT,
			summary TEXT,
			embedding_json TEXT,
			extra_json TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_papers_arxiv_id ON papers(arxiv_id);
	`

	_, err := db.Exec(schema)
	return err
}

// Save upserts a record keyed by its unique key.
func (s *SQLite) Save(p *paper.Paper) error {
	authorsJSON, err := json.Marshal(p.Authors)
	if err != nil {
		return fmt.Errorf("marshaling authors for %s: %w", p.UniqueKey(), err)
	}
	categoriesJSON, err := json.Marshal(p.Categories)
	if err != nil {
		return fmt.Errorf("marshaling categories for %s: %w", p.UniqueKey(), err)
	}

	keywordsJSON, err := marshalOptional(len(p.Keywords) > 0, p.Keywords)
	if err != nil {
		return fmt.Errorf("marshaling keywords for %s: %w", p.UniqueKey(), err)
	}
	embeddingJSON, err := marshalOptional(len(p.Embedding) > 0, p.Embedding)
	if err != nil {
		return fmt.Errorf("marshaling embedding for %s: %w", p.UniqueKey(), err)
	}
	extraJSON, err := marshalOptional(len(p.Extra) > 0, p.Extra)
	if err != nil {
		return fmt.Errorf("marshaling extra for %s: %w", p.UniqueKey(), err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO papers (
			unique_key, arxiv_id, version, title, authors_json, abstract,
			categories_json, published, updated, pdf_url, source_url,
			keywords_json, summary, embedding_json, extra_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.UniqueKey(), p.ArXivID, p.Version, p.Title,
		string(authorsJSON), p.Abstract, string(categoriesJSON),
		nullableStringValue(p.Published.String()),
		nullableStringValue(p.Updated.String()),
		nullableStringValue(p.PDFURL), nullableStringValue(p.SourceURL),
		keywordsJSON, nullableStringValue(p.Summary), embeddingJSON, extraJSON,
	)
	if err != nil {
		return fmt.Errorf("saving paper %s: %w", p.UniqueKey(), err)
	}
	return nil
}

// Get retrieves a record by unique key, or nil when absent.
func (s *SQLite) Get(uniqueKey string) (*paper.Paper, error) {
	row := s.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE unique_key = ?`, uniqueKey)
	return scanPaper(row)
}

// Exists reports whether a record with the key is stored.
func (s *SQLite) Exists(uniqueKey string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM papers WHERE unique_key = ?`, uniqueKey).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking existence of %s: %w", uniqueKey, err)
	}
	return true, nil
}

// Delete removes a record, reporting whether one was removed.
func (s *SQLite) Delete(uniqueKey string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM papers WHERE unique_key = ?`, uniqueKey)
	if err != nil {
		return false, fmt.Errorf("deleting %s: %w", uniqueKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns records ordered per opts. The sort column is validated
// against the allow-list before it reaches SQL.
func (s *SQLite) List(opts ListOptions) ([]paper.Paper, error) {
	opts = normalizeListOptions(opts)

	order := "DESC"
	if opts.Order == OrderAsc {
		order = "ASC"
	}

	query := `SELECT ` + selectPaperFields + ` FROM papers ORDER BY ` +
		opts.SortBy + ` ` + order + ` LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// Versions returns all records sharing the arXiv id, version ascending.
func (s *SQLite) Versions(arxivID string) ([]paper.Paper, error) {
	rows, err := s.db.Query(`SELECT `+selectPaperFields+` FROM papers WHERE arxiv_id = ? ORDER BY version`, arxivID)
	if err != nil {
		return nil, fmt.Errorf("listing versions of %s: %w", arxivID, err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// Count returns the total number of stored records.
func (s *SQLite) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&count)
	return count, err
}

// Stats returns aggregate statistics. Size reflects the on-disk footprint
// of the database file.
func (s *SQLite) Stats() (*Stats, error) {
	total, err := s.Count()
	if err != nil {
		return nil, fmt.Errorf("counting papers: %w", err)
	}

	var size int64
	if info, err := os.Stat(s.path); err == nil {
		size = info.Size()
	}

	counts, err := s.CategoryStats()
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalPapers: total,
		SizeBytes:   size,
		SizeMB:      sizeMB(size),
		Categories:  topCategories(counts, 10),
	}, nil
}

// CategoryStats returns the category frequency map over all records.
func (s *SQLite) CategoryStats() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT categories_json FROM papers`)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var catsJSON sql.NullString
		if err := rows.Scan(&catsJSON); err != nil {
			return nil, err
		}
		if !catsJSON.Valid || catsJSON.String == "" {
			continue
		}
		var cats []string
		if err := json.Unmarshal([]byte(catsJSON.String), &cats); err != nil {
			return nil, fmt.Errorf("parsing categories JSON: %w", err)
		}
		for _, cat := range cats {
			counts[cat]++
		}
	}
	return counts, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPaper(s scanner) (*paper.Paper, error) {
	var p paper.Paper
	var authorsJSON, categoriesJSON string
	var abstract, published, updated, pdfURL, sourceURL sql.NullString
	var keywordsJSON, summary, embeddingJSON, extraJSON sql.NullString

	err := s.Scan(
		&p.ArXivID, &p.Version, &p.Title, &authorsJSON, &abstract,
		&categoriesJSON, &published, &updated, &pdfURL, &sourceURL,
		&keywordsJSON, &summary, &embeddingJSON, &extraJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.Abstract = abstract.String
	p.Published = paper.RawTimestamp(published.String)
	p.Updated = paper.RawTimestamp(updated.String)
	p.PDFURL = pdfURL.String
	p.SourceURL = sourceURL.String
	p.Summary = summary.String

	if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors JSON for %s: %w", p.UniqueKey(), err)
	}
	if err := json.Unmarshal([]byte(categoriesJSON), &p.Categories); err != nil {
		return nil, fmt.Errorf("parsing categories JSON for %s: %w", p.UniqueKey(), err)
	}
	if keywordsJSON.Valid && keywordsJSON.String != "" {
		if err := json.Unmarshal([]byte(keywordsJSON.String), &p.Keywords); err != nil {
			return nil, fmt.Errorf("parsing keywords JSON for %s: %w", p.UniqueKey(), err)
		}
	}
	if embeddingJSON.Valid && embeddingJSON.String != "" {
		if err := json.Unmarshal([]byte(embeddingJSON.String), &p.Embedding); err != nil {
			return nil, fmt.Errorf("parsing embedding JSON for %s: %w", p.UniqueKey(), err)
		}
	}
	if extraJSON.Valid && extraJSON.String != "" {
		if err := json.Unmarshal([]byte(extraJSON.String), &p.Extra); err != nil {
			return nil, fmt.Errorf("parsing extra JSON for %s: %w", p.UniqueKey(), err)
		}
	}

	return &p, nil
}

func scanPapers(rows *sql.Rows) ([]paper.Paper, error) {
	var papers []paper.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		if p != nil {
			papers = append(papers, *p)
		}
	}
	return papers, rows.Err()
}

// marshalOptional marshals v when present, NULL otherwise.
func marshalOptional(present bool, v any) (sql.NullString, error) {
	if !present {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/doclens/doclens/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	upload_date DATETIME NOT NULL,
	size        INTEGER NOT NULL,
	content     TEXT NOT NULL,
	extracted   TEXT,
	result      TEXT
);

CREATE TABLE IF NOT EXISTS feedback (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id TEXT NOT NULL REFERENCES documents(id),
	category_id TEXT NOT NULL,
	verdict     TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category);
CREATE INDEX IF NOT EXISTS idx_documents_upload_date ON documents(upload_date);
CREATE INDEX IF NOT EXISTS idx_feedback_document_id ON feedback(document_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDocument(ctx context.Context, doc model.DocumentMetadata) error {
	extractedJSON, err := json.Marshal(doc.ExtractedData)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal extracted data")
	}
	resultJSON, err := json.Marshal(doc.Result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, category, upload_date, size, content, extracted, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Name, doc.Category, doc.UploadDate, doc.Size, doc.Content,
		string(extractedJSON), string(resultJSON),
	)
	return eris.Wrapf(err, "sqlite: insert document %s", doc.ID)
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*model.DocumentMetadata, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, upload_date, size, content, extracted, result
		 FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("document not found: %s", id)
	}
	return doc, err
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.DocumentMetadata, error) {
	query := `SELECT id, name, category, upload_date, size, content, extracted, result
	          FROM documents WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY upload_date DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list documents")
	}
	defer rows.Close()

	var docs []model.DocumentMetadata
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, eris.Wrap(rows.Err(), "sqlite: list documents iterate")
}

func (s *SQLiteStore) ResetSession(ctx context.Context) (int, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM feedback`); err != nil {
		return 0, eris.Wrap(err, "sqlite: delete feedback")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete documents")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

func (s *SQLiteStore) RecordFeedback(ctx context.Context, docID, categoryID, verdict string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (document_id, category_id, verdict) VALUES (?, ?, ?)`,
		docID, categoryID, verdict,
	)
	return eris.Wrapf(err, "sqlite: insert feedback for document %s", docID)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanDocument(row scannable) (*model.DocumentMetadata, error) {
	var doc model.DocumentMetadata
	var extractedJSON, resultJSON sql.NullString

	err := row.Scan(&doc.ID, &doc.Name, &doc.Category, &doc.UploadDate, &doc.Size,
		&doc.Content, &extractedJSON, &resultJSON)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan document")
	}

	if extractedJSON.Valid && extractedJSON.String != "null" {
		if err := json.Unmarshal([]byte(extractedJSON.String), &doc.ExtractedData); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal extracted data")
		}
	}
	if resultJSON.Valid && resultJSON.String != "null" {
		doc.Result = &model.ClassificationResult{}
		if err := json.Unmarshal([]byte(resultJSON.String), doc.Result); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal result")
		}
	}
	return &doc, nil
}

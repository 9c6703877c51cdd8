package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/doclens/doclens/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it,
// which keeps the Postgres store testable without a live database.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_document": `INSERT INTO documents (id, name, category, upload_date, size, content, extracted, result) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	"get_document":    `SELECT id, name, category, upload_date, size, content, extracted, result FROM documents WHERE id = $1`,
	"insert_feedback": `INSERT INTO feedback (document_id, category_id, verdict) VALUES ($1, $2, $3)`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	upload_date TIMESTAMPTZ NOT NULL,
	size        INTEGER NOT NULL,
	content     TEXT NOT NULL,
	extracted   JSONB,
	result      JSONB
);

CREATE TABLE IF NOT EXISTS feedback (
	id          BIGSERIAL PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id),
	category_id TEXT NOT NULL,
	verdict     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category);
CREATE INDEX IF NOT EXISTS idx_documents_upload_date ON documents(upload_date);
CREATE INDEX IF NOT EXISTS idx_feedback_document_id ON feedback(document_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveDocument(ctx context.Context, doc model.DocumentMetadata) error {
	extractedJSON, err := json.Marshal(doc.ExtractedData)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal extracted data")
	}
	resultJSON, err := json.Marshal(doc.Result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (id, name, category, upload_date, size, content, extracted, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.Name, doc.Category, doc.UploadDate, doc.Size, doc.Content,
		extractedJSON, resultJSON,
	)
	return eris.Wrapf(err, "postgres: insert document %s", doc.ID)
}

func (s *PostgresStore) GetDocument(ctx context.Context, id string) (*model.DocumentMetadata, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, category, upload_date, size, content, extracted, result
		 FROM documents WHERE id = $1`, id)
	doc, err := scanPgDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("document not found: %s", id)
	}
	return doc, err
}

func (s *PostgresStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.DocumentMetadata, error) {
	query := `SELECT id, name, category, upload_date, size, content, extracted, result
	          FROM documents`
	var args []any

	if filter.Category != "" {
		query += ` WHERE category = $1`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY upload_date DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list documents")
	}
	defer rows.Close()

	var docs []model.DocumentMetadata
	for rows.Next() {
		doc, err := scanPgDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, eris.Wrap(rows.Err(), "postgres: list documents iterate")
}

func (s *PostgresStore) ResetSession(ctx context.Context) (int, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM feedback`); err != nil {
		return 0, eris.Wrap(err, "postgres: delete feedback")
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete documents")
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) RecordFeedback(ctx context.Context, docID, categoryID, verdict string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO feedback (document_id, category_id, verdict) VALUES ($1, $2, $3)`,
		docID, categoryID, verdict,
	)
	return eris.Wrapf(err, "postgres: insert feedback for document %s", docID)
}

func scanPgDocument(row pgx.Row) (*model.DocumentMetadata, error) {
	var doc model.DocumentMetadata
	var extractedJSON, resultJSON []byte

	err := row.Scan(&doc.ID, &doc.Name, &doc.Category, &doc.UploadDate, &doc.Size,
		&doc.Content, &extractedJSON, &resultJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan document")
	}

	if len(extractedJSON) > 0 && string(extractedJSON) != "null" {
		if err := json.Unmarshal(extractedJSON, &doc.ExtractedData); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal extracted data")
		}
	}
	if len(resultJSON) > 0 && string(resultJSON) != "null" {
		doc.Result = &model.ClassificationResult{}
		if err := json.Unmarshal(resultJSON, doc.Result); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal result")
		}
	}
	return &doc, nil
}

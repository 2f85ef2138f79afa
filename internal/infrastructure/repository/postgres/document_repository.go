package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	file_type TEXT NOT NULL,
	file_size BIGINT NOT NULL,
	content TEXT NOT NULL,
	agreement_type TEXT,
	governing_law TEXT,
	jurisdiction TEXT,
	industry TEXT,
	geography TEXT,
	storage_path TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL,
	processed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_documents_agreement_type ON documents(agreement_type);
CREATE INDEX IF NOT EXISTS idx_documents_governing_law ON documents(governing_law);
CREATE INDEX IF NOT EXISTS idx_documents_jurisdiction ON documents(jurisdiction);
CREATE INDEX IF NOT EXISTS idx_documents_industry ON documents(industry);
CREATE INDEX IF NOT EXISTS idx_documents_geography ON documents(geography);
CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents(uploaded_at);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Create inserts the document with its metadata in a single statement:
// a stored document is never visible with text but half-written labels.
// The jurisdiction column receives the governing_law value (alias
// columns for the same taxonomy domain).
func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, filename, file_type, file_size, content,
	agreement_type, governing_law, jurisdiction, industry, geography,
	storage_path, uploaded_at, processed_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		doc.ID, doc.Filename, doc.FileType, doc.FileSize, doc.Content,
		doc.AgreementType, doc.GoverningLaw, doc.GoverningLaw, doc.Industry, doc.Geography,
		doc.StoragePath, doc.UploadedAt, doc.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

const selectColumns = `id, filename, file_type, file_size, content, agreement_type, governing_law, industry, geography, storage_path, uploaded_at, processed_at`

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+selectColumns+`
FROM documents
WHERE id = $1
`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+selectColumns+`
FROM documents
ORDER BY uploaded_at ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// filterColumns is the closed set of filterable metadata columns. The
// lookup replaces any dynamic attribute-style access: an unknown field
// is an input error, never an interpolated identifier.
var filterColumns = map[domain.MetadataField]string{
	domain.FieldAgreementType: "agreement_type",
	domain.FieldGoverningLaw:  "governing_law",
	domain.FieldJurisdiction:  "jurisdiction",
	domain.FieldIndustry:      "industry",
	domain.FieldGeography:     "geography",
}

func (r *DocumentRepository) FindByField(ctx context.Context, field domain.MetadataField, value string) ([]domain.Document, error) {
	column, ok := filterColumns[field]
	if !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "filter documents", fmt.Errorf("unknown field %q", field))
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+selectColumns+`
FROM documents
WHERE `+column+` = $1
ORDER BY uploaded_at ASC, id ASC
`, value)
	if err != nil {
		return nil, fmt.Errorf("filter documents by %s: %w", column, err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r *DocumentRepository) FindByJurisdiction(ctx context.Context, value string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+selectColumns+`
FROM documents
WHERE governing_law = $1 OR jurisdiction = $1
ORDER BY uploaded_at ASC, id ASC
`, value)
	if err != nil {
		return nil, fmt.Errorf("filter documents by jurisdiction: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// UpdateMetadata replaces all four metadata columns atomically and
// stamps processed_at.
func (r *DocumentRepository) UpdateMetadata(ctx context.Context, id string, meta domain.ExtractedMetadata) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET agreement_type = $2, governing_law = $3, jurisdiction = $4, industry = $5, geography = $6, processed_at = $7
WHERE id = $1
`, id, meta.AgreementType, meta.GoverningLaw, meta.GoverningLaw, meta.Industry, meta.Geography, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document metadata: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document metadata rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "update document metadata", fmt.Errorf("id %s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	err := row.Scan(
		&doc.ID, &doc.Filename, &doc.FileType, &doc.FileSize, &doc.Content,
		&doc.AgreementType, &doc.GoverningLaw, &doc.Industry, &doc.Geography,
		&doc.StoragePath, &doc.UploadedAt, &doc.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func collectDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	return docs, nil
}

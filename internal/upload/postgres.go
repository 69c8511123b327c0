package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

// PostgresRepository stores upload metadata in PostgreSQL. It implements
// the same contract as MemoryRepository and survives process restarts.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a repository on top of a pgx pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new upload record, letting the database assign the id
// and timestamp.
func (r *PostgresRepository) Create(ctx context.Context, data NewUpload) (Upload, error) {
	if err := data.Validate(); err != nil {
		return Upload{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO uploads (filename, original_name, mimetype, size_bytes)
VALUES ($1, $2, $3, $4)
RETURNING id, filename, original_name, mimetype, size_bytes, uploaded_at;`

	row := r.pool.QueryRow(ctx, query, data.Filename, data.OriginalName, data.Mimetype, data.Size)

	var stored Upload
	if err := row.Scan(&stored.ID, &stored.Filename, &stored.OriginalName, &stored.Mimetype, &stored.Size, &stored.UploadedAt); err != nil {
		if isUniqueViolation(err) {
			return Upload{}, ErrDuplicateFilename
		}
		return Upload{}, fmt.Errorf("create upload record: %w", err)
	}
	return stored, nil
}

// Get fetches a record by id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, filename, original_name, mimetype, size_bytes, uploaded_at
FROM uploads
WHERE id = $1;`

	var record Upload
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Filename,
		&record.OriginalName,
		&record.Mimetype,
		&record.Size,
		&record.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Upload{}, ErrNotFound
		}
		return Upload{}, fmt.Errorf("get upload record: %w", err)
	}
	return record, nil
}

// GetByFilename fetches a record by its generated filename.
func (r *PostgresRepository) GetByFilename(ctx context.Context, filename string) (Upload, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, filename, original_name, mimetype, size_bytes, uploaded_at
FROM uploads
WHERE filename = $1;`

	var record Upload
	err := r.pool.QueryRow(ctx, query, filename).Scan(
		&record.ID,
		&record.Filename,
		&record.OriginalName,
		&record.Mimetype,
		&record.Size,
		&record.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Upload{}, ErrNotFound
		}
		return Upload{}, fmt.Errorf("get upload record by filename: %w", err)
	}
	return record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

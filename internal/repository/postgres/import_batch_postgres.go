package postgres

import (
	"context"
	"database/sql"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// ImportBatchPostgres is a PostgreSQL implementation of repository.ImportBatchRepository.
type ImportBatchPostgres struct {
	db *sql.DB
}

// NewImportBatchPostgres creates a new ImportBatchPostgres repository.
func NewImportBatchPostgres(db *sql.DB) *ImportBatchPostgres {
	return &ImportBatchPostgres{db: db}
}

var _ repository.ImportBatchRepository = (*ImportBatchPostgres)(nil)

const importBatchColumns = `id, filename, storage_path, size, status, lead_count, error_message, created_at`

// Create inserts a new import batch and returns the created record.
func (r *ImportBatchPostgres) Create(ctx context.Context, b *model.ImportBatch) (*model.ImportBatch, error) {
	q := `
		INSERT INTO import_batches (filename, storage_path, size, status, lead_count, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + importBatchColumns
	return scanImportBatch(r.db.QueryRowContext(ctx, q,
		b.Filename,
		b.StoragePath,
		b.Size,
		b.Status,
		b.LeadCount,
		b.ErrorMessage,
	))
}

// UpdateResult records how the import ended.
func (r *ImportBatchPostgres) UpdateResult(ctx context.Context, id, status string, leadCount int, errMsg *string) error {
	q := `UPDATE import_batches SET status = $2, lead_count = $3, error_message = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status, leadCount, errMsg)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID fetches a single import batch by its ID.
func (r *ImportBatchPostgres) FindByID(ctx context.Context, id string) (*model.ImportBatch, error) {
	q := `SELECT ` + importBatchColumns + ` FROM import_batches WHERE id = $1`
	return scanImportBatch(r.db.QueryRowContext(ctx, q, id))
}

// List returns import batches ordered by created_at DESC using LIMIT/OFFSET pagination.
func (r *ImportBatchPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ImportBatch], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM import_batches`).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + importBatchColumns + `
		FROM import_batches
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ImportBatch, 0)
	for rows.Next() {
		b, err := scanImportBatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ImportBatch]{
		Items: items,
		Total: total,
	}, nil
}

func scanImportBatch(row rowScanner) (*model.ImportBatch, error) {
	var (
		b      model.ImportBatch
		errMsg sql.NullString
	)
	if err := row.Scan(
		&b.ID,
		&b.Filename,
		&b.StoragePath,
		&b.Size,
		&b.Status,
		&b.LeadCount,
		&errMsg,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.ErrorMessage = nullString(errMsg)
	return &b, nil
}

package repository

import (
	"context"

	"conectaleads/internal/model"
)

// ImportBatchRepository persists CSV import audit records.
type ImportBatchRepository interface {
	Create(ctx context.Context, b *model.ImportBatch) (*model.ImportBatch, error)
	// UpdateResult stores the final status, imported lead count and error message.
	UpdateResult(ctx context.Context, id, status string, leadCount int, errMsg *string) error
	FindByID(ctx context.Context, id string) (*model.ImportBatch, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ImportBatch], error)
}

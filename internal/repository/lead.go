package repository

import (
	"context"

	"conectaleads/internal/model"
)

// LeadRepository defines data access for the leads table.
type LeadRepository interface {
	// Create inserts one lead and returns the stored row.
	Create(ctx context.Context, in model.LeadInput) (*model.Lead, error)

	// CreateMany inserts all leads in a single transaction. Either every row is
	// stored or none is.
	CreateMany(ctx context.Context, in []model.LeadInput) ([]model.Lead, error)

	// FindByID returns a lead with its broker name resolved.
	// Returns sql.ErrNoRows when missing.
	FindByID(ctx context.Context, id int64) (*model.Lead, error)

	List(ctx context.Context, f LeadFilter, pq PageQuery) (*PageResult[model.Lead], error)

	// Update replaces every writable column. Returns sql.ErrNoRows when missing.
	Update(ctx context.Context, id int64, in model.LeadInput) (*model.Lead, error)

	// Delete removes a lead. Returns sql.ErrNoRows when no row matched.
	Delete(ctx context.Context, id int64) error
}

// Sortable lead columns, keyed by the name clients send.
var LeadSortColumns = map[string]string{
	"created_at":  "l.created_at",
	"name":        "l.nome",
	"city":        "l.cidade",
	"temperature": "l.temperatura",
	"status":      "l.status",
}

// LeadFilter narrows a lead listing. Zero values mean "no filter".
type LeadFilter struct {
	Status      string
	City        string
	PlanType    string
	Temperature string
	BrokerID    int64
	// Search matches name, email or phone, case-insensitively.
	Search string
	// SortBy is a key of LeadSortColumns; unknown keys fall back to created_at.
	SortBy    string
	Ascending bool
}

package repository

import (
	"context"

	"conectaleads/internal/model"
)

// BrokerRepository defines data access for the corretores table.
type BrokerRepository interface {
	Create(ctx context.Context, in model.BrokerInput) (*model.Broker, error)
	FindByID(ctx context.Context, id int64) (*model.Broker, error)
	// List returns brokers newest first.
	List(ctx context.Context, f BrokerFilter) ([]model.Broker, error)
	Update(ctx context.Context, id int64, in model.BrokerInput) (*model.Broker, error)
	SetActive(ctx context.Context, id int64, active bool) (*model.Broker, error)
	SetAvatar(ctx context.Context, id int64, avatarRef string) (*model.Broker, error)
}

// BrokerFilter narrows a broker listing.
type BrokerFilter struct {
	// Search matches name or email, case-insensitively.
	Search string
	// Active filters by the active flag when non-nil.
	Active *bool
}

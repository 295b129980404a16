package repository

import (
	"context"

	"conectaleads/internal/model"
)

// NotificationRepository persists notification center entries.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	List(ctx context.Context, unreadOnly bool, pq PageQuery) (*PageResult[model.Notification], error)
	// MarkRead returns sql.ErrNoRows when the notification does not exist.
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead returns how many notifications changed.
	MarkAllRead(ctx context.Context) (int64, error)
}

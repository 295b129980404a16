package postgres

import (
	"context"
	"database/sql"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

const notificationColumns = `id, kind, title, description, read, created_at`

// Create inserts a notification. ID and CreatedAt are generated by the database.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	q := `
		INSERT INTO notifications (kind, title, description)
		VALUES ($1, $2, $3)
		RETURNING ` + notificationColumns
	var out model.Notification
	err := r.db.QueryRowContext(ctx, q, n.Kind, n.Title, n.Description).Scan(
		&out.ID,
		&out.Kind,
		&out.Title,
		&out.Description,
		&out.Read,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns notifications newest first, optionally only the unread ones.
func (r *NotificationPostgres) List(ctx context.Context, unreadOnly bool, pq repository.PageQuery) (*repository.PageResult[model.Notification], error) {
	where := ""
	if unreadOnly {
		where = " WHERE NOT read"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`+where).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + notificationColumns + ` FROM notifications` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Description, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notification]{
		Items: items,
		Total: total,
	}, nil
}

// MarkRead flags one notification as read.
func (r *NotificationPostgres) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
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

// MarkAllRead flags every unread notification as read.
func (r *NotificationPostgres) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE NOT read`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

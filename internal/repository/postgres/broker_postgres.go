package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// BrokerPostgres is a PostgreSQL implementation of repository.BrokerRepository.
type BrokerPostgres struct {
	db *sql.DB
}

// NewBrokerPostgres creates a new BrokerPostgres repository.
func NewBrokerPostgres(db *sql.DB) *BrokerPostgres {
	return &BrokerPostgres{db: db}
}

var _ repository.BrokerRepository = (*BrokerPostgres)(nil)

const brokerColumns = `id, nome, email, telefone, cargo, ativo, avatar_url, created_at`

// Create inserts a broker. Active defaults to true when not provided.
func (r *BrokerPostgres) Create(ctx context.Context, in model.BrokerInput) (*model.Broker, error) {
	q := `
		INSERT INTO corretores (nome, email, telefone, cargo, ativo)
		VALUES ($1, $2, $3, $4, COALESCE($5, true))
		RETURNING ` + brokerColumns
	return scanBroker(r.db.QueryRowContext(ctx, q, in.Name, in.Email, in.Phone, in.Role, in.Active))
}

// FindByID fetches a single broker by its ID.
func (r *BrokerPostgres) FindByID(ctx context.Context, id int64) (*model.Broker, error) {
	q := `SELECT ` + brokerColumns + ` FROM corretores WHERE id = $1`
	return scanBroker(r.db.QueryRowContext(ctx, q, id))
}

// List returns brokers ordered by created_at DESC.
func (r *BrokerPostgres) List(ctx context.Context, f repository.BrokerFilter) ([]model.Broker, error) {
	var (
		conds []string
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(nome ILIKE $%[1]d OR email ILIKE $%[1]d)", len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		conds = append(conds, fmt.Sprintf("ativo = $%d", len(args)))
	}

	q := `SELECT ` + brokerColumns + ` FROM corretores`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Broker, 0)
	for rows.Next() {
		b, err := scanBroker(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the broker's profile. A nil Active keeps the current flag.
func (r *BrokerPostgres) Update(ctx context.Context, id int64, in model.BrokerInput) (*model.Broker, error) {
	q := `
		UPDATE corretores
		SET nome = $2, email = $3, telefone = $4, cargo = $5, ativo = COALESCE($6, ativo)
		WHERE id = $1
		RETURNING ` + brokerColumns
	return scanBroker(r.db.QueryRowContext(ctx, q, id, in.Name, in.Email, in.Phone, in.Role, in.Active))
}

// SetActive sets the active flag.
func (r *BrokerPostgres) SetActive(ctx context.Context, id int64, active bool) (*model.Broker, error) {
	q := `UPDATE corretores SET ativo = $2 WHERE id = $1 RETURNING ` + brokerColumns
	return scanBroker(r.db.QueryRowContext(ctx, q, id, active))
}

// SetAvatar stores the object key of the broker's avatar.
func (r *BrokerPostgres) SetAvatar(ctx context.Context, id int64, avatarRef string) (*model.Broker, error) {
	q := `UPDATE corretores SET avatar_url = $2 WHERE id = $1 RETURNING ` + brokerColumns
	return scanBroker(r.db.QueryRowContext(ctx, q, id, avatarRef))
}

func scanBroker(row rowScanner) (*model.Broker, error) {
	var (
		b                   model.Broker
		phone, role, avatar sql.NullString
	)
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Email,
		&phone,
		&role,
		&b.Active,
		&avatar,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.Phone = nullString(phone)
	b.Role = nullString(role)
	b.AvatarURL = nullString(avatar)
	return &b, nil
}

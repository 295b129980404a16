package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"conectaleads/internal/database"
	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// LeadPostgres is a PostgreSQL implementation of repository.LeadRepository.
type LeadPostgres struct {
	db *sql.DB
}

// NewLeadPostgres creates a new LeadPostgres repository.
func NewLeadPostgres(db *sql.DB) *LeadPostgres {
	return &LeadPostgres{db: db}
}

var _ repository.LeadRepository = (*LeadPostgres)(nil)

const leadColumns = `l.id, l.nome, l.email, l.telefone, l.cidade, l.tipo_plano, l.responsavel_id, c.nome,
		l.origem, l.temperatura, l.status, l.observacoes, l.created_at`

// Writes go through a CTE so the returned row carries the broker name like reads do.
const leadInsertSQL = `
		WITH l AS (
			INSERT INTO leads (nome, email, telefone, cidade, tipo_plano, responsavel_id, origem, temperatura, status, observacoes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT ` + leadColumns + `
		FROM l LEFT JOIN corretores c ON c.id = l.responsavel_id
	`

const leadUpdateSQL = `
		WITH l AS (
			UPDATE leads SET nome = $2, email = $3, telefone = $4, cidade = $5, tipo_plano = $6,
				responsavel_id = $7, origem = $8, temperatura = $9, status = $10, observacoes = $11
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + leadColumns + `
		FROM l LEFT JOIN corretores c ON c.id = l.responsavel_id
	`

func leadArgs(in model.LeadInput) []any {
	return []any{
		in.Name,
		in.Email,
		in.Phone,
		in.City,
		in.PlanType,
		in.BrokerID,
		in.Source,
		in.Temperature,
		in.Status,
		in.Notes,
	}
}

// Create inserts a new lead row and returns the stored record.
func (r *LeadPostgres) Create(ctx context.Context, in model.LeadInput) (*model.Lead, error) {
	return scanLead(r.db.QueryRowContext(ctx, leadInsertSQL, leadArgs(in)...))
}

// CreateMany inserts every lead inside one transaction using a prepared statement.
func (r *LeadPostgres) CreateMany(ctx context.Context, in []model.LeadInput) ([]model.Lead, error) {
	out := make([]model.Lead, 0, len(in))
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, leadInsertSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range in {
			l, err := scanLead(stmt.QueryRowContext(ctx, leadArgs(in[i])...))
			if err != nil {
				return fmt.Errorf("insert row %d: %w", i+1, err)
			}
			out = append(out, *l)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single lead by its ID.
func (r *LeadPostgres) FindByID(ctx context.Context, id int64) (*model.Lead, error) {
	q := `
		SELECT ` + leadColumns + `
		FROM leads l LEFT JOIN corretores c ON c.id = l.responsavel_id
		WHERE l.id = $1
	`
	return scanLead(r.db.QueryRowContext(ctx, q, id))
}

// List returns leads matching the filter using LIMIT/OFFSET pagination and a total count.
func (r *LeadPostgres) List(ctx context.Context, f repository.LeadFilter, pq repository.PageQuery) (*repository.PageResult[model.Lead], error) {
	where, args := leadWhere(f)

	var total int
	qCount := `SELECT COUNT(*) FROM leads l` + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(`
		SELECT %s
		FROM leads l LEFT JOIN corretores c ON c.id = l.responsavel_id%s
		ORDER BY %s, l.id DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, where, leadOrder(f), len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Lead]{
		Items: items,
		Total: total,
	}, nil
}

// Update replaces the writable columns of a lead.
func (r *LeadPostgres) Update(ctx context.Context, id int64, in model.LeadInput) (*model.Lead, error) {
	args := append([]any{id}, leadArgs(in)...)
	return scanLead(r.db.QueryRowContext(ctx, leadUpdateSQL, args...))
}

// Delete removes a lead by ID.
func (r *LeadPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
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

func leadWhere(f repository.LeadFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("l.status = $%d", f.Status)
	}
	if f.City != "" {
		add("lower(l.cidade) = lower($%d)", f.City)
	}
	if f.PlanType != "" {
		add("l.tipo_plano = $%d", f.PlanType)
	}
	if f.Temperature != "" {
		add("l.temperatura = $%d", f.Temperature)
	}
	if f.BrokerID > 0 {
		add("l.responsavel_id = $%d", f.BrokerID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(l.nome ILIKE $%[1]d OR l.email ILIKE $%[1]d OR l.telefone ILIKE $%[1]d)", "%"+s+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func leadOrder(f repository.LeadFilter) string {
	col, ok := repository.LeadSortColumns[f.SortBy]
	if !ok {
		col = repository.LeadSortColumns["created_at"]
	}
	if f.Ascending {
		return col + " ASC"
	}
	return col + " DESC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var (
		l                                               model.Lead
		city, plan, broker, source, temp, status, notes sql.NullString
		brokerID                                        sql.NullInt64
	)
	if err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&city,
		&plan,
		&brokerID,
		&broker,
		&source,
		&temp,
		&status,
		&notes,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	l.City = nullString(city)
	l.PlanType = nullString(plan)
	l.BrokerID = nullInt64(brokerID)
	l.BrokerName = nullString(broker)
	l.Source = nullString(source)
	l.Temperature = nullString(temp)
	l.Status = nullString(status)
	l.Notes = nullString(notes)
	return &l, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"conectaleads/internal/database"
	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// ReportPostgres runs aggregate queries over leads. Results are scanned with
// sqlx into the db-tagged model types.
type ReportPostgres struct {
	db *sqlx.DB
}

// NewReportPostgres wraps db for sqlx scanning.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: sqlx.NewDb(db, database.DriverName)}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

// CountLeads counts leads created inside tr.
func (r *ReportPostgres) CountLeads(ctx context.Context, tr repository.TimeRange) (int, error) {
	where, args := rangeWhere("created_at", tr, nil)
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM leads`+where, args...); err != nil {
		return 0, err
	}
	return n, nil
}

// CountByStatus groups leads created inside tr by status. Leads without a
// status count as new.
func (r *ReportPostgres) CountByStatus(ctx context.Context, tr repository.TimeRange) ([]model.Count, error) {
	where, args := rangeWhere("created_at", tr, nil)
	q := `
		SELECT COALESCE(status, '` + model.StatusNew + `') AS label, COUNT(*) AS total
		FROM leads` + where + `
		GROUP BY 1
		ORDER BY total DESC, label`
	return r.counts(ctx, q, args...)
}

// CountByTemperature groups leads created inside tr by temperature, skipping unclassified ones.
func (r *ReportPostgres) CountByTemperature(ctx context.Context, tr repository.TimeRange) ([]model.Count, error) {
	where, args := rangeWhere("created_at", tr, []string{"temperatura IS NOT NULL"})
	q := `
		SELECT temperatura AS label, COUNT(*) AS total
		FROM leads` + where + `
		GROUP BY 1
		ORDER BY total DESC, label`
	return r.counts(ctx, q, args...)
}

// CountBySource groups all leads by origin.
func (r *ReportPostgres) CountBySource(ctx context.Context) ([]model.Count, error) {
	q := `
		SELECT COALESCE(origem, 'desconhecida') AS label, COUNT(*) AS total
		FROM leads
		GROUP BY 1
		ORDER BY total DESC, label`
	return r.counts(ctx, q)
}

// CountByCity returns the ten cities with the most leads.
func (r *ReportPostgres) CountByCity(ctx context.Context) ([]model.Count, error) {
	q := `
		SELECT cidade AS label, COUNT(*) AS total
		FROM leads
		WHERE cidade IS NOT NULL AND cidade <> ''
		GROUP BY 1
		ORDER BY total DESC, label
		LIMIT 10`
	return r.counts(ctx, q)
}

// CountByPlanType groups leads that declared a plan type.
func (r *ReportPostgres) CountByPlanType(ctx context.Context) ([]model.Count, error) {
	q := `
		SELECT tipo_plano AS label, COUNT(*) AS total
		FROM leads
		WHERE tipo_plano IS NOT NULL AND tipo_plano <> ''
		GROUP BY 1
		ORDER BY total DESC, label`
	return r.counts(ctx, q)
}

// TopBrokers ranks brokers by closed leads, then by assigned leads, for leads created inside tr.
func (r *ReportPostgres) TopBrokers(ctx context.Context, tr repository.TimeRange, limit int) ([]model.BrokerPerformance, error) {
	where, args := rangeWhere("l.created_at", tr, nil)
	args = append(args, limit)
	q := fmt.Sprintf(`
		SELECT c.id AS broker_id, c.nome AS name,
			COUNT(l.id) AS leads,
			COUNT(l.id) FILTER (WHERE l.status = '%s') AS conversions
		FROM corretores c
		JOIN leads l ON l.responsavel_id = c.id%s
		GROUP BY c.id, c.nome
		ORDER BY conversions DESC, leads DESC, c.id
		LIMIT $%d`, model.StatusClosed, where, len(args))

	out := make([]model.BrokerPerformance, 0)
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReportPostgres) counts(ctx context.Context, q string, args ...any) ([]model.Count, error) {
	out := make([]model.Count, 0)
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// rangeWhere renders tr on col as a WHERE clause, prefixed by extra conditions.
func rangeWhere(col string, tr repository.TimeRange, extra []string) (string, []any) {
	conds := append([]string(nil), extra...)
	var args []any
	if !tr.From.IsZero() {
		args = append(args, tr.From)
		conds = append(conds, fmt.Sprintf("%s >= $%d", col, len(args)))
	}
	if !tr.To.IsZero() {
		args = append(args, tr.To)
		conds = append(conds, fmt.Sprintf("%s < $%d", col, len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

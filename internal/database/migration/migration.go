package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_corretores",
		SQL: `CREATE TABLE IF NOT EXISTS corretores (
  id         BIGSERIAL   PRIMARY KEY,
  nome       TEXT        NOT NULL,
  email      TEXT        NOT NULL UNIQUE,
  telefone   TEXT,
  cargo      TEXT,
  ativo      BOOLEAN     NOT NULL DEFAULT true,
  avatar_url TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_leads",
		SQL: `CREATE TABLE IF NOT EXISTS leads (
  id             BIGSERIAL   PRIMARY KEY,
  nome           TEXT        NOT NULL,
  email          TEXT        NOT NULL,
  telefone       TEXT        NOT NULL,
  cidade         TEXT,
  tipo_plano     TEXT,
  responsavel_id BIGINT      REFERENCES corretores (id) ON DELETE SET NULL,
  origem         TEXT,
  temperatura    TEXT,
  status         TEXT,
  observacoes    TEXT,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_leads_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at);`,
	},
	{
		Name: "create_index_leads_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status);`,
	},
	{
		Name: "create_index_leads_responsavel_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_leads_responsavel_id ON leads (responsavel_id);`,
	},
	{
		Name: "create_table_import_batches",
		SQL: `CREATE TABLE IF NOT EXISTS import_batches (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename      TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL UNIQUE,
  size          BIGINT      NOT NULL CHECK (size >= 0),
  status        TEXT        NOT NULL,
  lead_count    INTEGER     NOT NULL DEFAULT 0,
  error_message TEXT,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  kind        TEXT        NOT NULL,
  title       TEXT        NOT NULL,
  description TEXT        NOT NULL,
  read        BOOLEAN     NOT NULL DEFAULT false,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notifications_unread",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications (created_at) WHERE NOT read;`,
	},
}

// EnsureMigrated checks if the 'leads' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.leads') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.String("error_message", err.Error()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

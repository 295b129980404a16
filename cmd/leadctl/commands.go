package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conectaleads/internal/config"
	"conectaleads/internal/csvimport"
	"conectaleads/internal/database"
	"conectaleads/internal/database/migration"
	"conectaleads/internal/logging"
	"conectaleads/internal/model"
	"conectaleads/internal/repository/postgres"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "leadctl",
		Short:        "Validate, import and template lead CSV files",
		SilenceUsage: true,
	}
	root.AddCommand(validateCmd(), templateCmd(), importCmd(), migrateCmd())
	return root
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse a CSV file and print the accepted leads as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := parseFile(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(leads)
		},
	}
}

func templateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the import template CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return csvimport.WriteTemplate(cmd.OutOrStdout())
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a CSV file and insert every accepted lead in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := parseFile(args[0])
			if err != nil {
				return err
			}
			return withDB(cmd.Context(), func(db *sql.DB, _ *zap.Logger) error {
				inputs := make([]model.LeadInput, len(leads))
				for i, l := range leads {
					inputs[i] = l.Input()
				}
				stored, err := postgres.NewLeadPostgres(db).CreateMany(cmd.Context(), inputs)
				if err != nil {
					return fmt.Errorf("insert leads: %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d leads\n", len(stored))
				return err
			})
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *sql.DB, log *zap.Logger) error {
				cfg := config.Load()
				return migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host)
			})
		},
	}
}

func parseFile(path string) ([]model.ImportedLead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csvimport.ParseFile(f, path)
}

func withDB(ctx context.Context, fn func(db *sql.DB, log *zap.Logger) error) error {
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.Location())
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return fn(db, log)
}

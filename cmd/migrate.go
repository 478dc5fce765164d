package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/agenticsoft/gescom/internal/schema"
	"github.com/agenticsoft/gescom/pkg/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long:  `Apply pending schema migrations in order and record them, then exit`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runMigrations() error {
	config, err := loadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	_, sqlDB, err := initDB(config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	store := schema.NewStore(sqlDB, schema.Migrations(), config.Database.Driver, lg)
	if err := store.ApplyPending(ctx); err != nil {
		return err
	}

	applied, err := store.AppliedVersions(ctx)
	if err != nil {
		return err
	}
	lg.Info("schema up to date", "applied", len(applied))
	return nil
}

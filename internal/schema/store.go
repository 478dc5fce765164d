package schema

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/agenticsoft/gescom/internal"
)

// Store applies ordered schema scripts exactly once each and records the
// applied versions in the schema_migrations table. A version is the script
// filename without its .sql extension; scripts run in ascending version
// order.
type Store struct {
	db     *sql.DB
	fsys   fs.FS
	driver string
	logger *slog.Logger
}

func NewStore(db *sql.DB, fsys fs.FS, driver string, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		fsys:   fsys,
		driver: driver,
		logger: logger,
	}
}

func (s *Store) ensureSchemaTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return internal.NewInternalError("failed to create schema_migrations table", err)
	}
	return nil
}

// AppliedVersions returns the set of versions already recorded as applied.
func (s *Store) AppliedVersions(ctx context.Context) (map[string]struct{}, error) {
	if err := s.ensureSchemaTable(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, internal.NewInternalError("failed to read applied versions", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, internal.NewInternalError("failed to scan version", err)
		}
		applied[version] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, internal.NewInternalError("failed to iterate versions", err)
	}
	return applied, nil
}

// AvailableMigrations lists the script versions present in the migrations
// filesystem, ascending. An absent filesystem yields an empty list.
func (s *Store) AvailableMigrations() ([]string, error) {
	if s.fsys == nil {
		return nil, nil
	}

	entries, err := fs.Glob(s.fsys, "*.sql")
	if err != nil {
		return nil, internal.NewInternalError("failed to list migration scripts", err)
	}

	versions := make([]string, 0, len(entries))
	for _, name := range entries {
		versions = append(versions, strings.TrimSuffix(name, ".sql"))
	}
	sort.Strings(versions)
	return versions, nil
}

// ApplyPending runs every available script whose version has not been
// applied, in ascending order. Each script executes in its own transaction
// together with its version record: a failing script records nothing and
// aborts the run. Re-running with nothing new is a no-op.
func (s *Store) ApplyPending(ctx context.Context) error {
	applied, err := s.AppliedVersions(ctx)
	if err != nil {
		return err
	}

	available, err := s.AvailableMigrations()
	if err != nil {
		return err
	}

	for _, version := range available {
		if _, ok := applied[version]; ok {
			continue
		}

		script, err := fs.ReadFile(s.fsys, version+".sql")
		if err != nil {
			return internal.NewMigrationError(version, err)
		}

		s.logger.Info("applying migration", "version", version)
		if err := s.applyOne(ctx, version, string(script)); err != nil {
			return err
		}
		s.logger.Info("applied migration", "version", version)
	}

	return nil
}

func (s *Store) applyOne(ctx context.Context, version, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return internal.NewMigrationError(version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return internal.NewMigrationError(version, err)
	}

	insert := fmt.Sprintf("INSERT INTO schema_migrations (version) VALUES (%s)", s.versionPlaceholder())
	if _, err := tx.ExecContext(ctx, insert, version); err != nil {
		return internal.NewMigrationError(version, err)
	}

	if err := tx.Commit(); err != nil {
		return internal.NewMigrationError(version, err)
	}
	return nil
}

func (s *Store) versionPlaceholder() string {
	if s.driver == internal.DriverPostgres {
		return "$1"
	}
	return "?"
}

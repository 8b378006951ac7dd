package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"finora-backend/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

const seedsPath = "db/seeds"

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

// sqlDriverNames maps config drivers to database/sql driver names. Both are
// registered by the migrate database packages imported above.
var sqlDriverNames = map[string]string{
	config.DriverSQLite:   "sqlite3",
	config.DriverPostgres: "postgres",
}

// MigrationRunner applies the embedded schema migrations and optional seed
// data.
type MigrationRunner struct {
	db        *sql.DB
	cfg       *config.DatabaseConfig
	seedsPath string
	log       *logrus.Logger
}

func NewMigrationRunner(db *sql.DB, cfg *config.DatabaseConfig, log *logrus.Logger) *MigrationRunner {
	return &MigrationRunner{
		db:        db,
		cfg:       cfg,
		seedsPath: seedsPath,
		log:       log,
	}
}

// Run waits for the database, applies pending migrations and logs the
// resulting schema version.
func (mr *MigrationRunner) Run(ctx context.Context) error {
	if err := mr.WaitForDatabase(ctx); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := mr.RunMigrations(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	version, dirty, err := mr.GetMigrationStatus()
	if err != nil {
		mr.log.WithError(err).Warn("Failed to get migration status")
		return nil
	}

	mr.log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migration status")
	return nil
}

func (mr *MigrationRunner) WaitForDatabase(ctx context.Context) error {
	for i := 0; i < maxRetries; i++ {
		err := mr.db.PingContext(ctx)
		if err == nil {
			return nil
		}

		mr.log.WithError(err).Warnf("Database not ready (attempt %d/%d)", i+1, maxRetries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	return fmt.Errorf("database not ready after %d attempts", maxRetries)
}

func (mr *MigrationRunner) RunMigrations() error {
	m, closeFn, err := mr.newMigrate()
	if err != nil {
		return err
	}
	defer closeFn()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		mr.log.Warnf("Database is in dirty state at version %d, forcing version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mr.log.Info("No new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	mr.log.Info("Successfully applied migrations")
	return nil
}

func (mr *MigrationRunner) GetMigrationStatus() (version uint, dirty bool, err error) {
	m, closeFn, err := mr.newMigrate()
	if err != nil {
		return 0, false, err
	}
	defer closeFn()

	return m.Version()
}

// LoadSeeds executes every *.sql file under the seeds directory in name
// order. Seed files must be idempotent.
func (mr *MigrationRunner) LoadSeeds(ctx context.Context) error {
	if _, err := os.Stat(mr.seedsPath); os.IsNotExist(err) {
		mr.log.Infof("Seeds directory not found at %s, skipping seed data", mr.seedsPath)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to find seed files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := mr.db.ExecContext(ctx, string(content)); err != nil {
			mr.log.WithError(err).Warnf("Failed to execute seed file %s", filepath.Base(file))
			continue
		}

		mr.log.Infof("Executed seed file %s", filepath.Base(file))
	}

	return nil
}

// newMigrate builds a migrate instance on a dedicated connection, since
// closing the instance also closes the connection it was given.
func (mr *MigrationRunner) newMigrate() (*migrate.Migrate, func(), error) {
	driverName, ok := sqlDriverNames[mr.cfg.Driver]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported database driver %q", mr.cfg.Driver)
	}

	migrateDB, err := sql.Open(driverName, mr.cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open migration database: %w", err)
	}

	var driver migratedb.Driver
	switch mr.cfg.Driver {
	case config.DriverSQLite:
		driver, err = sqlite3.WithInstance(migrateDB, &sqlite3.Config{})
	case config.DriverPostgres:
		driver, err = postgres.WithInstance(migrateDB, &postgres.Config{})
	}
	if err != nil {
		migrateDB.Close()
		return nil, nil, fmt.Errorf("create %s migration driver: %w", mr.cfg.Driver, err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+mr.cfg.Driver)
	if err != nil {
		driver.Close()
		return nil, nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, mr.cfg.Driver, driver)
	if err != nil {
		driver.Close()
		return nil, nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return m, func() { m.Close() }, nil
}

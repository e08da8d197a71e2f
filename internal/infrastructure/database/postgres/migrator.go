package postgres

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
)

// Migrator applies SQL schema migrations from a directory of
// golang-migrate-formatted files.
type Migrator struct {
	conn   *Connection
	dir    string
	logger logging.Logger
}

// NewMigrator creates a migrator reading migrations from dir.
func NewMigrator(conn *Connection, dir string, log logging.Logger) *Migrator {
	return &Migrator{conn: conn, dir: dir, logger: log}
}

func (m *Migrator) instance() (*migrate.Migrate, error) {
	driver, err := migratepg.WithInstance(m.conn.DB(), &migratepg.Config{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create migration driver")
	}
	inst, err := migrate.NewWithDatabaseInstance("file://"+m.dir, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create migrate instance")
	}
	return inst, nil
}

// Up applies all pending migrations.  A database already at the latest
// version is not an error.
func (m *Migrator) Up() error {
	inst, err := m.instance()
	if err != nil {
		return err
	}

	if err := inst.Up(); err != nil && err != migrate.ErrNoChange {
		version, _, _ := inst.Version()
		return errors.Wrap(err, errors.ErrCodeInternal,
			fmt.Sprintf("failed to run migrations (current version: %d)", version))
	}

	version, dirty, err := inst.Version()
	if err != nil && err != migrate.ErrNilVersion {
		m.logger.Warn("failed to read migration version", logging.Err(err))
	}
	m.logger.Info("database migrations applied",
		logging.Int64("version", int64(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back a single migration step.
func (m *Migrator) Down() error {
	inst, err := m.instance()
	if err != nil {
		return err
	}
	if err := inst.Steps(-1); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to roll back migration")
	}
	m.logger.Info("rolled back one migration step")
	return nil
}

// Version reports the current schema version and dirty flag; version 0 means
// no migration has been applied.
func (m *Migrator) Version() (uint, bool, error) {
	inst, err := m.instance()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := inst.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to read migration version")
	}
	return version, dirty, nil
}

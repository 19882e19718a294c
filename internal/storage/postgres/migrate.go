package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// NewMigrator opens the migrations in dir against the database at dsn.
// The caller must Close it.
func NewMigrator(dsn, dir string, logger *zap.Logger) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return nil, fmt.Errorf("migration init: %w", err)
	}
	m.Log = &migrateLogger{logger: logger.Sugar()}
	return m, nil
}

// Migrate applies every pending migration in dir.
func Migrate(dsn, dir string, logger *zap.Logger) error {
	m, err := NewMigrator(dsn, dir, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	logger.Info("migrations applied", zap.String("dir", dir))
	return nil
}

type migrateLogger struct {
	logger  *zap.SugaredLogger
	verbose bool
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool { return l.verbose }

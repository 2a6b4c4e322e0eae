package database

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"

	"github.com/mbolis/survey-studio/log"
)

//go:embed migrations
var kvMigrations embed.FS

// migrateKV applies every embedded migration the kv schema is missing.
// The migrator is not closed: closing it would close db too.
func migrateKV(db *sql.DB) error {
	src, err := iofs.New(kvMigrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "migrations source")
	}
	dst, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return errors.Wrap(err, "migrations target")
	}
	migrator, err := migrate.NewWithInstance("iofs", src, "sqlite3", dst)
	if err != nil {
		return errors.Wrap(err, "migrator")
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrate up")
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return errors.Wrap(err, "schema version")
	}
	if dirty {
		return errors.Errorf("kv schema version %d is dirty", version)
	}
	log.WithFields(log.Fields{"version": version}).Debug("kv schema ready")
	return nil
}

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"blackjack-server/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
)

var instance *sql.DB
var instanceLock sync.Mutex

// Instance returns a database instance
func Instance() *sql.DB {
	instanceLock.Lock()
	defer instanceLock.Unlock()

	if instance == nil {
		loadInstance()
	}

	return instance
}

// NOTE: instanceLock must be held
func loadInstance() {
	db, err := Open(config.Instance().PGDSN)
	if err != nil {
		panic(err)
	}

	instance = db
}

// Open connects to the database and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Available returns nil if the database can be reached
// Tests use this to skip when Postgres is not running
func Available() error {
	instanceLock.Lock()
	defer instanceLock.Unlock()

	if instance != nil {
		return instance.Ping()
	}

	db, err := Open(config.Instance().PGDSN)
	if err != nil {
		return err
	}

	instance = db
	return nil
}

// Migrate runs the migrations
func Migrate() error {
	migrationsPath := config.Instance().MigrationsPath
	db := Instance()

	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}

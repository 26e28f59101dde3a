package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// sqliteParams enables foreign keys, waits on a busy database instead of
// failing, takes the write lock at BEGIN so writers serialize, and stores
// timestamps in a sortable format.
const sqliteParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate&_time_format=sqlite"

// DB wraps a *sql.DB and provides repository methods.
type DB struct {
	sql    *sql.DB
	driver string
	dsn    string

	now    func() time.Time
	mu     sync.Mutex
	lastTS time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the clock used to timestamp new sets.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// Open connects to the database. driver is DriverSQLite (dsn is a file path)
// or DriverPostgres (dsn is a postgres:// URL).
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*DB, error) {
	sqlDriver, connStr, err := driverDSN(driver, dsn)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open(sqlDriver, connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{sql: conn, driver: driver, dsn: dsn, now: time.Now}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.sql.Close()
}

func driverDSN(driver, dsn string) (sqlDriver, connStr string, err error) {
	switch driver {
	case DriverSQLite, "":
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return "sqlite", dsn + sep + sqliteParams, nil
	case DriverPostgres:
		return "pgx", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// RunMigrations applies all pending embedded migrations for the driver.
func RunMigrations(driver, dsn string) error {
	sqlDriver, connStr, err := driverDSN(driver, dsn)
	if err != nil {
		return err
	}
	conn, err := sql.Open(sqlDriver, connStr)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}

	var (
		target  database.Driver
		dirName string
	)
	if sqlDriver == "sqlite" {
		dirName = "migrations/sqlite"
		target, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	} else {
		dirName = "migrations/postgres"
		target, err = migratepgx.WithInstance(conn, &migratepgx.Config{})
	}
	if err != nil {
		conn.Close()
		return fmt.Errorf("creating migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, dirName)
	if err != nil {
		target.Close()
		return fmt.Errorf("loading migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, sqlDriver, target)
	if err != nil {
		src.Close()
		target.Close()
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back on error.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $N for postgres.
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stamp returns the timestamp for a new set. Readings never go backwards,
// so insertion order and timestamp order agree within a process.
func (db *DB) stamp() time.Time {
	db.mu.Lock()
	defer db.mu.Unlock()

	t := db.now().UTC().Truncate(time.Microsecond)
	if t.Before(db.lastTS) {
		t = db.lastTS
	}
	db.lastTS = t
	return t
}

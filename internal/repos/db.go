package repos

import (
	"context"
	"strings"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	applog "bookstore/internal/log"
)

const driverName = "sqlite"

// OpenDB opens the SQLite database behind dsn and makes sure every table exists.
// The connection is instrumented with the global OpenTelemetry providers.
func OpenDB(dsn string) (*sqlx.DB, error) {
	attrs := otelsql.WithAttributes(attribute.String("db.system", "sqlite"))
	raw, err := otelsql.Open(driverName, dsn, attrs)
	if err != nil {
		return nil, err
	}
	// Every connection to ":memory:" is a separate database.
	if strings.Contains(dsn, ":memory:") {
		raw.SetMaxOpenConns(1)
	}
	db := sqlx.NewDb(raw, driverName)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := otelsql.RegisterDBStatsMetrics(raw, attrs); err != nil {
		applog.Info(nil, "db.stats.skip", map[string]any{"err": err.Error()})
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ensureSchema only ever creates; existing tables and rows are left alone.
func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products (
  _id TEXT PRIMARY KEY,
  bookName TEXT,
  author TEXT,
  originalPrice REAL,
  discountedPrice REAL,
  discountPercent INTEGER,
  imgSrc TEXT,
  imgAlt TEXT,
  badgeText TEXT,
  outOfStock BOOLEAN,
  fastDeliveryAvailable BOOLEAN,
  genre TEXT,
  rating INTEGER,
  description TEXT
);

-- book_id is a soft reference: the write path creates the product when needed.
CREATE TABLE IF NOT EXISTS wishlist (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  book_id TEXT
);

CREATE TABLE IF NOT EXISTS cart (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  book_id TEXT
);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  email TEXT UNIQUE NOT NULL,
  password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS newArrivalList (
  _id TEXT PRIMARY KEY,
  bookName TEXT,
  author TEXT,
  originalPrice REAL,
  discountedPrice REAL,
  discountPercent INTEGER,
  imgSrc TEXT,
  imgAlt TEXT,
  badgeText TEXT,
  outOfStock BOOLEAN,
  fastDeliveryAvailable BOOLEAN,
  genre TEXT,
  rating INTEGER,
  description TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// Seed inserts a small demo catalog into both product tables when they are empty.
// Safe to run repeatedly.
func Seed(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []Table{Catalog, NewArrivals} {
		var n int
		if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+string(t)); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		applog.Info(nil, "db.seed", map[string]any{"table": string(t), "rows": len(seedBooks)})
		for _, p := range seedBooks {
			if err := writeProduct(ctx, tx, t, insertIfAbsent, p); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

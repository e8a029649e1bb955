package sqlstore

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// SQL backend for the account and booking stores. The driver is picked
// by config: "postgres" (lib/pq) or "sqlite3" for an embedded database.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	username       TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	name           TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	birth_date     TEXT NOT NULL DEFAULT '',
	role           TEXT NOT NULL DEFAULT 'client',
	loyalty_points INTEGER NOT NULL DEFAULT 0,
	total_visits   INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	user_name        TEXT NOT NULL DEFAULT '',
	service_id       INTEGER NOT NULL,
	service_name     TEXT NOT NULL DEFAULT '',
	date             TEXT NOT NULL,
	time             TEXT NOT NULL,
	price            DOUBLE PRECISION NOT NULL,
	original_price   DOUBLE PRECISION NOT NULL,
	discount_applied BOOLEAN NOT NULL DEFAULT FALSE,
	status           TEXT NOT NULL DEFAULT 'confirmed',
	notes            TEXT NOT NULL DEFAULT '',
	admin_notes      TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_slot
	ON bookings(date, time) WHERE status != 'cancelled';
`

type DB struct {
	*sqlx.DB
}

// NewDB opens the database and bootstraps the schema.
func NewDB(driver, dsn string) (*DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return &DB{db}, nil
}

// isUniqueViolation recognises duplicate-key errors from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	return isSQLiteUniqueViolation(err)
}

package postgres

import (
	"database/sql"

	"github.com/devmarvs/pagegate/session"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const Driver = "pgx"

// Open opens a PostgreSQL pool through the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open(Driver, dsn)
}

type SessionStore = session.PostgresStore
type SessionOptions = session.PostgresOptions

// NewSessionStore builds a Postgres-backed session store.
func NewSessionStore(options SessionOptions) (*SessionStore, error) {
	return session.NewPostgresStore(options)
}

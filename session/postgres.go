package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DefaultPostgresTable = "pagegate_sessions"

// PostgresOptions configures a Postgres store.
type PostgresOptions struct {
	DB      *sql.DB
	Table   string
	TTL     time.Duration
	Timeout time.Duration
}

// PostgresStore stores records in PostgreSQL, one row per fingerprint.
type PostgresStore struct {
	DB      *sql.DB
	Table   string
	TTL     time.Duration
	Timeout time.Duration
	now     func() time.Time
}

// NewPostgresStore builds a Postgres-backed store.
func NewPostgresStore(options PostgresOptions) (*PostgresStore, error) {
	if options.DB == nil {
		return nil, errors.New("postgres db is required")
	}
	table := strings.TrimSpace(options.Table)
	if table == "" {
		table = DefaultPostgresTable
	}
	if !validPostgresTable(table) {
		return nil, fmt.Errorf("invalid postgres table name: %s", table)
	}

	return &PostgresStore{
		DB:      options.DB,
		Table:   table,
		TTL:     options.TTL,
		Timeout: options.Timeout,
		now:     time.Now,
	}, nil
}

// EnsureTable creates the session table if it does not exist.
func (s *PostgresStore) EnsureTable(ctx context.Context) error {
	createTable := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		fingerprint TEXT PRIMARY KEY,
		record JSONB NOT NULL,
		expires_at TIMESTAMPTZ
	)`, s.Table)
	if _, err := s.DB.ExecContext(ctx, createTable); err != nil {
		return err
	}
	createIndex := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_expires_idx ON %s (expires_at)", s.Table, s.Table)
	_, err := s.DB.ExecContext(ctx, createIndex)
	return err
}

// Cleanup removes expired records.
func (s *PostgresStore) Cleanup(ctx context.Context) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE expires_at IS NOT NULL AND expires_at < NOW()", s.Table)
	_, err := s.DB.ExecContext(ctx, query)
	return err
}

// Get returns the record stored at key, if any.
func (s *PostgresStore) Get(ctx context.Context, key string) (Record, bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var payload []byte
	var expires sql.NullTime
	query := fmt.Sprintf("SELECT record, expires_at FROM %s WHERE fingerprint = $1", s.Table)
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&payload, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	if expires.Valid && s.now().After(expires.Time) {
		_ = s.deleteByKey(ctx, key)
		return Record{}, false, nil
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

// Set upserts the record at key, refreshing its expiry.
func (s *PostgresStore) Set(ctx context.Context, key string, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	var expires sql.NullTime
	if s.TTL > 0 {
		expires = sql.NullTime{Time: s.now().Add(s.TTL), Valid: true}
	}

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (fingerprint, record, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (fingerprint) DO UPDATE SET record = EXCLUDED.record, expires_at = EXCLUDED.expires_at`, s.Table)
	_, err = s.DB.ExecContext(ctx, query, key, payload, expires)
	return err
}

// Delete removes the record at key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.deleteByKey(ctx, key)
}

func (s *PostgresStore) deleteByKey(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE fingerprint = $1", s.Table)
	_, err := s.DB.ExecContext(ctx, query, key)
	return err
}

func (s *PostgresStore) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if s.Timeout <= 0 {
		return parent, func() {}
	}
	return context.WithTimeout(parent, s.Timeout)
}

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)?$`)

func validPostgresTable(name string) bool {
	return tableNamePattern.MatchString(name)
}

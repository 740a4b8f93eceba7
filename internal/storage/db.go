// Package storage is the Postgres-backed user store behind the auth and
// admin endpoints. Chat content is never persisted here.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Postgres driver, registered under "postgres".
	_ "github.com/lib/pq"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// DB wraps the SQL connection pool.
type DB struct {
	db *sql.DB
}

// Open connects to Postgres, verifies the connection and makes sure the
// users table exists.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &DB{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection. Used by tests with sqlmock.
func NewWithDB(db *sql.DB) *DB {
	return &DB{db: db}
}

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (s *DB) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaUsers); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *DB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the pool.
func (s *DB) Close() error {
	return s.db.Close()
}

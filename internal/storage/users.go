package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	apperrors "github.com/dut-ailab/advisor-go/internal/errors"
)

// User is one account row. PasswordHash never leaves this package through
// the HTTP layer.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// uniqueViolation is the Postgres error code for a duplicate key.
const uniqueViolation = "23505"

// CreateUser inserts an account and returns it with id and created_at
// filled in. A taken username maps to ErrInvalidInput.
func (s *DB) CreateUser(ctx context.Context, username, passwordHash, role string) (*User, error) {
	const q = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	u := &User{Username: username, PasswordHash: passwordHash, Role: role}
	err := s.db.QueryRowContext(ctx, q, username, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrInvalidInput, username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUserByUsername fetches one account by username.
func (s *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	const q = `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, q, username))
}

// GetUserByID fetches one account by id.
func (s *DB) GetUserByID(ctx context.Context, id int64) (*User, error) {
	const q = `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, q, id))
}

// ListUsers returns every account, newest first.
func (s *DB) ListUsers(ctx context.Context) ([]User, error) {
	const q = `
		SELECT id, username, password_hash, role, created_at
		FROM users
		ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// UpdateUserRole changes one account's role.
func (s *DB) UpdateUserRole(ctx context.Context, id int64, role string) error {
	const q = `UPDATE users SET role = $2 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, id, role)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	return requireRowAffected(res)
}

// DeleteUser removes one account.
func (s *DB) DeleteUser(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRowAffected(res)
}

func (s *DB) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/plugashop/storefront/internal/errors"

	"github.com/plugashop/storefront/internal/data/pgxutil"
)

// AuthUser is a row of the auth_users table, used only when accounts are
// managed locally instead of by a hosted identity API.
type AuthUser struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserRepo provides database operations for locally managed accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const (
	authUserByEmailQuery = `
		SELECT id, email, password_hash, created_at, updated_at
		FROM auth_users
		WHERE email = $1`

	authUserInsertQuery = `
		INSERT INTO auth_users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at, updated_at`
)

// GetByEmail retrieves an account by email. Emails are stored lowercase.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*AuthUser, error) {
	var user AuthUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, authUserByEmailQuery, normalizeEmail(email))
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[AuthUser])
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new account with an already-hashed password.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*AuthUser, error) {
	var user AuthUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, authUserInsertQuery, normalizeEmail(email), passwordHash)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[AuthUser])
		return err
	})
	if err != nil {
		if apperrors.IsConflict(mapPgError(err)) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

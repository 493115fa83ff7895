package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plugashop/storefront/internal/data/pgxutil"
	domainauth "github.com/plugashop/storefront/internal/domain/auth"
)

// ProfileRepo provides database operations for user profiles.
type ProfileRepo struct {
	DB *sql.DB
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db}
}

// profileRow mirrors the profiles table. It is separate from the domain
// Profile so db tags stay out of the auth package.
type profileRow struct {
	ID        string  `db:"id"`
	FirstName *string `db:"first_name"`
	LastName  *string `db:"last_name"`
	Language  *string `db:"language"`
	Phone     *string `db:"phone"`
	AvatarURL *string `db:"avatar_url"`
}

const (
	profileGetQuery = `
		SELECT id, first_name, last_name, language, phone, avatar_url
		FROM profiles
		WHERE id = $1`

	profileUpsertQuery = `
		INSERT INTO profiles (id, first_name, last_name, language, phone, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			language = EXCLUDED.language,
			phone = EXCLUDED.phone,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = now()`
)

// ProfileForUser returns the profile row for a user, or nil when the user
// has none. Missing profiles are expected; display falls back to the email.
func (r *ProfileRepo) ProfileForUser(ctx context.Context, userID string) (*domainauth.Profile, error) {
	var row profileRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileGetQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[profileRow])
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &domainauth.Profile{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Language:  row.Language,
		Phone:     row.Phone,
		AvatarURL: row.AvatarURL,
	}, nil
}

// Upsert writes the profile row for a user, creating it when absent.
func (r *ProfileRepo) Upsert(ctx context.Context, p domainauth.Profile) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, profileUpsertQuery,
			p.ID, p.FirstName, p.LastName, p.Language, p.Phone, p.AvatarURL)
		return err
	})
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plugashop/storefront/internal/data/pgxutil"
	"github.com/plugashop/storefront/internal/domain/model"
)

// SectionRepo provides database operations for storefront sections.
type SectionRepo struct {
	DB *sql.DB
}

// NewSectionRepo creates a new SectionRepo.
func NewSectionRepo(db *sql.DB) *SectionRepo {
	return &SectionRepo{DB: db}
}

const sectionActiveByTypeQuery = `
	SELECT id, store_id, section_type, title, subtitle, content, sort_order,
	       is_active, created_at, updated_at
	FROM store_sections
	WHERE store_id = $1 AND section_type = $2 AND is_active = TRUE
	ORDER BY sort_order ASC
	LIMIT 1`

// ActiveByType returns the first active section of the given type in sort
// order. A store without one returns (nil, nil); pages render defaults.
func (r *SectionRepo) ActiveByType(
	ctx context.Context,
	storeID, sectionType string,
) (*model.StoreSection, error) {
	var section model.StoreSection
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, sectionActiveByTypeQuery, storeID, sectionType)
		if err != nil {
			return err
		}
		defer rows.Close()
		section, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.StoreSection])
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s section: %w", sectionType, err)
	}
	return &section, nil
}

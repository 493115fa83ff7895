// Package devseed populates a development database with demo stores,
// catalog data, and accounts. Every insert is idempotent, so seeding an
// already-seeded database is safe.
package devseed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/plugashop/storefront/internal/data/pgxutil"
)

// DemoPassword is the password every seeded local account accepts.
const DemoPassword = "plugashop"

// Run seeds development data inside a single transaction.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	err := pgxutil.WithPgxTx(ctx, db, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			s := &seeder{tx: tx, ctx: ctx}

			demoID, err := s.store(storeSeed{
				Name:      "Demo Shop",
				Slug:      "demo",
				Domain:    "demo.example.com",
				Subdomain: "demo",
				Theme: map[string]string{
					"primaryColor":   "#16a34a",
					"secondaryColor": "#f0fdf4",
					"accentColor":    "#f97316",
				},
			})
			if err != nil {
				return err
			}
			if err = s.demoCatalog(demoID); err != nil {
				return err
			}

			outdoorID, err := s.store(storeSeed{
				Name:      "Trilha Outdoor",
				Slug:      "outdoor",
				Subdomain: "outdoor",
				Theme: map[string]string{
					"primaryColor":   "#0f766e",
					"secondaryColor": "#f0fdfa",
					"accentColor":    "#eab308",
				},
			})
			if err != nil {
				return err
			}
			if err = s.outdoorCatalog(outdoorID); err != nil {
				return err
			}

			return s.accounts(demoID)
		},
	})
	if err != nil {
		return fmt.Errorf("seed development data: %w", err)
	}

	logger.InfoContext(ctx, "development data seeded",
		"stores", 2,
		"password", DemoPassword,
	)
	return nil
}

type seeder struct {
	tx  pgx.Tx
	ctx context.Context
}

type storeSeed struct {
	Name      string
	Slug      string
	Domain    string
	Subdomain string
	Theme     map[string]string
}

func (s *seeder) store(seed storeSeed) (string, error) {
	theme, err := json.Marshal(seed.Theme)
	if err != nil {
		return "", fmt.Errorf("marshal theme for %q: %w", seed.Slug, err)
	}

	var id string
	err = s.tx.QueryRow(s.ctx, `
		INSERT INTO stores (name, slug, domain, subdomain, theme_config)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`,
		seed.Name, seed.Slug, seed.Domain, seed.Subdomain, theme,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("seed store %q: %w", seed.Slug, err)
	}
	return id, nil
}

type categorySeed struct {
	Slug string
	Name map[string]string
	Sort int
}

type productSeed struct {
	Slug           string
	Name           map[string]string
	Description    map[string]string
	Price          float64
	CompareAtPrice float64
	Inventory      int
	Featured       bool
	Image          string
}

func (s *seeder) demoCatalog(storeID string) error {
	categories := []categorySeed{
		{Slug: "kitchen", Name: map[string]string{"pt-BR": "Cozinha", "en": "Kitchen", "es": "Cocina"}, Sort: 1},
		{Slug: "office", Name: map[string]string{"pt-BR": "Escritório", "en": "Office", "es": "Oficina"}, Sort: 2},
		{Slug: "apparel", Name: map[string]string{"pt-BR": "Vestuário", "en": "Apparel", "es": "Ropa"}, Sort: 3},
	}
	products := []productSeed{
		{
			Slug:           "blue-mug",
			Name:           map[string]string{"pt-BR": "Caneca Azul", "en": "Blue Mug", "es": "Taza Azul"},
			Description:    map[string]string{"pt-BR": "Caneca de cerâmica 350ml.", "en": "350ml ceramic mug.", "es": "Taza de cerámica de 350ml."},
			Price:          39.90,
			CompareAtPrice: 49.90,
			Inventory:      120,
			Featured:       true,
			Image:          "/static/seed/blue-mug.jpg",
		},
		{
			Slug:      "cutting-board",
			Name:      map[string]string{"pt-BR": "Tábua de Corte", "en": "Cutting Board", "es": "Tabla de Cortar"},
			Price:     89.00,
			Inventory: 45,
			Image:     "/static/seed/cutting-board.jpg",
		},
		{
			Slug:      "desk-organizer",
			Name:      map[string]string{"pt-BR": "Organizador de Mesa", "en": "Desk Organizer", "es": "Organizador de Escritorio"},
			Price:     59.50,
			Inventory: 80,
			Featured:  true,
			Image:     "/static/seed/desk-organizer.jpg",
		},
		{
			Slug:      "notebook-a5",
			Name:      map[string]string{"pt-BR": "Caderno A5", "en": "A5 Notebook", "es": "Cuaderno A5"},
			Price:     24.90,
			Inventory: 300,
			Image:     "/static/seed/notebook-a5.jpg",
		},
		{
			Slug:      "logo-tee",
			Name:      map[string]string{"pt-BR": "Camiseta com Logo", "en": "Logo Tee", "es": "Camiseta con Logo"},
			Price:     69.90,
			Inventory: 0,
			Image:     "/static/seed/logo-tee.jpg",
		},
	}
	sections := []sectionSeed{
		{
			Type:     "hero",
			Title:    map[string]string{"pt-BR": "Bem-vindo à Demo Shop", "en": "Welcome to Demo Shop", "es": "Bienvenido a Demo Shop"},
			Subtitle: map[string]string{"pt-BR": "Produtos para casa e escritório", "en": "Goods for home and office", "es": "Productos para casa y oficina"},
			Sort:     1,
		},
		{
			Type:  "featured_products",
			Title: map[string]string{"pt-BR": "Destaques", "en": "Featured", "es": "Destacados"},
			Sort:  2,
		},
	}
	return s.catalog(storeID, categories, products, sections)
}

func (s *seeder) outdoorCatalog(storeID string) error {
	categories := []categorySeed{
		{Slug: "camping", Name: map[string]string{"pt-BR": "Camping", "en": "Camping", "es": "Camping"}, Sort: 1},
		{Slug: "trekking", Name: map[string]string{"pt-BR": "Trilha", "en": "Trekking", "es": "Senderismo"}, Sort: 2},
	}
	products := []productSeed{
		{
			Slug:      "trail-bottle",
			Name:      map[string]string{"pt-BR": "Garrafa de Trilha", "en": "Trail Bottle", "es": "Botella de Senderismo"},
			Price:     79.90,
			Inventory: 60,
			Featured:  true,
			Image:     "/static/seed/trail-bottle.jpg",
		},
		{
			Slug:           "camp-lantern",
			Name:           map[string]string{"pt-BR": "Lanterna de Camping", "en": "Camp Lantern", "es": "Linterna de Camping"},
			Price:          129.00,
			CompareAtPrice: 159.00,
			Inventory:      25,
			Image:          "/static/seed/camp-lantern.jpg",
		},
	}
	sections := []sectionSeed{
		{
			Type:     "hero",
			Title:    map[string]string{"pt-BR": "Equipamentos para aventura", "en": "Gear for the outdoors", "es": "Equipo para la aventura"},
			Subtitle: map[string]string{"pt-BR": "Do acampamento ao cume", "en": "From camp to summit", "es": "Del campamento a la cumbre"},
			Sort:     1,
		},
	}
	return s.catalog(storeID, categories, products, sections)
}

func (s *seeder) catalog(
	storeID string,
	categories []categorySeed,
	products []productSeed,
	sections []sectionSeed,
) error {
	for _, c := range categories {
		name, err := json.Marshal(c.Name)
		if err != nil {
			return fmt.Errorf("marshal category name %q: %w", c.Slug, err)
		}
		_, err = s.tx.Exec(s.ctx, `
			INSERT INTO categories (store_id, slug, name, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (store_id, slug) DO UPDATE SET name = EXCLUDED.name`,
			storeID, c.Slug, name, c.Sort,
		)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.Slug, err)
		}
	}

	for _, p := range products {
		if err := s.product(storeID, p); err != nil {
			return err
		}
	}

	for _, sec := range sections {
		if err := s.section(storeID, sec); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) product(storeID string, p productSeed) error {
	name, err := json.Marshal(p.Name)
	if err != nil {
		return fmt.Errorf("marshal product name %q: %w", p.Slug, err)
	}
	var description []byte
	if len(p.Description) > 0 {
		if description, err = json.Marshal(p.Description); err != nil {
			return fmt.Errorf("marshal product description %q: %w", p.Slug, err)
		}
	}

	var compareAt *float64
	if p.CompareAtPrice > 0 {
		compareAt = &p.CompareAtPrice
	}

	var id string
	err = s.tx.QueryRow(s.ctx, `
		INSERT INTO products
			(store_id, slug, name, description, price, compare_at_price,
			 inventory_quantity, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (store_id, slug) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			is_featured = EXCLUDED.is_featured
		RETURNING id`,
		storeID, p.Slug, name, description, p.Price, compareAt, p.Inventory, p.Featured,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("seed product %q: %w", p.Slug, err)
	}

	if p.Image == "" {
		return nil
	}
	_, err = s.tx.Exec(s.ctx, `
		INSERT INTO product_images (product_id, url, sort_order)
		SELECT $1, $2, 0
		WHERE NOT EXISTS (
			SELECT 1 FROM product_images WHERE product_id = $1 AND url = $2
		)`,
		id, p.Image,
	)
	if err != nil {
		return fmt.Errorf("seed product image %q: %w", p.Slug, err)
	}
	return nil
}

type sectionSeed struct {
	Type     string
	Title    map[string]string
	Subtitle map[string]string
	Sort     int
}

func (s *seeder) section(storeID string, sec sectionSeed) error {
	title, err := json.Marshal(sec.Title)
	if err != nil {
		return fmt.Errorf("marshal section title %q: %w", sec.Type, err)
	}
	var subtitle []byte
	if len(sec.Subtitle) > 0 {
		if subtitle, err = json.Marshal(sec.Subtitle); err != nil {
			return fmt.Errorf("marshal section subtitle %q: %w", sec.Type, err)
		}
	}

	_, err = s.tx.Exec(s.ctx, `
		INSERT INTO store_sections (store_id, section_type, title, subtitle, sort_order)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM store_sections WHERE store_id = $1 AND section_type = $2
		)`,
		storeID, sec.Type, title, subtitle, sec.Sort,
	)
	if err != nil {
		return fmt.Errorf("seed section %q: %w", sec.Type, err)
	}
	return nil
}

type accountSeed struct {
	Email      string
	FirstName  string
	LastName   string
	Language   string
	Roles      []string
	StoreScope bool
}

func (s *seeder) accounts(storeID string) error {
	accounts := []accountSeed{
		{Email: "admin@example.com", FirstName: "Alice", LastName: "Admin", Language: "en", Roles: []string{"admin", "user"}, StoreScope: true},
		{Email: "support@example.com", FirstName: "Samir", LastName: "Support", Language: "pt-BR", Roles: []string{"support", "user"}, StoreScope: true},
		{Email: "console@example.com", FirstName: "Carla", LastName: "Console", Language: "pt-BR", Roles: []string{"console", "user"}, StoreScope: true},
		{Email: "shopper@example.com", FirstName: "Sofia", LastName: "Silva", Language: "pt-BR", Roles: []string{"user"}},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for _, a := range accounts {
		var userID string
		err = s.tx.QueryRow(s.ctx, `
			INSERT INTO auth_users (email, password_hash)
			VALUES ($1, $2)
			ON CONFLICT (email) DO UPDATE SET updated_at = now()
			RETURNING id`,
			a.Email, string(hash),
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", a.Email, err)
		}

		_, err = s.tx.Exec(s.ctx, `
			INSERT INTO profiles (id, first_name, last_name, language)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name`,
			userID, a.FirstName, a.LastName, a.Language,
		)
		if err != nil {
			return fmt.Errorf("seed profile %q: %w", a.Email, err)
		}

		for _, role := range a.Roles {
			var scope *string
			if a.StoreScope {
				scope = &storeID
			}
			// NOT EXISTS instead of ON CONFLICT: platform-wide grants have a
			// NULL store_id, which the unique index treats as distinct.
			_, err = s.tx.Exec(s.ctx, `
				INSERT INTO user_roles (user_id, store_id, role)
				SELECT $1, $2, $3::app_role
				WHERE NOT EXISTS (
					SELECT 1 FROM user_roles
					WHERE user_id = $1
					  AND store_id IS NOT DISTINCT FROM $2
					  AND role = $3::app_role
				)`,
				userID, scope, role,
			)
			if err != nil {
				return fmt.Errorf("seed role %q for %q: %w", role, a.Email, err)
			}
		}
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"vajanpos/backend/internal/domain"
	"vajanpos/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, unit_price, COALESCE(image_url, '')
		FROM products
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.CatalogItem, 0, 64)
	for rows.Next() {
		var item domain.CatalogItem
		var price string
		if err := rows.Scan(&item.ID, &item.Name, &price, &item.ImageURL); err != nil {
			return nil, err
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	var price string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, unit_price, COALESCE(image_url, '')
		FROM products
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &price, &item.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	item.UnitPrice, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateProduct(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	if item.ID == "" || strings.TrimSpace(item.Name) == "" || item.UnitPrice.IsNegative() {
		return nil, store.ErrInvalidProduct
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, unit_price, image_url, created_at)
		VALUES ($1,$2,$3,$4,now())
	`, item.ID, item.Name, item.UnitPrice.String(), item.ImageURL)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidProduct
		}
		return nil, err
	}

	created := item
	return &created, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GetBillingConfig reads the single-row settings table. A missing row is
// not an error; the renderer falls back to the default identity.
func (s *Store) GetBillingConfig(ctx context.Context) (domain.BillingConfig, error) {
	var cfg domain.BillingConfig
	var gst string
	err := s.db.QueryRowContext(ctx, `
		SELECT business_name, address, phone_number, gst_percentage
		FROM billing_settings
		WHERE id = 1
	`).Scan(&cfg.BusinessName, &cfg.Address, &cfg.PhoneNumber, &gst)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BillingConfig{}, nil
		}
		return domain.BillingConfig{}, err
	}
	cfg.GSTPercentage, err = decimal.NewFromString(gst)
	if err != nil {
		return domain.BillingConfig{}, err
	}
	return cfg, nil
}

func (s *Store) UpdateBusinessIdentity(ctx context.Context, req domain.BusinessUpdateRequest) (domain.BillingConfig, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO billing_settings (id, business_name, address, phone_number, gst_percentage, updated_at)
		VALUES (1, $1, $2, $3, '0', now())
		ON CONFLICT (id) DO UPDATE
		SET business_name = $1, address = $2, phone_number = $3, updated_at = now()
	`, strings.TrimSpace(req.BusinessName), strings.TrimSpace(req.Address), strings.TrimSpace(req.PhoneNumber))
	if err != nil {
		return domain.BillingConfig{}, err
	}
	return s.GetBillingConfig(ctx)
}

func (s *Store) UpdateGSTPercentage(ctx context.Context, req domain.GSTUpdateRequest) (domain.BillingConfig, error) {
	if req.GSTPercentage.IsNegative() || req.GSTPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return domain.BillingConfig{}, store.ErrInvalidProduct
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO billing_settings (id, business_name, address, phone_number, gst_percentage, updated_at)
		VALUES (1, '', '', '', $1, now())
		ON CONFLICT (id) DO UPDATE
		SET gst_percentage = $1, updated_at = now()
	`, req.GSTPercentage.String())
	if err != nil {
		return domain.BillingConfig{}, err
	}
	return s.GetBillingConfig(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

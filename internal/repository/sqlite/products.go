package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

const productColumns = `id, name, description, category, gauge, base_price, image_url, specifications, available`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (models.Product, error) {
	var p models.Product
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Gauge, &p.BasePrice, &p.ImageURL, &p.Specifications, &p.Available)
	return p, err
}

func (r *SQLiteRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *SQLiteRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepo) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY id`, category)
}

func (r *SQLiteRepo) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

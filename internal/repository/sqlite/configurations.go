package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

func (r *SQLiteRepo) CreateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error) {
	if c == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO configurations (product_id, action_type, gauge, barrel_length, stock_material, finish, custom_branding, special_requests, estimated_price) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ProductID, c.ActionType, c.Gauge, c.BarrelLength, c.StockMaterial, c.Finish, c.CustomBranding, c.SpecialRequests, c.EstimatedPrice)
	if err != nil {
		return nil, fmt.Errorf("create configuration: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("configuration id: %w", err)
	}
	r.logger.Debug("configuration stored", slog.Int64("id", id), slog.String("estimated_price", c.EstimatedPrice))

	return r.GetConfiguration(ctx, id)
}

func (r *SQLiteRepo) GetConfiguration(ctx context.Context, id int64) (*models.Configuration, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, product_id, action_type, gauge, barrel_length, stock_material, finish, custom_branding, special_requests, estimated_price FROM configurations WHERE id = ?`, id)

	var c models.Configuration
	err := row.Scan(&c.ID, &c.ProductID, &c.ActionType, &c.Gauge, &c.BarrelLength, &c.StockMaterial, &c.Finish, &c.CustomBranding, &c.SpecialRequests, &c.EstimatedPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get configuration: %w", err)
	}
	return &c, nil
}

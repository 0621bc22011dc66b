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

const quoteColumns = `id, first_name, last_name, company, email, phone, product_id, product_name, quantity, customizations, branding_requirements, timeline_requirements, budget_range, additional_notes, status, base_price, customization_price, total_price, valid_until, created_at, updated_at`

func (r *SQLiteRepo) CreateQuote(ctx context.Context, q *models.Quote) (*models.Quote, error) {
	if q == nil {
		return nil, fmt.Errorf("quote is nil")
	}

	ts := toMillis(r.now())
	res, err := r.conn.Exec(ctx,
		`INSERT INTO quotes (first_name, last_name, company, email, phone, product_id, product_name, quantity, customizations, branding_requirements, timeline_requirements, budget_range, additional_notes, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.FirstName, q.LastName, q.Company, q.Email, q.Phone, q.ProductID, q.ProductName, q.Quantity, q.Customizations,
		q.BrandingRequirements, q.TimelineRequirements, q.BudgetRange, q.AdditionalNotes, models.QuoteStatusPending, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("quote id: %w", err)
	}
	r.logger.Debug("quote stored", slog.Int64("id", id))
	return r.GetQuote(ctx, id)
}

func (r *SQLiteRepo) GetQuote(ctx context.Context, id int64) (*models.Quote, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

func (r *SQLiteRepo) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	out := []models.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepo) UpdateQuoteStatus(ctx context.Context, id int64, status string) (*models.Quote, error) {
	res, err := r.conn.Exec(ctx, `UPDATE quotes SET status = ?, updated_at = ? WHERE id = ?`, status, toMillis(r.now()), id)
	if err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	r.logger.Info("quote status updated", slog.Int64("id", id), slog.String("status", status))
	return r.GetQuote(ctx, id)
}

func (r *SQLiteRepo) UpdateQuotePricing(ctx context.Context, id int64, p models.QuotePricing) (*models.Quote, error) {
	res, err := r.conn.Exec(ctx,
		`UPDATE quotes SET base_price = ?, customization_price = ?, total_price = ?, valid_until = ?, status = ?, updated_at = ? WHERE id = ?`,
		p.BasePrice, p.CustomizationPrice, p.TotalPrice, toMillis(p.ValidUntil), models.QuoteStatusQuoted, toMillis(r.now()), id)
	if err != nil {
		return nil, fmt.Errorf("update quote pricing: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	r.logger.Info("quote priced", slog.Int64("id", id), slog.String("total", p.TotalPrice))
	return r.GetQuote(ctx, id)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanQuote(s rowScanner) (models.Quote, error) {
	var (
		q                    models.Quote
		validUntil           sql.NullInt64
		createdAt, updatedAt int64
	)
	err := s.Scan(&q.ID, &q.FirstName, &q.LastName, &q.Company, &q.Email, &q.Phone, &q.ProductID, &q.ProductName,
		&q.Quantity, &q.Customizations, &q.BrandingRequirements, &q.TimelineRequirements, &q.BudgetRange,
		&q.AdditionalNotes, &q.Status, &q.BasePrice, &q.CustomizationPrice, &q.TotalPrice, &validUntil, &createdAt, &updatedAt)
	if err != nil {
		return q, err
	}
	if validUntil.Valid {
		t := fromMillis(validUntil.Int64)
		q.ValidUntil = &t
	}
	q.CreatedAt = fromMillis(createdAt)
	q.UpdatedAt = fromMillis(updatedAt)
	return q, nil
}

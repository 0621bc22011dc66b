package memory

import (
	"context"
	"fmt"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

func (r *Repo) CreateQuote(ctx context.Context, q *models.Quote) (*models.Quote, error) {
	if q == nil {
		return nil, fmt.Errorf("quote is nil")
	}
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	now := r.now().UTC()
	stored := r.quotes.insert(func(id int64) models.Quote {
		v := *q
		v.ID = id
		v.Status = models.QuoteStatusPending
		v.BasePrice = nil
		v.CustomizationPrice = nil
		v.TotalPrice = nil
		v.ValidUntil = nil
		v.CreatedAt = now
		v.UpdatedAt = now
		return v
	})
	return &stored, nil
}

func (r *Repo) GetQuote(ctx context.Context, id int64) (*models.Quote, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	q, ok := r.quotes.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

func (r *Repo) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	return r.quotes.list(), nil
}

func (r *Repo) UpdateQuoteStatus(ctx context.Context, id int64, status string) (*models.Quote, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	q, ok := r.quotes.update(id, func(q *models.Quote) {
		q.Status = status
		q.UpdatedAt = r.now().UTC()
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

// UpdateQuotePricing records the admin's pricing and marks the quote quoted.
func (r *Repo) UpdateQuotePricing(ctx context.Context, id int64, p models.QuotePricing) (*models.Quote, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	q, ok := r.quotes.update(id, func(q *models.Quote) {
		base, custom, total := p.BasePrice, p.CustomizationPrice, p.TotalPrice
		validUntil := p.ValidUntil.UTC()
		q.BasePrice = &base
		q.CustomizationPrice = &custom
		q.TotalPrice = &total
		q.ValidUntil = &validUntil
		q.Status = models.QuoteStatusQuoted
		q.UpdatedAt = r.now().UTC()
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

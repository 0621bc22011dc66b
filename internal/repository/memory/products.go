package memory

import (
	"context"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

func (r *Repo) ListProducts(ctx context.Context) ([]models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(r.productIDs))
	for _, id := range r.productIDs {
		out = append(out, r.products[id])
	}
	return out, nil
}

func (r *Repo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// ListProductsByCategory matches category exactly; unknown categories yield
// an empty slice.
func (r *Repo) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, id := range r.productIDs {
		if p := r.products[id]; p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

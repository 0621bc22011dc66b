package memory

import (
	"context"
	"fmt"

	"github.com/uplandimports/storefront/pkg/models"
)

// CreateInquiry assigns the next id and stamps CreatedAt; any CreatedAt on
// the input is ignored.
func (r *Repo) CreateInquiry(ctx context.Context, i *models.Inquiry) (*models.Inquiry, error) {
	if i == nil {
		return nil, fmt.Errorf("inquiry is nil")
	}
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	stored := r.inquiries.insert(func(id int64) models.Inquiry {
		v := *i
		v.ID = id
		v.CreatedAt = r.now().UTC().Format(models.TimestampLayout)
		return v
	})
	return &stored, nil
}

// ListInquiries returns every inquiry in insertion order.
func (r *Repo) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	return r.inquiries.list(), nil
}

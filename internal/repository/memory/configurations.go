package memory

import (
	"context"
	"fmt"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

func (r *Repo) CreateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error) {
	if c == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	stored := r.configs.insert(func(id int64) models.Configuration {
		v := *c
		v.ID = id
		return v
	})
	return &stored, nil
}

func (r *Repo) GetConfiguration(ctx context.Context, id int64) (*models.Configuration, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	c, ok := r.configs.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/uplandimports/storefront/pkg/models"
)

// ErrNotFound is returned by lookups for an id the store has never assigned.
var ErrNotFound = errors.New("not found")

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Foreign ids (Configuration.ProductID, Inquiry.ConfigurationID,
// Quote.ProductID) are stored as given and never checked against the
// referenced store.

// ProductRepo is the read-only catalog.
type ProductRepo interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
}

type ConfigurationRepo interface {
	CreateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error)
	GetConfiguration(ctx context.Context, id int64) (*models.Configuration, error)
}

// InquiryRepo stamps CreatedAt on create and lists in insertion order.
type InquiryRepo interface {
	CreateInquiry(ctx context.Context, i *models.Inquiry) (*models.Inquiry, error)
	ListInquiries(ctx context.Context) ([]models.Inquiry, error)
}

type QuoteRepo interface {
	CreateQuote(ctx context.Context, q *models.Quote) (*models.Quote, error)
	GetQuote(ctx context.Context, id int64) (*models.Quote, error)
	ListQuotes(ctx context.Context) ([]models.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id int64, status string) (*models.Quote, error)
	UpdateQuotePricing(ctx context.Context, id int64, p models.QuotePricing) (*models.Quote, error)
}

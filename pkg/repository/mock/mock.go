package mock

import (
	"context"
	"sync"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Products  *mockProductRepo
	Configs   *mockConfigurationRepo
	Inquiries *mockInquiryRepo
	Quotes    *mockQuoteRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Products:  &mockProductRepo{},
		Configs:   &mockConfigurationRepo{},
		Inquiries: &mockInquiryRepo{},
		Quotes:    &mockQuoteRepo{},
	}
}

type mockProductRepo struct {
	Stored  []models.Product
	ListErr error
	GetErr  error
}

func (m *mockProductRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Product(nil), m.Stored...), nil
}

func (m *mockProductRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, p := range m.Stored {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Product
	for _, p := range m.Stored {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockConfigurationRepo struct {
	mu        sync.Mutex
	Stored    []models.Configuration
	CreateErr error
	GetErr    error
}

func (m *mockConfigurationRepo) CreateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	out := *c
	out.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, out)
	return &out, nil
}

func (m *mockConfigurationRepo) GetConfiguration(ctx context.Context, id int64) (*models.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, c := range m.Stored {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

type mockInquiryRepo struct {
	mu        sync.Mutex
	Stored    []models.Inquiry
	CreateErr error
	ListErr   error
}

func (m *mockInquiryRepo) CreateInquiry(ctx context.Context, i *models.Inquiry) (*models.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	out := *i
	out.ID = int64(len(m.Stored) + 1)
	out.CreatedAt = "2025-01-01T00:00:00Z"
	m.Stored = append(m.Stored, out)
	return &out, nil
}

func (m *mockInquiryRepo) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Inquiry(nil), m.Stored...), nil
}

// mockQuoteRepo fails every call with Err when set; otherwise it behaves
// like an empty store.
type mockQuoteRepo struct {
	Err error
}

func (m *mockQuoteRepo) CreateQuote(ctx context.Context, q *models.Quote) (*models.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := *q
	out.ID = 1
	out.Status = models.QuoteStatusPending
	return &out, nil
}

func (m *mockQuoteRepo) GetQuote(ctx context.Context, id int64) (*models.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, repository.ErrNotFound
}

func (m *mockQuoteRepo) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, nil
}

func (m *mockQuoteRepo) UpdateQuoteStatus(ctx context.Context, id int64, status string) (*models.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, repository.ErrNotFound
}

func (m *mockQuoteRepo) UpdateQuotePricing(ctx context.Context, id int64, p models.QuotePricing) (*models.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, repository.ErrNotFound
}

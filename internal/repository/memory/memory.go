// Package memory is the default process-local storage backend. State lives
// for the lifetime of the process.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

// Repo implements the repository interfaces over in-memory tables.
type Repo struct {
	products   map[int64]models.Product
	productIDs []int64

	configs   *table[models.Configuration]
	inquiries *table[models.Inquiry]
	quotes    *table[models.Quote]

	now func() time.Time
}

// Ensure Repo implements the public interfaces.
var _ repository.ProductRepo = (*Repo)(nil)
var _ repository.ConfigurationRepo = (*Repo)(nil)
var _ repository.InquiryRepo = (*Repo)(nil)
var _ repository.QuoteRepo = (*Repo)(nil)

// Option customizes a Repo.
type Option func(*Repo)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repo) {
		if now != nil {
			r.now = now
		}
	}
}

// New seeds the catalog with products. Products keep the ids they were
// seeded with; configurations, inquiries and quotes are numbered from 1.
func New(products []models.Product, opts ...Option) *Repo {
	r := &Repo{
		products:  make(map[int64]models.Product, len(products)),
		configs:   newTable(cloneConfiguration),
		inquiries: newTable(cloneInquiry),
		quotes:    newTable(cloneQuote),
		now:       time.Now,
	}
	for _, p := range products {
		if _, dup := r.products[p.ID]; !dup {
			r.productIDs = append(r.productIDs, p.ID)
		}
		r.products[p.ID] = p
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// table is an append-only keyed collection. The id counter, the map and the
// insertion order are only touched under mu. Rows never share memory with
// callers: clone deep-copies every value stored or handed out.
type table[T any] struct {
	mu    sync.RWMutex
	next  int64
	rows  map[int64]T
	order []int64
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[int64]T), clone: clone}
}

func (t *table[T]) insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	id := t.next
	v := t.clone(build(id))
	t.rows[id] = v
	t.order = append(t.order, id)
	return t.clone(v)
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	return t.clone(v), true
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) update(id int64, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	v = t.clone(v)
	fn(&v)
	t.rows[id] = v
	return t.clone(v), true
}

func cloneConfiguration(c models.Configuration) models.Configuration {
	c.CustomBranding = cloneString(c.CustomBranding)
	c.SpecialRequests = cloneString(c.SpecialRequests)
	return c
}

func cloneInquiry(i models.Inquiry) models.Inquiry {
	i.Company = cloneString(i.Company)
	i.Phone = cloneString(i.Phone)
	i.ConfigurationID = cloneInt64(i.ConfigurationID)
	i.SelectedModel = cloneString(i.SelectedModel)
	i.Quantity = cloneString(i.Quantity)
	i.DesignComments = cloneString(i.DesignComments)
	return i
}

func cloneQuote(q models.Quote) models.Quote {
	q.Company = cloneString(q.Company)
	q.Phone = cloneString(q.Phone)
	q.ProductID = cloneInt64(q.ProductID)
	q.ProductName = cloneString(q.ProductName)
	q.Customizations = cloneString(q.Customizations)
	q.BrandingRequirements = cloneString(q.BrandingRequirements)
	q.TimelineRequirements = cloneString(q.TimelineRequirements)
	q.BudgetRange = cloneString(q.BudgetRange)
	q.AdditionalNotes = cloneString(q.AdditionalNotes)
	q.BasePrice = cloneString(q.BasePrice)
	q.CustomizationPrice = cloneString(q.CustomizationPrice)
	q.TotalPrice = cloneString(q.TotalPrice)
	if q.ValidUntil != nil {
		v := *q.ValidUntil
		q.ValidUntil = &v
	}
	return q
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt64(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func checkCtx(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

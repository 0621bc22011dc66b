package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/uplandimports/storefront/internal/metrics"
	"github.com/uplandimports/storefront/internal/pricing"
	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/notify"
	"github.com/uplandimports/storefront/pkg/repository"
)

// QuoteValidity is how long a priced quote stays valid.
const QuoteValidity = 30 * 24 * time.Hour

type QuotesHandler struct {
	repo     repository.QuoteRepo
	notifier notify.Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewQuotesHandler(repo repository.QuoteRepo, n notify.Notifier, m *metrics.Metrics) *QuotesHandler {
	if n == nil {
		n = notify.Nop{}
	}
	return &QuotesHandler{repo: repo, notifier: n, metrics: m, now: time.Now}
}

type quoteRequest struct {
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	Company              *string `json:"company"`
	Email                string  `json:"email"`
	Phone                *string `json:"phone"`
	ProductID            *int64  `json:"productId"`
	ProductName          *string `json:"productName"`
	Quantity             int     `json:"quantity"`
	Customizations       *string `json:"customizations"`
	BrandingRequirements *string `json:"brandingRequirements"`
	TimelineRequirements *string `json:"timelineRequirements"`
	BudgetRange          *string `json:"budgetRange"`
	AdditionalNotes      *string `json:"additionalNotes"`
}

type quoteStatusRequest struct {
	Status string `json:"status"`
}

type quotePricingRequest struct {
	BasePrice          string `json:"basePrice"`
	CustomizationPrice string `json:"customizationPrice"`
}

// CreateQuote stores a quote request as pending and notifies the business
// on a best-effort basis.
func (h *QuotesHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeValid(w, r, schemaQuote, "Invalid quote data", &req) {
		return
	}

	created, err := h.repo.CreateQuote(r.Context(), &models.Quote{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Company:              req.Company,
		Email:                req.Email,
		Phone:                req.Phone,
		ProductID:            req.ProductID,
		ProductName:          req.ProductName,
		Quantity:             req.Quantity,
		Customizations:       req.Customizations,
		BrandingRequirements: req.BrandingRequirements,
		TimelineRequirements: req.TimelineRequirements,
		BudgetRange:          req.BudgetRange,
		AdditionalNotes:      req.AdditionalNotes,
	})
	if err != nil {
		logger.Error("create quote", slog.Any("err", err), slog.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, "Failed to create quote")
		return
	}
	h.metrics.RecordCreated("quote")

	h.notify(r.Context(), *created)

	writeJSON(w, created, http.StatusCreated)
}

func (h *QuotesHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.repo.ListQuotes(r.Context())
	if err != nil {
		logger.Error("list quotes", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch quotes")
		return
	}

	if quotes == nil {
		quotes = []models.Quote{}
	}
	writeJSON(w, quotes, http.StatusOK)
}

func (h *QuotesHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Quote not found")
	if !ok {
		return
	}

	q, err := h.repo.GetQuote(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, "get quote", "Failed to fetch quote", id, err)
		return
	}

	writeJSON(w, q, http.StatusOK)
}

func (h *QuotesHandler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Quote not found")
	if !ok {
		return
	}

	var req quoteStatusRequest
	if !decodeValid(w, r, schemaQuoteStatus, "Invalid status", &req) {
		return
	}
	if !slices.Contains(models.QuoteStatuses, req.Status) {
		writeJSON(w, errorResponse{Message: "Invalid status", Details: []FieldError{{
			Field:   "/status",
			Message: fmt.Sprintf("must be one of %s", strings.Join(models.QuoteStatuses, ", ")),
		}}}, http.StatusBadRequest)
		return
	}

	q, err := h.repo.UpdateQuoteStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeRepoError(w, "update quote status", "Failed to update quote", id, err)
		return
	}
	logger.Info("quote status changed",
		slog.Int64("id", id),
		slog.String("status", q.Status),
		slog.String("admin", AdminEmail(r.Context())),
		slog.String("request_id", RequestID(r.Context())))

	writeJSON(w, q, http.StatusOK)
}

// UpdateQuotePricing totals the admin's prices, marks the quote quoted and
// sets it valid for QuoteValidity from now.
func (h *QuotesHandler) UpdateQuotePricing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Quote not found")
	if !ok {
		return
	}

	var req quotePricingRequest
	if !decodeValid(w, r, schemaQuotePricing, "Invalid pricing data", &req) {
		return
	}

	base, err := pricing.ParseAmount(req.BasePrice)
	if err != nil {
		writeJSON(w, errorResponse{Message: "Invalid pricing data", Details: []FieldError{{Field: "/basePrice", Message: err.Error()}}}, http.StatusBadRequest)
		return
	}
	custom, err := pricing.ParseAmount(req.CustomizationPrice)
	if err != nil {
		writeJSON(w, errorResponse{Message: "Invalid pricing data", Details: []FieldError{{Field: "/customizationPrice", Message: err.Error()}}}, http.StatusBadRequest)
		return
	}

	q, err := h.repo.UpdateQuotePricing(r.Context(), id, models.QuotePricing{
		BasePrice:          pricing.Format(base),
		CustomizationPrice: pricing.Format(custom),
		TotalPrice:         pricing.Format(base.Add(custom)),
		ValidUntil:         h.now().Add(QuoteValidity),
	})
	if err != nil {
		h.writeRepoError(w, "update quote pricing", "Failed to update quote", id, err)
		return
	}
	logger.Info("quote priced",
		slog.Int64("id", id),
		slog.String("total", pricing.Format(base.Add(custom))),
		slog.String("admin", AdminEmail(r.Context())),
		slog.String("request_id", RequestID(r.Context())))

	h.notify(r.Context(), *q)

	writeJSON(w, q, http.StatusOK)
}

func (h *QuotesHandler) notify(ctx context.Context, q models.Quote) {
	ctx = context.WithoutCancel(ctx)
	err := h.notifier.NotifyQuote(ctx, q)
	recordNotification(ctx, h.metrics, "quote", q.ID, err)
}

func (h *QuotesHandler) writeRepoError(w http.ResponseWriter, op, message string, id int64, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Quote not found")
		return
	}
	logger.Error(op, slog.Int64("id", id), slog.Any("err", err))
	writeError(w, http.StatusInternalServerError, message)
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/uplandimports/storefront/internal/metrics"
	"github.com/uplandimports/storefront/internal/pricing"
	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

type ConfigurationsHandler struct {
	repo      repository.ConfigurationRepo
	basePrice decimal.Decimal
	metrics   *metrics.Metrics
}

// NewConfigurationsHandler prices every configuration from basePrice, the
// configurator starting price.
func NewConfigurationsHandler(repo repository.ConfigurationRepo, basePrice decimal.Decimal, m *metrics.Metrics) *ConfigurationsHandler {
	return &ConfigurationsHandler{repo: repo, basePrice: basePrice, metrics: m}
}

type configurationRequest struct {
	ProductID       int64   `json:"productId"`
	ActionType      string  `json:"actionType"`
	Gauge           string  `json:"gauge"`
	BarrelLength    string  `json:"barrelLength"`
	StockMaterial   string  `json:"stockMaterial"`
	Finish          string  `json:"finish"`
	CustomBranding  *string `json:"customBranding"`
	SpecialRequests *string `json:"specialRequests"`
	EstimatedPrice  *string `json:"estimatedPrice"`
}

// CreateConfiguration stores a configuration. The estimated price is always
// computed here; a differing client value is logged and discarded.
func (h *ConfigurationsHandler) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if !decodeValid(w, r, schemaConfiguration, "Invalid configuration data", &req) {
		return
	}

	c := &models.Configuration{
		ProductID:       req.ProductID,
		ActionType:      req.ActionType,
		Gauge:           req.Gauge,
		BarrelLength:    req.BarrelLength,
		StockMaterial:   req.StockMaterial,
		Finish:          req.Finish,
		CustomBranding:  req.CustomBranding,
		SpecialRequests: req.SpecialRequests,
	}
	price := pricing.Price(h.basePrice, c.Options())
	c.EstimatedPrice = pricing.Format(price)

	if req.EstimatedPrice != nil {
		client, err := pricing.ParseAmount(*req.EstimatedPrice)
		if err != nil || !client.Equal(price) {
			logger.Warn("client estimated price differs",
				slog.String("client", *req.EstimatedPrice),
				slog.String("server", c.EstimatedPrice),
				slog.String("request_id", RequestID(r.Context())))
		}
	}

	created, err := h.repo.CreateConfiguration(r.Context(), c)
	if err != nil {
		logger.Error("create configuration", slog.Any("err", err), slog.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, "Failed to create configuration")
		return
	}
	h.metrics.RecordCreated("configuration")

	writeJSON(w, created, http.StatusCreated)
}

func (h *ConfigurationsHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Configuration not found")
	if !ok {
		return
	}

	c, err := h.repo.GetConfiguration(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Configuration not found")
			return
		}
		logger.Error("get configuration", slog.Int64("id", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch configuration")
		return
	}

	writeJSON(w, c, http.StatusOK)
}

type estimateRequest struct {
	ActionType     *string `json:"actionType"`
	Gauge          *string `json:"gauge"`
	BarrelLength   *string `json:"barrelLength"`
	StockMaterial  *string `json:"stockMaterial"`
	Finish         *string `json:"finish"`
	CustomBranding *string `json:"customBranding"`
}

// EstimatePrice prices a partial configuration without storing anything;
// the configurator preview uses it so client and server share one formula.
func (h *ConfigurationsHandler) EstimatePrice(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if !decodeValid(w, r, schemaEstimate, "Invalid configuration data", &req) {
		return
	}

	opts := models.ConfigurationOptions{
		ActionType:     deref(req.ActionType),
		Gauge:          deref(req.Gauge),
		BarrelLength:   deref(req.BarrelLength),
		StockMaterial:  deref(req.StockMaterial),
		Finish:         deref(req.Finish),
		CustomBranding: deref(req.CustomBranding),
	}
	writeJSON(w, pricing.EstimateFor(h.basePrice, opts), http.StatusOK)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

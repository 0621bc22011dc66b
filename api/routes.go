package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/uplandimports/storefront/internal/config"
	"github.com/uplandimports/storefront/internal/metrics"
	"github.com/uplandimports/storefront/internal/pricing"
	"github.com/uplandimports/storefront/pkg/notify"
	"github.com/uplandimports/storefront/pkg/repository"
)

// Store is the storage backend the API serves from.
type Store interface {
	repository.ProductRepo
	repository.ConfigurationRepo
	repository.InquiryRepo
	repository.QuoteRepo
}

// SetupRoutes builds the router. cfg must already be validated. A nil
// notifier disables notifications; nil metrics disables /metrics.
func SetupRoutes(cfg *config.Config, version, buildTime string, store Store, notifier notify.Notifier, m *metrics.Metrics) (*mux.Router, error) {
	basePrice, err := pricing.ParseAmount(cfg.Pricing.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("pricing base price: %w", err)
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	// Route middleware does not run on a method mismatch, so preflight
	// requests are answered here.
	r.MethodNotAllowedHandler = CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	if m != nil {
		r.Use(MetricsMiddleware(m))
	}

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(cfg.Admin.Email, cfg.Admin.PasswordHash, cfg.JWTSecret, cfg.TokenDuration)
	productsHandler := NewProductsHandler(store)
	configurationsHandler := NewConfigurationsHandler(store, basePrice, m)
	inquiriesHandler := NewInquiriesHandler(store, store, notifier, m)
	quotesHandler := NewQuotesHandler(store, notifier, m)

	// Without a configured administrator no token can be issued, so the admin
	// surface answers 404 and the secret is never used.
	admin := JWTAuthMiddlewareWithSecret(cfg.JWTSecret)
	signin := http.Handler(http.HandlerFunc(authHandler.Signin))
	if !cfg.AdminEnabled() {
		disabled := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "Not found")
		})
		admin = func(http.Handler) http.Handler { return disabled }
		signin = disabled
		logger.Info("admin routes disabled: no administrator configured")
	}

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}

	apiRouter := r.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/products", productsHandler.ListProducts).Methods("GET")
	apiRouter.HandleFunc("/products/{id}", productsHandler.GetProduct).Methods("GET")

	apiRouter.HandleFunc("/configurations/estimate", configurationsHandler.EstimatePrice).Methods("POST")
	apiRouter.HandleFunc("/configurations", configurationsHandler.CreateConfiguration).Methods("POST")
	apiRouter.HandleFunc("/configurations/{id}", configurationsHandler.GetConfiguration).Methods("GET")

	apiRouter.HandleFunc("/inquiries", inquiriesHandler.CreateInquiry).Methods("POST")
	apiRouter.HandleFunc("/inquiries", inquiriesHandler.ListInquiries).Methods("GET")

	apiRouter.Handle("/admin/signin", signin).Methods("POST")

	// Quotes: submission is public, management requires an admin token.
	apiRouter.HandleFunc("/quotes", quotesHandler.CreateQuote).Methods("POST")
	apiRouter.Handle("/quotes", admin(http.HandlerFunc(quotesHandler.ListQuotes))).Methods("GET")
	apiRouter.Handle("/quotes/{id}", admin(http.HandlerFunc(quotesHandler.GetQuote))).Methods("GET")
	apiRouter.Handle("/quotes/{id}/status", admin(http.HandlerFunc(quotesHandler.UpdateQuoteStatus))).Methods("PATCH")
	apiRouter.Handle("/quotes/{id}/pricing", admin(http.HandlerFunc(quotesHandler.UpdateQuotePricing))).Methods("PATCH")

	return r, nil
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/repository"
)

type ProductsHandler struct {
	repo repository.ProductRepo
}

func NewProductsHandler(repo repository.ProductRepo) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// ListProducts returns the catalog, filtered by exact category when the
// category query parameter is present.
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []models.Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.repo.ListProductsByCategory(r.Context(), category)
	} else {
		products, err = h.repo.ListProducts(r.Context())
	}
	if err != nil {
		logger.Error("list products", slog.Any("err", err), slog.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, products, http.StatusOK)
}

func (h *ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Product not found")
	if !ok {
		return
	}

	p, err := h.repo.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.Error("get product", slog.Int64("id", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	writeJSON(w, p, http.StatusOK)
}

// Package catalog loads the seed product list shipped with the binary.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"

	dbfs "github.com/uplandimports/storefront/db"
	"github.com/uplandimports/storefront/internal/pricing"
	"github.com/uplandimports/storefront/pkg/models"
)

const seedPath = "seed/products.json"

// seedProduct mirrors models.Product but keeps specifications as an inline
// JSON document so the seed file stays readable.
type seedProduct struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Gauge          string          `json:"gauge"`
	BasePrice      string          `json:"basePrice"`
	ImageURL       string          `json:"imageUrl"`
	Specifications json.RawMessage `json:"specifications"`
	Available      bool            `json:"available"`
}

// Default returns the embedded seed catalog.
func Default() ([]models.Product, error) {
	return Load(dbfs.SeedFiles)
}

// Load reads seed/products.json from fsys. Product ids must be positive and
// unique, every base price must parse as a money amount and specifications
// must be a JSON object.
func Load(fsys fs.FS) ([]models.Product, error) {
	b, err := fs.ReadFile(fsys, seedPath)
	if err != nil {
		return nil, fmt.Errorf("read product seed: %w", err)
	}

	var rows []seedProduct
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode product seed: %w", err)
	}

	seen := make(map[int64]bool, len(rows))
	out := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive", r.Name)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("product %d: duplicate id", r.ID)
		}
		seen[r.ID] = true

		if _, err := pricing.ParseAmount(r.BasePrice); err != nil {
			return nil, fmt.Errorf("product %d: %w", r.ID, err)
		}

		specs := "{}"
		if len(r.Specifications) > 0 {
			var buf bytes.Buffer
			if err := json.Compact(&buf, r.Specifications); err != nil {
				return nil, fmt.Errorf("product %d specifications: %w", r.ID, err)
			}
			specs = buf.String()
		}

		p := models.Product{
			ID:             r.ID,
			Name:           r.Name,
			Description:    r.Description,
			Category:       r.Category,
			Gauge:          r.Gauge,
			BasePrice:      r.BasePrice,
			ImageURL:       r.ImageURL,
			Specifications: specs,
			Available:      r.Available,
		}
		if _, err := Specs(p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

// Specs decodes a product's specification blob. Keys vary per category, so
// callers should treat every key as optional.
func Specs(p models.Product) (map[string]any, error) {
	out := map[string]any{}
	if p.Specifications == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(p.Specifications), &out); err != nil {
		return nil, fmt.Errorf("decode specifications for product %d: %w", p.ID, err)
	}
	return out, nil
}

package pricing_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/uplandimports/storefront/internal/pricing"
	"github.com/uplandimports/storefront/pkg/models"
)

func TestPriceProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	stocks := gen.OneConstOf("walnut", "synthetic", "", "birch")
	finishes := gen.OneConstOf("blued", "nickel", "case-hardened", "", "parkerized")
	brandings := gen.OneConstOf("", "Acme", "Upland Imports")

	// Property: the price is the base plus the fixed add-on table
	properties.Property("matches add-on table", prop.ForAll(
		func(cents int64, stock, finish, branding string) bool {
			base := decimal.New(cents, -2)
			want := base
			if stock == "walnut" {
				want = want.Add(decimal.NewFromInt(100))
			}
			if finish == "nickel" {
				want = want.Add(decimal.NewFromInt(150))
			} else if finish == "case-hardened" {
				want = want.Add(decimal.NewFromInt(200))
			}
			if branding != "" {
				want = want.Add(decimal.NewFromInt(75))
			}

			got := pricing.Price(base, models.ConfigurationOptions{StockMaterial: stock, Finish: finish, CustomBranding: branding})
			return got.Equal(want)
		},
		gen.Int64Range(0, 1_000_000),
		stocks,
		finishes,
		brandings,
	))

	// Property: pricing is deterministic and never below the base
	properties.Property("deterministic and monotone", prop.ForAll(
		func(cents int64, stock, finish, branding string) bool {
			base := decimal.New(cents, -2)
			opts := models.ConfigurationOptions{StockMaterial: stock, Finish: finish, CustomBranding: branding}
			p1 := pricing.Price(base, opts)
			p2 := pricing.Price(base, opts)
			return p1.Equal(p2) && p1.GreaterThanOrEqual(base)
		},
		gen.Int64Range(0, 1_000_000),
		stocks,
		finishes,
		brandings,
	))

	// Property: the itemized estimate always sums to the price
	properties.Property("breakdown sums to total", prop.ForAll(
		func(cents int64, stock, finish, branding string) bool {
			base := decimal.New(cents, -2)
			opts := models.ConfigurationOptions{StockMaterial: stock, Finish: finish, CustomBranding: branding}
			est := pricing.EstimateFor(base, opts)

			sum := decimal.RequireFromString(est.BasePrice)
			for _, li := range est.Breakdown {
				sum = sum.Add(decimal.RequireFromString(li.Amount))
			}
			return sum.Equal(decimal.RequireFromString(est.EstimatedPrice))
		},
		gen.Int64Range(0, 1_000_000),
		stocks,
		finishes,
		brandings,
	))

	properties.TestingRun(t)
}

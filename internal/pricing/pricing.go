// Package pricing computes configurator estimates. The same formula backs the
// live preview endpoint and the price persisted with a configuration.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/uplandimports/storefront/pkg/models"
)

var ErrInvalidPrice = errors.New("invalid price")

// Add-on amounts in USD.
var (
	WalnutStockCost        = decimal.NewFromInt(100)
	NickelFinishCost       = decimal.NewFromInt(150)
	CaseHardenedFinishCost = decimal.NewFromInt(200)
	CustomBrandingCost     = decimal.NewFromInt(75)
)

// LineItem is one priced add-on.
type LineItem struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// Estimate is the priced view of a set of configuration options.
type Estimate struct {
	BasePrice      string     `json:"basePrice"`
	EstimatedPrice string     `json:"estimatedPrice"`
	Breakdown      []LineItem `json:"breakdown"`
}

type addOn struct {
	label  string
	amount decimal.Decimal
}

func addOns(opts models.ConfigurationOptions) []addOn {
	var out []addOn
	if opts.StockMaterial == models.StockWalnut {
		out = append(out, addOn{"Turkish walnut stock", WalnutStockCost})
	}
	switch opts.Finish {
	case models.FinishNickel:
		out = append(out, addOn{"Nickel plated finish", NickelFinishCost})
	case models.FinishCaseHardened:
		out = append(out, addOn{"Case hardened finish", CaseHardenedFinishCost})
	}
	if opts.CustomBranding != "" {
		out = append(out, addOn{"Custom branding", CustomBrandingCost})
	}
	return out
}

// Price returns base plus the add-ons selected by opts. Unrecognized option
// values add nothing.
func Price(base decimal.Decimal, opts models.ConfigurationOptions) decimal.Decimal {
	total := base
	for _, a := range addOns(opts) {
		total = total.Add(a.amount)
	}
	return total
}

// EstimateFor prices opts and itemizes every add-on that applied.
func EstimateFor(base decimal.Decimal, opts models.ConfigurationOptions) Estimate {
	items := addOns(opts)
	est := Estimate{
		BasePrice:      Format(base),
		EstimatedPrice: Format(Price(base, opts)),
		Breakdown:      make([]LineItem, 0, len(items)),
	}
	for _, a := range items {
		est.Breakdown = append(est.Breakdown, LineItem{Label: a.label, Amount: Format(a.amount)})
	}
	return est
}

// ParseAmount parses a decimal money string, tolerating a leading "$" and
// thousands separators ("$1,149.00").
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidPrice)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount %q", ErrInvalidPrice, s)
	}
	return d, nil
}

// Format renders an amount at cent precision.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

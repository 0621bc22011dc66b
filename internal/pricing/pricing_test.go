package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uplandimports/storefront/internal/pricing"
	"github.com/uplandimports/storefront/pkg/models"
)

func TestPrice(t *testing.T) {
	cases := []struct {
		name string
		base int64
		opts models.ConfigurationOptions
		want string
	}{
		{
			name: "all add-ons",
			base: 850,
			opts: models.ConfigurationOptions{StockMaterial: "walnut", Finish: "nickel", CustomBranding: "Acme"},
			want: "1175",
		},
		{
			name: "no add-ons",
			base: 629,
			opts: models.ConfigurationOptions{StockMaterial: "synthetic", Finish: "blued"},
			want: "629",
		},
		{
			name: "case hardened",
			base: 850,
			opts: models.ConfigurationOptions{StockMaterial: "synthetic", Finish: "case-hardened"},
			want: "1050",
		},
		{
			name: "unknown values add nothing",
			base: 749,
			opts: models.ConfigurationOptions{StockMaterial: "birch", Finish: "cerakote", ActionType: "lever"},
			want: "749",
		},
		{
			name: "walnut only",
			base: 850,
			opts: models.ConfigurationOptions{StockMaterial: "walnut", Finish: "blued"},
			want: "950",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.Price(decimal.NewFromInt(tc.base), tc.opts)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestPrice_CentPrecisionBase(t *testing.T) {
	base := decimal.RequireFromString("849.99")
	got := pricing.Price(base, models.ConfigurationOptions{CustomBranding: "x"})
	assert.Equal(t, "924.99", pricing.Format(got))
}

func TestEstimateFor(t *testing.T) {
	est := pricing.EstimateFor(decimal.NewFromInt(850), models.ConfigurationOptions{
		StockMaterial:  "walnut",
		Finish:         "case-hardened",
		CustomBranding: "Upland",
	})

	assert.Equal(t, "850.00", est.BasePrice)
	assert.Equal(t, "1225.00", est.EstimatedPrice)
	require.Len(t, est.Breakdown, 3)
	assert.Equal(t, "100.00", est.Breakdown[0].Amount)
	assert.Equal(t, "200.00", est.Breakdown[1].Amount)
	assert.Equal(t, "75.00", est.Breakdown[2].Amount)

	empty := pricing.EstimateFor(decimal.NewFromInt(629), models.ConfigurationOptions{})
	assert.NotNil(t, empty.Breakdown)
	assert.Empty(t, empty.Breakdown)
	assert.Equal(t, "629.00", empty.EstimatedPrice)
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"849.00":    "849",
		"1,149.00":  "1149",
		"$1,149.00": "1149",
		" 850 ":     "850",
	}
	for in, want := range valid {
		got, err := pricing.ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%q parsed to %s", in, got)
	}

	for _, in := range []string{"", "abc", "-5", "$"} {
		_, err := pricing.ParseAmount(in)
		assert.ErrorIs(t, err, pricing.ErrInvalidPrice, in)
	}
}

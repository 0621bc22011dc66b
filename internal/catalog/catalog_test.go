package catalog_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uplandimports/storefront/internal/catalog"
	"github.com/uplandimports/storefront/pkg/models"
)

func TestDefault(t *testing.T) {
	products, err := catalog.Default()
	require.NoError(t, err)
	require.Len(t, products, 5)

	first := products[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "PE-701 Bullpup", first.Name)
	assert.Equal(t, models.CategoryBullpup, first.Category)
	assert.Equal(t, "849.00", first.BasePrice)
	assert.True(t, first.Available)

	specs, err := catalog.Specs(first)
	require.NoError(t, err)
	assert.Equal(t, "Semi-automatic", specs["action"])
	assert.Equal(t, "3\" chamber", specs["chamber"])
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"bad json":     `[{`,
		"zero id":      `[{"id":0,"name":"x","basePrice":"1.00"}]`,
		"duplicate id": `[{"id":1,"basePrice":"1.00"},{"id":1,"basePrice":"2.00"}]`,
		"bad price":    `[{"id":1,"basePrice":"n/a"}]`,
		"array specs":  `[{"id":1,"basePrice":"1.00","specifications":["18.5\""]}]`,
		"scalar specs": `[{"id":1,"basePrice":"1.00","specifications":"barrel 18.5"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"seed/products.json": {Data: []byte(body)}}
			_, err := catalog.Load(fsys)
			assert.Error(t, err)
		})
	}

	_, err := catalog.Load(fstest.MapFS{})
	assert.Error(t, err, "missing seed file")
}

func TestLoad_MissingSpecificationsDefaultsToEmptyObject(t *testing.T) {
	fsys := fstest.MapFS{"seed/products.json": {Data: []byte(`[{"id":7,"name":"PE-801","category":"side-by-side","basePrice":"999.00"}]`)}}
	products, err := catalog.Load(fsys)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "{}", products[0].Specifications)

	specs, err := catalog.Specs(products[0])
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestSpecs_Invalid(t *testing.T) {
	_, err := catalog.Specs(models.Product{ID: 9, Specifications: "not json"})
	assert.Error(t, err)
}

package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionFactors(t *testing.T) {
	cases := []struct {
		cat    Category
		factor float64
	}{
		{CategoryProtein, 0.0625},
		{CategorySides, 0.0625},
		{CategoryProduce, 0.0625},
		{CategoryOther, 0.0625},
		{CategorySauces, 0.0078125},
		{CategoryConsumables, 1.0},
		{CategorySupplies, 1.0},
		{CategoryDrinks, 1.0},
	}
	for _, tc := range cases {
		f, err := ConversionFactor(tc.cat)
		require.NoError(t, err, "category %s", tc.cat)
		assert.Equal(t, tc.factor, f, "category %s", tc.cat)
	}
}

func TestConversionFactorUnknown(t *testing.T) {
	_, err := ConversionFactor("frozen")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestConsumedUnits(t *testing.T) {
	// 8 recipe units of protein for 2 sold: 8 * 0.0625 * 2 = 1.0 inventory unit.
	got, err := ConsumedUnits(CategoryProtein, 8, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = ConsumedUnits(CategorySauces, 12, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.1875, got)

	got, err = ConsumedUnits(CategoryDrinks, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = ConsumedUnits("mystery", 1, 1)
	require.ErrorIs(t, err, ErrUnknownCategory)
}

package payment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceUnmarshal(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		value float64
	}{
		{`4.90`, true, 4.90},
		{`"4.90"`, true, 4.90},
		{`0`, true, 0},
		{`"not-a-number"`, false, 0},
		{`null`, false, 0},
		{`true`, false, 0},
	}
	for _, tc := range cases {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(tc.in), &p), "input %s", tc.in)
		assert.Equal(t, tc.valid, p.Valid(), "input %s", tc.in)
		if tc.valid {
			assert.Equal(t, tc.value, p.Value(), "input %s", tc.in)
		}
	}

	var p Price
	require.Error(t, json.Unmarshal([]byte(`{`), &p))
}

func TestOrderTotal(t *testing.T) {
	lines := []CartLine{
		{Name: "M_orange_chicken", Quantity: 2, Price: ValidPrice(4.90)},
		{Name: "S_drink", Quantity: 1, Price: ValidPrice(1.05)},
	}
	assert.Equal(t, 10.85, orderTotal(lines))

	// An unparseable price adds nothing to the total.
	lines = append(lines, CartLine{Name: "X", Quantity: 3, Price: InvalidPrice()})
	assert.Equal(t, 10.85, orderTotal(lines))

	assert.Equal(t, 0.0, orderTotal(nil))
}

func TestLinePriceFallback(t *testing.T) {
	total := 9.80
	assert.Equal(t, 4.90, linePrice(CartLine{Price: ValidPrice(4.90)}, total))
	// The fallback substitutes the whole order total, not a per-line share.
	assert.Equal(t, total, linePrice(CartLine{Price: InvalidPrice()}, total))
}

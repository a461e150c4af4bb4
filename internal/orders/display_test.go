package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"M_orange_chicken":  "Medium orange chicken",
		"L_chow_mein":       "Large chow mein",
		"K_kung_pao":        "Kid kung pao",
		"F_fried_rice":      "Family fried rice",
		"N_bourbon_chicken": "Normal bourbon chicken",
		"S_fountain_drink":  "Small fountain drink",
		"apple_pie_roll":    "apple pie roll", // no size prefix
		"water":             "water",
	}
	for in, want := range cases {
		assert.Equal(t, want, DisplayName(in), in)
	}
}

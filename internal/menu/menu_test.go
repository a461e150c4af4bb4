package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSections(t *testing.T) {
	rows := []MenuItem{
		{ProductName: "L_orange_chicken", Price: 0, Type: "entree", Calories: 490},
		{ProductName: "M_orange_chicken", Price: 4.90, Type: "entree", Calories: 380},
		{ProductName: "L_chow_mein", Price: 0, Type: "side", Calories: 510},
		{ProductName: "L_spring_roll", Price: 2.00, Type: "appetizer", Calories: 240},
		{ProductName: "N_fountain_drink", Price: 1.05, Type: "drink", Calories: 0},
		{ProductName: "S_fountain_drink", Price: 0.95, Type: "drink", Calories: 0},
	}

	s := buildSections(rows)

	// Only the large-size rows drive the entree/side/extra sections.
	require.Len(t, s.Entrees, 1)
	assert.Equal(t, BoardEntry{Name: "orange_chicken", Calories: 490}, s.Entrees[0])
	require.Len(t, s.Sides, 1)
	assert.Equal(t, "chow_mein", s.Sides[0].Name)
	require.Len(t, s.Extras, 1)
	assert.Equal(t, "spring_roll", s.Extras[0].Name)

	// Small/medium drink rows are skipped to avoid board duplicates.
	require.Len(t, s.Drinks, 1)
	assert.Equal(t, "fountain_drink", s.Drinks[0].Name)

	// Every row with a real price is available for the register lookup.
	require.Len(t, s.PricedItems, 4)
	assert.Equal(t, PricedItem{Name: "M_orange_chicken", Price: 4.90}, s.PricedItems[0])
}

func TestBuildSectionsEmpty(t *testing.T) {
	s := buildSections(nil)
	assert.Empty(t, s.Entrees)
	assert.Empty(t, s.PricedItems)
}

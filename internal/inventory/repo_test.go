package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemsQuery(t *testing.T) {
	q, args := itemsQuery("All")
	assert.NotContains(t, q, "WHERE")
	assert.Empty(t, args)

	q, args = itemsQuery("")
	assert.NotContains(t, q, "WHERE")
	assert.Empty(t, args)

	q, args = itemsQuery("Low Stock")
	assert.Contains(t, q, "quantity <= recommended_quantity")
	assert.Empty(t, args)

	q, args = itemsQuery("sauces")
	assert.Contains(t, q, "inventory_type = $1")
	assert.Equal(t, []any{"sauces"}, args)
}

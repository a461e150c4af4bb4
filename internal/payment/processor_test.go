package payment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seededStore() *memStore {
	s := newMemStore()
	s.seedInventory(
		InventoryRow{Name: "chicken", Category: CategoryProtein, Quantity: 30, BatchSize: 50},
		InventoryRow{Name: "orange_sauce", Category: CategorySauces, Quantity: 5, BatchSize: 50},
		InventoryRow{Name: "bags", Category: CategorySupplies, Quantity: 100, BatchSize: 1000},
		InventoryRow{Name: "napkins", Category: CategorySupplies, Quantity: 100, BatchSize: 1000},
		InventoryRow{Name: "flatware", Category: CategorySupplies, Quantity: 100, BatchSize: 1000},
		InventoryRow{Name: "fortune_cookies", Category: CategoryConsumables, Quantity: 100, BatchSize: 1000},
	)
	s.seedRecipe("M_orange_chicken",
		RecipeEntry{Inventory: "chicken", QuantityPerUnit: 8},
		RecipeEntry{Inventory: "orange_sauce", QuantityPerUnit: 12},
	)
	return s
}

func newTestProcessor(s *memStore, opts ...Option) *Processor {
	return NewProcessor(s, zap.NewNop(), opts...)
}

// idSeq returns ids from the given list in order, then keeps returning the
// last one.
func idSeq(ids ...int64) func() int64 {
	i := 0
	return func() int64 {
		id := ids[i]
		if i < len(ids)-1 {
			i++
		}
		return id
	}
}

func TestProcessHappyPath(t *testing.T) {
	s := seededStore()
	p := newTestProcessor(s)

	id, err := p.Process(context.Background(), "Kiosk", []CartLine{
		{Name: "M_orange_chicken", Quantity: 2, Price: ValidPrice(4.90)},
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, int64(100000))
	assert.Less(t, id, int64(1000000))

	o, ok := s.order(id)
	require.True(t, ok)
	assert.Equal(t, "Kiosk", o.Label)
	assert.Equal(t, 9.80, o.Total)

	lines := s.linesFor(id)
	require.Len(t, lines, 1)
	assert.Equal(t, "M_orange_chicken", lines[0].Product)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 4.90, lines[0].Price)

	// chicken: 8 * 0.0625 * 2 = 1.0 consumed; sauce: 12 * 0.0078125 * 2 = 0.1875.
	assert.Equal(t, 29.0, s.quantity("chicken"))
	assert.Equal(t, 4.8125, s.quantity("orange_sauce"))

	// Fixed consumables drop by exactly one.
	for _, name := range DefaultFixedConsumables {
		assert.Equal(t, 99.0, s.quantity(name), name)
	}
}

func TestProcessEmptyCart(t *testing.T) {
	s := seededStore()
	p := newTestProcessor(s)

	id, err := p.Process(context.Background(), "Kiosk", nil)
	require.NoError(t, err)

	o, ok := s.order(id)
	require.True(t, ok)
	assert.Equal(t, 0.0, o.Total)
	assert.Empty(t, s.linesFor(id))

	// The per-order consumables are decremented even for an empty cart.
	assert.Equal(t, 99.0, s.quantity("bags"))
}

func TestProcessPriceFallback(t *testing.T) {
	s := seededStore()
	p := newTestProcessor(s)

	id, err := p.Process(context.Background(), "Alice", []CartLine{
		{Name: "M_orange_chicken", Quantity: 2, Price: ValidPrice(4.90)},
		{Name: "mystery_combo", Quantity: 2, Price: InvalidPrice()},
	})
	require.NoError(t, err)

	o, _ := s.order(id)
	assert.Equal(t, 9.80, o.Total)

	lines := s.linesFor(id)
	require.Len(t, lines, 2)
	// The invalid price is replaced by the order's total, not a unit price.
	assert.Equal(t, 9.80, lines[1].Price)
}

func TestProcessFixedConsumablesIndependentOfCartSize(t *testing.T) {
	for _, n := range []int{1, 5} {
		s := seededStore()
		p := newTestProcessor(s)

		var lines []CartLine
		for i := 0; i < n; i++ {
			lines = append(lines, CartLine{Name: "M_orange_chicken", Quantity: 1, Price: ValidPrice(4.90)})
		}
		_, err := p.Process(context.Background(), "Kiosk", lines)
		require.NoError(t, err)

		for _, name := range DefaultFixedConsumables {
			assert.Equal(t, 99.0, s.quantity(name), "%d-line cart, %s", n, name)
		}
	}
}

func TestProcessFixedConsumablesMissingRowIsNoop(t *testing.T) {
	s := seededStore()
	p := newTestProcessor(s, WithFixedConsumables([]string{"bags", "does_not_exist"}))

	_, err := p.Process(context.Background(), "Kiosk", nil)
	require.NoError(t, err)
	assert.Equal(t, 99.0, s.quantity("bags"))
}

func TestProcessUnknownCategoryRollsBack(t *testing.T) {
	s := seededStore()
	s.seedInventory(InventoryRow{Name: "mystery_meat", Category: "frozen", Quantity: 10, BatchSize: 5})
	s.seedRecipe("M_mystery", RecipeEntry{Inventory: "mystery_meat", QuantityPerUnit: 4})
	p := newTestProcessor(s)

	_, err := p.Process(context.Background(), "Kiosk", []CartLine{
		{Name: "M_orange_chicken", Quantity: 1, Price: ValidPrice(4.90)},
		{Name: "M_mystery", Quantity: 1, Price: ValidPrice(5.20)},
	})
	require.ErrorIs(t, err, ErrUnknownCategory)

	// Nothing survives the rollback: no order, no lines, untouched inventory.
	assert.Equal(t, 0, s.orderCount())
	assert.Equal(t, 30.0, s.quantity("chicken"))
	assert.Equal(t, 10.0, s.quantity("mystery_meat"))
	assert.Equal(t, 100.0, s.quantity("bags"))
}

func TestProcessUntrackedIngredientSkipped(t *testing.T) {
	s := seededStore()
	s.seedRecipe("M_special", RecipeEntry{Inventory: "unicorn_dust", QuantityPerUnit: 2})
	p := newTestProcessor(s)

	_, err := p.Process(context.Background(), "Kiosk", []CartLine{
		{Name: "M_special", Quantity: 1, Price: ValidPrice(3.00)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.orderCount())
}

func TestProcessUnknownProductHasEmptyRecipe(t *testing.T) {
	s := seededStore()
	p := newTestProcessor(s)

	_, err := p.Process(context.Background(), "Kiosk", []CartLine{
		{Name: "never_on_menu", Quantity: 1, Price: ValidPrice(1.00)},
	})
	require.NoError(t, err)
	// Only the fixed consumables moved.
	assert.Equal(t, 30.0, s.quantity("chicken"))
	assert.Equal(t, 99.0, s.quantity("bags"))
}

func TestProcessResubmissionIsNotDeduplicated(t *testing.T) {
	s := seededStore()
	p := newTestProcessor(s)
	cart := []CartLine{{Name: "M_orange_chicken", Quantity: 1, Price: ValidPrice(4.90)}}

	id1, err := p.Process(context.Background(), "Kiosk", cart)
	require.NoError(t, err)
	id2, err := p.Process(context.Background(), "Kiosk", cart)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, s.orderCount())
	// Inventory is consumed twice: 30 - 0.5 - 0.5.
	assert.Equal(t, 29.0, s.quantity("chicken"))
	assert.Equal(t, 98.0, s.quantity("bags"))
}

func TestProcessRetriesOnExistingID(t *testing.T) {
	s := seededStore()
	first := newTestProcessor(s, WithIDSource(idSeq(123456)))
	_, err := first.Process(context.Background(), "Kiosk", nil)
	require.NoError(t, err)

	// The next payment draws the taken id twice before a free one.
	second := newTestProcessor(s, WithIDSource(idSeq(123456, 123456, 654321)))
	id, err := second.Process(context.Background(), "Kiosk", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(654321), id)
}

func TestProcessRetriesOnInsertRace(t *testing.T) {
	// The existence probe sees nothing, but the insert itself reports a
	// duplicate (a concurrent transaction committed the id in between).
	s := seededStore()
	s.dupOnInsert = 1
	p := newTestProcessor(s, WithIDSource(idSeq(111111, 222222)))

	id, err := p.Process(context.Background(), "Kiosk", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(222222), id)
}

func TestProcessConcurrentPaymentsGetDistinctIDs(t *testing.T) {
	s := seededStore()
	p := newTestProcessor(s)

	const n = 40
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := p.Process(context.Background(), "Kiosk", []CartLine{
				{Name: "M_orange_chicken", Quantity: 1, Price: ValidPrice(4.90)},
			})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate order id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, float64(100-n), s.quantity("bags"))
}

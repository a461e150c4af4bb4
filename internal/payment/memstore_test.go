package payment

import (
	"context"
	"sync"
)

// memStore is an in-memory Store with commit/rollback semantics: every
// transaction works on a deep copy of the state and the copy replaces the
// committed state only when the callback succeeds. A single mutex serializes
// transactions, standing in for the row locks the Postgres store takes.
type memStore struct {
	mu sync.Mutex
	st memState

	// dupOnInsert makes the next n InsertOrder calls fail with
	// ErrDuplicateOrderID even when the existence probe saw nothing,
	// simulating a concurrent transaction winning the id race.
	dupOnInsert int
}

type memState struct {
	orders    map[int64]memOrder
	lines     []memLine
	inventory map[string]InventoryRow
	recipes   map[string][]RecipeEntry
}

type memOrder struct {
	Label string
	Total float64
}

type memLine struct {
	OrderID  int64
	Product  string
	Quantity int
	Price    float64
}

func newMemStore() *memStore {
	return &memStore{st: memState{
		orders:    map[int64]memOrder{},
		inventory: map[string]InventoryRow{},
		recipes:   map[string][]RecipeEntry{},
	}}
}

func (s *memStore) seedInventory(rows ...InventoryRow) {
	for _, r := range rows {
		s.st.inventory[r.Name] = r
	}
}

func (s *memStore) seedRecipe(product string, entries ...RecipeEntry) {
	s.st.recipes[product] = entries
}

func (s *memStore) quantity(name string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.inventory[name].Quantity
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orders)
}

func (s *memStore) linesFor(id int64) []memLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []memLine
	for _, ln := range s.st.lines {
		if ln.OrderID == id {
			out = append(out, ln)
		}
	}
	return out
}

func (s *memStore) order(id int64) (memOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	return o, ok
}

func (s *memStore) InTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.clone()
	if err := fn(&memTx{st: &staged, store: s}); err != nil {
		return err
	}
	s.st = staged
	return nil
}

func (st memState) clone() memState {
	out := memState{
		orders:    make(map[int64]memOrder, len(st.orders)),
		lines:     append([]memLine(nil), st.lines...),
		inventory: make(map[string]InventoryRow, len(st.inventory)),
		recipes:   st.recipes, // read-only from the core's perspective
	}
	for k, v := range st.orders {
		out.orders[k] = v
	}
	for k, v := range st.inventory {
		out.inventory[k] = v
	}
	return out
}

type memTx struct {
	st    *memState
	store *memStore
}

func (t *memTx) OrderIDExists(_ context.Context, id int64) (bool, error) {
	_, ok := t.st.orders[id]
	return ok, nil
}

func (t *memTx) InsertOrder(_ context.Context, id int64, label string, total float64) error {
	if t.store.dupOnInsert > 0 {
		t.store.dupOnInsert--
		return ErrDuplicateOrderID
	}
	if _, ok := t.st.orders[id]; ok {
		return ErrDuplicateOrderID
	}
	t.st.orders[id] = memOrder{Label: label, Total: total}
	return nil
}

func (t *memTx) InsertOrderLine(_ context.Context, orderID int64, product string, quantity int, price float64) error {
	t.st.lines = append(t.st.lines, memLine{OrderID: orderID, Product: product, Quantity: quantity, Price: price})
	return nil
}

func (t *memTx) RecipeFor(_ context.Context, product string) ([]RecipeEntry, error) {
	return t.st.recipes[product], nil
}

func (t *memTx) InventoryForUpdate(_ context.Context, name string) (InventoryRow, bool, error) {
	row, ok := t.st.inventory[name]
	return row, ok, nil
}

func (t *memTx) SetInventoryQuantity(_ context.Context, name string, quantity float64) error {
	row := t.st.inventory[name]
	row.Name = name
	row.Quantity = quantity
	t.st.inventory[name] = row
	return nil
}

func (t *memTx) DecrementInventory(_ context.Context, name string, by float64) error {
	row, ok := t.st.inventory[name]
	if !ok {
		return nil // missing row is a no-op, same as an UPDATE matching nothing
	}
	row.Quantity -= by
	t.st.inventory[name] = row
	return nil
}

package payment

import "context"

// Tx is the unit-of-work surface the processor drives. Every call runs
// inside one database transaction; nothing becomes visible unless the
// enclosing InTx callback returns nil.
type Tx interface {
	// OrderIDExists reports whether an order with the given id is already
	// committed or pending in this transaction's view.
	OrderIDExists(ctx context.Context, id int64) (bool, error)

	// InsertOrder writes the order header, timestamped with the store's
	// reference-timezone clock. Returns ErrDuplicateOrderID when a
	// concurrent transaction committed the same id first.
	InsertOrder(ctx context.Context, id int64, label string, total float64) error

	InsertOrderLine(ctx context.Context, orderID int64, product string, quantity int, price float64) error

	// RecipeFor returns the ingredient rows for a product. An unknown
	// product yields an empty recipe, not an error.
	RecipeFor(ctx context.Context, product string) ([]RecipeEntry, error)

	// InventoryForUpdate reads one inventory row and locks it against
	// concurrent writers for the remainder of the transaction. ok is false
	// when no row matches the name.
	InventoryForUpdate(ctx context.Context, name string) (row InventoryRow, ok bool, err error)

	SetInventoryQuantity(ctx context.Context, name string, quantity float64) error

	// DecrementInventory applies an atomic relative decrement. Missing rows
	// are a no-op.
	DecrementInventory(ctx context.Context, name string, by float64) error
}

// Store opens the transaction a payment runs in.
type Store interface {
	// InTx runs fn inside a transaction, committing when fn returns nil and
	// rolling back every write otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

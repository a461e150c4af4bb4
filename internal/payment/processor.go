package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

const (
	orderIDMin  = 100000
	orderIDSpan = 900000
)

func randomOrderID() int64 {
	return orderIDMin + rand.Int63n(orderIDSpan)
}

// Processor coordinates one payment: id allocation, order and line inserts,
// recipe resolution, inventory depletion and the fixed consumable decrement,
// all within a single transaction.
type Processor struct {
	store            Store
	fixedConsumables []string
	randID           func() int64
	logger           *zap.Logger
}

type Option func(*Processor)

// WithFixedConsumables overrides the per-order supply list.
func WithFixedConsumables(names []string) Option {
	return func(p *Processor) { p.fixedConsumables = names }
}

// WithIDSource overrides the order id draw. Tests use this to force
// collisions.
func WithIDSource(f func() int64) Option {
	return func(p *Processor) { p.randID = f }
}

func NewProcessor(store Store, logger *zap.Logger, opts ...Option) *Processor {
	p := &Processor{
		store:            store,
		fixedConsumables: DefaultFixedConsumables,
		randID:           randomOrderID,
		logger:           logger,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process runs the payment for a submitted cart and returns the generated
// order id. An empty cart is a valid order with total zero. On any error the
// transaction rolls back whole: no order, line, or inventory write survives.
func (p *Processor) Process(ctx context.Context, label string, lines []CartLine) (int64, error) {
	var orderID int64
	err := p.store.InTx(ctx, func(tx Tx) error {
		total := orderTotal(lines)

		id, err := p.allocateOrder(ctx, tx, label, total)
		if err != nil {
			return err
		}

		for _, ln := range lines {
			if err := tx.InsertOrderLine(ctx, id, ln.Name, ln.Quantity, linePrice(ln, total)); err != nil {
				return fmt.Errorf("insert order line %q: %w", ln.Name, err)
			}
		}

		for _, ln := range lines {
			if err := p.depleteForLine(ctx, tx, ln); err != nil {
				return err
			}
		}

		for _, name := range p.fixedConsumables {
			if err := tx.DecrementInventory(ctx, name, 1); err != nil {
				return fmt.Errorf("decrement consumable %q: %w", name, err)
			}
		}

		orderID = id
		return nil
	})
	if err != nil {
		p.logger.Warn("payment rolled back", zap.String("label", label), zap.Error(err))
		return 0, err
	}
	p.logger.Info("payment processed",
		zap.Int64("order_id", orderID),
		zap.String("label", label),
		zap.Int("lines", len(lines)))
	return orderID, nil
}

// allocateOrder draws random 6-digit ids until one inserts cleanly. The
// existence probe keeps the common path to a single attempt; the primary key
// on orders closes the probe-then-insert race, turning a concurrent
// collision into ErrDuplicateOrderID and another draw. There is no retry
// cap: if the id space ever nears exhaustion this loop degrades to unbounded
// (~900k ids, so not a practical concern at restaurant volume).
func (p *Processor) allocateOrder(ctx context.Context, tx Tx, label string, total float64) (int64, error) {
	for {
		id := p.randID()
		exists, err := tx.OrderIDExists(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("check order id: %w", err)
		}
		if exists {
			continue
		}
		err = tx.InsertOrder(ctx, id, label, total)
		if errors.Is(err, ErrDuplicateOrderID) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("insert order: %w", err)
		}
		return id, nil
	}
}

// depleteForLine resolves the line's recipe and applies one ledger update
// per ingredient. Ingredients with no inventory row are skipped; an
// ingredient in an unknown category aborts the transaction.
func (p *Processor) depleteForLine(ctx context.Context, tx Tx, ln CartLine) error {
	recipe, err := tx.RecipeFor(ctx, ln.Name)
	if err != nil {
		return fmt.Errorf("resolve recipe for %q: %w", ln.Name, err)
	}
	for _, ing := range recipe {
		row, ok, err := tx.InventoryForUpdate(ctx, ing.Inventory)
		if err != nil {
			return fmt.Errorf("lock inventory %q: %w", ing.Inventory, err)
		}
		if !ok {
			// Recipe references an untracked item; nothing to deplete.
			continue
		}
		consumed, err := ConsumedUnits(row.Category, ing.QuantityPerUnit, ln.Quantity)
		if err != nil {
			return fmt.Errorf("inventory %q: %w", ing.Inventory, err)
		}
		newQty := rolloverQuantity(row.Quantity, row.BatchSize, consumed)
		if err := tx.SetInventoryQuantity(ctx, row.Name, newQty); err != nil {
			return fmt.Errorf("update inventory %q: %w", row.Name, err)
		}
	}
	return nil
}

package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore runs payments against Postgres. One transactional connection is
// held for the duration of a payment and released on every exit path.
type PGStore struct {
	DB *pgxpool.Pool

	// Timezone is the reference timezone name order timestamps are
	// normalized to, e.g. "America/Chicago".
	Timezone string
}

func (s *PGStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin payment tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx, tz: s.Timezone}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct {
	tx pgx.Tx
	tz string
}

const pgUniqueViolation = "23505"

func (t *pgTx) OrderIDExists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := t.tx.QueryRow(ctx, `SELECT order_id FROM orders WHERE order_id = $1`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *pgTx) InsertOrder(ctx context.Context, id int64, label string, total float64) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO orders (order_id, name, total, time_stamp)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP AT TIME ZONE $4)`,
		id, label, total, t.tz)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateOrderID
	}
	return err
}

func (t *pgTx) InsertOrderLine(ctx context.Context, orderID int64, product string, quantity int, price float64) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO order_details (order_id, product_name, quantity, price)
		VALUES ($1, $2, $3, $4)`,
		orderID, product, quantity, price)
	return err
}

func (t *pgTx) RecipeFor(ctx context.Context, product string) ([]RecipeEntry, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT inventory_name, inventory_quantity
		FROM ingredients WHERE product_name = $1`, product)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecipeEntry
	for rows.Next() {
		var e RecipeEntry
		if err := rows.Scan(&e.Inventory, &e.QuantityPerUnit); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (t *pgTx) InventoryForUpdate(ctx context.Context, name string) (InventoryRow, bool, error) {
	var (
		row InventoryRow
		cat string
	)
	err := t.tx.QueryRow(ctx, `
		SELECT inventory_name, inventory_type, quantity, batch_quantity
		FROM inventory WHERE inventory_name = $1 FOR UPDATE`, name).
		Scan(&row.Name, &cat, &row.Quantity, &row.BatchSize)
	if errors.Is(err, pgx.ErrNoRows) {
		return InventoryRow{}, false, nil
	}
	if err != nil {
		return InventoryRow{}, false, err
	}
	row.Category = Category(cat)
	return row, true, nil
}

func (t *pgTx) SetInventoryQuantity(ctx context.Context, name string, quantity float64) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE inventory SET quantity = $1 WHERE inventory_name = $2`,
		quantity, name)
	return err
}

func (t *pgTx) DecrementInventory(ctx context.Context, name string, by float64) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE inventory SET quantity = quantity - $1 WHERE inventory_name = $2`,
		by, name)
	return err
}

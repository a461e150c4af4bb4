package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Order struct {
	OrderID   int64     `json:"order_id"`
	Name      string    `json:"name"`
	Total     float64   `json:"total"`
	TimeStamp time.Time `json:"time_stamp"`
	Items     []Item    `json:"items"`
}

type Item struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Repo struct {
	DB *pgxpool.Pool

	// Timezone is the store's reference timezone; "today" for the kiosk
	// board is evaluated against it.
	Timezone string
}

// CurrentKioskOrders returns today's kiosk orders with their lines, product
// names already in display form.
func (r *Repo) CurrentKioskOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, name, total, time_stamp
		FROM orders
		WHERE DATE(time_stamp AT TIME ZONE $1) = CURRENT_DATE AND name = 'Kiosk'`,
		r.Timezone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.OrderID, &o.Name, &o.Total, &o.TimeStamp); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.itemsFor(ctx, out[i].OrderID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// GetOrder returns one order with its lines (stored product names, no
// display mapping).
func (r *Repo) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT order_id, name, total, time_stamp FROM orders WHERE order_id = $1`, id).
		Scan(&o.OrderID, &o.Name, &o.Total, &o.TimeStamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT product_name, quantity, price FROM order_details WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

func (r *Repo) itemsFor(ctx context.Context, orderID int64) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_name, quantity, price FROM order_details WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		it.ProductName = DisplayName(it.ProductName)
		items = append(items, it)
	}
	return items, rows.Err()
}

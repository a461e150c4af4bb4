package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("inventory item not found")

type Item struct {
	InventoryName       string  `json:"inventory_name"`
	InventoryType       string  `json:"inventory_type"`
	Quantity            float64 `json:"quantity"`
	RecommendedQuantity float64 `json:"recommended_quantity"`
	GamedayQuantity     float64 `json:"gameday_quantity"`
	BatchQuantity       float64 `json:"batch_quantity"`
}

// UsageRow is one line of the consumption aggregation: how much of an
// inventory item was used by orders in a date range.
type UsageRow struct {
	InventoryName string  `json:"inventory_name"`
	TotalUsed     float64 `json:"total_used"`
}

type Repo struct {
	DB *pgxpool.Pool
}

func (r *Repo) Add(ctx context.Context, it Item) (*Item, error) {
	row := r.DB.QueryRow(ctx, `
		INSERT INTO inventory (inventory_name, inventory_type, quantity, recommended_quantity, gameday_quantity, batch_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING inventory_name, inventory_type, quantity, recommended_quantity, gameday_quantity, batch_quantity`,
		it.InventoryName, it.InventoryType, it.Quantity, it.RecommendedQuantity, it.GamedayQuantity, it.BatchQuantity)
	return scanItem(row)
}

func (r *Repo) Delete(ctx context.Context, name string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM inventory WHERE inventory_name = $1`, name)
	return err
}

func (r *Repo) Types(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT DISTINCT inventory_type FROM inventory`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Items lists inventory, optionally filtered: "All" (or empty) returns
// everything, "Low Stock" returns items at or under their recommended
// quantity, anything else filters by type.
func (r *Repo) Items(ctx context.Context, filter string) ([]Item, error) {
	query, args := itemsQuery(filter)
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

const itemColumns = `inventory_name, inventory_type, quantity, recommended_quantity, gameday_quantity, batch_quantity`

func itemsQuery(filter string) (string, []any) {
	query := `SELECT ` + itemColumns + ` FROM inventory`
	switch filter {
	case "", "All":
		return query, nil
	case "Low Stock":
		return query + ` WHERE quantity <= recommended_quantity`, nil
	default:
		return query + ` WHERE inventory_type = $1`, []any{filter}
	}
}

func (r *Repo) Get(ctx context.Context, name string) (*Item, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM inventory WHERE inventory_name = $1`, name)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (r *Repo) Update(ctx context.Context, name string, it Item) (*Item, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE inventory
		SET quantity = $1, recommended_quantity = $2, gameday_quantity = $3, batch_quantity = $4
		WHERE inventory_name = $5
		RETURNING `+itemColumns,
		it.Quantity, it.RecommendedQuantity, it.GamedayQuantity, it.BatchQuantity, name)
	out, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return out, err
}

// Restock sets the on-hand quantity outright (the register enters the
// counted stock, not a delta).
func (r *Repo) Restock(ctx context.Context, name string, quantity float64) (*Item, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE inventory SET quantity = $1 WHERE inventory_name = $2
		RETURNING `+itemColumns,
		quantity, name)
	out, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return out, err
}

// Usage aggregates recipe-level consumption per inventory item of one type
// over a date range.
func (r *Repo) Usage(ctx context.Context, invType string, start, end time.Time) ([]UsageRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT i.inventory_name, SUM(od.quantity * ing.inventory_quantity) AS total_used
		FROM order_details od
		JOIN orders o ON od.order_id = o.order_id
		JOIN ingredients ing ON od.product_name = ing.product_name
		JOIN inventory i ON ing.inventory_name = i.inventory_name
		WHERE i.inventory_type = $1
		  AND o.time_stamp BETWEEN $2 AND $3
		GROUP BY i.inventory_name
		ORDER BY total_used DESC`,
		invType, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var u UsageRow
		if err := rows.Scan(&u.InventoryName, &u.TotalUsed); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanItem(row scannable) (*Item, error) {
	var it Item
	err := row.Scan(&it.InventoryName, &it.InventoryType, &it.Quantity,
		&it.RecommendedQuantity, &it.GamedayQuantity, &it.BatchQuantity)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

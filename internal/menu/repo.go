package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	DB *pgxpool.Pool
}

func (r *Repo) List(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.DB.Query(ctx, `SELECT product_name, price, type, calories FROM menu`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *Repo) Add(ctx context.Context, it MenuItem) (*MenuItem, error) {
	row := r.DB.QueryRow(ctx, `
		INSERT INTO menu (product_name, price, type, calories)
		VALUES ($1, $2, $3, $4)
		RETURNING product_name, price, type, calories`,
		it.ProductName, it.Price, it.Type, it.Calories)
	return scan(row)
}

func (r *Repo) Update(ctx context.Context, productName string, price float64, calories int) (*MenuItem, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE menu SET price = $1, calories = $2 WHERE product_name = $3
		RETURNING product_name, price, type, calories`,
		price, calories, productName)
	it, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (r *Repo) Delete(ctx context.Context, productName string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM menu WHERE product_name = $1`, productName)
	return err
}

// BoardSections returns the menu grouped for the kiosk/menu-board screens,
// in the house display order.
func (r *Repo) BoardSections(ctx context.Context) (Sections, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_name, price, type, calories
		FROM menu
		ORDER BY
			CASE
				WHEN product_name LIKE '%bourbon_chicken%' THEN 1
				WHEN product_name LIKE '%orange_chicken%' THEN 2
				WHEN product_name LIKE '%sweetfire%' THEN 3
				WHEN product_name LIKE '%walnut%' THEN 4
				WHEN product_name LIKE '%kung%' THEN 5
				WHEN product_name LIKE '%pepper_steak%' THEN 6
				WHEN product_name LIKE '%beef%' THEN 7
				WHEN product_name LIKE '%chow_mein%' THEN 8
				WHEN product_name LIKE '%fried_rice%' THEN 9
				WHEN product_name LIKE '%white_rice%' THEN 10
				WHEN product_name LIKE '%egg%' THEN 11
				WHEN product_name LIKE '%cc%' THEN 12
				WHEN product_name LIKE '%spring%' THEN 13
				WHEN product_name LIKE '%apple%' THEN 14
				ELSE 15
			END`)
	if err != nil {
		return Sections{}, err
	}
	defer rows.Close()

	items, err := collect(rows)
	if err != nil {
		return Sections{}, err
	}
	return buildSections(items), nil
}

func collect(rows pgx.Rows) ([]MenuItem, error) {
	var out []MenuItem
	for rows.Next() {
		var it MenuItem
		if err := rows.Scan(&it.ProductName, &it.Price, &it.Type, &it.Calories); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scan(row pgx.Row) (*MenuItem, error) {
	var it MenuItem
	if err := row.Scan(&it.ProductName, &it.Price, &it.Type, &it.Calories); err != nil {
		return nil, err
	}
	return &it, nil
}

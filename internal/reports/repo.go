// Package reports builds the manager reports: X/Z register reports and the
// product-sales, excess-inventory, restock, sold-together and popularity
// queries backing the manager dashboard.
package reports

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// zReportEpoch is reported when no register close has ever been recorded.
const zReportEpoch = "2024-01-01 00:00:00"

// The last register close is stored on a sentinel employees row so the
// report window survives restarts without a dedicated table.
const zReportRow = "Z_Report"

type Repo struct {
	DB       *pgxpool.Pool
	Timezone string
}

// LastZReport returns the last register-close time formatted as
// "YYYY-MM-DD HH:MM:SS", or the epoch default when none was recorded.
func (r *Repo) LastZReport(ctx context.Context) (string, error) {
	var clockOut *time.Time
	err := r.DB.QueryRow(ctx, `
		SELECT clock_out AT TIME ZONE 'UTC' FROM employees WHERE name = $1`, zReportRow).
		Scan(&clockOut)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && clockOut == nil) {
		return zReportEpoch, nil
	}
	if err != nil {
		return "", err
	}
	return clockOut.Format("2006-01-02 15:04:05"), nil
}

type HourlySales struct {
	Date       string  `json:"date"`
	TimePeriod string  `json:"time_period"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int64   `json:"order_count"`
}

// XReport breaks sales since the last register close into hourly buckets.
// The register stays open; only a Z report resets the window.
func (r *Repo) XReport(ctx context.Context) ([]HourlySales, error) {
	since, err := r.LastZReport(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		WITH daily_sales AS (
			SELECT
				DATE(time_stamp) AS sale_date,
				DATE_TRUNC('hour', time_stamp) AS hour,
				SUM(total) AS total_sales,
				COUNT(*) AS order_count
			FROM orders
			WHERE time_stamp > $1
			GROUP BY DATE(time_stamp), DATE_TRUNC('hour', time_stamp)
			ORDER BY sale_date, hour
		)
		SELECT
			TO_CHAR(sale_date, 'YYYY-MM-DD') AS date,
			TO_CHAR(hour, 'HH12:MI AM') AS time_period,
			ROUND(total_sales::NUMERIC, 2) AS total_sales,
			order_count
		FROM daily_sales`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HourlySales
	for rows.Next() {
		var h HourlySales
		if err := rows.Scan(&h.Date, &h.TimePeriod, &h.TotalSales, &h.OrderCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type ZSummary struct {
	TotalSales  float64 `json:"total_sales"`
	TotalOrders int64   `json:"total_orders"`
}

// ZReport totals sales since the last register close.
func (r *Repo) ZReport(ctx context.Context) (ZSummary, error) {
	var s ZSummary
	var sales *float64
	var orders *int64
	err := r.DB.QueryRow(ctx, `
		WITH daily_sales AS (
			SELECT
				SUM(total) AS total_sales,
				COUNT(*) AS total_orders
			FROM orders
			WHERE time_stamp > (
				SELECT clock_out
				FROM employees
				WHERE name = $1
				ORDER BY clock_out DESC
				LIMIT 1
			)
		)
		SELECT
			total_sales::NUMERIC(10,2) AS total_sales,
			total_orders
		FROM daily_sales`, zReportRow).
		Scan(&sales, &orders)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if sales != nil {
		s.TotalSales = *sales
	}
	if orders != nil {
		s.TotalOrders = *orders
	}
	return s, nil
}

// CloseRegister stamps the sentinel row with the current store-local time,
// resetting the X/Z reporting window.
func (r *Repo) CloseRegister(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE employees
		SET clock_out = (CURRENT_TIMESTAMP AT TIME ZONE $1)
		WHERE name = $2`,
		r.Timezone, zReportRow)
	return err
}

type ProductSales struct {
	ProductName string  `json:"product_name"`
	TotalSales  float64 `json:"total_sales"`
}

func (r *Repo) SalesByProduct(ctx context.Context, start, end time.Time) ([]ProductSales, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT od.product_name, SUM(od.quantity * od.price) AS total_sales
		FROM order_details od
		JOIN orders o ON od.order_id = o.order_id
		WHERE o.time_stamp BETWEEN $1 AND $2
		GROUP BY od.product_name
		ORDER BY total_sales DESC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductName, &p.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type ExcessItem struct {
	InventoryName  string  `json:"inventory_name"`
	TotalQuantity  float64 `json:"total_quantity"`
	TotalSold      float64 `json:"total_sold"`
	SoldPercentage float64 `json:"sold_percentage"`
}

// Excess lists inventory items that sold less than 10% of their stock since
// the given timestamp.
func (r *Repo) Excess(ctx context.Context, since time.Time) ([]ExcessItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT
			i.inventory_name,
			i.quantity AS total_quantity,
			COALESCE(SUM(od.quantity * ing.inventory_quantity), 0) AS total_sold,
			ROUND((COALESCE(SUM(od.quantity * ing.inventory_quantity), 0) / i.quantity::numeric) * 100, 2) AS sold_percentage
		FROM inventory i
		LEFT JOIN ingredients ing ON i.inventory_name = ing.inventory_name
		LEFT JOIN order_details od ON ing.product_name = od.product_name
		LEFT JOIN orders o ON od.order_id = o.order_id
		WHERE o.time_stamp >= $1 AND o.time_stamp <= CURRENT_TIMESTAMP AT TIME ZONE $2
		GROUP BY i.inventory_name, i.quantity
		HAVING (COALESCE(SUM(od.quantity * ing.inventory_quantity), 0) / i.quantity::numeric) < 0.1
		ORDER BY sold_percentage ASC`, since, r.Timezone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExcessItem
	for rows.Next() {
		var e ExcessItem
		if err := rows.Scan(&e.InventoryName, &e.TotalQuantity, &e.TotalSold, &e.SoldPercentage); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type RestockItem struct {
	InventoryName       string  `json:"inventory_name"`
	Quantity            float64 `json:"quantity"`
	RecommendedQuantity float64 `json:"recommended_quantity"`
}

func (r *Repo) Restock(ctx context.Context) ([]RestockItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT inventory_name, quantity, recommended_quantity
		FROM inventory
		WHERE quantity < recommended_quantity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RestockItem
	for rows.Next() {
		var it RestockItem
		if err := rows.Scan(&it.InventoryName, &it.Quantity, &it.RecommendedQuantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

type PairCount struct {
	Product1 string `json:"product_1"`
	Product2 string `json:"product_2"`
	Count    int64  `json:"sold_together_count"`
}

// SoldTogether counts product pairs appearing on the same order. ascending
// controls the sort direction of the counts.
func (r *Repo) SoldTogether(ctx context.Context, start, end time.Time, ascending bool) ([]PairCount, error) {
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}
	rows, err := r.DB.Query(ctx, `
		SELECT
			od1.product_name AS product_1,
			od2.product_name AS product_2,
			COUNT(*) AS sold_together_count
		FROM order_details od1
		JOIN order_details od2 ON od1.order_id = od2.order_id
		WHERE od1.product_name < od2.product_name
		  AND EXISTS (
			SELECT 1
			FROM orders o
			WHERE o.order_id = od1.order_id
			  AND o.time_stamp BETWEEN $1 AND $2
		  )
		GROUP BY od1.product_name, od2.product_name
		ORDER BY sold_together_count `+dir, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PairCount
	for rows.Next() {
		var p PairCount
		if err := rows.Scan(&p.Product1, &p.Product2, &p.Count); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type PopularItem struct {
	MenuItem   string `json:"menu_item"`
	TotalSales int64  `json:"total_sales"`
}

func (r *Repo) Popularity(ctx context.Context, start, end time.Time, limit int) ([]PopularItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT
			od.product_name AS menu_item,
			COUNT(*) AS total_sales
		FROM order_details od
		JOIN orders o ON od.order_id = o.order_id
		WHERE o.time_stamp BETWEEN $1 AND $2
		GROUP BY od.product_name
		ORDER BY total_sales DESC
		LIMIT $3`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PopularItem
	for rows.Next() {
		var p PopularItem
		if err := rows.Scan(&p.MenuItem, &p.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Package payment implements the order payment transaction: collision-free
// order id allocation, order and line persistence, recipe-driven inventory
// depletion, and the fixed per-order consumable decrement, all inside one
// database transaction.
package payment

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

var (
	// ErrDuplicateOrderID is returned by a store when an order insert loses
	// the id race to a concurrent transaction. The processor reacts by
	// drawing a fresh id and retrying the insert.
	ErrDuplicateOrderID = errors.New("order id already taken")

	// ErrUnknownCategory aborts the whole payment transaction.
	ErrUnknownCategory = errors.New("unknown inventory category")
)

// DefaultFixedConsumables are the supply items decremented by one unit per
// order, independent of cart contents.
var DefaultFixedConsumables = []string{"bags", "napkins", "flatware", "fortune_cookies"}

// Price is a cart line price as submitted by a terminal. Terminals are not
// trusted to always send a number: the kiosk occasionally submits prices as
// strings, and combo lines may carry null. A price that does not parse is
// kept as invalid and later replaced by the order total when the line is
// persisted.
type Price struct {
	value float64
	valid bool
}

func ValidPrice(v float64) Price { return Price{value: v, valid: true} }

func InvalidPrice() Price { return Price{} }

func (p Price) Value() float64 { return p.value }

func (p Price) Valid() bool { return p.valid }

func (p *Price) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*p = Price{value: v, valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			*p = Price{}
		} else {
			*p = Price{value: f, valid: true}
		}
	default:
		*p = Price{}
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

// CartLine is one entry of a submitted cart. Name encodes the size variant
// via the usual prefix convention (e.g. "M_orange_chicken").
type CartLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    Price  `json:"price"`
}

// RecipeEntry maps one sold product to an inventory ingredient and the
// amount consumed per unit sold.
type RecipeEntry struct {
	Inventory       string
	QuantityPerUnit float64
}

// InventoryRow is the slice of an inventory record the ledger needs.
type InventoryRow struct {
	Name      string
	Category  Category
	Quantity  float64
	BatchSize float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// orderTotal sums price*quantity over the submitted lines, rounded to two
// decimals. Lines whose price did not parse contribute nothing to the sum;
// their persisted price is substituted with this total afterwards.
func orderTotal(lines []CartLine) float64 {
	var total float64
	for _, ln := range lines {
		if ln.Price.Valid() {
			total += ln.Price.Value() * float64(ln.Quantity)
		}
	}
	return round2(total)
}

// linePrice resolves the price persisted for one order line: the submitted
// price when it parsed, otherwise the order total.
func linePrice(ln CartLine, total float64) float64 {
	if ln.Price.Valid() {
		return round2(ln.Price.Value())
	}
	return total
}

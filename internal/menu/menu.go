package menu

import "errors"

var ErrNotFound = errors.New("menu item not found")

type MenuItem struct {
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
	Calories    int     `json:"calories"`
}

type BoardEntry struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

type PricedItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Sections is the menu grouped for the kiosk and menu-board screens.
// Entrees, sides and extras are listed once via their large-size row;
// drinks via their unsized row. PricedItems keeps every stored name with a
// non-zero price for the register's lookup.
type Sections struct {
	Entrees     []BoardEntry `json:"entrees"`
	Sides       []BoardEntry `json:"sides"`
	Extras      []BoardEntry `json:"extras"`
	Drinks      []BoardEntry `json:"drinks"`
	PricedItems []PricedItem `json:"priced_items"`
}

// buildSections groups menu rows by the stored naming convention: size
// variants share a base name behind a two-character prefix ("L_", "M_", ...),
// so the large row stands in for the item on the board and small/medium
// drink rows are skipped to avoid duplicates.
func buildSections(rows []MenuItem) Sections {
	s := Sections{
		Entrees:     []BoardEntry{},
		Sides:       []BoardEntry{},
		Extras:      []BoardEntry{},
		Drinks:      []BoardEntry{},
		PricedItems: []PricedItem{},
	}
	for _, it := range rows {
		if it.Price > 0 {
			s.PricedItems = append(s.PricedItems, PricedItem{Name: it.ProductName, Price: it.Price})
		}

		if hasPrefix(it.ProductName, "L_") {
			entry := BoardEntry{Name: stripPrefix(it.ProductName), Calories: it.Calories}
			switch it.Type {
			case "entree":
				s.Entrees = append(s.Entrees, entry)
			case "side":
				s.Sides = append(s.Sides, entry)
			case "appetizer":
				s.Extras = append(s.Extras, entry)
			}
		}
		if !hasPrefix(it.ProductName, "S_") && !hasPrefix(it.ProductName, "M_") && it.Type == "drink" {
			s.Drinks = append(s.Drinks, BoardEntry{Name: stripPrefix(it.ProductName), Calories: it.Calories})
		}
	}
	return s
}

func hasPrefix(name, prefix string) bool {
	return len(name) >= len(prefix) && name[:len(prefix)] == prefix
}

func stripPrefix(name string) string {
	if len(name) < 2 {
		return name
	}
	return name[2:]
}

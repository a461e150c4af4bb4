package payment

import "fmt"

// Category is the closed enumeration of inventory categories. The category
// decides the factor converting recipe-declared ingredient quantities into
// inventory storage units.
type Category string

const (
	CategoryProtein     Category = "protein"
	CategorySides       Category = "sides"
	CategoryProduce     Category = "produce"
	CategoryOther       Category = "other"
	CategorySauces      Category = "sauces"
	CategoryConsumables Category = "consumables"
	CategorySupplies    Category = "supplies"
	CategoryDrinks      Category = "drinks"
)

// conversionFactors is the full category table. Proteins, sides, produce and
// the catch-all category are recipe-declared in ounces against pound-scaled
// stock (1/16); sauces in fluid ounces against gallon-scaled stock (1/128);
// count-based categories are 1:1.
var conversionFactors = map[Category]float64{
	CategoryProtein:     0.0625,
	CategorySides:       0.0625,
	CategoryProduce:     0.0625,
	CategoryOther:       0.0625,
	CategorySauces:      0.0078125,
	CategoryConsumables: 1.0,
	CategorySupplies:    1.0,
	CategoryDrinks:      1.0,
}

// ConversionFactor returns the unit multiplier for a category.
// A category outside the table is unrecoverable for the enclosing
// transaction.
func ConversionFactor(c Category) (float64, error) {
	f, ok := conversionFactors[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return f, nil
}

// ConsumedUnits converts a recipe quantity into inventory units for a sold
// line: quantity-per-unit x category factor x units sold.
func ConsumedUnits(c Category, quantityPerUnit float64, sold int) (float64, error) {
	f, err := ConversionFactor(c)
	if err != nil {
		return 0, err
	}
	return quantityPerUnit * f * float64(sold), nil
}

package orders

import "strings"

// sizePrefixes maps the size-class prefix of a stored product name to its
// customer-facing word. Product names are stored as
// "<size>_<base>_<item...>", e.g. "M_orange_chicken".
var sizePrefixes = map[string]string{
	"M": "Medium",
	"N": "Normal",
	"K": "Kid",
	"F": "Family",
	"L": "Large",
	"S": "Small",
}

// DisplayName turns a stored product name into its customer-facing form:
// the size prefix is expanded and underscores become spaces.
// "M_orange_chicken" -> "Medium orange chicken". Names without a recognized
// prefix only get the underscore substitution.
func DisplayName(product string) string {
	parts := strings.Split(product, "_")
	if len(parts) == 0 {
		return product
	}
	if full, ok := sizePrefixes[parts[0]]; ok {
		parts[0] = full
	}
	return strings.Join(parts, " ")
}

// Package pricing owns the authoritative order pricing rules: the canonical
// size table, per-variant price resolution, the flat delivery fee and its
// waiver conditions, and promo code validation.
package pricing

import "strings"

// Size is one canonical variant label with its unit price. The table is the
// fallback when a product has no row in the variant collection.
type Size struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

var canonicalSizes = []Size{
	{Label: "10g", Price: 140},
	{Label: "25g", Price: 350},
	{Label: "50g", Price: 700},
	{Label: "100g", Price: 1400},
}

// CanonicalSizes returns a copy of the fallback size table.
func CanonicalSizes() []Size {
	out := make([]Size, len(canonicalSizes))
	copy(out, canonicalSizes)
	return out
}

// canonicalPrice resolves a size label against the canonical table. An
// unrecognized label falls back to the first entry rather than failing the
// whole order.
func canonicalPrice(label string) float64 {
	for _, s := range canonicalSizes {
		if strings.EqualFold(s.Label, strings.TrimSpace(label)) {
			return s.Price
		}
	}
	return canonicalSizes[0].Price
}

// ParseSizeGrams extracts the numeric gram value from a size label by
// stripping every non-digit character. A label with no digits yields 0.
func ParseSizeGrams(label string) int {
	grams := 0
	seen := false
	for _, r := range label {
		if r < '0' || r > '9' {
			continue
		}
		grams = grams*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return grams
}

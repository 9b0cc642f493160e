package pricing

import "spiceshop/internal/models"

// BulkWaiverGrams is the minimum parsed variant size that qualifies an
// order for the free-delivery-on-bulk waiver.
const BulkWaiverGrams = 50

// DeliveryFee computes the flat per-order shipping charge. The fee is zero
// when a validated promo is applied, or when the customer requested the
// bulk waiver and at least one line's size parses to BulkWaiverGrams grams
// or more. Pure function; items carry server-resolved sizes.
func DeliveryFee(items []models.OrderItem, freeDeliveryRequested, promoApplied bool, flatFee float64) float64 {
	if promoApplied {
		return 0
	}
	if freeDeliveryRequested {
		for _, item := range items {
			if ParseSizeGrams(item.Size) >= BulkWaiverGrams {
				return 0
			}
		}
	}
	return flatFee
}

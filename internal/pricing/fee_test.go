package pricing

import (
	"testing"

	"spiceshop/internal/models"
)

const testFlatFee = 100

func lines(sizes ...string) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(sizes))
	for _, s := range sizes {
		items = append(items, models.OrderItem{Size: s, Quantity: 1})
	}
	return items
}

func TestDeliveryFeeChargedByDefault(t *testing.T) {
	if got := DeliveryFee(lines("25g"), false, false, testFlatFee); got != testFlatFee {
		t.Fatalf("expected flat fee %v, got %v", float64(testFlatFee), got)
	}
}

func TestDeliveryFeeWaivedByPromo(t *testing.T) {
	if got := DeliveryFee(lines("10g"), false, true, testFlatFee); got != 0 {
		t.Fatalf("expected 0 fee with promo applied, got %v", got)
	}
}

func TestDeliveryFeeBulkWaiverNeedsFlagAndSize(t *testing.T) {
	// 50g qualifies only when the customer requested the waiver
	if got := DeliveryFee(lines("50g"), true, false, testFlatFee); got != 0 {
		t.Fatalf("expected 0 fee for requested 50g waiver, got %v", got)
	}
	if got := DeliveryFee(lines("50g"), false, false, testFlatFee); got != testFlatFee {
		t.Fatalf("expected flat fee without the flag, got %v", got)
	}
	if got := DeliveryFee(lines("25g"), true, false, testFlatFee); got != testFlatFee {
		t.Fatalf("expected flat fee for 25g, got %v", got)
	}
}

func TestDeliveryFeeUnparseableSizeNeverQualifies(t *testing.T) {
	if got := DeliveryFee(lines("bulk"), true, false, testFlatFee); got != testFlatFee {
		t.Fatalf("expected flat fee for label without digits, got %v", got)
	}
}

func TestDeliveryFeeSingleQualifyingLineIsEnough(t *testing.T) {
	if got := DeliveryFee(lines("10g", "25g", "100g"), true, false, testFlatFee); got != 0 {
		t.Fatalf("expected 0 fee when any line qualifies, got %v", got)
	}
}

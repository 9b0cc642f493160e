package pricing

import "testing"

func TestParseSizeGrams(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"10g", 10},
		{"25g", 25},
		{"50g", 50},
		{"100g", 100},
		{"50 g", 50},
		{"bulk", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseSizeGrams(tt.label); got != tt.want {
			t.Fatalf("ParseSizeGrams(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestCanonicalPriceKnownLabels(t *testing.T) {
	if got := canonicalPrice("10g"); got != 140 {
		t.Fatalf("expected 140 for 10g, got %v", got)
	}
	if got := canonicalPrice("100g"); got != 1400 {
		t.Fatalf("expected 1400 for 100g, got %v", got)
	}
}

func TestCanonicalPriceUnknownLabelFallsBackToFirstEntry(t *testing.T) {
	if got := canonicalPrice("5kg"); got != 140 {
		t.Fatalf("expected first-entry fallback 140, got %v", got)
	}
}

package pricing

import "testing"

func TestPromoValidatorCaseInsensitive(t *testing.T) {
	v := PromoValidator{Code: "FREEDELIVERY"}
	for _, code := range []string{"FREEDELIVERY", "freedelivery", "FreeDelivery", "  freedelivery  "} {
		valid, err := v.Validate(code)
		if err != nil {
			t.Fatalf("Validate(%q) returned error: %v", code, err)
		}
		if !valid {
			t.Fatalf("expected %q to be valid", code)
		}
	}
}

func TestPromoValidatorWrongCodeIsNotAnError(t *testing.T) {
	v := PromoValidator{Code: "FREEDELIVERY"}
	valid, err := v.Validate("HALFOFF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Fatal("expected wrong code to be invalid")
	}
}

func TestPromoValidatorMissingConfiguration(t *testing.T) {
	v := PromoValidator{}
	if _, err := v.Validate("FREEDELIVERY"); err != ErrPromoNotConfigured {
		t.Fatalf("expected ErrPromoNotConfigured, got %v", err)
	}
}

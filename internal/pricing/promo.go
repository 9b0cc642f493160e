package pricing

import (
	"errors"
	"strings"
)

// ErrPromoNotConfigured signals an operational misconfiguration: the
// comparison code is absent from the environment. It is logged loudly and
// never shown verbatim to shoppers.
var ErrPromoNotConfigured = errors.New("promo code is not configured")

// PromoValidator checks a submitted code against the single configured
// promo code. A wrong code is a normal negative result, not an error.
type PromoValidator struct {
	Code string
}

func (v PromoValidator) Validate(code string) (bool, error) {
	configured := strings.TrimSpace(v.Code)
	if configured == "" {
		return false, ErrPromoNotConfigured
	}
	return strings.EqualFold(strings.TrimSpace(code), configured), nil
}

// Package pricing computes the customer-facing sell price from a provider
// base cost and the reseller markup policy.
package pricing

import (
	"math"

	"github.com/Empire688682/chipsub-mobile/src/internal/errs"
)

type PolicyKind string

const (
	PolicyPercentage PolicyKind = "percentage"
	PolicyFlat       PolicyKind = "flat"
)

// Policy converts a provider base cost into the price charged to the user.
type Policy struct {
	Kind  PolicyKind
	Value float64
}

// ResolveSellPrice applies the markup policy to baseCost and rounds the
// result to the nearest multiple of 10 (a remainder of 5 or more rounds
// up). It must be re-invoked whenever the catalog or policy changes.
func ResolveSellPrice(baseCost float64, policy Policy) (float64, error) {
	if baseCost <= 0 {
		return 0, errs.ErrInvalidBaseCost
	}

	var sell float64
	switch policy.Kind {
	case PolicyFlat:
		sell = baseCost + policy.Value
	default:
		sell = baseCost * (1 + policy.Value/100)
	}

	return roundToNearestTen(sell), nil
}

func roundToNearestTen(n float64) float64 {
	remainder := math.Mod(n, 10)
	if remainder >= 5 {
		return n + (10 - remainder)
	}
	return n - remainder
}

package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Empire688682/chipsub-mobile/src/internal/errs"
)

func TestResolveSellPricePercentage(t *testing.T) {
	got, err := ResolveSellPrice(500, Policy{Kind: PolicyPercentage, Value: 3.5})
	require.NoError(t, err)
	// 500 * 1.035 = 517.5, remainder 7.5 rounds up
	assert.InDelta(t, 520, got, 1e-6)
}

func TestResolveSellPriceFlat(t *testing.T) {
	got, err := ResolveSellPrice(450, Policy{Kind: PolicyFlat, Value: 30})
	require.NoError(t, err)
	assert.InDelta(t, 480, got, 1e-6)
}

func TestRoundingBoundary(t *testing.T) {
	// remainder of exactly 5 rounds up
	up, err := ResolveSellPrice(980, Policy{Kind: PolicyFlat, Value: 5})
	require.NoError(t, err)
	assert.InDelta(t, 990, up, 1e-6)

	// remainder of 4 rounds down
	down, err := ResolveSellPrice(980, Policy{Kind: PolicyFlat, Value: 4})
	require.NoError(t, err)
	assert.InDelta(t, 980, down, 1e-6)
}

func TestSellPriceIsMultipleOfTenNearRawMarkup(t *testing.T) {
	bases := []float64{50, 99, 123, 500, 775, 980, 1234.5, 9999}
	values := []float64{0, 1.5, 3.5, 7, 10, 25}

	for _, base := range bases {
		for _, v := range values {
			got, err := ResolveSellPrice(base, Policy{Kind: PolicyPercentage, Value: v})
			require.NoError(t, err)

			remainder := math.Mod(got, 10)
			if remainder > 5 {
				remainder = 10 - remainder
			}
			assert.InDelta(t, 0, remainder, 1e-6, "base=%v value=%v got=%v", base, v, got)

			raw := base * (1 + v/100)
			assert.Less(t, math.Abs(got-raw), 10.0, "base=%v value=%v", base, v)
		}
	}
}

func TestInvalidBaseCost(t *testing.T) {
	for _, base := range []float64{0, -1, -500} {
		for _, policy := range []Policy{
			{Kind: PolicyPercentage, Value: 3.5},
			{Kind: PolicyFlat, Value: 100},
		} {
			_, err := ResolveSellPrice(base, policy)
			assert.ErrorIs(t, err, errs.ErrInvalidBaseCost)
		}
	}
}

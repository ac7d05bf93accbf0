package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MinorUnitScale is the number of decimal places carried by Money values.
const MinorUnitScale = 2

// Money is an amount in integer minor units (cents). All arithmetic stays in
// minor units; decimal conversion happens only at the transport and storage
// boundaries, so sums reconcile without any epsilon comparison.
type Money int64

// MoneyFromDecimal converts a decimal amount to minor units. Amounts with
// sub-minor-unit precision are rejected rather than rounded.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	units := d.Shift(MinorUnitScale)
	if !units.IsInteger() {
		return 0, fmt.Errorf("%w: %s carries more than %d decimal places", ErrInvalidAmount, d, MinorUnitScale)
	}
	if !units.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s does not fit in minor units", ErrInvalidAmount, d)
	}
	return Money(units.IntPart()), nil
}

// Decimal returns the amount scaled back to major units for display.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MinorUnitScale)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(MinorUnitScale)
}

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Sub(o Money) Money { return m - o }

func (m Money) IsZero() bool { return m == 0 }

func (m Money) IsNegative() bool { return m < 0 }

// Cmp returns -1, 0 or 1 as m is less than, equal to or greater than o.
func (m Money) Cmp(o Money) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

// Distribute splits the amount into len(weights) shares proportional to the
// weights, summing exactly to the original amount. Integer division leaves a
// remainder r of minor units; those go one each to the first r weighted
// shares in input order, so identical input always reconciles identically
// and no share drifts by more than one minor unit from its exact portion.
func (m Money) Distribute(weights []int64) ([]Money, error) {
	if m < 0 {
		return nil, fmt.Errorf("%w: cannot distribute negative amount %s", ErrInvalidAmount, m)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no shares to distribute across", ErrInvalidAmount)
	}

	var total, maxWeight int64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %d", ErrInvalidAmount, w)
		}
		if total > math.MaxInt64-w {
			return nil, fmt.Errorf("%w: weights sum overflows", ErrInvalidAmount)
		}
		total += w
		if w > maxWeight {
			maxWeight = w
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidAmount)
	}
	// The per-share product m*w must stay within int64.
	if maxWeight > 0 && int64(m) > math.MaxInt64/maxWeight {
		return nil, fmt.Errorf("%w: amount %s with weight %d overflows", ErrInvalidAmount, m, maxWeight)
	}

	shares := make([]Money, len(weights))

	var assigned int64
	for i, w := range weights {
		share := int64(m) * w / total
		shares[i] = Money(share)
		assigned += share
	}

	remainder := int64(m) - assigned
	for i := 0; remainder > 0 && i < len(weights); i++ {
		if weights[i] == 0 {
			continue
		}
		shares[i]++
		remainder--
	}

	return shares, nil
}

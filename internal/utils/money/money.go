package money

import "github.com/shopspring/decimal"

// The core applies one canonical tolerance policy instead of the per-call-site
// slacks the ad-hoc clients used. ReconciliationTolerance covers every
// server-side monetary comparison; TenderSplitTolerance applies only to
// client-entered cash/online splits at reading-entry time, where UI rounding
// is coarser.
var (
	ReconciliationTolerance = decimal.NewFromFloat(0.01)
	TenderSplitTolerance    = decimal.NewFromFloat(0.50)
)

// WithinTolerance reports whether a and b differ by at most tol.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum adds a slice of decimals.
func Sum(ds []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

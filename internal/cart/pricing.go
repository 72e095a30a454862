package cart

import "math"

// Totals carries the priced view of a cart. Amounts keep full float precision;
// rounding happens only at presentation time to avoid compounding error across
// many lines.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals prices the cart at the given tax rate. An empty cart yields
// all-zero totals, which is valid here; save and submit paths reject it.
func ComputeTotals(c Cart, taxRate float64) Totals {
	var subtotal float64
	for _, line := range c.Lines {
		subtotal += line.Subtotal()
	}
	tax := subtotal * taxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Rounded returns the totals rounded to 2 decimals for presentation.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: Round2(t.Subtotal),
		Tax:      Round2(t.Tax),
		Total:    Round2(t.Total),
	}
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

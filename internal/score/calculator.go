package score

import (
	"tally/internal/receipt"
)

// Calculator computes the total points for a receipt by running a fixed list
// of independent rules and summing their contributions. The calculation is a
// pure function of the receipt: no state is kept between calls, so the same
// receipt always yields the same total and concurrent use needs no locking.
type Calculator struct {
	// rules — the scoring rules, applied in declaration order. Each is
	// purely additive, so the order has no effect on the total.
	rules []Rule
}

// Total runs every rule against the receipt and returns the summed points.
// The first rule that reports a malformed field aborts the calculation and
// its error is returned unchanged; no partial total is produced.
func (c *Calculator) Total(r receipt.Receipt) (int, error) {
	total := 0
	for _, rule := range c.rules {
		points, err := rule(r)
		if err != nil {
			return 0, err
		}
		total += points
	}
	return total, nil
}

// NewCalculator creates a calculator with the full receipt rule set:
// retailer name, purchase day, purchase hour, quarter-multiple total,
// round-dollar total, item pairs, and item descriptions.
func NewCalculator() *Calculator {
	return &Calculator{
		rules: []Rule{
			retailerNamePoints,
			purchaseDayPoints,
			purchaseHourPoints,
			quarterMultiplePoints,
			roundDollarPoints,
			itemPairPoints,
			itemDescriptionPoints,
		},
	}
}

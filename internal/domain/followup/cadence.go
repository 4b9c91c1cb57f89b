package followup

import "time"

// Cadence is the ordered list of day offsets, all anchored at the client's
// first purchase date. Offsets 7,14 mean: first message 7 days after the
// purchase, second one 14 days after it.
type Cadence []int

// Due returns the due timestamp for the given step (0-based), or false when
// the cadence is exhausted.
func (c Cadence) Due(firstPurchase time.Time, step int) (time.Time, bool) {
	if step < 0 || step >= len(c) {
		return time.Time{}, false
	}
	return firstPurchase.AddDate(0, 0, c[step]), true
}

func (c Cadence) Len() int {
	return len(c)
}

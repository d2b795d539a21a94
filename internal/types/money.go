package types

import "strconv"

// Money is an amount in whole currency units.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func INR(amount int64) Money {
	return Money{Amount: amount, Currency: "INR"}
}

// Display renders the amount with the rupee glyph and Indian digit grouping
// (last three digits, then groups of two: ₹1,23,456). Display strings are for
// humans only and are not parseable back into an amount.
func (m Money) Display() string {
	neg := m.Amount < 0
	v := m.Amount
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)

	var grouped string
	if len(digits) <= 3 {
		grouped = digits
	} else {
		grouped = digits[len(digits)-3:]
		rest := digits[:len(digits)-3]
		for len(rest) > 2 {
			grouped = rest[len(rest)-2:] + "," + grouped
			rest = rest[:len(rest)-2]
		}
		grouped = rest + "," + grouped
	}

	if neg {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

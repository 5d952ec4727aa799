package usecase

import (
	"strconv"
	"strings"
)

// CoerceNumber converts raw field input to a number. Anything that does
// not parse (including empty input) degrades to 0 instead of rejecting
// the edit. Negative values are floored at 0: quantities and prices are
// never negative.
func CoerceNumber(raw string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

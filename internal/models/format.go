package models

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatFixed rounds half away from zero at the given number of decimal places.
// Non-finite values are rendered as +Inf, -Inf or NaN.
func FormatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

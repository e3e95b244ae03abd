package shared

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses a numeric form field before any network call is made.
// The field name is folded into the error so it can be shown inline as-is.
// Negative values are fine; NaN/Inf are not.
func ParseFloat(value, field string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("please enter a valid %s", field)
	}
	return f, nil
}

// ParsePositiveFloat is ParseFloat with a strictly-positive requirement,
// used for rate fields.
func ParsePositiveFloat(value, field string) (float64, error) {
	f, err := ParseFloat(value, field)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("please enter a valid %s greater than 0", field)
	}
	return f, nil
}

package numberutils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNotFinite = errors.New("value is not a finite number")

// ToFiniteFloat64 parses str (surrounding whitespace ignored) and rejects NaN and ±Inf.
func ToFiniteFloat64(str string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return f, nil
}

// RoundHalfAwayFromZero rounds f to the nearest integer, halves away from zero.
func RoundHalfAwayFromZero(f float64) int {
	return int(math.Round(f))
}

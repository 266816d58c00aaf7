package calc

import (
	"math"
	"strconv"
	"strings"
)

// FormatResult renders a result for display. Finite values with no fractional
// part are written as integers, so 4.0 becomes "4". Other values use the
// shortest decimal that parses to the same float64, in exponent form when the
// magnitude is below 1e-4. Infinities and NaN are "inf", "-inf", and "nan".
func FormatResult(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	case x == 0:
		// Includes negative zero.
		return "0"
	case x == math.Trunc(x):
		return strconv.FormatFloat(x, 'f', 0, 64)
	}
	s := strconv.FormatFloat(x, 'e', -1, 64)
	exp, _ := strconv.Atoi(s[strings.LastIndexByte(s, 'e')+1:])
	if exp < -4 {
		return s
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

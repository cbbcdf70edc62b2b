package keypad

import (
	"math"
	"strconv"
	"strings"
)

// FormatResult renders a computed value for the operand field. Whole numbers
// carry no fractional part; exponent notation is used only for magnitudes
// outside [1e-4, 1e16).
func FormatResult(v float64) string {
	if v == 0 {
		return "0" // also folds -0
	}

	abs := math.Abs(v)
	if abs >= 1e16 || abs < 1e-4 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseOperand(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func isPlainDecimal(text string) bool {
	return !strings.ContainsAny(text, "eE")
}

package utils

import (
	"math"
	"strconv"
)

// RoundWithTwoDecimalPlace arredonda o valor binário exato para duas casas,
// com empate para o par. Valores não finitos são devolvidos sem alteração.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return f
	}

	return rounded
}

// IsFinite informa se todos os valores são números finitos
func IsFinite(values []float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

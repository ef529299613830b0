package utils

import "github.com/shopspring/decimal"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// Ratio devolve num/den, ou nil quando o denominador não é positivo
func Ratio(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := num / den
	return &v
}

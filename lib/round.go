package lib

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	fixedPrecision uint = 256
	// これ以上の絶対値は固定小数表記にしない。
	fixedLimit float64 = 1e21
)

var half = big.NewFloat(0.5)

// xを小数digits桁の固定小数表記にした上で数値に戻す。
// 非有限値はそのまま返す。
func Round(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= fixedLimit {
		return x
	}

	f, err := strconv.ParseFloat(FormatFixed(x, digits), 64)
	if err != nil {
		return x
	}
	return f
}

// xを小数digits桁の固定小数表記の文字列にする。
//
// 丸めはxの2進数としての厳密な値に対して行い、ちょうど中間の場合は絶対値の大きい方を選ぶ。
// 非有限値は "NaN" "Infinity" "-Infinity" となる。
func FormatFixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.Abs(x) >= fixedLimit:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	if digits < 0 {
		digits = 0
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	scaled := new(big.Float).SetPrec(fixedPrecision).SetFloat64(x)
	for i := 0; i < digits; i++ {
		scaled.Mul(scaled, big.NewFloat(10))
	}

	n, _ := scaled.Int(nil)
	fraction := new(big.Float).SetPrec(fixedPrecision).Sub(scaled, new(big.Float).SetPrec(fixedPrecision).SetInt(n))
	if fraction.Cmp(half) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	s := n.String()
	if digits == 0 {
		return sign + s
	}
	if len(s) <= digits {
		s = strings.Repeat("0", digits-len(s)+1) + s
	}

	return sign + s[:len(s)-digits] + "." + s[len(s)-digits:]
}

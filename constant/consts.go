package constant

import (
	"time"
)

// Language 言語。
type Language string

const (
	LanguageJa Language = "ja" // 日本語。
	LanguageEn Language = "en" // 英語。
)

// VO2推定式の係数。
const (
	VO2Intercept            float64 = 138.1
	VO2AgeCoefficient       float64 = 11.49
	VO2HeartRateCoefficient float64 = 0.378
)

// 酸素含量の係数。
const (
	// HemoglobinBindingCapacity ヘモグロビン1gあたりの結合酸素量(mL)。
	HemoglobinBindingCapacity float64 = 1.36
	// DissolvedOxygenCoefficient 溶存酸素の係数(mL/dL/mmHg)。
	DissolvedOxygenCoefficient float64 = 0.0031
)

// 表示時の小数桁数。
const (
	ContentDigits       int = 2
	VO2Digits           int = 2
	CardiacOutputDigits int = 2
	FlowDigits          int = 2
	RatioDigits         int = 2
	GradientDigits      int = 1
	ResistanceDigits    int = 2
)

// 計算結果キャッシュ。
const (
	CalculationCacheExpiration time.Duration = time.Duration(10) * time.Minute
	CalculationCacheCleanup    time.Duration = time.Duration(15) * time.Minute
)

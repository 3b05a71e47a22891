package model

import (
	"time"
)

// 計算の入力となる臨床測定値。入力のたびに作り直され、計算中に変更されることはない。
type ClinicalInputs struct {
	Age             float64 `json:"age"`             // 年齢(歳)。
	HeartRate       float64 `json:"heartRate"`       // 心拍数(bpm)。
	ManualVO2       float64 `json:"manualVO2"`       // 手入力のVO2(mL/min/m²)。
	Hemoglobin      float64 `json:"hemoglobin"`      // ヘモグロビン(g/dL)。
	ArterialSat     float64 `json:"arterialSat"`     // 動脈血酸素飽和度(%)。
	VenousSat       float64 `json:"venousSat"`       // 混合静脈血酸素飽和度(%)。
	PulmArterySat   float64 `json:"pulmArterySat"`   // 肺動脈血酸素飽和度(%)。
	PulmVeinSat     float64 `json:"pulmVeinSat"`     // 肺静脈血酸素飽和度(%)。
	ArterialPO2mmHg float64 `json:"arterialPO2mmHg"` // 動脈血酸素分圧(mmHg)。
	PulmVeinPO2mmHg float64 `json:"pulmVeinPO2mmHg"` // 肺静脈血酸素分圧(mmHg)。
	MeanPAP         float64 `json:"meanPAP"`         // 平均肺動脈圧(mmHg)。
	PCWP            float64 `json:"pcwp"`            // 肺動脈楔入圧(mmHg)。
	BSA             float64 `json:"bsa"`             // 体表面積(m²)。現在の計算式では利用しない。
}

// 計算モード。
type ModeFlags struct {
	IncludeDissolved bool `json:"includeDissolved"` // 酸素含量に溶存酸素を含める。
	UseManualVO2     bool `json:"useManualVO2"`     // VO2に手入力値を用いる。
}

// 各部位の酸素含量(mL/dL)。
type OxygenContents struct {
	Arterial        float64
	Venous          float64
	PulmonaryArtery float64
	PulmonaryVein   float64
}

// 計算結果。
type DerivedResults struct {
	VO2                    float64
	CardiacOutput          float64
	PulmonaryFlow          float64 // Qp
	SystemicFlow           float64 // Qs
	QpQsRatio              float64
	TransPulmonaryGradient float64
	PVRIndex               float64
	Contents               OxygenContents
}

// 一回の計算記録。
type Calculation struct {
	Id         string
	Inputs     ClinicalInputs
	Flags      ModeFlags
	Results    DerivedResults
	ComputedAt time.Time
	Cached     bool
}

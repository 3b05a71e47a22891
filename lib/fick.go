package lib

import (
	"math"

	C "github.com/spiker/fick-server/constant"
	"github.com/spiker/fick-server/model"
)

// 年齢と心拍数からVO2(mL/min/m²)を推定する。
//
// 年齢0では対数が-Infとなり結果は+Inf、負の年齢ではNaNになる。いずれも補正しない。
func CalculateVO2(age float64, heartRate float64) float64 {
	vo2 := C.VO2Intercept - float64(C.VO2AgeCoefficient*math.Log(age)) + float64(C.VO2HeartRateCoefficient*heartRate)
	return Round(vo2, C.VO2Digits)
}

// ヘモグロビン、酸素飽和度、酸素分圧から酸素含量(mL/dL)を計算する。
//
// includeDissolvedがfalseの場合、partialPressureは参照されない。
func CalculateO2Content(hemoglobin float64, saturation float64, partialPressure float64, includeDissolved bool) float64 {
	bound := float64(float64(C.HemoglobinBindingCapacity*hemoglobin) * (saturation / 100))

	dissolved := 0.0
	if includeDissolved {
		dissolved = float64(C.DissolvedOxygenCoefficient * partialPressure)
	}

	return Round(bound+dissolved, C.ContentDigits)
}

// 入力からFick法による各指標を計算する。
//
// 副作用はなく、同じ入力に対して常に同じ結果を返す。
// 0除算となる差分は1で置き換えるが、それ以外の非有限値はそのまま結果に現れる。
func Compute(inputs model.ClinicalInputs, flags model.ModeFlags) model.DerivedResults {
	var vo2 float64
	if flags.UseManualVO2 {
		vo2 = inputs.ManualVO2
	} else {
		vo2 = CalculateVO2(inputs.Age, inputs.HeartRate)
	}

	// 静脈と肺動脈の溶存酸素にも動脈血酸素分圧を用いる。
	contents := model.OxygenContents{
		Arterial:        CalculateO2Content(inputs.Hemoglobin, inputs.ArterialSat, inputs.ArterialPO2mmHg, flags.IncludeDissolved),
		Venous:          CalculateO2Content(inputs.Hemoglobin, inputs.VenousSat, inputs.ArterialPO2mmHg, flags.IncludeDissolved),
		PulmonaryVein:   CalculateO2Content(inputs.Hemoglobin, inputs.PulmVeinSat, inputs.PulmVeinPO2mmHg, flags.IncludeDissolved),
		PulmonaryArtery: CalculateO2Content(inputs.Hemoglobin, inputs.PulmArterySat, inputs.ArterialPO2mmHg, flags.IncludeDissolved),
	}

	arteriovenous := divisor(contents.Arterial - contents.Venous)
	pulmonary := divisor(contents.PulmonaryVein - contents.PulmonaryArtery)

	cardiacOutput := vo2 / arteriovenous
	qp := vo2 / pulmonary
	// QsはCOと同一の式。
	qs := vo2 / arteriovenous

	ratio := 0.0
	if qs != 0 {
		ratio = qp / qs
	}

	tpg := inputs.MeanPAP - inputs.PCWP

	return model.DerivedResults{
		VO2:                    vo2,
		CardiacOutput:          cardiacOutput,
		PulmonaryFlow:          qp,
		SystemicFlow:           qs,
		QpQsRatio:              ratio,
		TransPulmonaryGradient: tpg,
		PVRIndex:               tpg / divisor(qp),
		Contents:               contents,
	}
}

// 除数が0(またはNaN)の場合は1を返す。
func divisor(value float64) float64 {
	if value == 0 || math.IsNaN(value) {
		return 1
	}
	return value
}

package lib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spiker/fick-server/model"
)

// 40歳、心拍70、Hb14、SaO2 98、SvO2 70、PA 75、PV 98。
func scenarioInputs() model.ClinicalInputs {
	return model.ClinicalInputs{
		Age:           40,
		HeartRate:     70,
		Hemoglobin:    14,
		ArterialSat:   98,
		VenousSat:     70,
		PulmArterySat: 75,
		PulmVeinSat:   98,
		MeanPAP:       25,
		PCWP:          10,
	}
}

func TestFick_CalculateVO2(t *testing.T) {
	assert.EqualValues(t, 122.17, CalculateVO2(40, 70))

	for _, age := range []float64{1, 18, 40, 65.5, 90} {
		for _, hr := range []float64{0, 60, 72, 180} {
			expected := Round(138.1-float64(11.49*math.Log(age))+float64(0.378*hr), 2)
			assert.Equal(t, expected, CalculateVO2(age, hr), "age=%v hr=%v", age, hr)
		}
	}

	// 年齢0は補正しない。
	assert.True(t, math.IsInf(CalculateVO2(0, 70), 1))
	assert.True(t, math.IsNaN(CalculateVO2(-1, 70)))
}

func TestFick_CalculateO2Content(t *testing.T) {
	assert.EqualValues(t, 18.66, CalculateO2Content(14, 98, 0, false))
	assert.EqualValues(t, 13.33, CalculateO2Content(14, 70, 0, false))
	assert.EqualValues(t, 14.28, CalculateO2Content(14, 75, 0, false))

	// 1.36*14*0.98 + 0.0031*95 = 18.9537
	assert.EqualValues(t, 18.95, CalculateO2Content(14, 98, 95, true))

	// 溶存酸素を含めない場合、分圧の値は結果に影響しない。
	for _, pressure := range []float64{0, 95, -40, 1e300, math.Inf(1), math.NaN()} {
		assert.Equal(t, CalculateO2Content(14, 98, 0, false), CalculateO2Content(14, 98, pressure, false))
	}

	assert.EqualValues(t, 0, CalculateO2Content(0, 0, 0, false))
	assert.EqualValues(t, 0, CalculateO2Content(0, 0, 0, true))
}

func TestFick_Compute(t *testing.T) {
	t.Run("推定VO2", func(t *testing.T) {
		r := Compute(scenarioInputs(), model.ModeFlags{})

		vo2 := 122.17
		ca, cv, cpa, cpv := 18.66, 13.33, 14.28, 18.66

		assert.EqualValues(t, vo2, r.VO2)
		assert.EqualValues(t, model.OxygenContents{
			Arterial:        ca,
			Venous:          cv,
			PulmonaryArtery: cpa,
			PulmonaryVein:   cpv,
		}, r.Contents)

		assert.Equal(t, vo2/(ca-cv), r.CardiacOutput)
		assert.Equal(t, vo2/(cpv-cpa), r.PulmonaryFlow)
		assert.Equal(t, r.CardiacOutput, r.SystemicFlow)
		assert.Equal(t, r.PulmonaryFlow/r.SystemicFlow, r.QpQsRatio)
		assert.EqualValues(t, 15, r.TransPulmonaryGradient)
		assert.Equal(t, 15/r.PulmonaryFlow, r.PVRIndex)

		assert.Equal(t, "22.92", FormatFixed(r.CardiacOutput, 2))
		assert.Equal(t, "27.89", FormatFixed(r.PulmonaryFlow, 2))
		assert.Equal(t, "1.22", FormatFixed(r.QpQsRatio, 2))
		assert.Equal(t, "15.0", FormatFixed(r.TransPulmonaryGradient, 1))
		assert.Equal(t, "0.54", FormatFixed(r.PVRIndex, 2))
	})

	t.Run("手入力VO2", func(t *testing.T) {
		inputs := scenarioInputs()
		inputs.ManualVO2 = 250

		estimated := Compute(inputs, model.ModeFlags{})
		r := Compute(inputs, model.ModeFlags{UseManualVO2: true})

		assert.EqualValues(t, 250, r.VO2)
		assert.Equal(t, estimated.Contents, r.Contents)

		ca, cv, cpa, cpv := 18.66, 13.33, 14.28, 18.66
		assert.Equal(t, 250/(ca-cv), r.CardiacOutput)
		assert.Equal(t, 250/(cpv-cpa), r.PulmonaryFlow)
		assert.InDelta(t, 250/122.17, r.CardiacOutput/estimated.CardiacOutput, 1e-12)
		assert.InDelta(t, 250/122.17, r.PulmonaryFlow/estimated.PulmonaryFlow, 1e-12)

		// 手入力の場合、年齢と心拍数は参照しない。
		inputs.Age = 0
		inputs.HeartRate = -10
		assert.Equal(t, r, Compute(inputs, model.ModeFlags{UseManualVO2: true}))
	})

	t.Run("手入力VO2は丸めない", func(t *testing.T) {
		r := Compute(model.ClinicalInputs{ManualVO2: 123.456789}, model.ModeFlags{UseManualVO2: true})
		assert.EqualValues(t, 123.456789, r.VO2)
	})

	t.Run("溶存酸素", func(t *testing.T) {
		inputs := scenarioInputs()
		inputs.ArterialPO2mmHg = 95
		inputs.PulmVeinPO2mmHg = 100

		r := Compute(inputs, model.ModeFlags{IncludeDissolved: true})

		// 静脈、肺動脈は動脈血酸素分圧を用いる。
		assert.EqualValues(t, CalculateO2Content(14, 98, 95, true), r.Contents.Arterial)
		assert.EqualValues(t, CalculateO2Content(14, 70, 95, true), r.Contents.Venous)
		assert.EqualValues(t, CalculateO2Content(14, 75, 95, true), r.Contents.PulmonaryArtery)
		assert.EqualValues(t, CalculateO2Content(14, 98, 100, true), r.Contents.PulmonaryVein)

		// 含めない場合は分圧によらず同じ結果。
		assert.Equal(t, Compute(scenarioInputs(), model.ModeFlags{}), Compute(inputs, model.ModeFlags{}))
	})

	t.Run("全て0", func(t *testing.T) {
		r := Compute(model.ClinicalInputs{}, model.ModeFlags{})

		assert.True(t, math.IsInf(r.VO2, 1))
		assert.EqualValues(t, model.OxygenContents{}, r.Contents)
		// 除数は1に置き換わる。
		assert.True(t, math.IsInf(r.CardiacOutput, 1))
		assert.True(t, math.IsInf(r.PulmonaryFlow, 1))
		assert.True(t, math.IsInf(r.SystemicFlow, 1))
		assert.True(t, math.IsNaN(r.QpQsRatio))
		assert.EqualValues(t, 0, r.TransPulmonaryGradient)
		assert.EqualValues(t, 0, r.PVRIndex)

		m := Compute(model.ClinicalInputs{}, model.ModeFlags{UseManualVO2: true})

		assert.EqualValues(t, 0, m.VO2)
		assert.EqualValues(t, 0, m.CardiacOutput)
		assert.EqualValues(t, 0, m.PulmonaryFlow)
		assert.EqualValues(t, 0, m.SystemicFlow)
		assert.EqualValues(t, 0, m.QpQsRatio)
		assert.EqualValues(t, 0, m.PVRIndex)
	})

	t.Run("動静脈差が0", func(t *testing.T) {
		inputs := scenarioInputs()
		inputs.VenousSat = inputs.ArterialSat
		inputs.PulmArterySat = inputs.PulmVeinSat

		r := Compute(inputs, model.ModeFlags{})

		assert.Equal(t, r.VO2, r.CardiacOutput)
		assert.Equal(t, r.VO2, r.SystemicFlow)
		assert.Equal(t, r.VO2, r.PulmonaryFlow)
		assert.EqualValues(t, 1, r.QpQsRatio)
	})

	t.Run("Qsが0ならQp:Qsは0", func(t *testing.T) {
		inputs := scenarioInputs()
		inputs.ManualVO2 = 0

		r := Compute(inputs, model.ModeFlags{UseManualVO2: true})

		assert.EqualValues(t, 0, r.SystemicFlow)
		assert.EqualValues(t, 0, r.QpQsRatio)
		// Qpも0のため、PVRiの除数は1。
		assert.EqualValues(t, 15, r.PVRIndex)
	})

	t.Run("負の値", func(t *testing.T) {
		inputs := scenarioInputs()
		inputs.MeanPAP = 8
		inputs.PCWP = 12.5

		r := Compute(inputs, model.ModeFlags{})

		assert.EqualValues(t, -4.5, r.TransPulmonaryGradient)
		assert.Equal(t, -4.5/r.PulmonaryFlow, r.PVRIndex)
		assert.Equal(t, "-4.5", FormatFixed(r.TransPulmonaryGradient, 1))
	})

	t.Run("同じ入力には同じ結果", func(t *testing.T) {
		for _, inputs := range []model.ClinicalInputs{scenarioInputs(), {}, {Age: -3, HeartRate: 80}} {
			for _, flags := range []model.ModeFlags{{}, {IncludeDissolved: true}, {UseManualVO2: true}} {
				first := Compute(inputs, flags)
				second := Compute(inputs, flags)
				assert.Equal(t, bits(first), bits(second))
			}
		}
	})
}

func bits(r model.DerivedResults) []uint64 {
	values := []float64{
		r.VO2, r.CardiacOutput, r.PulmonaryFlow, r.SystemicFlow, r.QpQsRatio,
		r.TransPulmonaryGradient, r.PVRIndex,
		r.Contents.Arterial, r.Contents.Venous, r.Contents.PulmonaryArtery, r.Contents.PulmonaryVein,
	}
	result := make([]uint64, len(values))
	for i, v := range values {
		result[i] = math.Float64bits(v)
	}
	return result
}

package view

import (
	"math"
	"strconv"
	"time"

	C "github.com/spiker/fick-server/constant"
	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/model"
)

// 表示用の値。JSONは非有限値を表現できないため、その場合Valueはnullとなる。
type Quantity struct {
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
	Finite  bool     `json:"finite"`
}

// 表示桁に丸めた値。
func NewQuantity(value float64, digits int) Quantity {
	return quantity(lib.Round(value, digits), lib.FormatFixed(value, digits))
}

// 丸めずにそのまま表示する値。
func RawQuantity(value float64) Quantity {
	return quantity(value, FormatNumber(value))
}

func quantity(value float64, display string) Quantity {
	q := Quantity{Display: display}
	if !math.IsNaN(value) && !math.IsInf(value, 0) {
		v := value
		q.Value = &v
		q.Finite = true
	}
	return q
}

// 丸めを行わない数値表記。非有限値は "NaN" "Infinity" "-Infinity"。
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

type OxygenContents struct {
	Arterial        Quantity `json:"arterial"`
	Venous          Quantity `json:"venous"`
	PulmonaryArtery Quantity `json:"pulmonaryArtery"`
	PulmonaryVein   Quantity `json:"pulmonaryVein"`
}

type DerivedResults struct {
	VO2                    Quantity       `json:"vo2"`
	CardiacOutput          Quantity       `json:"cardiacOutput"`
	PulmonaryFlow          Quantity       `json:"qp"`
	SystemicFlow           Quantity       `json:"qs"`
	QpQsRatio              Quantity       `json:"qpQsRatio"`
	TransPulmonaryGradient Quantity       `json:"transpulmonaryGradient"`
	PVRIndex               Quantity       `json:"pvrIndex"`
	Contents               OxygenContents `json:"contents"`
}

type Calculation struct {
	Id         string               `json:"id"`
	Inputs     model.ClinicalInputs `json:"inputs"`
	Flags      model.ModeFlags      `json:"flags"`
	Results    DerivedResults       `json:"results"`
	ComputedAt time.Time            `json:"computedAt"`
	Cached     bool                 `json:"cached"`
}

// 計算結果を表示桁に丸める。VO2は計算値をそのまま表示する。
func NewDerivedResults(r model.DerivedResults) DerivedResults {
	return DerivedResults{
		VO2:                    RawQuantity(r.VO2),
		CardiacOutput:          NewQuantity(r.CardiacOutput, C.CardiacOutputDigits),
		PulmonaryFlow:          NewQuantity(r.PulmonaryFlow, C.FlowDigits),
		SystemicFlow:           NewQuantity(r.SystemicFlow, C.FlowDigits),
		QpQsRatio:              NewQuantity(r.QpQsRatio, C.RatioDigits),
		TransPulmonaryGradient: NewQuantity(r.TransPulmonaryGradient, C.GradientDigits),
		PVRIndex:               NewQuantity(r.PVRIndex, C.ResistanceDigits),
		Contents: OxygenContents{
			Arterial:        NewQuantity(r.Contents.Arterial, C.ContentDigits),
			Venous:          NewQuantity(r.Contents.Venous, C.ContentDigits),
			PulmonaryArtery: NewQuantity(r.Contents.PulmonaryArtery, C.ContentDigits),
			PulmonaryVein:   NewQuantity(r.Contents.PulmonaryVein, C.ContentDigits),
		},
	}
}

func NewCalculation(c *model.Calculation) *Calculation {
	return &Calculation{
		Id:         c.Id,
		Inputs:     c.Inputs,
		Flags:      c.Flags,
		Results:    NewDerivedResults(c.Results),
		ComputedAt: c.ComputedAt,
		Cached:     c.Cached,
	}
}

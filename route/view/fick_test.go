package view

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spiker/fick-server/model"
)

func TestViewFick_Quantity(t *testing.T) {
	q := NewQuantity(122.17/5.33, 2)
	assert.Equal(t, "22.92", q.Display)
	assert.EqualValues(t, 22.92, *q.Value)
	assert.True(t, q.Finite)

	// 1.005は2進数では1.00499...
	assert.Equal(t, "1.00", NewQuantity(1.005, 2).Display)
	assert.Equal(t, "15.0", NewQuantity(15, 1).Display)
	assert.Equal(t, "0.00", NewQuantity(0, 2).Display)

	for _, c := range []struct {
		value   float64
		display string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	} {
		q := NewQuantity(c.value, 2)
		assert.Nil(t, q.Value)
		assert.False(t, q.Finite)
		assert.Equal(t, c.display, q.Display)

		bs, err := json.Marshal(q)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"value": null, "display": "`+c.display+`", "finite": false}`, string(bs))
	}
}

func TestViewFick_RawQuantity(t *testing.T) {
	assert.Equal(t, "122.17", RawQuantity(122.17).Display)
	assert.Equal(t, "150", RawQuantity(150).Display)
	// 手入力値は丸めない。
	assert.Equal(t, "150.125", RawQuantity(150.125).Display)
	assert.Equal(t, "Infinity", RawQuantity(math.Inf(1)).Display)
	assert.Nil(t, RawQuantity(math.Inf(1)).Value)
}

func TestViewFick_NewCalculation(t *testing.T) {
	computedAt := time.Date(2024, time.March, 1, 2, 3, 4, 0, time.UTC)

	c := NewCalculation(&model.Calculation{
		Id:    "calc-1",
		Flags: model.ModeFlags{UseManualVO2: true},
		Results: model.DerivedResults{
			VO2:                    150.125,
			CardiacOutput:          150.125 / 5.33,
			PulmonaryFlow:          150.125 / 4.38,
			SystemicFlow:           150.125 / 5.33,
			QpQsRatio:              5.33 / 4.38,
			TransPulmonaryGradient: 14.96,
			PVRIndex:               math.NaN(),
			Contents: model.OxygenContents{
				Arterial:        18.66,
				Venous:          13.33,
				PulmonaryArtery: 14.28,
				PulmonaryVein:   18.66,
			},
		},
		ComputedAt: computedAt,
		Cached:     true,
	})

	assert.Equal(t, "calc-1", c.Id)
	assert.True(t, c.Flags.UseManualVO2)
	assert.True(t, c.Cached)
	assert.Equal(t, computedAt, c.ComputedAt)

	r := c.Results
	assert.Equal(t, "150.125", r.VO2.Display)
	assert.Equal(t, "28.17", r.CardiacOutput.Display)
	assert.Equal(t, "34.28", r.PulmonaryFlow.Display)
	assert.Equal(t, "28.17", r.SystemicFlow.Display)
	assert.Equal(t, "1.22", r.QpQsRatio.Display)
	assert.Equal(t, "15.0", r.TransPulmonaryGradient.Display)
	assert.Equal(t, "NaN", r.PVRIndex.Display)
	assert.Equal(t, "13.33", r.Contents.Venous.Display)

	bs, err := json.Marshal(c)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(bs, &decoded))
	results := decoded["results"].(map[string]interface{})
	for _, key := range []string{"vo2", "cardiacOutput", "qp", "qs", "qpQsRatio", "transpulmonaryGradient", "pvrIndex", "contents"} {
		assert.Contains(t, results, key)
	}
	assert.Nil(t, results["pvrIndex"].(map[string]interface{})["value"])
}

package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/model"
)

type FickService struct {
	*Service
	Cache *cache.Cache
}

// 一括計算の1件分の結果。Errorがnilでなければ入力の変換に失敗している。
type BatchEntry struct {
	Index       int
	Calculation *model.Calculation
	Error       error
}

// 入力に対する計算を行う。
//
// 計算は純粋関数のため、同じ入力に対する結果はキャッシュから返してよい。
func (s *FickService) Calculate(inputs model.ClinicalInputs, flags model.ModeFlags) *model.Calculation {
	key := calculationKey(inputs, flags)

	calculation := &model.Calculation{
		Id:         uuid.NewString(),
		Inputs:     inputs,
		Flags:      flags,
		ComputedAt: time.Now().UTC(),
	}

	if s.Cache != nil {
		if cached, found := s.Cache.Get(key); found {
			if results, ok := cached.(model.DerivedResults); ok {
				calculation.Results = results
				calculation.Cached = true
				s.logger().WithFields(logrus.Fields{
					"calculation_id": calculation.Id,
				}).Debug("calculation served from cache")
				return calculation
			}
		}
	}

	calculation.Results = lib.Compute(inputs, flags)

	if s.Cache != nil {
		s.Cache.SetDefault(key, calculation.Results)
	}

	fields := logrus.Fields{
		"calculation_id":    calculation.Id,
		"include_dissolved": flags.IncludeDissolved,
		"use_manual_vo2":    flags.UseManualVO2,
	}
	if nonFinite := NonFiniteFields(calculation.Results); len(nonFinite) > 0 {
		s.logger().WithFields(fields).WithField("non_finite", nonFinite).Warn("calculation produced non-finite values")
	} else {
		s.logger().WithFields(fields).Debug("calculation completed")
	}

	return calculation
}

// スナップショットの一覧を変換して計算する。変換に失敗したものは計算しない。
func (s *FickService) CalculateAll(snapshots []lib.MaybeJson) []*BatchEntry {
	entries := make([]*BatchEntry, 0, len(snapshots))

	for i, snapshot := range snapshots {
		inputs, flags, err := ParseSnapshot(snapshot)
		if err != nil {
			entries = append(entries, &BatchEntry{Index: i, Error: err})
			continue
		}
		entries = append(entries, &BatchEntry{Index: i, Calculation: s.Calculate(inputs, flags)})
	}

	return entries
}

// 非有限値となった結果の項目名。
func NonFiniteFields(results model.DerivedResults) []string {
	values := []struct {
		name  string
		value float64
	}{
		{"vo2", results.VO2},
		{"cardiacOutput", results.CardiacOutput},
		{"qp", results.PulmonaryFlow},
		{"qs", results.SystemicFlow},
		{"qpQsRatio", results.QpQsRatio},
		{"transpulmonaryGradient", results.TransPulmonaryGradient},
		{"pvrIndex", results.PVRIndex},
	}

	names := []string{}
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			names = append(names, v.name)
		}
	}
	return names
}

// 入力のビット表現からキャッシュキーを作る。
func calculationKey(inputs model.ClinicalInputs, flags model.ModeFlags) string {
	values := []float64{
		inputs.Age, inputs.HeartRate, inputs.ManualVO2, inputs.Hemoglobin,
		inputs.ArterialSat, inputs.VenousSat, inputs.PulmArterySat, inputs.PulmVeinSat,
		inputs.ArterialPO2mmHg, inputs.PulmVeinPO2mmHg, inputs.MeanPAP, inputs.PCWP, inputs.BSA,
	}

	var b strings.Builder
	for _, value := range values {
		b.WriteString(strconv.FormatUint(math.Float64bits(value), 16))
		b.WriteByte(':')
	}
	b.WriteString(strconv.FormatBool(flags.IncludeDissolved))
	b.WriteByte(':')
	b.WriteString(strconv.FormatBool(flags.UseManualVO2))

	return b.String()
}

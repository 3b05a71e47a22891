package service

import (
	"net/url"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"

	C "github.com/spiker/fick-server/constant"
	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/model"
)

// 入力項目のキー。
const (
	FieldAge              = "age"
	FieldHeartRate        = "heartRate"
	FieldManualVO2        = "manualVO2"
	FieldHemoglobin       = "hemoglobin"
	FieldArterialSat      = "arterialSat"
	FieldVenousSat        = "venousSat"
	FieldPulmArterySat    = "pulmArterySat"
	FieldPulmVeinSat      = "pulmVeinSat"
	FieldArterialPO2mmHg  = "arterialPO2mmHg"
	FieldPulmVeinPO2mmHg  = "pulmVeinPO2mmHg"
	FieldMeanPAP          = "meanPAP"
	FieldPCWP             = "pcwp"
	FieldBSA              = "bsa"
	FieldIncludeDissolved = "includeDissolved"
	FieldUseManualVO2     = "useManualVO2"
)

type numericField struct {
	key    string
	target func(*model.ClinicalInputs) *float64
}

var numericFields = []numericField{
	{FieldAge, func(i *model.ClinicalInputs) *float64 { return &i.Age }},
	{FieldHeartRate, func(i *model.ClinicalInputs) *float64 { return &i.HeartRate }},
	{FieldManualVO2, func(i *model.ClinicalInputs) *float64 { return &i.ManualVO2 }},
	{FieldHemoglobin, func(i *model.ClinicalInputs) *float64 { return &i.Hemoglobin }},
	{FieldArterialSat, func(i *model.ClinicalInputs) *float64 { return &i.ArterialSat }},
	{FieldVenousSat, func(i *model.ClinicalInputs) *float64 { return &i.VenousSat }},
	{FieldPulmArterySat, func(i *model.ClinicalInputs) *float64 { return &i.PulmArterySat }},
	{FieldPulmVeinSat, func(i *model.ClinicalInputs) *float64 { return &i.PulmVeinSat }},
	{FieldArterialPO2mmHg, func(i *model.ClinicalInputs) *float64 { return &i.ArterialPO2mmHg }},
	{FieldPulmVeinPO2mmHg, func(i *model.ClinicalInputs) *float64 { return &i.PulmVeinPO2mmHg }},
	{FieldMeanPAP, func(i *model.ClinicalInputs) *float64 { return &i.MeanPAP }},
	{FieldPCWP, func(i *model.ClinicalInputs) *float64 { return &i.PCWP }},
	{FieldBSA, func(i *model.ClinicalInputs) *float64 { return &i.BSA }},
}

var (
	errNotNumber  = v.NewError("validation_is_number", "must be a number")
	errNotBoolean = v.NewError("validation_is_boolean", "must be a boolean")
)

// 未入力(項目なし、null、空文字列)かどうか。
func isBlank(j lib.MaybeJson) bool {
	if !j.IsValid() || j.IsNull() {
		return true
	}
	if s, e := j.AsString(); e == nil {
		return len(strings.TrimSpace(s)) == 0
	}
	return false
}

func numericInto(dest *float64) v.RuleFunc {
	return func(value interface{}) error {
		j, ok := value.(lib.MaybeJson)
		if !ok || isBlank(j) {
			*dest = 0
			return nil
		}
		n, err := j.AsNumeric()
		if err != nil {
			return errNotNumber
		}
		*dest = n
		return nil
	}
}

func flagInto(dest *bool) v.RuleFunc {
	return func(value interface{}) error {
		j, ok := value.(lib.MaybeJson)
		if !ok || isBlank(j) {
			*dest = false
			return nil
		}
		b, err := j.AsFlag()
		if err != nil {
			return errNotBoolean
		}
		*dest = b
		return nil
	}
}

// 画面の入力値から計算用のスナップショットを作る。
//
// 未入力の項目は0(フラグはfalse)として扱う。数値として解釈できない項目は
// 項目ごとのバリデーションエラーとなる。
func ParseSnapshot(body lib.MaybeJson) (model.ClinicalInputs, model.ModeFlags, error) {
	inputs := model.ClinicalInputs{}
	flags := model.ModeFlags{}

	if body == nil || body.IsNull() {
		return inputs, flags, nil
	}
	if _, ok := body.Interface().(map[string]interface{}); !ok {
		return inputs, flags, C.INVALID_SNAPSHOT
	}

	errs := v.Errors{}

	for _, f := range numericFields {
		errs[f.key] = v.Validate(body.Get(f.key), v.By(numericInto(f.target(&inputs))))
	}

	errs[FieldIncludeDissolved] = v.Validate(body.Get(FieldIncludeDissolved), v.By(flagInto(&flags.IncludeDissolved)))
	errs[FieldUseManualVO2] = v.Validate(body.Get(FieldUseManualVO2), v.By(flagInto(&flags.UseManualVO2)))

	if e := errs.Filter(); e != nil {
		return model.ClinicalInputs{}, model.ModeFlags{}, e
	}

	return inputs, flags, nil
}

// クエリパラメータをスナップショットの形式に変換する。同じキーが複数ある場合は先頭を用いる。
func SnapshotFromQuery(query url.Values) lib.MaybeJson {
	body := map[string]interface{}{}
	for key, values := range query {
		if len(values) > 0 {
			body[key] = values[0]
		}
	}
	return lib.AsJson(body)
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/spiker/fick-server/config"
	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/route/view"
	S "github.com/spiker/fick-server/service"
)

// 数値項目。フラグ名は入力項目のキーと同じ。
var numericKeys = []struct {
	key   string
	usage string
}{
	{S.FieldAge, "age (years)"},
	{S.FieldHeartRate, "heart rate (bpm)"},
	{S.FieldManualVO2, "manual VO2 (mL/min/m²)"},
	{S.FieldHemoglobin, "hemoglobin (g/dL)"},
	{S.FieldArterialSat, "arterial O2 saturation (%)"},
	{S.FieldVenousSat, "venous O2 saturation (%)"},
	{S.FieldPulmArterySat, "pulmonary artery O2 saturation (%)"},
	{S.FieldPulmVeinSat, "pulmonary vein O2 saturation (%)"},
	{S.FieldArterialPO2mmHg, "arterial PO2 (mmHg)"},
	{S.FieldPulmVeinPO2mmHg, "pulmonary vein PO2 (mmHg)"},
	{S.FieldMeanPAP, "mean pulmonary artery pressure (mmHg)"},
	{S.FieldPCWP, "pulmonary capillary wedge pressure (mmHg)"},
	{S.FieldBSA, "body surface area (m²)"},
}

func readSnapshot(input string, values map[string]*string, dissolved bool, manual bool) (lib.MaybeJson, error) {
	if len(input) > 0 {
		var r io.Reader
		if input == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(input)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}

		bytes, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return lib.UnmarshalToMaybeJson(bytes)
	}

	body := map[string]interface{}{}
	for key, value := range values {
		body[key] = *value
	}
	body[S.FieldIncludeDissolved] = dissolved
	body[S.FieldUseManualVO2] = manual

	return lib.AsJson(body), nil
}

func printText(w io.Writer, localizer *lib.Localizer, calculation *view.Calculation) {
	r := calculation.Results
	rows := []struct {
		label string
		value view.Quantity
	}{
		{"label.vo2", r.VO2},
		{"label.cardiac_output", r.CardiacOutput},
		{"label.qp", r.PulmonaryFlow},
		{"label.qs", r.SystemicFlow},
		{"label.qp_qs", r.QpQsRatio},
		{"label.tpg", r.TransPulmonaryGradient},
		{"label.pvri", r.PVRIndex},
	}

	for _, row := range rows {
		fmt.Fprintf(w, "%s: %s\n", localizer.Localize(row.label, nil), row.value.Display)
	}
}

func main() {
	config.SetupAll()
	// 標準出力は計算結果のみ。
	logrus.SetOutput(os.Stderr)

	values := map[string]*string{}
	for _, k := range numericKeys {
		values[k.key] = flag.String(k.key, "", k.usage)
	}

	dissolved := flag.Bool("dissolved", false, "include dissolved O2 (0.0031 × PO2)")
	manual := flag.Bool("manual", false, "use manual VO2 instead of the age/heart rate estimate")
	input := flag.String("input", "", "read a JSON snapshot from the file ('-' for stdin) instead of flags")
	asJson := flag.Bool("json", false, "print the calculation as JSON")
	lang := flag.String("lang", "en", "language of labels")

	flag.Parse()

	snapshot, err := readSnapshot(*input, values, *dissolved, *manual)
	if err != nil {
		log.Fatalf("Failed to read snapshot: %v", err)
	}

	inputs, flags, err := S.ParseSnapshot(snapshot)
	if err != nil {
		log.Fatalf("Invalid snapshot: %v", err)
	}

	service := &S.FickService{
		Service: &S.Service{Log: logrus.WithField("component", "fick_calc")},
	}

	calculation := view.NewCalculation(service.Calculate(inputs, flags))

	if *asJson {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(calculation); err != nil {
			log.Fatalf("Failed to encode calculation: %v", err)
		}
		return
	}

	printText(os.Stdout, lib.NewLocalizer(*lang), calculation)
}

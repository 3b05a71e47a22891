package calculator

import (
	"io"
	"net/http"

	"github.com/spiker/fick-server/config"
	C "github.com/spiker/fick-server/constant"
	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/route/shared"
	"github.com/spiker/fick-server/route/view"
	S "github.com/spiker/fick-server/service"
)

type infoResponse struct {
	ApiVersion     string             `json:"apiVersion"`
	Authentication bool               `json:"authentication"`
	BatchLimit     int                `json:"batchLimit"`
	Coefficients   map[string]float64 `json:"coefficients"`
	DisplayDigits  map[string]int     `json:"displayDigits"`
}

type batchEntry struct {
	Index       int                   `json:"index"`
	Calculation *view.Calculation     `json:"calculation,omitempty"`
	Error       *shared.ErrorResponse `json:"error,omitempty"`
}

type batchResponse struct {
	Success int           `json:"success"`
	Failure int           `json:"failure"`
	Entries []*batchEntry `json:"entries"`
}

// fetchInfo godoc
// @summary 計算式の係数と表示桁を取得する。
// @tags [calculator] Fick
// @produce json
// @success 200 {object} infoResponse "係数と表示桁。"
// @router /1/info [get]
func fetchInfo(c *shared.Context) error {
	server := config.ServerConfig()

	return c.JSON(http.StatusOK, &infoResponse{
		ApiVersion:     server.ApiVersion,
		Authentication: lib.AuthenticationEnabled(),
		BatchLimit:     server.BatchLimit,
		Coefficients: map[string]float64{
			"vo2Intercept":               C.VO2Intercept,
			"vo2AgeCoefficient":          C.VO2AgeCoefficient,
			"vo2HeartRateCoefficient":    C.VO2HeartRateCoefficient,
			"hemoglobinBindingCapacity":  C.HemoglobinBindingCapacity,
			"dissolvedOxygenCoefficient": C.DissolvedOxygenCoefficient,
		},
		DisplayDigits: map[string]int{
			"vo2":                    C.VO2Digits,
			"cardiacOutput":          C.CardiacOutputDigits,
			"qp":                     C.FlowDigits,
			"qs":                     C.FlowDigits,
			"qpQsRatio":              C.RatioDigits,
			"transpulmonaryGradient": C.GradientDigits,
			"pvrIndex":               C.ResistanceDigits,
			"contents":               C.ContentDigits,
		},
	})
}

// calculate godoc
// @summary 入力値からFick法の各指標を計算する。
// @description 未入力(項目なし、null、空文字列)の項目は0として扱う。数値として解釈できない項目はバリデーションエラー。
// @tags [calculator] Fick
// @accept json
// @produce json
// @param Authorization header string false "Bearerトークン。認証が有効な場合のみ必要。"
// @param snapshot body object true "入力値。"
// @success 200 {object} view.Calculation "計算結果。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 401 {object} shared.ErrorResponse "認証エラー。"
// @router /1/fick [post]
func calculate(c *shared.Context) error {
	body, err := readBody(c)

	if err != nil {
		return err
	}

	inputs, flags, err := S.ParseSnapshot(body)

	if err != nil {
		return err
	}

	service := shared.CreateService(S.FickService{}, c).(*S.FickService)

	calculation := service.Calculate(inputs, flags)

	return c.JSON(http.StatusOK, view.NewCalculation(calculation))
}

// calculateFromQuery godoc
// @summary クエリパラメータの入力値から計算する。
// @tags [calculator] Fick
// @produce json
// @param age query string false "年齢(歳)。"
// @param heartRate query string false "心拍数(bpm)。"
// @param includeDissolved query bool false "溶存酸素を含める。"
// @param useManualVO2 query bool false "手入力のVO2を用いる。"
// @success 200 {object} view.Calculation "計算結果。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @router /1/fick [get]
func calculateFromQuery(c *shared.Context) error {
	query := c.QueryParams()
	// 言語指定は入力値ではない。
	query.Del("lang")

	inputs, flags, err := S.ParseSnapshot(S.SnapshotFromQuery(query))

	if err != nil {
		return err
	}

	service := shared.CreateService(S.FickService{}, c).(*S.FickService)

	calculation := service.Calculate(inputs, flags)

	return c.JSON(http.StatusOK, view.NewCalculation(calculation))
}

// calculateBatch godoc
// @summary 複数の入力値をまとめて計算する。
// @description 変換に失敗した入力は計算せず、インデックスごとにエラーを返す。
// @tags [calculator] Fick
// @accept json
// @produce json
// @param snapshots body []object true "入力値の配列。"
// @success 200 {object} batchResponse "計算結果とエラー。"
// @failure 400 {object} shared.ErrorResponse "配列でない、空、または上限超過。"
// @router /1/fick/batch [post]
func calculateBatch(c *shared.Context) error {
	body, err := readBody(c)

	if err != nil {
		return err
	}

	if _, ok := body.Interface().([]interface{}); !ok {
		return C.INVALID_BATCH
	}

	snapshots := []lib.MaybeJson{}
	body.Iterate(func(_ interface{}, item lib.MaybeJson) {
		snapshots = append(snapshots, item)
	})

	if len(snapshots) == 0 {
		return C.EMPTY_BATCH
	} else if limit := config.ServerConfig().BatchLimit; limit > 0 && len(snapshots) > limit {
		return C.BATCH_TOO_LARGE(len(snapshots), limit)
	}

	service := shared.CreateService(S.FickService{}, c).(*S.FickService)

	entries := service.CalculateAll(snapshots)

	response := &batchResponse{Entries: make([]*batchEntry, 0, len(entries))}

	for _, entry := range entries {
		if entry.Error != nil {
			response.Failure++
			response.Entries = append(response.Entries, &batchEntry{
				Index: entry.Index,
				Error: shared.NewErrorResponse(entry.Error, c.Localizer()),
			})
		} else {
			response.Success++
			response.Entries = append(response.Entries, &batchEntry{
				Index:       entry.Index,
				Calculation: view.NewCalculation(entry.Calculation),
			})
		}
	}

	return c.JSON(http.StatusOK, response)
}

// リクエストボディをJSONとして読み込む。空の場合はnull。
func readBody(c *shared.Context) (lib.MaybeJson, error) {
	bytes, err := io.ReadAll(c.Request().Body)

	if err != nil {
		return nil, C.MALFORMED_PAYLOAD(err)
	} else if len(bytes) == 0 {
		return lib.AsJson(nil), nil
	}

	body, err := lib.UnmarshalToMaybeJson(bytes)

	if err != nil {
		return nil, C.MALFORMED_PAYLOAD(err)
	}

	return body, nil
}

package rpc

import (
	"encoding/json"

	C "github.com/spiker/fick-server/constant"
	"github.com/spiker/fick-server/lib"
	"github.com/spiker/fick-server/route/shared"
	"github.com/spiker/fick-server/route/view"
	S "github.com/spiker/fick-server/service"
)

// キュー経由の計算リクエストに対する応答。calculationとerrorのいずれか一方を持つ。
type Response struct {
	Calculation *view.Calculation     `json:"calculation,omitempty"`
	Error       *shared.ErrorResponse `json:"error,omitempty"`
}

type Handler struct {
	Service   *S.FickService
	Localizer *lib.Localizer
}

func NewHandler(service *S.FickService, localizer *lib.Localizer) *Handler {
	return &Handler{Service: service, Localizer: localizer}
}

// メッセージ本文の入力値を計算し、応答本文を返す。
// 入力の誤りはエラー応答として返すため、エラーとなるのは応答を作れない場合のみ。
func (h *Handler) Handle(body []byte) ([]byte, error) {
	response := &Response{}

	if snapshot, err := lib.UnmarshalToMaybeJson(body); err != nil {
		response.Error = shared.NewErrorResponse(C.MALFORMED_PAYLOAD(err), h.Localizer)
	} else if inputs, flags, err := S.ParseSnapshot(snapshot); err != nil {
		response.Error = shared.NewErrorResponse(err, h.Localizer)
	} else {
		response.Calculation = view.NewCalculation(h.Service.Calculate(inputs, flags))
	}

	return json.Marshal(response)
}

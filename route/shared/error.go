package shared

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"

	"github.com/spiker/fick-server/constant"
	"github.com/spiker/fick-server/lib"
)

const (
	// ErrorCode_ValidationError バリデーションエラーが発生した場合。
	ErrorCode_ValidationError string = "validation_error"
)

type ErrorResponse struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// エラーをレスポンス形式に変換する。
func NewErrorResponse(e error, localizer *lib.Localizer) *ErrorResponse {
	if er, ok := e.(*ErrorResponse); ok {
		return er
	} else if he, ok := e.(*echo.HTTPError); ok {
		return &ErrorResponse{
			StatusCode: he.Code,
			Code:       strcase.ToSnake(http.StatusText(he.Code)),
			Message:    fmt.Sprintf("%v", he.Message),
		}
	} else if se, ok := e.(*constant.BadRequestError); ok {
		return &ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       se.Code(),
			Message:    localizer.LocalizeWithDefault(se.ErrorCode, se.Params, se.Message),
		}
	} else if se, ok := e.(*constant.UnauthorizedError); ok {
		return &ErrorResponse{
			StatusCode: http.StatusUnauthorized,
			Code:       se.Code(),
			Message:    localizer.LocalizeWithDefault(se.ErrorCode, se.Params, se.Message),
		}
	} else if se, ok := e.(*constant.NotFoundError); ok {
		return &ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       se.Code(),
			Message:    localizer.LocalizeWithDefault(se.ErrorCode, se.Params, se.Message),
		}
	} else if se, ok := e.(*constant.ForbiddenError); ok {
		return &ErrorResponse{
			StatusCode: http.StatusForbidden,
			Code:       se.Code(),
			Message:    localizer.LocalizeWithDefault(se.ErrorCode, se.Params, se.Message),
		}
	} else if ve, ok := e.(validation.Errors); ok {
		details := map[string]string{}
		for key, value := range ve {
			details[key] = localizer.Localize(value.Error(), nil)
		}
		return &ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       ErrorCode_ValidationError,
			Message:    localizer.Localize("validation error", nil),
			Details:    details,
		}
	} else {
		return &ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       strcase.ToSnake(http.StatusText(http.StatusInternalServerError)),
			Message:    e.Error(),
		}
	}
}

func APIErrorHandler(e error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	localizer, ok := c.Get(ContextI18NLangKey).(*lib.Localizer)
	if !ok {
		localizer = lib.NewLocalizer()
	}

	errorResponse := NewErrorResponse(e, localizer)

	if errorResponse.StatusCode >= http.StatusInternalServerError {
		(&Context{c}).Log().WithField("error", e).Error("request failed")
	}

	if err := c.JSON(errorResponse.StatusCode, errorResponse); err != nil {
		c.NoContent(http.StatusInternalServerError)
	}
}

package constant

import "fmt"

type AppError struct {
	ErrorCode string
	Message   string
	Params    map[string]interface{}
}

func (e AppError) Code() string  { return e.ErrorCode }
func (e AppError) Error() string { return e.Message }

type UnauthorizedError struct{ AppError }

func NewUnauthorizedError(code, message string, params map[string]interface{}) *UnauthorizedError {
	return &UnauthorizedError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type BadRequestError struct{ AppError }

func NewBadRequestError(code, message string, params map[string]interface{}) *BadRequestError {
	return &BadRequestError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type NotFoundError struct{ AppError }

func NewNotFoundError(code, message string, params map[string]interface{}) *NotFoundError {
	return &NotFoundError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type ForbiddenError struct{ AppError }

func NewForbiddenError(code, message string, params map[string]interface{}) *ForbiddenError {
	return &ForbiddenError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type InternalServerError struct{ AppError }

func NewInternalServerError(code, message string, params map[string]interface{}) *InternalServerError {
	return &InternalServerError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

var (
	EMPTY_BATCH      = NewBadRequestError("empty_batch", "At least one snapshot is required", nil)
	INVALID_SNAPSHOT = NewBadRequestError("invalid_snapshot", "A snapshot must be a JSON object", nil)
	INVALID_BATCH    = NewBadRequestError("invalid_batch", "A batch must be a JSON array of snapshots", nil)
)

func BATCH_TOO_LARGE(size int, limit int) *BadRequestError {
	return NewBadRequestError("batch_too_large", fmt.Sprintf("Batch of %d snapshots exceeds the limit of %d", size, limit),
		map[string]interface{}{"Size": size, "Limit": limit})
}

func MALFORMED_PAYLOAD(e error) *BadRequestError {
	return NewBadRequestError("malformed_payload", e.Error(), map[string]interface{}{})
}

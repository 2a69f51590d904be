package tools

import (
	stderrors "errors"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

// Result is the execution result envelope handed back to the transport.
// Exactly one of Data and Error is populated.
type Result struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   *Failure `json:"error,omitempty"`
}

// Failure carries a machine-readable code, a human-readable message and
// the engine-native detail when one exists.
type Failure struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
	Detail  string         `json:"detail,omitempty"`
}

// Succeed wraps a projected payload.
func Succeed(data any) *Result {
	return &Result{Success: true, Data: data}
}

// Fail wraps err into a failure result. Errors outside the taxonomy are
// reported as engine failures.
func Fail(err error) *Result {
	var appErr *apperrors.Error
	if stderrors.As(err, &appErr) {
		return &Result{Success: false, Error: &Failure{
			Code:    appErr.Code,
			Message: appErr.Message,
			Detail:  appErr.Detail(),
		}}
	}
	return &Result{Success: false, Error: &Failure{
		Code:    apperrors.CodeEngineFailure,
		Message: err.Error(),
	}}
}

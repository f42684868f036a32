package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies engine failures per the error taxonomy.
type ErrorCode string

const (
	ErrInputValidation     ErrorCode = "INPUT_VALIDATION"
	ErrMissingMarketData   ErrorCode = "MISSING_MARKET_DATA"
	ErrYtmNotConverged     ErrorCode = "YTM_NOT_CONVERGED"
	ErrInsufficientHistory ErrorCode = "INSUFFICIENT_HISTORY"
	ErrStressWindowShort   ErrorCode = "STRESS_WINDOW_TOO_SHORT"
	ErrNumericInstability  ErrorCode = "NUMERIC_INSTABILITY"
	ErrCancelled           ErrorCode = "CANCELLED"
	ErrDeadlineExceeded    ErrorCode = "DEADLINE_EXCEEDED"
	ErrInternal            ErrorCode = "INTERNAL"
)

// EngineError is the concrete error type returned across component
// boundaries. It carries a Code so callers can branch with errors.As
// without string matching, and an optional Ref identifying the instrument,
// position, or counterparty the error concerns.
type EngineError struct {
	Code  ErrorCode
	Ref   string
	Cause error
}

func (e *EngineError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Ref, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Cause)
}

func (e *EngineError) Unwrap() error { return e.Cause }

// NewError builds an EngineError. cause may be nil, in which case the
// code's own description is the only message.
func NewError(code ErrorCode, ref string, cause error) *EngineError {
	if cause == nil {
		cause = errors.New(string(code))
	}
	return &EngineError{Code: code, Ref: ref, Cause: cause}
}

// IsCode reports whether err (or anything it wraps) is an EngineError with
// the given code.
func IsCode(err error, code ErrorCode) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

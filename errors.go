package qrsvg

import (
	"github.com/pkg/errors"

	"github.com/Mictilt/qrsvg/matrix"
)

// ErrInvalidSize is the cause of an EncodeError for a size that is not a
// positive finite number.
var ErrInvalidSize = errors.New("size must be a positive finite number")

// EncodeError reports a payload that could not be turned into a symbol at
// the requested error-correction level.
type EncodeError struct {
	Payload string
	Level   matrix.Level
	cause   error
}

func newEncodeError(payload string, level matrix.Level, cause error) *EncodeError {
	return &EncodeError{Payload: payload, Level: level, cause: cause}
}

func (e *EncodeError) Error() string {
	return "encode at level " + e.Level.String() + ": " + e.cause.Error()
}

// Cause returns the underlying failure, for errors.Cause.
func (e *EncodeError) Cause() error {
	return e.cause
}

// Unwrap returns the underlying failure, for errors.Is and errors.As.
func (e *EncodeError) Unwrap() error {
	return e.cause
}

// encodeResult is either a symbol or the error that prevented it.
type encodeResult struct {
	symbol Symbol
	err    *EncodeError
}

func ok(s Symbol) encodeResult {
	return encodeResult{symbol: s}
}

func failed(err *EncodeError) encodeResult {
	return encodeResult{err: err}
}

func (r encodeResult) Ok() bool {
	return r.err == nil
}

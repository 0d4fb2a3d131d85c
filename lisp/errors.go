package lisp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode is one of the four internally signaled error conditions, or
// any user-supplied integer passed to (throw n).
type ErrorCode int

// The four error codes the evaluator itself can signal. User codes raised
// via throw are not restricted to this set.
const (
	ErrCodeInvCarOrCdr ErrorCode = 1
	ErrCodeSymNotFound ErrorCode = 2
	ErrCodeInvFunType  ErrorCode = 3
	ErrCodeOutOfMemory ErrorCode = 6
)

// LispError is the non-local transfer carrying an integer code. It is
// caught by the nearest enclosing catch, or, failing that, printed as
// "ERR <code>" by the REPL's top-level handler.
type LispError struct {
	Code ErrorCode
}

func (e *LispError) Error() string {
	return fmt.Sprintf("ERR %d", int(e.Code))
}

// Sentinel errors for the four internal conditions. Code in the arena and
// evaluator returns these directly or via errors.Wrap, so CodeOf can
// recover the code through any amount of wrapping.
var (
	ErrInvCarOrCdr = &LispError{Code: ErrCodeInvCarOrCdr}
	ErrSymNotFound = &LispError{Code: ErrCodeSymNotFound}
	ErrInvFunType  = &LispError{Code: ErrCodeInvFunType}
	ErrOutOfMemory = &LispError{Code: ErrCodeOutOfMemory}
)

// CodeOf extracts the error code from err if it, or something it wraps,
// is a *LispError.
func CodeOf(err error) (ErrorCode, bool) {
	if err == nil {
		return 0, false
	}
	le, ok := errors.Cause(err).(*LispError)
	if !ok {
		return 0, false
	}
	return le.Code, true
}

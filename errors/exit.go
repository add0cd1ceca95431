package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessCode is returned for a nil error.
	SuccessCode = 0

	// All unclassified errors that do not provide a code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalCode uint32 = 1
	internalDesc        = "internal error"
)

// Exit codes of the command line programs. Usage errors use code 2, as the
// flag package does.
const (
	ExitInternal     = 1
	ExitInvalidInput = 3
	ExitBuild        = 4
	ExitVerification = 5
)

// ExitCode returns the process exit code that should be used when a program
// terminates because of given error.
func ExitCode(err error) int {
	if errIsNil(err) {
		return SuccessCode
	}
	switch {
	case ErrPayoutMismatch.Is(err), ErrReplayFailed.Is(err):
		return ExitVerification
	case ErrSynthesisExhausted.Is(err), ErrBatchTooLarge.Is(err), ErrOverflow.Is(err):
		return ExitBuild
	case ErrInvalidBatch.Is(err), ErrInvalidInput.Is(err), ErrInvalidAmount.Is(err), ErrEmpty.Is(err), ErrNotFound.Is(err):
		return ExitInvalidInput
	}
	return ExitInternal
}

// Describe returns the code and the message of given error that can be
// presented to the user. Any error that does not provide a code is
// categorized as an internal error with code 1.
// When not running in a debug mode messages of errors that do not provide
// code information are replaced with generic "internal error".
func Describe(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}

	if c := code(err); c != internalCode {
		if debug {
			// Try to trigger full information formatting. This
			// might produce a stacktrace.
			return c, fmt.Sprintf("%+v", err)
		}
		return c, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalDesc
}

type coder interface {
	Code() uint32
}

// code test if given error contains a code and returns the value of it if
// available. This function is testing for the causer interface as well and
// unwraps the error.
func code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a very narrowed
// spectrum of cases (mostly in tests) where a more sophisticated check is
// required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

package service

import (
	"errors"
	"fmt"

	"github.com/mmynk/fintrack/internal/storage"
)

// Code classifies a service failure. The values follow the RPC status
// vocabulary so transports can map them without knowing the cause.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidArgument
	CodeNotFound
	CodeFailedPrecondition
	CodeAborted
	CodeUnauthenticated
)

func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeNotFound:
		return "not_found"
	case CodeFailedPrecondition:
		return "failed_precondition"
	case CodeAborted:
		return "aborted"
	case CodeUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error is a failure with a Code. Its message is safe to show to clients
// except for CodeInternal, whose cause is only logged.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with code.
func NewError(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// CodeOf returns the code carried by err, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrBudgetNotFound      = errors.New("budget not found")

	ErrAccountInUse  = errors.New("cannot delete account with existing transactions")
	ErrCategoryInUse = errors.New("cannot delete category with existing transactions")

	ErrInvalidBudget  = errors.New("budget amount must be greater than zero")
	ErrConcurrentEdit = errors.New("ledger was modified concurrently, retry the request")
	ErrMissingUser    = errors.New("user id required")
)

func notFound(err error) error { return NewError(CodeNotFound, err) }
func invalid(err error) error  { return NewError(CodeInvalidArgument, err) }
func conflict(err error) error { return NewError(CodeFailedPrecondition, err) }
func invalidf(format string, args ...any) error {
	return invalid(fmt.Errorf(format, args...))
}

// storeError classifies a storage failure. A lost compare-and-swap is
// reported as CodeAborted; anything else is internal.
func storeError(op string, err error) error {
	if errors.Is(err, storage.ErrVersionConflict) {
		return NewError(CodeAborted, fmt.Errorf("%s: %w", op, ErrConcurrentEdit))
	}
	return NewError(CodeInternal, fmt.Errorf("%s: %w", op, err))
}

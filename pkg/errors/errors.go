// Package errors defines the error kinds raised by the search engine and a
// wrapper type that pairs a kind with a human-readable message.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// Exit codes returned by command-line front ends for each error kind.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidArgument = 2
	ExitNotFound        = 3
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidArgumentf is shorthand for Newf(ErrInvalidArgument, ...).
func InvalidArgumentf(format string, args ...any) *AppError {
	return Newf(ErrInvalidArgument, format, args...)
}

// NotFoundf is shorthand for Newf(ErrNotFound, ...).
func NotFoundf(format string, args ...any) *AppError {
	return Newf(ErrNotFound, format, args...)
}

// ExitCode maps an error to the process exit code a CLI should use.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

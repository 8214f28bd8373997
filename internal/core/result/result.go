// Package result provides the success/failure envelope returned by every core
// service operation. Expected failures (validation, not found, conflicts,
// state and ownership violations) travel inside a Result; infrastructure
// faults are returned separately as a plain error.
package result

import (
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

// Result carries either a value or an *apperrors.AppError, never both.
// The zero Result, returned next to infrastructure errors, is neither a
// success nor a failure.
type Result[T any] struct {
	value T
	err   *apperrors.AppError
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail wraps an expected failure.
func Fail[T any](err *apperrors.AppError) Result[T] {
	return Result[T]{err: err}
}

// IsSuccess reports whether the operation succeeded.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Value returns the wrapped value. It is the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Failure returns the wrapped failure, or nil on success.
func (r Result[T]) Failure() *apperrors.AppError {
	return r.err
}

// Kind returns the failure kind, or "" on success.
func (r Result[T]) Kind() apperrors.Kind {
	if r.err == nil {
		return ""
	}
	return r.err.Kind
}

// Message returns the human-readable failure message, or "" on success.
func (r Result[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Unpack returns the value and the failure as a plain error.
func (r Result[T]) Unpack() (T, error) {
	if r.err != nil {
		return r.value, r.err
	}
	return r.value, nil
}

// Package gmaps provides a client for the Google Maps Platform web services.
package gmaps

import "fmt"

// Outcome is the result of a single upstream operation: either a success
// value or a failure message, never both. Expected upstream failures
// (bad status, transport errors) travel as failure outcomes rather than
// Go errors so callers have exactly one path to handle.
type Outcome[T any] struct {
	value   T
	message string
	failed  bool
}

// OK wraps a success value.
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Fail wraps a failure message.
func Fail[T any](message string) Outcome[T] {
	return Outcome[T]{message: message, failed: true}
}

// Failf wraps a formatted failure message.
func Failf[T any](format string, args ...any) Outcome[T] {
	return Fail[T](fmt.Sprintf(format, args...))
}

// OK reports whether the outcome carries a success value.
func (o Outcome[T]) OK() bool {
	return !o.failed
}

// Value returns the success value. It is the zero value for failures.
func (o Outcome[T]) Value() T {
	return o.value
}

// Message returns the failure message, or "" for successes.
func (o Outcome[T]) Message() string {
	return o.message
}

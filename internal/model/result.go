// Package model defines the query result wrapper.
package model

// Status tells whether a query matched any rows.
type Status int

const (
	// StatusOK means the value holds data.
	StatusOK Status = iota
	// StatusEmpty means no rows matched; Reason says why.
	StatusEmpty
)

func (s Status) String() string {
	if s == StatusEmpty {
		return "empty"
	}
	return "ok"
}

// Result carries a derived view or the reason it is empty.
type Result[T any] struct {
	Value  T
	Status Status
	Reason string
}

// OK wraps a non-empty view.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

// Empty wraps a view that matched no rows.
func Empty[T any](v T, reason string) Result[T] {
	return Result[T]{Value: v, Status: StatusEmpty, Reason: reason}
}

// Empty reports whether the query matched nothing.
func (r Result[T]) Empty() bool {
	return r.Status == StatusEmpty
}

// Package model defines shared error types.
package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a missing source file.
	ErrNotFound = errors.New("not found")
	// ErrParse reports a malformed source file.
	ErrParse = errors.New("parse error")
	// ErrValidation reports an invalid query parameter.
	ErrValidation = errors.New("invalid parameter")
)

// ParseError describes where a source file could not be read.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s: line %d: column %q: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %v", e.Path, e.Column, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError rejects a query parameter.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNullArgument marks a required argument that was nil.
	ErrNullArgument = errors.New("value cannot be null")
	// ErrOutOfRange marks an argument outside its valid range.
	ErrOutOfRange = errors.New("specified argument was out of the range of valid values")
	// ErrOperationFailed marks a generic operation failure.
	ErrOperationFailed = errors.New("operation failed")
	// ErrNotImplemented is returned by placeholder operations.
	ErrNotImplemented = errors.New("not implemented")
	// ErrInvalidCast is returned when a capability value is not backed by the expected concrete type.
	ErrInvalidCast = errors.New("invalid cast")
	// ErrInvalidCalendar is returned when imported content is not an iCalendar payload.
	ErrInvalidCalendar = errors.New("content is not an iCalendar payload")
	// ErrStorageUnavailable is returned when object storage is required but not configured.
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

// ArgumentError describes an invalid argument passed to a repository or service.
// It wraps either ErrNullArgument or ErrOutOfRange.
type ArgumentError struct {
	Err   error
	Param string
	Value any
}

// NewNullArgumentError returns an ArgumentError for a nil argument.
func NewNullArgumentError(param string) *ArgumentError {
	return &ArgumentError{Err: ErrNullArgument, Param: param}
}

// NewOutOfRangeError returns an ArgumentError for an out of range argument.
func NewOutOfRangeError(param string, value any) *ArgumentError {
	return &ArgumentError{Err: ErrOutOfRange, Param: param, Value: value}
}

func (e *ArgumentError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s (parameter '%s', actual value %v)", e.Err, e.Param, e.Value)
	}
	return fmt.Sprintf("%s (parameter '%s')", e.Err, e.Param)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// ParamName returns the parameter name carried by err, if any.
func ParamName(err error) string {
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return argErr.Param
	}
	return ""
}

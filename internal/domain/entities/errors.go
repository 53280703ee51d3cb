package entities

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrMalformedEntry    = errors.New("malformed entry")
	ErrNotNumeric        = errors.New("value is not numeric")
	ErrUnsupported       = errors.New("unsupported operation")
	ErrStoreInaccessible = errors.New("store file inaccessible")
)

// IOError reports a failure opening, reading or writing the backing file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrStoreInaccessible }

// ParseError reports a line or entry that does not have the expected token shape.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Line, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrMalformedEntry }

// ConversionError reports a field expected to be numeric that is not.
type ConversionError struct {
	Attribute Attribute
	Value     string
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s %q: %v", e.Attribute, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrNotNumeric }

// UnsupportedOperationError reports an unknown operation or attribute.
type UnsupportedOperationError struct {
	Kind  string
	Value string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Kind, e.Value)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupported }

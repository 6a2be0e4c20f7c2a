package form

import (
	"errors"
	"strconv"
	"strings"
)

// Position identifies which half of a pair was being serialized when an error occurred.
type Position string

const (
	PositionKey   Position = "key"
	PositionValue Position = "value"
)

// Error reports a value whose shape cannot be represented as a flat key=value pair.
type Error struct {
	Position Position // key or value
	Shape    string   // Go type (or description) of the rejected value
	Key      string   // resolved key, only set for value errors
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("form: unsupported ")
	b.WriteString(string(e.Position))

	if e.Key != "" {
		b.WriteString(" at ")
		b.WriteString(strconv.Quote(e.Key))
	}

	if e.Shape != "" {
		b.WriteString(": ")
		b.WriteString(e.Shape)
	}

	return b.String()
}

// Is reports whether target is an *Error for the same position.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Position == t.Position
	}
	return false
}

var (
	// ErrUnsupportedKey matches any error raised in key position.
	ErrUnsupportedKey = &Error{Position: PositionKey}
	// ErrUnsupportedValue matches any error raised in value position.
	ErrUnsupportedValue = &Error{Position: PositionValue}
	// ErrNotRecord is returned when a top-level value is not a struct, map or []Entry.
	ErrNotRecord = errors.New("form: top-level value must be a struct, map or []Entry")
)

func unsupportedKey(shape string) *Error {
	return &Error{Position: PositionKey, Shape: shape}
}

func unsupportedValue(key, shape string) *Error {
	return &Error{Position: PositionValue, Key: key, Shape: shape}
}

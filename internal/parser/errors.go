// internal/parser/errors.go
package parser

import (
	"fmt"

	"github.com/xkilldash9x/onegui/internal/style"
)

const (
	ErrCodeSyntax          style.ErrorCode = "STYLE_SHEET_SYNTAX"
	ErrCodeUnknownProperty style.ErrorCode = "UNKNOWN_PROPERTY"
)

// SyntaxError is a misplaced delimiter or an empty name, property or value.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d and column %d", e.Msg, e.Line, e.Column)
}

func (e *SyntaxError) Code() style.ErrorCode { return ErrCodeSyntax }

// UnknownPropertyError names a property that is not in the whitelist.
type UnknownPropertyError struct {
	Property string
	Line     int
	Column   int
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("invalid property name %q at line %d and column %d", e.Property, e.Line, e.Column)
}

func (e *UnknownPropertyError) Code() style.ErrorCode { return ErrCodeUnknownProperty }

// ValueError wraps a failure to convert a property value, keeping its position in the source.
type ValueError struct {
	Style    string
	Property string
	Line     int
	Column   int
	Err      error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("style %q, property %s at line %d and column %d: %v", e.Style, e.Property, e.Line, e.Column, e.Err)
}

// Unwrap exposes the style error (malformed dimension, colour or enum value).
func (e *ValueError) Unwrap() error { return e.Err }

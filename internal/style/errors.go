// internal/style/errors.go
package style

import "fmt"

// ErrorCode tags an error kind for structured log fields.
type ErrorCode string

const (
	ErrCodeMalformedDimension  ErrorCode = "MALFORMED_DIMENSION"
	ErrCodeUnsupportedRelation ErrorCode = "UNSUPPORTED_DIMENSION_RELATION"
	ErrCodeMalformedColor      ErrorCode = "MALFORMED_COLOR"
	ErrCodeInvalidEnumValue    ErrorCode = "INVALID_ENUM_VALUE"
	ErrCodeMissingStyle        ErrorCode = "MISSING_STYLE"
)

// Coded is implemented by every typed error in this module so callers can log a stable code.
type Coded interface {
	Code() ErrorCode
}

// MalformedDimensionError reports a dimension or font size that could not be parsed or is out of range.
type MalformedDimensionError struct {
	Input  string
	Reason string
	Err    error // strconv failure, if any
}

func (e *MalformedDimensionError) Error() string {
	return fmt.Sprintf("malformed dimension %q: %s", e.Input, e.Reason)
}

func (e *MalformedDimensionError) Unwrap() error   { return e.Err }
func (e *MalformedDimensionError) Code() ErrorCode { return ErrCodeMalformedDimension }

// NewMalformedDimensionError creates a new MalformedDimensionError.
func NewMalformedDimensionError(input, reason string, err error) *MalformedDimensionError {
	return &MalformedDimensionError{Input: input, Reason: reason, Err: err}
}

// UnsupportedDimensionRelationError is returned when a dimension is relative to the axis it resolves,
// or when a height-relative width is chained through a width-relative height.
type UnsupportedDimensionRelationError struct {
	Kind DimensionType
	Axis string // "width" or "height"
}

func (e *UnsupportedDimensionRelationError) Error() string {
	return fmt.Sprintf("dimension of type %s is not allowed when resolving %s", e.Kind, e.Axis)
}

func (e *UnsupportedDimensionRelationError) Code() ErrorCode { return ErrCodeUnsupportedRelation }

// NewUnsupportedDimensionRelationError creates a new UnsupportedDimensionRelationError.
func NewUnsupportedDimensionRelationError(kind DimensionType, axis string) *UnsupportedDimensionRelationError {
	return &UnsupportedDimensionRelationError{Kind: kind, Axis: axis}
}

// MalformedColorError reports a colour literal that is neither #RRGGBBAA nor a known name,
// or a component outside [0,1].
type MalformedColorError struct {
	Input string
}

func (e *MalformedColorError) Error() string {
	return fmt.Sprintf("malformed color %q", e.Input)
}

func (e *MalformedColorError) Code() ErrorCode { return ErrCodeMalformedColor }

// InvalidEnumValueError names the enumerated property and the literal that matched none of its values.
type InvalidEnumValueError struct {
	Property string
	Value    string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Property)
}

func (e *InvalidEnumValueError) Code() ErrorCode { return ErrCodeInvalidEnumValue }

// NewInvalidEnumValueError creates a new InvalidEnumValueError.
func NewInvalidEnumValueError(property, value string) *InvalidEnumValueError {
	return &InvalidEnumValueError{Property: property, Value: value}
}

// MissingStyleError is returned when a component reaches layout without a resolvable style.
type MissingStyleError struct {
	ID string
}

func (e *MissingStyleError) Error() string {
	return fmt.Sprintf("no style found for component %q", e.ID)
}

func (e *MissingStyleError) Code() ErrorCode { return ErrCodeMissingStyle }

// NewMissingStyleError creates a new MissingStyleError.
func NewMissingStyleError(id string) *MissingStyleError {
	return &MissingStyleError{ID: id}
}

// internal/style/dimension.go
package style

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DimensionType says how a Dimension is measured.
type DimensionType int

const (
	// Pixel is an absolute size in pixels ("px").
	Pixel DimensionType = iota
	// Percent is relative to the parent extent on the same axis ("%" or no suffix).
	Percent
	// PercentWidth is relative to the component's own width ("%w").
	PercentWidth
	// PercentHeight is relative to the component's own height ("%h").
	PercentHeight
)

type dimensionSpec struct {
	suffix   string
	min, max float32
}

var dimensionSpecs = map[DimensionType]dimensionSpec{
	Pixel:         {suffix: "px", min: -32768, max: 32767},
	Percent:       {suffix: "%", min: 0, max: 100},
	PercentWidth:  {suffix: "%w", min: 0, max: 100},
	PercentHeight: {suffix: "%h", min: 0, max: 100},
}

// suffixOrder is the detection order. "%" must come after "%w" and "%h".
var suffixOrder = []DimensionType{Pixel, PercentWidth, PercentHeight, Percent}

func (t DimensionType) String() string {
	switch t {
	case Pixel:
		return "px"
	case Percent:
		return "%"
	case PercentWidth:
		return "%w"
	case PercentHeight:
		return "%h"
	}
	return "DimensionType(" + strconv.Itoa(int(t)) + ")"
}

// Dimension is an immutable size tagged with its measurement kind.
// The zero value is 0px.
type Dimension struct {
	Type  DimensionType
	Value float32
}

// ZeroDimension is the default for margins and paddings.
var ZeroDimension = Dimension{Type: Pixel, Value: 0}

// NewDimension validates value against the range allowed for kind.
func NewDimension(kind DimensionType, value float32) (Dimension, error) {
	spec, ok := dimensionSpecs[kind]
	if !ok {
		return Dimension{}, NewMalformedDimensionError(formatFloat(value), "unknown dimension type "+kind.String(), nil)
	}
	if isNaNOrInf(value) {
		return Dimension{}, NewMalformedDimensionError(formatFloat(value)+spec.suffix, "value is not finite", nil)
	}
	if value < spec.min || value > spec.max {
		return Dimension{}, NewMalformedDimensionError(formatFloat(value)+spec.suffix,
			"value must be between "+formatFloat(spec.min)+" and "+formatFloat(spec.max), nil)
	}
	return Dimension{Type: kind, Value: value}, nil
}

// MustDimension is NewDimension for literals known to be valid. It panics otherwise.
func MustDimension(kind DimensionType, value float32) Dimension {
	d, err := NewDimension(kind, value)
	if err != nil {
		panic(err)
	}
	return d
}

// Px and Pct are shorthands used by defaults and tests.
func Px(v float32) Dimension  { return MustDimension(Pixel, v) }
func Pct(v float32) Dimension { return MustDimension(Percent, v) }

// ParseDimension reads "<number><suffix>" where suffix is one of "px", "%w", "%h", "%" or empty.
// An empty suffix means Percent.
func ParseDimension(input string) (Dimension, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Dimension{}, NewMalformedDimensionError(input, "empty value", nil)
	}

	kind := Percent
	number := s
	for _, t := range suffixOrder {
		suffix := dimensionSpecs[t].suffix
		if strings.HasSuffix(s, suffix) {
			kind = t
			number = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	f, err := strconv.ParseFloat(number, 32)
	if err != nil {
		return Dimension{}, NewMalformedDimensionError(input, "not a number", err)
	}
	d, err := NewDimension(kind, float32(f))
	var mde *MalformedDimensionError
	if errors.As(err, &mde) {
		return Dimension{}, NewMalformedDimensionError(input, mde.Reason, nil)
	}
	return d, err
}

// Equal compares kind and the exact bit pattern of the value.
func (d Dimension) Equal(o Dimension) bool {
	return d.Type == o.Type && math.Float32bits(d.Value) == math.Float32bits(o.Value)
}

// String renders the dimension in the form ParseDimension accepts.
func (d Dimension) String() string {
	return formatFloat(d.Value) + d.Type.String()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func isNaNOrInf(f float32) bool {
	f64 := float64(f)
	return math.IsNaN(f64) || math.IsInf(f64, 0)
}

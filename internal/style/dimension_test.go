package style

import (
	"errors"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		input string
		want  Dimension
	}{
		{"100px", Dimension{Type: Pixel, Value: 100}},
		{"-32768px", Dimension{Type: Pixel, Value: -32768}},
		{"12.5%", Dimension{Type: Percent, Value: 12.5}},
		{"40%w", Dimension{Type: PercentWidth, Value: 40}},
		{"60%h", Dimension{Type: PercentHeight, Value: 60}},
		{"50", Dimension{Type: Percent, Value: 50}},
		{"  7px ", Dimension{Type: Pixel, Value: 7}},
		{"0", Dimension{Type: Percent, Value: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDimension(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseDimension_RoundTrip(t *testing.T) {
	for _, kind := range []DimensionType{Pixel, Percent, PercentWidth, PercentHeight} {
		for _, v := range []float32{0, 1, 33.25, 99.5, 100} {
			d := MustDimension(kind, v)
			parsed, err := ParseDimension(d.String())
			require.NoError(t, err, d.String())
			assert.Equal(t, kind, parsed.Type)
			assert.Equal(t, v, parsed.Value)
		}
	}
}

func TestParseDimension_Malformed(t *testing.T) {
	inputs := []string{"", "px", "abc", "10pt", "101%", "-1%", "40000px", "-40000px", "120%w", "NaN", "Infpx", "1e40px"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDimension(in)
			require.Error(t, err)
			var mde *MalformedDimensionError
			require.True(t, errors.As(err, &mde), "expected MalformedDimensionError, got %T", err)
			assert.Equal(t, in, mde.Input)
			assert.Equal(t, ErrCodeMalformedDimension, mde.Code())
		})
	}
}

func TestDimensionEqual_BitExact(t *testing.T) {
	negZero := float32(0)
	negZero = -negZero
	a := Dimension{Type: Pixel, Value: 0}
	b := Dimension{Type: Pixel, Value: negZero}
	assert.False(t, a.Equal(b), "+0 and -0 differ in bit pattern")
	assert.True(t, a.Equal(ZeroDimension))
	assert.False(t, Px(10).Equal(Pct(10)))
}

func TestNewFontSize(t *testing.T) {
	fs, err := ParseFontSize("12px")
	require.NoError(t, err)
	assert.Equal(t, FontSize{Value: 12, Type: FontPixel}, fs)

	fs, err = ParseFontSize("1.5")
	require.NoError(t, err)
	assert.Equal(t, FontSize{Value: 1.5, Type: FontRelative}, fs)

	for _, bad := range []string{"0", "-2px", "big", ""} {
		_, err := ParseFontSize(bad)
		var mde *MalformedDimensionError
		assert.True(t, errors.As(err, &mde), bad)
	}
	assert.True(t, DefaultFontSize.Equal(FontSize{Value: 1, Type: FontRelative}))
}

func FuzzParseDimension(f *testing.F) {
	f.Add([]byte("10px"))
	f.Add([]byte("50%w"))
	f.Fuzz(func(t *testing.T, data []byte) {
		c := fuzz.NewConsumer(data)
		s, err := c.GetString()
		if err != nil {
			return
		}
		d, err := ParseDimension(s)
		if err != nil {
			return
		}
		spec := dimensionSpecs[d.Type]
		if d.Value < spec.min || d.Value > spec.max {
			t.Fatalf("%q parsed to out-of-range %v", s, d)
		}
		again, err := ParseDimension(d.String())
		if err != nil || !again.Equal(d) {
			t.Fatalf("%q did not round-trip through %q: %v", s, d.String(), err)
		}
	})
}

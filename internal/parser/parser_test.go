package parser

import (
	"errors"
	"strings"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/onegui/internal/style"
)

func TestParse_SharedBlock(t *testing.T) {
	sheet, err := ParseString("a,b{width:100px;color:#000000ff;}")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, sheet.Names())

	for _, id := range []string{"a", "b"} {
		st, ok := sheet.Lookup(id)
		require.True(t, ok, id)
		assert.True(t, st.Width.Equal(style.Px(100)), id)
		assert.Equal(t, style.Color{R: 0, G: 0, B: 0, A: 1}, st.Color, id)
		assert.True(t, st.Height.Equal(style.Pct(100)), "unset properties keep defaults")
	}
}

func TestParse_UnknownProperty(t *testing.T) {
	sheet, err := New(zaptest.NewLogger(t)).Parse(strings.NewReader("style1 {\n  width: 10px;\n  unknown: 123;\n}"))
	require.Error(t, err)
	assert.Nil(t, sheet)

	var upe *UnknownPropertyError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, "unknown", upe.Property)
	assert.Equal(t, 3, upe.Line)
	assert.Equal(t, 10, upe.Column)
	assert.Equal(t, ErrCodeUnknownProperty, upe.Code())
}

func TestParse_AllProperties(t *testing.T) {
	src := `
// full example
panel {
	width: 50%;             // half
	height: 40%w;
	marginLeft: 1px; marginRight: 2px; marginTop: 3px; marginBottom: 4px;
	paddingLeft: 5%; paddingRight: 6%; paddingTop: 7%h; paddingBottom: 8;
	backgroundImage: "images/bg.png";
	backgroundColor: navy;
	color: #ff0000ff;
	font: "fonts/Custom.ttf";
	fontSize: 18px;
	fontStyle: Bold;
	align: center;
	verticalAlign: MIDDLE;
	childLayout: down;
}
`
	sheet, err := ParseString(src)
	require.NoError(t, err)
	st, ok := sheet.Lookup("panel")
	require.True(t, ok)

	assert.True(t, st.Width.Equal(style.Pct(50)))
	assert.True(t, st.Height.Equal(style.MustDimension(style.PercentWidth, 40)))
	assert.True(t, st.Margin.Left.Equal(style.Px(1)))
	assert.True(t, st.Margin.Right.Equal(style.Px(2)))
	assert.True(t, st.Margin.Top.Equal(style.Px(3)))
	assert.True(t, st.Margin.Bottom.Equal(style.Px(4)))
	assert.True(t, st.Padding.Left.Equal(style.Pct(5)))
	assert.True(t, st.Padding.Right.Equal(style.Pct(6)))
	assert.True(t, st.Padding.Top.Equal(style.MustDimension(style.PercentHeight, 7)))
	assert.True(t, st.Padding.Bottom.Equal(style.Pct(8)))
	assert.Equal(t, "images/bg.png", st.BackgroundImage)
	assert.True(t, st.BackgroundColor.Equal(style.Navy))
	assert.True(t, st.Color.Equal(style.Red))
	assert.Equal(t, "fonts/Custom.ttf", st.Font)
	assert.Equal(t, style.FontSize{Value: 18, Type: style.FontPixel}, st.FontSize)
	assert.Equal(t, style.FontBold, st.FontStyle)
	assert.Equal(t, style.AlignCenter, st.Align)
	assert.Equal(t, style.VAlignMiddle, st.VerticalAlign)
	assert.Equal(t, style.StackDown, st.ChildLayout)
}

func TestParse_QuotedValues(t *testing.T) {
	tests := map[string]string{
		`"a.png"`: "a.png",
		`none`:    "",
		`null`:    "",
		`""`:      "",
		`"a.png`:  "",
		`a.png`:   "",
	}
	for value, want := range tests {
		t.Run(value, func(t *testing.T) {
			sheet, err := ParseString("x { backgroundImage: " + value + "; font: " + value + "; }")
			require.NoError(t, err)
			st, _ := sheet.Lookup("x")
			assert.Equal(t, want, st.BackgroundImage)
			assert.Equal(t, want, st.Font)
		})
	}
}

func TestParse_MultiLineValueAndComments(t *testing.T) {
	src := "a {\n  width:\n    25px\n  ; // trailing\n  height: 10px; // c: ; { }\n}\n// b { width: 1px; }\n"
	sheet, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, sheet.Names())
	st, _ := sheet.Lookup("a")
	assert.True(t, st.Width.Equal(style.Px(25)))
	assert.True(t, st.Height.Equal(style.Px(10)))
}

func TestParse_EmptyNamesAreSkipped(t *testing.T) {
	sheet, err := ParseString("a,{width:10px;} ,b, ,{height:5px;}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sheet.Names())
	a, _ := sheet.Lookup("a")
	assert.True(t, a.Width.Equal(style.Px(10)))
	b, _ := sheet.Lookup("b")
	assert.True(t, b.Height.Equal(style.Px(5)))
}

func TestParse_LaterDeclarationsWin(t *testing.T) {
	sheet, err := ParseString("a { width: 10px; } a, b { width: 20px; height: 5px; }")
	require.NoError(t, err)
	a, _ := sheet.Lookup("a")
	b, _ := sheet.Lookup("b")
	assert.True(t, a.Width.Equal(style.Px(20)))
	assert.True(t, a.Height.Equal(style.Px(5)))
	assert.True(t, b.Width.Equal(style.Px(20)))
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		line   int
		column int
	}{
		{"colon in style name", "a: {", 1, 2},
		{"semicolon in property", "a { width; }", 1, 10},
		{"brace in value", "a { width: 1px }", 1, 16},
		{"comma in block", "a { , }", 1, 5},
		{"nested block", "a { b {", 1, 7},
		{"empty property", "a {\n : 1px; }", 2, 2},
		{"empty value", "a { width: ; }", 1, 12},
		{"missing style name", "{ width: 1px; }", 1, 13},
		{"property without colon", "a { width }", 1, 11},
		{"unterminated block", "a { width: 1px;", 1, 15},
		{"dangling name list", "a, b", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := ParseString(tt.src)
			assert.Nil(t, sheet)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.column, se.Column)
			assert.Equal(t, ErrCodeSyntax, se.Code())
		})
	}
}

func TestParse_ValueErrors(t *testing.T) {
	_, err := ParseString("a { align: sideways; }")
	var iev *style.InvalidEnumValueError
	require.True(t, errors.As(err, &iev))
	assert.Equal(t, "sideways", iev.Value)

	var ve *ValueError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "a", ve.Style)
	assert.Equal(t, "align", ve.Property)

	_, err = ParseString("a { width: 120%; }")
	var mde *style.MalformedDimensionError
	assert.True(t, errors.As(err, &mde))

	_, err = ParseString("a { color: orange; }")
	var mce *style.MalformedColorError
	assert.True(t, errors.As(err, &mce))
}

func TestParse_EmptySource(t *testing.T) {
	sheet, err := ParseString("  // nothing here\n\n")
	require.NoError(t, err)
	assert.Equal(t, 0, sheet.Len())
}

func TestProperties(t *testing.T) {
	assert.ElementsMatch(t, []string{
		"width", "height", "marginLeft", "marginRight", "marginTop", "marginBottom",
		"paddingLeft", "paddingRight", "paddingTop", "paddingBottom", "backgroundImage",
		"backgroundColor", "color", "font", "fontSize", "fontStyle", "align", "verticalAlign", "childLayout",
	}, Properties())
}

func FuzzParse(f *testing.F) {
	f.Add([]byte("a,b{width:100px;color:#000000ff;}"))
	f.Add([]byte("x { // c\n childLayout: up; }"))
	f.Fuzz(func(t *testing.T, data []byte) {
		c := fuzz.NewConsumer(data)
		src, err := c.GetString()
		if err != nil {
			return
		}
		sheet, err := ParseString(src)
		if err != nil {
			assert.Nil(t, sheet)
			return
		}
		for _, name := range sheet.Names() {
			st, ok := sheet.Lookup(name)
			require.True(t, ok)
			require.NotNil(t, st)
		}
	})
}

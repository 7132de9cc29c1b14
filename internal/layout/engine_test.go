package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/parser"
	"github.com/xkilldash9x/onegui/internal/style"
)

// -- Test Helpers --

func newTree(t *testing.T, children ...string) *component.Tree {
	t.Helper()
	tree, err := component.NewTree("root")
	require.NoError(t, err)
	for _, c := range children {
		_, err := tree.Add("root", component.KindPanel, c)
		require.NoError(t, err)
	}
	return tree
}

func runLayout(t *testing.T, tree *component.Tree, sheetSrc string, w, h float32) Table {
	t.Helper()
	sheet, err := parser.ParseString(sheetSrc)
	require.NoError(t, err)
	table, _, err := NewEngine(zaptest.NewLogger(t)).Run(tree, sheet, w, h)
	require.NoError(t, err)
	return table
}

// -- Test Cases --

func TestLayout_TwoHalves(t *testing.T) {
	tree := newTree(t, "a", "b")
	table := runLayout(t, tree, `
root { childLayout: right; }
a, b { width: 50%; height: 50px; verticalAlign: top; }
`, 200, 100)

	want := Table{
		"root": {X: 0, Y: 0, Width: 200, Height: 100, Visible: true},
		"a":    {X: 0, Y: 0, Width: 100, Height: 50, Visible: true},
		"b":    {X: 100, Y: 0, Width: 100, Height: 50, Visible: true},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_Idempotent(t *testing.T) {
	tree := newTree(t, "a", "b", "c")
	_, err := tree.Add("b", component.KindLabel, "b1")
	require.NoError(t, err)
	src := `
root { paddingLeft: 3%; paddingTop: 7px; childLayout: left; verticalAlign: middle; }
a { width: 33.3%; height: 21%h; marginLeft: 1.5px; }
a { height: 17%; }
b { width: 12.7%; height: 40%w; marginRight: 2%; childLayout: up; align: center; }
b1 { width: 50%; height: 30%; marginBottom: 3px; }
c { width: 13px; height: 17px; }
`
	first := runLayout(t, tree, src, 1023, 611)
	second := runLayout(t, tree, src, 1023, 611)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("layout is not idempotent (-first +second):\n%s", diff)
	}
	assert.Len(t, first, 5)
}

func TestLayout_Padding(t *testing.T) {
	tree := newTree(t, "a", "b")
	table := runLayout(t, tree, `
root { paddingLeft: 10px; paddingRight: 10px; paddingTop: 10px; paddingBottom: 10px; }
a, b { width: 50%; height: 50%; }
`, 200, 100)

	assert.Equal(t, Info{X: 10, Y: 10, Width: 90, Height: 40, Visible: true}, table["a"])
	assert.Equal(t, Info{X: 100, Y: 10, Width: 90, Height: 40, Visible: true}, table["b"])
}

func TestLayout_HorizontalMirror(t *testing.T) {
	right := runLayout(t, newTree(t, "a", "b"), `
root { childLayout: right; }
a { width: 30px; height: 10px; marginLeft: 5px; marginRight: 10px; }
b { width: 20px; height: 10px; marginLeft: 3px; marginRight: 7px; }
`, 200, 100)
	left := runLayout(t, newTree(t, "a", "b"), `
root { childLayout: left; }
a { width: 30px; height: 10px; marginLeft: 10px; marginRight: 5px; }
b { width: 20px; height: 10px; marginLeft: 7px; marginRight: 3px; }
`, 200, 100)

	assert.Equal(t, float32(5), right["a"].X)
	assert.Equal(t, float32(48), right["b"].X)
	for _, id := range []component.ID{"a", "b"} {
		assert.Equal(t, 200-right[id].X-right[id].Width, left[id].X, string(id))
		assert.Equal(t, right[id].Y, left[id].Y, string(id))
	}
}

func TestLayout_VerticalMirror(t *testing.T) {
	down := runLayout(t, newTree(t, "a", "b"), `
root { childLayout: down; }
a { width: 10px; height: 30px; marginTop: 5px; marginBottom: 10px; }
b { width: 10px; height: 20px; marginTop: 3px; marginBottom: 7px; }
`, 100, 200)
	up := runLayout(t, newTree(t, "a", "b"), `
root { childLayout: up; }
a { width: 10px; height: 30px; marginTop: 10px; marginBottom: 5px; }
b { width: 10px; height: 20px; marginTop: 7px; marginBottom: 3px; }
`, 100, 200)

	assert.Equal(t, float32(5), down["a"].Y)
	assert.Equal(t, float32(48), down["b"].Y)
	for _, id := range []component.ID{"a", "b"} {
		assert.Equal(t, 200-down[id].Y-down[id].Height, up[id].Y, string(id))
		assert.Equal(t, down[id].X, up[id].X, string(id))
	}
}

func TestLayout_CrossAxisAlignment(t *testing.T) {
	tests := []struct {
		name  string
		root  string
		wantX float32
		wantY float32
	}{
		{"top", "childLayout: right; verticalAlign: top; paddingTop: 4px;", 0, 6},
		{"bottom", "childLayout: right; verticalAlign: bottom; paddingBottom: 4px;", 0, 100 - 20 - 4 - 3},
		{"middle ignores margins", "childLayout: right; verticalAlign: middle;", 0, 40},
		{"left", "childLayout: down; align: left; paddingLeft: 4px;", 4 + 1, 2},
		{"right", "childLayout: down; align: right; paddingRight: 4px;", 200 - 30 - 4 - 1, 2},
		{"center ignores margins", "childLayout: down; align: center;", 85, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := runLayout(t, newTree(t, "a"), "root { "+tt.root+" }\n"+
				"a { width: 30px; height: 20px; marginTop: 2px; marginBottom: 3px; marginLeft: 1px; marginRight: 1px; }", 200, 100)
			got := table["a"]
			if tt.name == "top" || tt.name == "bottom" || tt.name == "middle ignores margins" {
				assert.Equal(t, float32(1), got.X, "main axis advances by marginLeft")
				assert.Equal(t, tt.wantY, got.Y)
				return
			}
			assert.Equal(t, tt.wantX, got.X)
			assert.Equal(t, tt.wantY, got.Y)
		})
	}
}

func TestLayout_NestedContainersAreRelative(t *testing.T) {
	tree := newTree(t, "side", "main")
	_, err := tree.Add("main", component.KindLabel, "title")
	require.NoError(t, err)
	_, err = tree.Add("main", component.KindButton, "ok")
	require.NoError(t, err)

	table := runLayout(t, tree, `
root { childLayout: right; }
side { width: 25%; height: 100%; }
main { width: 75%; height: 100%; childLayout: down; paddingTop: 10px; }
title { width: 100%; height: 20px; }
ok { width: 50%; height: 30px; marginTop: 5px; }
`, 400, 300)

	assert.Equal(t, Info{X: 100, Y: 0, Width: 300, Height: 300, Visible: true}, table["main"])
	assert.Equal(t, Info{X: 0, Y: 10, Width: 300, Height: 20, Visible: true}, table["title"])
	assert.Equal(t, Info{X: 0, Y: 35, Width: 150, Height: 30, Visible: true}, table["ok"])
}

func TestLayout_HiddenPropagates(t *testing.T) {
	tree := newTree(t, "panel")
	_, err := tree.Add("panel", component.KindLabel, "text")
	require.NoError(t, err)
	require.NoError(t, tree.SetHidden("panel", true))

	table := runLayout(t, tree, "root {} panel { width: 50%; } text { width: 10px; }", 100, 100)
	assert.False(t, table["panel"].Visible)
	assert.False(t, table["text"].Visible)
	assert.Equal(t, float32(50), table["panel"].Width, "hidden components keep their geometry")
}

func TestLayout_CenterIsNotImplemented(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	tree := newTree(t, "a")
	sheet, err := parser.ParseString("root { childLayout: center; } a { width: 1px; }")
	require.NoError(t, err)

	table, _, err := NewEngine(zap.New(core)).Run(tree, sheet, 10, 10)
	assert.Nil(t, table)
	assert.ErrorIs(t, err, ErrCenterLayoutNotImplemented)

	entries := logs.FilterField(zap.String("component", "root")).All()
	require.Len(t, entries, 1)
}

func TestLayout_ChildFailureAbortsPass(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	tree := newTree(t, "ok", "bad")
	sheet, err := parser.ParseString("root {} ok { width: 10px; } bad { width: 10%w; }")
	require.NoError(t, err)

	table, _, err := NewEngine(zap.New(core)).Run(tree, sheet, 10, 10)
	assert.Nil(t, table)
	var rel *style.UnsupportedDimensionRelationError
	require.True(t, errors.As(err, &rel))

	assert.Equal(t, 1, logs.FilterField(zap.String("component", "bad")).Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("component", "root")).Len())
}

func TestRun_MissingStyle(t *testing.T) {
	tree := newTree(t, "a", "b")
	sheet, err := parser.ParseString("root {} a {}")
	require.NoError(t, err)

	_, _, err = NewEngine(nil).Run(tree, sheet, 10, 10)
	var ms *style.MissingStyleError
	require.True(t, errors.As(err, &ms))
	assert.Equal(t, "b", ms.ID)
}

func TestResolveStyles_ButtonState(t *testing.T) {
	tree := newTree(t)
	_, err := tree.Add("root", component.KindButton, "ok")
	require.NoError(t, err)
	sheet, err := parser.ParseString("root {} ok { color: white; } ok.pressed { color: red; }")
	require.NoError(t, err)

	styles, err := ResolveStyles(tree, sheet)
	require.NoError(t, err)
	assert.True(t, styles["ok"].Color.Equal(style.White))

	require.NoError(t, tree.SetButtonState("ok", component.ButtonPressed))
	styles, err = ResolveStyles(tree, sheet)
	require.NoError(t, err)
	assert.True(t, styles["ok"].Color.Equal(style.Red))

	require.NoError(t, tree.SetButtonState("ok", component.ButtonHover))
	styles, err = ResolveStyles(tree, sheet)
	require.NoError(t, err)
	assert.True(t, styles["ok"].Color.Equal(style.White), "falls back to the plain id")
}

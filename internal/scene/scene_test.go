package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/layout"
)

const sampleScene = `
id: screen
children:
  - id: left
    kind: panel
    children:
      - {id: title, kind: label, text: "Hello"}
  - {id: ok, kind: button, text: "OK", state: hover}
  - {id: note, text: "quiet", hidden: true}
  - id: box
    children:
      - {id: inner}
`

func TestLoad(t *testing.T) {
	tree, err := Load(strings.NewReader(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, component.ID("screen"), tree.Root())
	assert.Equal(t, 7, tree.Len())
	assert.Equal(t, []component.ID{"left", "ok", "note", "box"}, tree.Children("screen"))

	root, _ := tree.Node("screen")
	assert.Equal(t, component.KindScreen, root.Kind)

	title, ok := tree.Node("title")
	require.True(t, ok)
	assert.Equal(t, component.KindLabel, title.Kind)
	assert.Equal(t, "Hello", title.Text)
	assert.Equal(t, component.ID("left"), title.Parent)

	button, _ := tree.Node("ok")
	assert.Equal(t, component.KindButton, button.Kind)
	assert.Equal(t, component.ButtonHover, button.State)

	note, _ := tree.Node("note")
	assert.Equal(t, component.KindLabel, note.Kind, "leaves default to label")
	assert.True(t, note.Hidden)

	box, _ := tree.Node("box")
	assert.Equal(t, component.KindPanel, box.Kind, "nodes with children default to panel")
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"empty document":       "",
		"missing root id":      "children: [{id: a}]",
		"root is not a screen": "id: r\nkind: panel",
		"unknown kind":         "id: r\nchildren: [{id: a, kind: slider}]",
		"nested screen":        "id: r\nchildren: [{id: a, kind: screen}]",
		"label with children":  "id: r\nchildren: [{id: a, kind: label, children: [{id: b}]}]",
		"duplicate id":         "id: r\nchildren: [{id: a}, {id: a}]",
		"text on a panel":      "id: r\nchildren: [{id: a, kind: panel, text: hi}]",
		"bad button state":     "id: r\nchildren: [{id: a, kind: button, state: melted}]",
		"state on a label":     "id: r\nchildren: [{id: a, state: pressed}]",
		"unknown field":        "id: r\ncolour: red",
		"malformed yaml":       "id: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			assert.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmptyScene))
}

func TestLoad_GeneratesMissingIDs(t *testing.T) {
	tree, err := Build(&Node{ID: "root", Children: []*Node{{Text: "anonymous"}}})
	require.NoError(t, err)
	children := tree.Children("root")
	require.Len(t, children, 1)
	assert.NotEmpty(t, children[0])
}

func sampleTable() layout.Table {
	return layout.Table{
		"b":    {X: 100, Y: 0, Width: 100, Height: 50, Visible: true},
		"root": {Width: 200, Height: 100, Visible: true},
		"a":    {X: 0, Y: 0, Width: 100, Height: 50.5, Visible: false},
	}
}

func TestRows_SortedByID(t *testing.T) {
	rows := Rows(sampleTable())
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "b", rows[1].ID)
	assert.Equal(t, "root", rows[2].ID)
	assert.Equal(t, Row{ID: "a", Width: 100, Height: 50.5}, rows[0])
}

func TestWriteGeometry(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteGeometry(&buf, sampleTable(), "json"))
		var rows []Row
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
		assert.Equal(t, Rows(sampleTable()), rows)
		assert.Contains(t, buf.String(), `"id": "a"`)
	})
	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteGeometry(&buf, sampleTable(), "yaml"))
		var rows []Row
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
		assert.Equal(t, Rows(sampleTable()), rows)
	})
	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, WriteGeometry(&bytes.Buffer{}, sampleTable(), "toml"))
	})
}

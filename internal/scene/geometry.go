// internal/scene/geometry.go
package scene

import (
	"fmt"
	"io"
	"sort"

	json "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/onegui/internal/layout"
)

// Row is one component's geometry in an exported table.
type Row struct {
	ID      string  `json:"id" yaml:"id"`
	X       float32 `json:"x" yaml:"x"`
	Y       float32 `json:"y" yaml:"y"`
	Width   float32 `json:"width" yaml:"width"`
	Height  float32 `json:"height" yaml:"height"`
	Visible bool    `json:"visible" yaml:"visible"`
}

// Rows flattens a geometry table, sorted by id.
func Rows(table layout.Table) []Row {
	rows := make([]Row, 0, len(table))
	for id, info := range table {
		rows = append(rows, Row{
			ID:      string(id),
			X:       info.X,
			Y:       info.Y,
			Width:   info.Width,
			Height:  info.Height,
			Visible: info.Visible,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// WriteGeometry writes the table to w as "json" or "yaml".
func WriteGeometry(w io.Writer, table layout.Table, format string) error {
	rows := Rows(table)
	switch format {
	case "json", "":
		enc := json.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding geometry as json: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding geometry as yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown geometry format %q (want json or yaml)", format)
	}
}

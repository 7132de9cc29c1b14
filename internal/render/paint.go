// internal/render/paint.go
package render

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/fogleman/gg"

	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/layout"
	"github.com/xkilldash9x/onegui/internal/style"
)

type paintContext struct {
	pipeline *Pipeline
	node     *component.Node
	style    *style.Style
	width    int
	height   int
	children []renderedChild
}

type painter func(pc *paintContext, dst *image.RGBA) error

// painterFor maps each kind to its paint routine. The set of kinds is closed.
func painterFor(k component.Kind) painter {
	switch k {
	case component.KindScreen, component.KindPanel:
		return paintContainer
	case component.KindLabel, component.KindButton:
		return paintText
	default:
		return func(*paintContext, *image.RGBA) error {
			return fmt.Errorf("no painter for component kind %s", k)
		}
	}
}

// paintBackground fills the background colour and stretches the background image over it.
func paintBackground(pc *paintContext, dc *gg.Context) error {
	st := pc.style
	if st.BackgroundColor.A > 0 {
		dc.SetColor(st.BackgroundColor.NRGBA())
		dc.DrawRectangle(0, 0, float64(pc.width), float64(pc.height))
		dc.Fill()
	}
	if st.BackgroundImage == "" {
		return nil
	}
	img, err := pc.pipeline.images.Image(st.BackgroundImage, pc.width, pc.height)
	if err != nil {
		return fmt.Errorf("background of %q: %w", pc.node.ID, err)
	}
	dc.DrawImage(img, 0, 0)
	return nil
}

func paintContainer(pc *paintContext, dst *image.RGBA) error {
	dc := gg.NewContextForRGBA(dst)
	if err := paintBackground(pc, dc); err != nil {
		return err
	}
	overlay := pc.pipeline.cfg.ChildOverlayAlpha
	for _, c := range pc.children {
		x, y := int(math32.Round(c.info.X)), int(math32.Round(c.info.Y))
		dc.DrawImage(c.img, x, y)
		if overlay > 0 {
			b := c.img.Bounds()
			dc.SetRGBA(0, 0, 0, overlay)
			dc.DrawRectangle(float64(x), float64(y), float64(b.Dx()), float64(b.Dy()))
			dc.Fill()
		}
	}
	return nil
}

// paintText draws a label or button: background, then one line of text placed
// by align and verticalAlign inside the padding.
func paintText(pc *paintContext, dst *image.RGBA) error {
	dc := gg.NewContextForRGBA(dst)
	if err := paintBackground(pc, dc); err != nil {
		return err
	}
	text := pc.node.Text
	if text == "" {
		return nil
	}

	st := pc.style
	px := layout.FontPixelHeight(pc.pipeline.viewportHeight, st.FontSize)
	face, err := pc.pipeline.fonts.Face(st.Font, px, st.FontStyle)
	if err != nil {
		return fmt.Errorf("font of %q: %w", pc.node.ID, err)
	}
	w, h := float32(pc.width), float32(pc.height)
	padTop, padRight, padBottom, padLeft, err := layout.Padding(st, w, h)
	if err != nil {
		return err
	}

	ext := face.Measure(text)
	x, y := textOrigin(st, ext.Width, ext.Ascent, ext.Descent, w, h, padTop, padRight, padBottom, padLeft)

	dc.SetFontFace(face)
	dc.SetColor(st.Color.NRGBA())
	dc.DrawString(text, float64(x), float64(y))
	return nil
}

// textOrigin returns the pen position of the text's baseline start.
func textOrigin(st *style.Style, textWidth, ascent, descent, w, h, padTop, padRight, padBottom, padLeft float32) (float32, float32) {
	var x float32
	switch st.Align {
	case style.AlignRight:
		x = w - padRight - textWidth
	case style.AlignCenter:
		x = padLeft + (w-padLeft-padRight-textWidth)/2
	default:
		x = padLeft
	}

	var y float32
	switch st.VerticalAlign {
	case style.VAlignBottom:
		y = h - padBottom - descent
	case style.VAlignMiddle:
		y = padTop + (h-padTop-padBottom-(ascent+descent))/2 + ascent
	default:
		y = padTop + ascent
	}
	return math32.Round(x), math32.Round(y)
}

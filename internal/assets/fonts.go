// internal/assets/fonts.go
package assets

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/xkilldash9x/onegui/internal/style"
)

// FontKey identifies one sized face.
type FontKey struct {
	Family string
	Size   int
	Style  style.FontStyle
}

// Extents are the measured bounds of a run of text, in pixels.
type Extents struct {
	Width      float32
	Ascent     float32
	Descent    float32
	LineHeight float32
}

// builtinFamilies maps family names to the Go fonts, indexed by style.FontStyle.
var builtinFamilies = map[string][4][]byte{
	"":        {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	"go":      {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	"go mono": {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
	"gomono":  {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
}

// fontSource is one parsed font file. Both parsed forms are read-only and shared.
type fontSource struct {
	sfnt  *opentype.Font
	shape *gotext.Font
}

// Face is a sized font face. It draws through the embedded font.Face and measures
// with HarfBuzz shaping. A Face is not safe for concurrent use.
type Face struct {
	font.Face
	Key FontKey

	shape   *gotext.Font
	shapers *sync.Pool
}

// Fonts resolves font families to sized faces and caches them by FontKey.
type Fonts struct {
	logger  *zap.Logger
	fsys    fs.FS
	hinting font.Hinting
	shapers sync.Pool

	mu      sync.Mutex
	faces   *lru.Cache
	sources map[string]*fontSource
}

// NewFonts creates a font service reading non-builtin families from fsys.
// capacity bounds the number of cached faces.
func NewFonts(logger *zap.Logger, fsys fs.FS, capacity int, antialias bool) *Fonts {
	if logger == nil {
		logger = zap.NewNop()
	}
	hinting := font.HintingFull
	if !antialias {
		hinting = font.HintingNone
	}
	return &Fonts{
		logger:  logger.Named("fonts"),
		fsys:    fsys,
		hinting: hinting,
		shapers: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		faces:   lru.New(capacity),
		sources: make(map[string]*fontSource),
	}
}

// Face returns the face for family at px pixels in the given style.
// Family is a builtin name ("", "Go", "Go Mono") or a font file path inside the asset root.
// File fonts have a single style; variant is ignored for them.
func (f *Fonts) Face(family string, px int, variant style.FontStyle) (*Face, error) {
	if px < 1 {
		px = 1
	}
	if variant < style.FontNormal || variant > style.FontBoldItalic {
		variant = style.FontNormal
	}
	key := FontKey{Family: family, Size: px, Style: variant}

	f.mu.Lock()
	defer f.mu.Unlock()

	if v, ok := f.faces.Get(key); ok {
		return v.(*Face), nil
	}

	src, err := f.source(family, variant)
	if err != nil {
		return nil, err
	}
	xface, err := opentype.NewFace(src.sfnt, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: f.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face %q at %dpx: %w", family, px, err)
	}
	face := &Face{Face: xface, Key: key, shape: src.shape, shapers: &f.shapers}
	f.faces.Add(key, face)
	f.logger.Debug("Created font face", zap.String("family", family), zap.Int("px", px), zap.Stringer("style", variant))
	return face, nil
}

// Len is the number of cached faces.
func (f *Fonts) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faces.Len()
}

// source returns the parsed font for a family, parsing it on first use. Callers hold f.mu.
func (f *Fonts) source(family string, variant style.FontStyle) (*fontSource, error) {
	var id string
	var data []byte
	normalized := strings.ToLower(strings.TrimSpace(family))
	if variants, ok := builtinFamilies[normalized]; ok {
		id = "builtin:" + normalized + ":" + variant.String()
		data = variants[variant]
	} else {
		name, err := assetPath(family)
		if err != nil {
			return nil, err
		}
		id = "file:" + name
		if src, ok := f.sources[id]; ok {
			return src, nil
		}
		if f.fsys == nil {
			return nil, fmt.Errorf("font %q: no asset root configured", family)
		}
		data, err = readAsset(f.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", family, err)
		}
	}
	if src, ok := f.sources[id]; ok {
		return src, nil
	}

	sfnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", family, err)
	}
	parsed, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing font %q for shaping: %w", family, err)
	}
	src := &fontSource{sfnt: sfnt, shape: parsed.Font}
	f.sources[id] = src
	return src, nil
}

// Measure shapes text and returns its advance width and the face's vertical metrics.
func (f *Face) Measure(text string) Extents {
	m := f.Metrics()
	ext := Extents{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    fixedToFloat(m.Descent),
		LineHeight: fixedToFloat(m.Height),
	}
	if text == "" {
		return ext
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f.shape),
		Size:      fixed.I(f.Key.Size),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	}
	shaper := f.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	f.shapers.Put(shaper)

	ext.Width = fixedToFloat(out.Advance)
	return ext
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

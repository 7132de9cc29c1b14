// internal/assets/images.go
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidAssetPath is returned for paths that escape the asset root.
var ErrInvalidAssetPath = errors.New("invalid asset path")

// Interpolation selects the scaler used when an image is resized to its box.
type Interpolation int

const (
	Nearest Interpolation = iota
	Bilinear
	CatmullRom
)

var interpolationNames = map[string]Interpolation{
	"nearest":    Nearest,
	"bilinear":   Bilinear,
	"catmullrom": CatmullRom,
}

// ParseInterpolation maps a config value to an Interpolation.
func ParseInterpolation(s string) (Interpolation, error) {
	if v, ok := interpolationNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	return Nearest, fmt.Errorf("unknown interpolation %q (want nearest, bilinear or catmullrom)", s)
}

func (i Interpolation) String() string {
	for name, v := range interpolationNames {
		if v == i {
			return name
		}
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case Bilinear:
		return draw.BiLinear
	case CatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// ImageKey identifies an image scaled to one size.
type ImageKey struct {
	Path          string
	Width, Height int
}

// Images loads images from the asset root and caches both the decoded
// originals and the scaled copies.
type Images struct {
	logger *zap.Logger
	fsys   fs.FS
	interp Interpolation

	mu      sync.Mutex
	decoded *lru.Cache
	scaled  *lru.Cache
}

// NewImages creates an image service over fsys. capacity bounds each cache.
func NewImages(logger *zap.Logger, fsys fs.FS, capacity int, interp Interpolation) *Images {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Images{
		logger:  logger.Named("images"),
		fsys:    fsys,
		interp:  interp,
		decoded: lru.New(capacity),
		scaled:  lru.New(capacity),
	}
}

// Image returns the image at p scaled to w by h. The result is shared and must not be modified.
func (im *Images) Image(p string, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("image %q: invalid target size %dx%d", p, w, h)
	}
	name, err := assetPath(p)
	if err != nil {
		return nil, err
	}
	key := ImageKey{Path: name, Width: w, Height: h}

	im.mu.Lock()
	if v, ok := im.scaled.Get(key); ok {
		im.mu.Unlock()
		return v.(*image.RGBA), nil
	}
	im.mu.Unlock()

	src, err := im.decode(name)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	} else {
		im.interp.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	im.mu.Lock()
	im.scaled.Add(key, dst)
	im.mu.Unlock()
	return dst, nil
}

func (im *Images) decode(name string) (image.Image, error) {
	im.mu.Lock()
	if v, ok := im.decoded.Get(name); ok {
		im.mu.Unlock()
		return v.(image.Image), nil
	}
	im.mu.Unlock()

	if im.fsys == nil {
		return nil, fmt.Errorf("image %q: no asset root configured", name)
	}
	data, err := readAsset(im.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", name, err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image %q: %w", name, err)
	}
	im.logger.Debug("Decoded image",
		zap.String("path", name),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))

	im.mu.Lock()
	im.decoded.Add(name, img)
	im.mu.Unlock()
	return img, nil
}

// Preload loads and scales every key with at most concurrency loads in flight.
// It stops at the first failure.
func (im *Images) Preload(ctx context.Context, keys []ImageKey, concurrency int) error {
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := im.Image(key.Path, key.Width, key.Height)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("preloading images: %w", err)
	}
	im.logger.Debug("Preloaded images", zap.Int("count", len(keys)))
	return nil
}

// Len reports the number of decoded and scaled images held.
func (im *Images) Len() (decoded, scaled int) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.decoded.Len(), im.scaled.Len()
}

// assetPath turns a style path into an fs.FS name rooted at the asset root.
func assetPath(p string) (string, error) {
	name := strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(p)), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetPath, p)
	}
	return name, nil
}

func readAsset(fsys fs.FS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, name)
}

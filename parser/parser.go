// Package parser defines the contract for device-specific map parsers
// and the embeddable base they share.
package parser

import (
	"github.com/vacmap/vacmap/config"
	"github.com/vacmap/vacmap/mapdata"
	"github.com/vacmap/vacmap/render"
)

// Parser is implemented by device-specific map parsers. Unpack strips
// the device's transport encoding (compression, encryption, framing)
// from a raw map payload; Parse turns the unpacked payload into map
// data.
type Parser interface {
	Unpack(raw []byte) ([]byte, error)
	Parse(payload []byte) (*mapdata.MapData, error)
}

// Base bundles the render configuration shared by concrete parsers and
// owns the image generator. Concrete parsers embed Base and use its
// accessors while building map images.
type Base struct {
	palette     *config.Palette
	sizes       *config.Sizes
	drawables   []config.Drawable
	imageConfig config.ImageConfig
	texts       []config.Text
	generator   *render.Generator
}

// NewBase creates a parser base with the given render configuration.
func NewBase(
	palette *config.Palette,
	sizes *config.Sizes,
	drawables []config.Drawable,
	imageConfig config.ImageConfig,
	texts []config.Text,
) *Base {
	return &Base{
		palette:     palette,
		sizes:       sizes,
		drawables:   drawables,
		imageConfig: imageConfig,
		texts:       texts,
		generator:   render.New(palette, sizes, drawables, imageConfig, texts),
	}
}

// Palette returns the configured palette.
func (b *Base) Palette() *config.Palette { return b.palette }

// Sizes returns the configured element sizes.
func (b *Base) Sizes() *config.Sizes { return b.sizes }

// ImageConfig returns the configured image geometry.
func (b *Base) ImageConfig() config.ImageConfig { return b.imageConfig }

// Generator returns the image generator built from the parser's
// render configuration.
func (b *Base) Generator() *render.Generator { return b.generator }

// CreateEmpty returns a MapData holding only the placeholder image
// with the given text. Used when no map is available yet.
func (b *Base) CreateEmpty(text string) *mapdata.MapData {
	m := mapdata.New(0, 0)
	m.Image = mapdata.NewEmptyImageData(b.generator.EmptyMap(text))
	return m
}

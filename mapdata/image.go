package mapdata

import (
	"encoding/json"
	"image"

	"github.com/vacmap/vacmap/config"
)

// ImageDimensions describes the geometry of a generated map image and
// how vacuum coordinates map onto it.
type ImageDimensions struct {
	Top      int
	Left     int
	Height   int
	Width    int
	Scale    float64
	Rotation float64
	// Transform converts a point from vacuum coordinates to untrimmed
	// map pixels. Supplied by the concrete parser.
	Transform func(Point) Point
}

// ToImage converts a point from vacuum coordinates to pixels of the
// trimmed, scaled map image. The Y axis is flipped: vacuums count from
// the bottom, images from the top.
func (d ImageDimensions) ToImage(p Point) Point {
	t := d.Transform(p)
	return Point{
		X: (t.X - float64(d.Left)) * d.Scale,
		Y: (float64(d.Height) - (t.Y - float64(d.Top)) - 1) * d.Scale,
	}
}

// ImageData carries the rendered map image together with its geometry.
type ImageData struct {
	// Size is the pixel count of the raw map block.
	Size       int
	Dimensions ImageDimensions
	// Empty is set when the map has no floor area yet.
	Empty bool
	// Image is the map image; the generator composites layers onto it.
	Image *image.RGBA
	// AdditionalLayers holds named overlay images provided by the
	// parser, drawn on demand (for example the cleaned-area layer).
	AdditionalLayers map[string]*image.RGBA
}

// NewImageData builds an ImageData, applying the percentage trims from
// the image configuration to the stated geometry. Layers with nil
// images are dropped.
func NewImageData(
	size, top, left, height, width int,
	cfg config.ImageConfig,
	img *image.RGBA,
	transform func(Point) Point,
	layers map[string]*image.RGBA,
) *ImageData {
	trimLeft := int(cfg.Trim.Left * float64(width) / 100)
	trimRight := int(cfg.Trim.Right * float64(width) / 100)
	trimTop := int(cfg.Trim.Top * float64(height) / 100)
	trimBottom := int(cfg.Trim.Bottom * float64(height) / 100)
	kept := map[string]*image.RGBA{}
	for name, layer := range layers {
		if layer != nil {
			kept[name] = layer
		}
	}
	return &ImageData{
		Size: size,
		Dimensions: ImageDimensions{
			Top:       top + trimBottom,
			Left:      left + trimLeft,
			Height:    height - trimTop - trimBottom,
			Width:     width - trimLeft - trimRight,
			Scale:     cfg.Scale,
			Rotation:  cfg.Rotate,
			Transform: transform,
		},
		Empty:            height == 0 || width == 0,
		Image:            img,
		AdditionalLayers: kept,
	}
}

// NewEmptyImageData wraps a placeholder image for the no-map case.
func NewEmptyImageData(img *image.RGBA) *ImageData {
	return NewImageData(0, 0, 0, 0, 0, config.DefaultImageConfig(), img,
		func(p Point) Point { return p }, nil)
}

// MarshalJSON reports the image geometry only; pixel data is not part
// of the JSON contract.
func (d *ImageData) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"size":     d.Size,
		"offset_y": d.Dimensions.Top,
		"offset_x": d.Dimensions.Left,
		"height":   d.Dimensions.Height,
		"width":    d.Dimensions.Width,
		"scale":    d.Dimensions.Scale,
		"rotation": d.Dimensions.Rotation,
	})
}

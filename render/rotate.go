package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/vacmap/vacmap/config"
	"github.com/vacmap/vacmap/mapdata"
)

// rotate applies the configured rotation to the map image. Right
// angles are rotated exactly by pixel transposition; other angles
// expand the canvas, fill it with the outside color and resample
// bilinearly. The geometry in mapdata.Point.Rotated matches this
// transform.
func (g *Generator) rotate(img *mapdata.ImageData) {
	switch img.Dimensions.Rotation {
	case 0:
	case 90:
		img.Image = rotate90(img.Image)
	case 180:
		img.Image = rotate180(img.Image)
	case 270:
		img.Image = rotate270(img.Image)
	default:
		img.Image = g.rotateExpand(img.Image, img.Dimensions.Rotation)
	}
}

// rotate90 rotates counterclockwise by 90 degrees.
func rotate90(src *image.RGBA) *image.RGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(y, w-1-x, src.RGBAAt(x, y))
		}
	}
	return dst
}

func rotate180(src *image.RGBA) *image.RGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(w-1-x, h-1-y, src.RGBAAt(x, y))
		}
	}
	return dst
}

// rotate270 rotates counterclockwise by 270 degrees.
func rotate270(src *image.RGBA) *image.RGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(h-1-y, x, src.RGBAAt(x, y))
		}
	}
	return dst
}

// rotateExpand rotates counterclockwise by an arbitrary angle in
// degrees, expanding the canvas to fit and filling the background with
// the map-outside color.
func (g *Generator) rotateExpand(src *image.RGBA, degrees float64) *image.RGBA {
	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	a := gg.Radians(degrees)
	wr := int(math.Abs(w*math.Cos(a)) + math.Abs(h*math.Sin(a)))
	hr := int(math.Abs(w*math.Sin(a)) + math.Abs(h*math.Cos(a)))
	dc := gg.NewContext(wr, hr)
	dc.SetColor(g.palette.Color(config.ColorMapOutside))
	dc.Clear()
	dc.Translate(float64(wr)/2, float64(hr)/2)
	dc.Rotate(-a)
	dc.Translate(-w/2, -h/2)
	dc.DrawImage(src, 0, 0)
	return toRGBA(dc.Image())
}

package render

import (
	"image"
	stddraw "image/draw"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/unicode/norm"

	"github.com/vacmap/vacmap/config"
	"github.com/vacmap/vacmap/mapdata"
)

// drawOnLayer runs fn against a drawing context. Opaque draws at
// native scale target the map image directly; translucent or scaled
// draws target a fresh transparent layer that is downscaled (when
// supersampled) and alpha-composited over the map image.
func drawOnLayer(img *mapdata.ImageData, scale float64, translucent bool, fn func(dc *gg.Context)) {
	if scale == 1 && !translucent {
		fn(gg.NewContextForRGBA(img.Image))
		return
	}
	w := img.Image.Bounds().Dx()
	h := img.Image.Bounds().Dy()
	dc := gg.NewContext(int(float64(w)*scale), int(float64(h)*scale))
	fn(dc)
	layer := dc.Image()
	if scale != 1 {
		layer = resizeBiLinear(layer, w, h)
	}
	compositeOver(img.Image, layer)
}

// compositeOver alpha-composites layer over base in place.
func compositeOver(base *image.RGBA, layer image.Image) {
	stddraw.Draw(base, base.Bounds(), layer, layer.Bounds().Min, stddraw.Over)
}

// resizeBiLinear downscales a supersampled layer back to the map
// image size.
func resizeBiLinear(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// ScaleNearest upscales a base map image by an integer-ish factor
// without smoothing. Concrete parsers use it to apply the configured
// image scale while keeping hard pixel edges between rooms and walls.
func ScaleNearest(src *image.RGBA, factor float64) *image.RGBA {
	if factor == 1 {
		return src
	}
	w := int(float64(src.Bounds().Dx()) * factor)
	h := int(float64(src.Bounds().Dy()) * factor)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	dst := image.NewRGBA(img.Bounds())
	stddraw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, stddraw.Src)
	return dst
}

func (g *Generator) drawCircle(img *mapdata.ImageData, center mapdata.Point, r float64, outline, fill config.Color) {
	p := center.ToImage(img.Dimensions)
	drawOnLayer(img, 1, config.IsTranslucent(outline, fill), func(dc *gg.Context) {
		dc.DrawCircle(p.X, p.Y, r)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(outline)
		dc.SetLineWidth(1)
		dc.Stroke()
	})
}

// drawPieSlice draws the charger marker: a half disc opening along the
// charger's heading.
func (g *Generator) drawPieSlice(img *mapdata.ImageData, position mapdata.Point, r float64, outline, fill config.Color) {
	p := position.ToImage(img.Dimensions)
	angle := -position.Heading()
	drawOnLayer(img, 1, config.IsTranslucent(outline, fill), func(dc *gg.Context) {
		dc.MoveTo(p.X, p.Y)
		dc.DrawArc(p.X, p.Y, r, gg.Radians(angle+90), gg.Radians(angle+270))
		dc.ClosePath()
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(outline)
		dc.SetLineWidth(1)
		dc.Stroke()
	})
}

// drawVacuum draws the vacuum marker: body with outline, a secondary
// outline for large radii, the bin cover chord, the lidar bump and the
// button.
func (g *Generator) drawVacuum(img *mapdata.ImageData, pos mapdata.Point, r float64, outline, fill config.Color) {
	heading := pos.Heading()
	point := pos.ToImage(img.Dimensions)
	rScaled := r / 16
	drawOnLayer(img, 1, config.IsTranslucent(outline, fill), func(dc *gg.Context) {
		// body
		dc.DrawCircle(point.X, point.Y, r)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(outline)
		dc.SetLineWidth(1)
		dc.Stroke()
		if r >= 8 {
			// secondary outline
			dc.DrawCircle(point.X, point.Y, rScaled*14)
			dc.SetColor(outline)
			dc.Stroke()
		}
		// bin cover
		a1 := (heading + 104) / 180 * math.Pi
		a2 := (heading - 104) / 180 * math.Pi
		r2 := rScaled * 13
		x1 := point.X - r2*math.Cos(a1)
		y1 := point.Y + r2*math.Sin(a1)
		x2 := point.X - r2*math.Cos(a2)
		y2 := point.Y + r2*math.Sin(a2)
		dc.SetColor(outline)
		dc.SetLineWidth(1)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		// lidar
		angle := heading / 180 * math.Pi
		r2 = rScaled * 3
		x := point.X + r2*math.Cos(angle)
		y := point.Y - r2*math.Sin(angle)
		dc.DrawCircle(x, y, rScaled*4)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(outline)
		dc.Stroke()
		// button
		halfColor := config.RGB(
			uint8((int(outline.R)+int(fill.R))/2),
			uint8((int(outline.G)+int(fill.G))/2),
			uint8((int(outline.B)+int(fill.B))/2),
		)
		r2 = rScaled * 10
		x = point.X + r2*math.Cos(angle)
		y = point.Y - r2*math.Sin(angle)
		dc.DrawCircle(x, y, rScaled*2)
		dc.SetColor(halfColor)
		dc.Fill()
	})
}

func (g *Generator) drawAreas(img *mapdata.ImageData, areas []mapdata.Area, fill, outline config.Color) {
	if len(areas) == 0 {
		return
	}
	translucent := config.IsTranslucent(outline, fill)
	for _, area := range areas {
		polygon := area.ToImage(img.Dimensions)
		drawOnLayer(img, 1, translucent, func(dc *gg.Context) {
			dc.MoveTo(polygon.X0, polygon.Y0)
			dc.LineTo(polygon.X1, polygon.Y1)
			dc.LineTo(polygon.X2, polygon.Y2)
			dc.LineTo(polygon.X3, polygon.Y3)
			dc.ClosePath()
			dc.SetColor(fill)
			dc.FillPreserve()
			dc.SetColor(outline)
			dc.SetLineWidth(1)
			dc.Stroke()
		})
	}
}

// drawPath strokes a path layer. The layer is supersampled by the
// configured image scale and downscaled after drawing; widths above 4
// get round joints at segment ends.
func (g *Generator) drawPath(img *mapdata.ImageData, path *mapdata.Path, pathWidth float64, c config.Color) {
	if len(path.Points) < 1 {
		return
	}
	scale := g.imageConfig.Scale
	drawOnLayer(img, scale, config.IsTranslucent(c), func(dc *gg.Context) {
		dc.SetColor(c)
		for _, subpath := range path.Points {
			if len(subpath) <= 1 {
				continue
			}
			s := subpath[0].ToImage(img.Dimensions).Mul(scale)
			first := true
			for _, point := range subpath[1:] {
				e := point.ToImage(img.Dimensions).Mul(scale)
				dc.SetLineWidth(scale * pathWidth)
				dc.DrawLine(s.X, s.Y, e.X, e.Y)
				dc.Stroke()
				if pathWidth > 4 {
					r := scale * pathWidth / 2
					if first {
						dc.DrawCircle(s.X, s.Y, r)
						dc.Fill()
					}
					dc.DrawCircle(e.X, e.Y, r)
					dc.Fill()
				}
				first = false
				s = e
			}
		}
	})
}

func (g *Generator) drawText(img *mapdata.ImageData, text string, x, y float64, c config.Color, fontFile string, fontSize float64) {
	drawOnLayer(img, 1, config.IsTranslucent(c), func(dc *gg.Context) {
		if fontFile != "" && fontSize > 0 {
			if err := dc.LoadFontFace(fontFile, fontSize); err != nil {
				g.log.Warn().Str("font", fontFile).Err(err).Msg("unable to load font, using built-in face")
			}
		}
		dc.SetColor(c)
		dc.DrawStringAnchored(norm.NFC.String(text), x, y, 0.5, 0.5)
	})
}

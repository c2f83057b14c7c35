package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"

	"github.com/vacmap/vacmap/config"
	"github.com/vacmap/vacmap/internal/log"
	"github.com/vacmap/vacmap/mapdata"
)

// Generator draws parsed map data onto map images.
type Generator struct {
	palette     *config.Palette
	sizes       *config.Sizes
	drawables   []config.Drawable
	imageConfig config.ImageConfig
	texts       []config.Text
	log         zerolog.Logger
}

// New creates a generator. The drawables list controls both which
// layers are drawn and their order.
func New(
	palette *config.Palette,
	sizes *config.Sizes,
	drawables []config.Drawable,
	imageConfig config.ImageConfig,
	texts []config.Text,
) *Generator {
	return &Generator{
		palette:     palette,
		sizes:       sizes,
		drawables:   drawables,
		imageConfig: imageConfig,
		texts:       texts,
		log:         log.WithComponent("render"),
	}
}

// Draw renders all configured layers onto the map image, rotates it as
// configured and stamps the caption texts. It is a no-op when the map
// has no image.
func (g *Generator) Draw(m *mapdata.MapData) {
	if m.Image == nil || m.Image.Image == nil {
		return
	}
	for _, drawable := range g.drawables {
		switch drawable {
		case config.DrawableCharger:
			g.drawCharger(m)
		case config.DrawableVacuumPosition:
			g.drawVacuumPosition(m)
		case config.DrawableObstacles:
			g.drawObstacles(m, m.Obstacles, config.ColorObstacle, config.SizeObstacleRadius)
		case config.DrawableIgnoredObstacles:
			g.drawObstacles(m, m.IgnoredObstacles, config.ColorIgnoredObstacle, config.SizeIgnoredObstacleRadius)
		case config.DrawableObstaclesWithPhoto:
			g.drawObstacles(m, m.ObstaclesWithPhoto, config.ColorObstacleWithPhoto, config.SizeObstacleWithPhotoRadius)
		case config.DrawableIgnoredObstaclesWithPhoto:
			g.drawObstacles(m, m.IgnoredObstaclesWithPhoto, config.ColorIgnoredObstacleWithPhoto, config.SizeIgnoredObstacleWithPhotoRadius)
		case config.DrawableMopPath:
			g.drawMapPath(m, m.MopPath, config.ColorMopPath, config.SizeMopPathWidth)
		case config.DrawablePath:
			g.drawMapPath(m, m.Path, config.ColorPath, config.SizePathWidth)
		case config.DrawableGotoPath:
			g.drawMapPath(m, m.GotoPath, config.ColorGotoPath, config.SizePathWidth)
		case config.DrawablePredictedPath:
			g.drawMapPath(m, m.PredictedPath, config.ColorPredictedPath, config.SizePathWidth)
		case config.DrawableNoCarpetAreas:
			g.drawMapAreas(m, m.NoCarpetAreas, config.ColorNoCarpetZones, config.ColorNoCarpetZonesOutline)
		case config.DrawableNoGoAreas:
			g.drawMapAreas(m, m.NoGoAreas, config.ColorNoGoZones, config.ColorNoGoZonesOutline)
		case config.DrawableNoMoppingAreas:
			g.drawMapAreas(m, m.NoMoppingAreas, config.ColorNoMoppingZones, config.ColorNoMoppingZonesOutline)
		case config.DrawableVirtualWalls:
			g.drawWalls(m)
		case config.DrawableZones:
			g.drawZones(m)
		case config.DrawableCleanedArea:
			g.drawAdditionalLayer(m, string(drawable))
		case config.DrawableRoomNames:
			g.drawRoomNames(m)
		}
	}
	g.rotate(m.Image)
	g.drawTexts(m.Image)
}

// EmptyMap produces the 300x200 placeholder shown when no map is
// available. The text color is picked by background luminance.
func (g *Generator) EmptyMap(text string) *image.RGBA {
	bg := g.palette.Color(config.ColorMapOutside)
	dc := gg.NewContext(300, 200)
	dc.SetColor(bg)
	dc.Clear()
	if int(bg.R)+int(bg.G)+int(bg.B) > 382 {
		dc.SetColor(config.RGB(0, 0, 0))
	} else {
		dc.SetColor(config.RGB(255, 255, 255))
	}
	dc.DrawStringAnchored(text, 150, 100, 0.5, 0.5)
	return toRGBA(dc.Image())
}

func (g *Generator) drawCharger(m *mapdata.MapData) {
	if m.Charger == nil {
		return
	}
	g.drawPieSlice(m.Image, *m.Charger,
		g.sizes.Size(config.SizeChargerRadius),
		g.palette.Color(config.ColorChargerOutline),
		g.palette.Color(config.ColorCharger))
}

func (g *Generator) drawVacuumPosition(m *mapdata.MapData) {
	if m.VacuumPosition == nil {
		return
	}
	g.drawVacuum(m.Image, *m.VacuumPosition,
		g.sizes.Size(config.SizeVacuumRadius),
		g.palette.Color(config.ColorRoboOutline),
		g.palette.Color(config.ColorRobo))
}

func (g *Generator) drawObstacles(m *mapdata.MapData, obstacles []mapdata.Obstacle, colorName config.ColorName, sizeName config.Size) {
	if len(obstacles) == 0 {
		return
	}
	c := g.palette.Color(colorName)
	r := g.sizes.Size(sizeName)
	for _, obstacle := range obstacles {
		g.drawCircle(m.Image, obstacle.Point, r, c, c)
	}
}

func (g *Generator) drawMapPath(m *mapdata.MapData, path *mapdata.Path, colorName config.ColorName, sizeName config.Size) {
	if path == nil {
		return
	}
	g.drawPath(m.Image, path, g.sizes.Size(sizeName), g.palette.Color(colorName))
}

func (g *Generator) drawMapAreas(m *mapdata.MapData, areas []mapdata.Area, fill, outline config.ColorName) {
	g.drawAreas(m.Image, areas, g.palette.Color(fill), g.palette.Color(outline))
}

func (g *Generator) drawZones(m *mapdata.MapData) {
	if len(m.Zones) == 0 {
		return
	}
	areas := make([]mapdata.Area, 0, len(m.Zones))
	for _, z := range m.Zones {
		areas = append(areas, z.AsArea())
	}
	g.drawAreas(m.Image, areas,
		g.palette.Color(config.ColorZones),
		g.palette.Color(config.ColorZonesOutline))
}

func (g *Generator) drawWalls(m *mapdata.MapData) {
	if len(m.Walls) == 0 {
		return
	}
	c := g.palette.Color(config.ColorVirtualWalls)
	img := m.Image
	drawOnLayer(img, 1, config.IsTranslucent(c), func(dc *gg.Context) {
		dc.SetColor(c)
		dc.SetLineWidth(2)
		for _, wall := range m.Walls {
			w := wall.ToImage(img.Dimensions)
			dc.DrawLine(w.X0, w.Y0, w.X1, w.Y1)
			dc.Stroke()
		}
	})
}

func (g *Generator) drawAdditionalLayer(m *mapdata.MapData, name string) {
	layer, ok := m.Image.AdditionalLayers[name]
	if !ok {
		return
	}
	compositeOver(m.Image.Image, layer)
}

func (g *Generator) drawRoomNames(m *mapdata.MapData) {
	if len(m.Rooms) == 0 {
		return
	}
	c := g.palette.Color(config.ColorRoomNames)
	for _, room := range m.Rooms {
		p := room.LabelPoint()
		if p == nil {
			continue
		}
		point := p.ToImage(m.Image.Dimensions)
		g.drawText(m.Image, room.Name, point.X, point.Y, c, "", 0)
	}
}

func (g *Generator) drawTexts(img *mapdata.ImageData) {
	for _, t := range g.texts {
		x := t.X * float64(img.Image.Bounds().Dx()) / 100
		y := t.Y * float64(img.Image.Bounds().Dy()) / 100
		g.drawText(img, t.Text, x, y, t.Color, t.Font, t.FontSize)
	}
}

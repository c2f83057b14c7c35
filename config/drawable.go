package config

// Drawable identifies a map element that the generator can draw. The
// order of a drawable list is the drawing order.
type Drawable string

// Supported map elements.
const (
	DrawableCharger                   Drawable = "charger"
	DrawableCleanedArea               Drawable = "cleaned_area"
	DrawableGotoPath                  Drawable = "goto_path"
	DrawableIgnoredObstacles          Drawable = "ignored_obstacles"
	DrawableIgnoredObstaclesWithPhoto Drawable = "ignored_obstacles_with_photo"
	DrawableMopPath                   Drawable = "mop_path"
	DrawableNoCarpetAreas             Drawable = "no_carpet_zones"
	DrawableNoGoAreas                 Drawable = "no_go_zones"
	DrawableNoMoppingAreas            Drawable = "no_mopping_zones"
	DrawableObstacles                 Drawable = "obstacles"
	DrawableObstaclesWithPhoto        Drawable = "obstacles_with_photo"
	DrawablePath                      Drawable = "path"
	DrawablePredictedPath             Drawable = "predicted_path"
	DrawableRoomNames                 Drawable = "room_names"
	DrawableVacuumPosition            Drawable = "vacuum_position"
	DrawableVirtualWalls              Drawable = "virtual_walls"
	DrawableZones                     Drawable = "zones"
)

// AllDrawables lists every supported drawable in a sensible default
// drawing order: area fills first, paths on top, markers last.
func AllDrawables() []Drawable {
	return []Drawable{
		DrawableCleanedArea,
		DrawableZones,
		DrawableNoCarpetAreas,
		DrawableNoGoAreas,
		DrawableNoMoppingAreas,
		DrawableVirtualWalls,
		DrawableMopPath,
		DrawablePath,
		DrawableGotoPath,
		DrawablePredictedPath,
		DrawableObstacles,
		DrawableIgnoredObstacles,
		DrawableObstaclesWithPhoto,
		DrawableIgnoredObstaclesWithPhoto,
		DrawableCharger,
		DrawableVacuumPosition,
		DrawableRoomNames,
	}
}

// KnownDrawable reports whether d is a supported drawable.
func KnownDrawable(d Drawable) bool {
	for _, known := range AllDrawables() {
		if d == known {
			return true
		}
	}
	return false
}

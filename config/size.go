package config

// Size identifies a configurable dimension of a map element.
type Size string

// Supported element sizes.
const (
	SizeChargerRadius                  Size = "charger_radius"
	SizeIgnoredObstacleRadius          Size = "ignored_obstacle_radius"
	SizeIgnoredObstacleWithPhotoRadius Size = "ignored_obstacle_with_photo_radius"
	SizeMopPathWidth                   Size = "mop_path_width"
	SizeObstacleRadius                 Size = "obstacle_radius"
	SizeObstacleWithPhotoRadius        Size = "obstacle_with_photo_radius"
	SizeVacuumRadius                   Size = "vacuum_radius"
	SizePathWidth                      Size = "path_width"
)

// defaultSizes is the built-in size table. Sizes without an entry
// resolve to 1.
var defaultSizes = map[Size]float64{
	SizeVacuumRadius:                   6,
	SizePathWidth:                      1,
	SizeIgnoredObstacleRadius:          3,
	SizeIgnoredObstacleWithPhotoRadius: 3,
	SizeObstacleRadius:                 3,
	SizeObstacleWithPhotoRadius:        3,
	SizeChargerRadius:                  6,
}

// KnownSizes returns every supported size identifier. Used by settings
// validation.
func KnownSizes() []Size {
	sizes := make([]Size, 0, len(defaultSizes)+1)
	for s := range defaultSizes {
		sizes = append(sizes, s)
	}
	sizes = append(sizes, SizeMopPathWidth)
	return sizes
}

// Sizes resolves element sizes, preferring per-instance overrides over
// the built-in table.
type Sizes struct {
	sizes map[Size]float64
}

// NewSizes creates a size table with the given overrides; the map may
// be nil.
func NewSizes(overrides map[Size]float64) *Sizes {
	s := &Sizes{sizes: map[Size]float64{}}
	for k, v := range overrides {
		s.sizes[k] = v
	}
	return s
}

// Size returns the configured size for the element, defaulting to 1
// for unknown identifiers.
func (s *Sizes) Size(name Size) float64 {
	if v, ok := s.sizes[name]; ok {
		return v
	}
	if v, ok := defaultSizes[name]; ok {
		return v
	}
	return 1
}

package config

// TrimConfig trims the map image edges. Values are percentages of the
// untrimmed dimensions.
type TrimConfig struct {
	Left   float64 `json:"left"   yaml:"left"`
	Right  float64 `json:"right"  yaml:"right"`
	Top    float64 `json:"top"    yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}

// ImageConfig controls the geometry of the generated map image.
type ImageConfig struct {
	// Scale is the upscale factor applied to the map image. 1 means
	// native resolution.
	Scale float64 `json:"scale" yaml:"scale"`
	// Rotate is the clockwise rotation in degrees. Right angles are
	// rotated exactly, other angles expand the canvas.
	Rotate float64 `json:"rotate" yaml:"rotate"`
	// Trim removes the given percentage from each edge before scaling.
	Trim TrimConfig `json:"trim" yaml:"trim"`
}

// DefaultImageConfig returns the neutral configuration: native scale,
// no rotation, no trimming.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{Scale: 1}
}

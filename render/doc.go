// Package render generates map images from parsed map data. The
// generator draws the configured layers in order onto the parser's
// base image, applies the configured rotation and finally stamps
// caption texts.
//
// Opaque draws at native scale go directly onto the map image;
// translucent or supersampled draws go onto a fresh layer that is
// alpha-composited over it.
package render

// Package mapdata provides the parse-result model shared by all map
// parsers: geometry primitives, the layered MapData structure, and the
// canonical serialization used for content-addressed snapshot hashing.
//
// This package is the foundational layer. All other packages in the
// module may import mapdata; mapdata imports only config. Coordinates
// are in vacuum units; ImageDimensions.ToImage converts them to image
// pixels via the parser-supplied transform.
package mapdata

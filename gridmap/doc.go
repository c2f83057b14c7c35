// Package gridmap implements the reference map format used by the CLI
// and the test suite, and serves as the model for building
// device-specific parsers on top of parser.Base.
//
// A gridmap file starts with the magic "VMG1" followed by a zlib
// stream. The decompressed payload is little-endian: a fixed header
// (version, grid size, grid origin, pixel size in millimeters, map
// name), the pixel grid in image orientation (top row first), and a
// list of typed, length-prefixed sections carrying the charger pose,
// vacuum pose, paths, rooms, zones, walls, restricted areas, obstacles
// and cleaned rooms. Unknown section types are skipped, so the format
// can grow without breaking old readers.
//
// Grid pixel codes: 0 outside, 1 floor, 2 wall, 3 carpet, 16+n room n.
// Vacuum coordinates are millimeters; one grid pixel covers PixelSize
// millimeters.
package gridmap

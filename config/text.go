package config

// Text is a caption drawn on the finished map image. X and Y are
// percentages of the image dimensions. Font is an optional path to a
// TrueType file; when empty or unreadable, the renderer falls back to
// its built-in face.
type Text struct {
	Text     string
	X        float64
	Y        float64
	Color    Color
	Font     string
	FontSize float64
}

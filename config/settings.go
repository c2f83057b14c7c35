package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Settings validation error codes (S100-S199).
const (
	// File-level errors (S100-S109)
	ErrSettingsRead   = "S100" // settings file unreadable
	ErrSettingsYAML   = "S101" // settings file is not valid YAML
	ErrSettingsSchema = "S102" // schema violation

	// Name errors (S110-S119)
	ErrUnknownColor    = "S110" // unknown color identifier
	ErrBadColor        = "S111" // malformed color value
	ErrUnknownSize     = "S112" // unknown size identifier
	ErrUnknownDrawable = "S113" // unknown drawable identifier
	ErrBadRoomID       = "S114" // room color key is not a positive int
)

// ValidationError describes a problem in a render-settings file.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Settings is a fully resolved render configuration, ready to hand to
// a parser.
type Settings struct {
	Palette   *Palette
	Sizes     *Sizes
	Drawables []Drawable
	Image     ImageConfig
	Texts     []Text
}

// DefaultSettings returns the built-in configuration: default palette
// and sizes, every drawable, native image geometry, no captions.
func DefaultSettings() *Settings {
	return &Settings{
		Palette:   NewPalette(nil, nil),
		Sizes:     NewSizes(nil),
		Drawables: AllDrawables(),
		Image:     DefaultImageConfig(),
	}
}

// settingsFile is the YAML shape of a render-settings file.
type settingsFile struct {
	Colors     map[string]string  `yaml:"colors"`
	RoomColors map[string]string  `yaml:"room_colors"`
	Sizes      map[string]float64 `yaml:"sizes"`
	Drawables  []string           `yaml:"drawables"`
	Image      *struct {
		Scale  *float64    `yaml:"scale"`
		Rotate *float64    `yaml:"rotate"`
		Trim   *TrimConfig `yaml:"trim"`
	} `yaml:"image"`
	Texts []struct {
		Text     string  `yaml:"text"`
		X        float64 `yaml:"x"`
		Y        float64 `yaml:"y"`
		Color    string  `yaml:"color"`
		Font     string  `yaml:"font"`
		FontSize float64 `yaml:"font_size"`
	} `yaml:"texts"`
}

// LoadSettings reads, schema-checks and resolves a render-settings
// file. All problems are collected before returning, so a single run
// reports every violation; on any error the returned settings are nil.
func LoadSettings(path string) (*Settings, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{ValidationError{Code: ErrSettingsRead, Message: err.Error()}}
	}
	return ParseSettings(data)
}

// ParseSettings is LoadSettings for in-memory YAML content.
func ParseSettings(data []byte) (*Settings, []error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, []error{ValidationError{Code: ErrSettingsYAML, Message: err.Error()}}
	}
	if raw == nil {
		return DefaultSettings(), nil
	}

	var errs []error
	errs = append(errs, validateSchema(raw)...)

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		errs = append(errs, ValidationError{Code: ErrSettingsYAML, Message: err.Error()})
		return nil, errs
	}

	settings := DefaultSettings()
	colors := map[ColorName]Color{}
	for name, value := range file.Colors {
		if !knownColorName(name) {
			errs = append(errs, ValidationError{
				Field: "colors." + name, Code: ErrUnknownColor,
				Message: "unknown color identifier",
			})
			continue
		}
		c, err := ParseColor(value)
		if err != nil {
			errs = append(errs, ValidationError{
				Field: "colors." + name, Code: ErrBadColor, Message: err.Error(),
			})
			continue
		}
		colors[ColorName(name)] = c
	}

	roomColors := map[int]Color{}
	for key, value := range file.RoomColors {
		id, err := strconv.Atoi(key)
		if err != nil || id < 1 {
			errs = append(errs, ValidationError{
				Field: "room_colors." + key, Code: ErrBadRoomID,
				Message: "room color key must be a positive integer",
			})
			continue
		}
		c, err := ParseColor(value)
		if err != nil {
			errs = append(errs, ValidationError{
				Field: "room_colors." + key, Code: ErrBadColor, Message: err.Error(),
			})
			continue
		}
		roomColors[id] = c
	}
	settings.Palette = NewPalette(colors, roomColors)

	sizes := map[Size]float64{}
	for name, value := range file.Sizes {
		if !knownSize(name) {
			errs = append(errs, ValidationError{
				Field: "sizes." + name, Code: ErrUnknownSize,
				Message: "unknown size identifier",
			})
			continue
		}
		sizes[Size(name)] = value
	}
	settings.Sizes = NewSizes(sizes)

	if file.Drawables != nil {
		drawables := make([]Drawable, 0, len(file.Drawables))
		for _, name := range file.Drawables {
			d := Drawable(name)
			if !KnownDrawable(d) {
				errs = append(errs, ValidationError{
					Field: "drawables", Code: ErrUnknownDrawable,
					Message: fmt.Sprintf("unknown drawable %q", name),
				})
				continue
			}
			drawables = append(drawables, d)
		}
		settings.Drawables = drawables
	}

	if file.Image != nil {
		if file.Image.Scale != nil {
			settings.Image.Scale = *file.Image.Scale
		}
		if file.Image.Rotate != nil {
			settings.Image.Rotate = *file.Image.Rotate
		}
		if file.Image.Trim != nil {
			settings.Image.Trim = *file.Image.Trim
		}
	}

	for _, t := range file.Texts {
		text := Text{
			Text:     t.Text,
			X:        t.X,
			Y:        t.Y,
			Color:    RGB(0, 0, 0),
			Font:     t.Font,
			FontSize: t.FontSize,
		}
		if t.Color != "" {
			c, err := ParseColor(t.Color)
			if err != nil {
				errs = append(errs, ValidationError{
					Field: "texts", Code: ErrBadColor, Message: err.Error(),
				})
				continue
			}
			text.Color = c
		}
		settings.Texts = append(settings.Texts, text)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return settings, nil
}

// validateSchema unifies the decoded document with the embedded CUE
// schema and reports every violation with its field path.
func validateSchema(raw map[string]any) []error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []error{fmt.Errorf("internal schema error: %w", err)}
	}
	def := schema.LookupPath(cue.ParsePath("#Settings"))
	if err := def.Err(); err != nil {
		return []error{fmt.Errorf("internal schema error: %w", err)}
	}
	unified := def.Unify(ctx.Encode(raw))
	err := unified.Validate(cue.Concrete(false))
	if err == nil {
		return nil
	}
	var errs []error
	for _, e := range cueerrors.Errors(err) {
		errs = append(errs, ValidationError{
			Field:   strings.Join(cueerrors.Path(e), "."),
			Code:    ErrSettingsSchema,
			Message: e.Error(),
		})
	}
	return errs
}

func knownColorName(name string) bool {
	for _, known := range KnownColorNames() {
		if ColorName(name) == known {
			return true
		}
	}
	return false
}

func knownSize(name string) bool {
	for _, known := range KnownSizes() {
		if Size(name) == known {
			return true
		}
	}
	return false
}

package cli

import (
	"fmt"
	"os"

	"github.com/vacmap/vacmap/config"
	"github.com/vacmap/vacmap/gridmap"
	"github.com/vacmap/vacmap/mapdata"
)

// CLI error codes (C001-C099).
const (
	ErrCodeNotFound = "C001" // input file missing or unreadable
	ErrCodeParse    = "C002" // map payload malformed
	ErrCodeSettings = "C003" // render-settings file invalid
	ErrCodeWrite    = "C004" // output file could not be written
	ErrCodeStore    = "C005" // snapshot database error
	ErrCodeNoImage  = "C006" // map has no image data
	ErrCodeGeneric  = "C099" // unclassified error
)

// loadSettings resolves the --settings flag: an empty path yields the
// built-in defaults, otherwise the file is loaded and every violation
// is collected.
func loadSettings(path string) (*config.Settings, []error) {
	if path == "" {
		return config.DefaultSettings(), nil
	}
	return config.LoadSettings(path)
}

// newParser builds a gridmap parser from resolved settings.
func newParser(settings *config.Settings) *gridmap.Parser {
	return gridmap.NewParser(
		settings.Palette,
		settings.Sizes,
		settings.Drawables,
		settings.Image,
		settings.Texts,
	)
}

// loadMap reads and parses a gridmap payload file.
func loadMap(path string, p *gridmap.Parser) (*mapdata.MapData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot read map file %s", path), err)
	}
	payload, err := p.Unpack(raw)
	if err != nil {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("cannot unpack map file %s", path), err)
	}
	m, err := p.Parse(payload)
	if err != nil {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("cannot parse map file %s", path), err)
	}
	return m, nil
}

// outputSettingsErrors reports collected settings violations and
// returns the exit error for the command.
func outputSettingsErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		details := make([]any, 0, len(errs))
		for _, err := range errs {
			if verr, ok := err.(config.ValidationError); ok {
				details = append(details, verr)
				continue
			}
			details = append(details, err.Error())
		}
		_ = formatter.Error(ErrCodeSettings, "invalid render settings", details)
		return NewExitError(ExitFailure, fmt.Sprintf("settings invalid with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Invalid render settings")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %v\n", err)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("settings invalid with %d error(s)", len(errs)))
}

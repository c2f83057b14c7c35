package cli

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/vacmap/vacmap/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Settings string
	Output   string
	Save     bool
	Database string
}

// RenderResult holds the render command's JSON payload.
type RenderResult struct {
	MapName    string `json:"map_name,omitempty"`
	Output     string `json:"output"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SnapshotID string `json:"snapshot_id,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <map-file>",
		Short: "Render a map payload to a PNG image",
		Long: `Parse a gridmap payload and render it to a PNG image.

Render settings (colors, sizes, drawables, scaling, rotation, trim,
captions) are read from the optional --settings YAML file; without it
the built-in defaults are used.

Example:
  vacmap render map.bin -o map.png
  vacmap render map.bin -o map.png --settings render.yaml
  vacmap render map.bin -o map.png --save --db ./history.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Settings, "settings", "", "path to render-settings YAML file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output PNG path (required)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save a snapshot to the history database")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required with --save)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runRender(opts *RenderOptions, mapFile string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Save && opts.Database == "" {
		return NewExitError(ExitCommandError, "--save requires --db")
	}

	settings, errs := loadSettings(opts.Settings)
	if len(errs) > 0 {
		return outputSettingsErrors(formatter, errs)
	}

	p := newParser(settings)
	m, err := loadMap(mapFile, p)
	if err != nil {
		_ = formatter.Error(ErrCodeParse, err.Error(), nil)
		return err
	}
	if m.Image == nil || m.Image.Image == nil {
		_ = formatter.Error(ErrCodeNoImage, "map contains no image data", nil)
		return NewExitError(ExitFailure, "map contains no image data")
	}

	formatter.VerboseLog("Parsed map %q (%dx%d grid pixels)",
		m.MapName, m.Image.Dimensions.Width, m.Image.Dimensions.Height)

	p.Generator().Draw(m)

	var buf bytes.Buffer
	if err := png.Encode(&buf, m.Image.Image); err != nil {
		return WrapExitError(ExitFailure, "failed to encode PNG", err)
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		_ = formatter.Error(ErrCodeWrite, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	result := RenderResult{
		MapName: m.MapName,
		Output:  opts.Output,
		Width:   m.Image.Image.Bounds().Dx(),
		Height:  m.Image.Image.Bounds().Dy(),
	}

	if opts.Save {
		st, err := store.Open(opts.Database)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		snap, err := st.SaveSnapshot(ctx, m, buf.Bytes())
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to save snapshot", err)
		}
		result.SnapshotID = snap.ID
		formatter.VerboseLog("Snapshot %s (hash %s)", snap.ID, snap.ContentHash)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Rendered %s (%dx%d)\n", opts.Output, result.Width, result.Height)
	if result.SnapshotID != "" {
		fmt.Fprintf(formatter.Writer, "  snapshot %s\n", result.SnapshotID)
	}
	return nil
}

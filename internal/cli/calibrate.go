package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CalibrateOptions holds flags for the calibrate command.
type CalibrateOptions struct {
	*RootOptions
	Settings string
}

// NewCalibrateCommand creates the calibrate command.
func NewCalibrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalibrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calibrate <map-file>",
		Short: "Print calibration points for a map",
		Long: `Parse a gridmap payload and print its calibration points.

Calibration points pair vacuum coordinates with image pixel positions,
so a consumer can map between the two spaces. Rotation, scaling and
trim from the settings file are reflected in the image coordinates.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Settings, "settings", "", "path to render-settings YAML file")

	return cmd
}

func runCalibrate(opts *CalibrateOptions, mapFile string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	settings, errs := loadSettings(opts.Settings)
	if len(errs) > 0 {
		return outputSettingsErrors(formatter, errs)
	}

	m, err := loadMap(mapFile, newParser(settings))
	if err != nil {
		_ = formatter.Error(ErrCodeParse, err.Error(), nil)
		return err
	}

	points := m.Calibration()
	if points == nil {
		_ = formatter.Error(ErrCodeNoImage, "map contains no image data", nil)
		return NewExitError(ExitFailure, "map contains no image data")
	}

	if formatter.Format == "json" {
		return formatter.Success(points)
	}
	for _, p := range points {
		fmt.Fprintf(formatter.Writer, "vacuum (%.0f, %.0f) -> map (%.0f, %.0f)\n",
			p.Vacuum.X, p.Vacuum.Y, p.Map.X, p.Map.Y)
	}
	return nil
}

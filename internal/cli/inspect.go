package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vacmap/vacmap/mapdata"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Settings string
	Hash     bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <map-file>",
		Short: "Parse a map payload and print its contents",
		Long: `Parse a gridmap payload and print the decoded map data.

With --format json the full map model is emitted; the default text
format prints a summary of the map's layers.

Example:
  vacmap inspect map.bin
  vacmap inspect map.bin --format json
  vacmap inspect map.bin --hash`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Settings, "settings", "", "path to render-settings YAML file")
	cmd.Flags().BoolVar(&opts.Hash, "hash", false, "include the snapshot content hash")

	return cmd
}

// inspectResult is the JSON payload for the inspect command.
type inspectResult struct {
	Map  *mapdata.MapData `json:"map"`
	Hash string           `json:"content_hash,omitempty"`
}

func runInspect(opts *InspectOptions, mapFile string, cmd *cobra.Command) error {
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

	var hash string
	if opts.Hash {
		hash, err = mapdata.SnapshotHash(m)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to hash map", err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(inspectResult{Map: m, Hash: hash})
	}

	w := formatter.Writer
	name := m.MapName
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Map: %s\n", name)
	if m.Image != nil {
		d := m.Image.Dimensions
		fmt.Fprintf(w, "Grid: %dx%d pixels, %.0f mm/pixel, origin (%d, %d)\n",
			d.Width, d.Height, d.Scale, d.Left, d.Top)
	}
	if m.Charger != nil {
		fmt.Fprintf(w, "Charger: (%.0f, %.0f)\n", m.Charger.X, m.Charger.Y)
	}
	if m.VacuumPosition != nil {
		fmt.Fprintf(w, "Vacuum: (%.0f, %.0f)", m.VacuumPosition.X, m.VacuumPosition.Y)
		if m.VacuumRoomName != "" {
			fmt.Fprintf(w, " in %s", m.VacuumRoomName)
		} else if m.VacuumRoom != nil {
			fmt.Fprintf(w, " in room %d", *m.VacuumRoom)
		}
		fmt.Fprintln(w)
	}
	if len(m.Rooms) > 0 {
		fmt.Fprintf(w, "Rooms: %d\n", len(m.Rooms))
		ids := make([]int, 0, len(m.Rooms))
		for id := range m.Rooms {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			room := m.Rooms[id]
			label := room.Name
			if label == "" {
				label = "(unnamed)"
			}
			fmt.Fprintf(w, "  %2d: %s\n", id, label)
		}
	}
	if m.Path != nil {
		fmt.Fprintf(w, "Path: %d point(s)\n", countPoints(m.Path))
	}
	if m.PredictedPath != nil {
		fmt.Fprintf(w, "Predicted path: %d point(s)\n", countPoints(m.PredictedPath))
	}
	if n := len(m.Zones); n > 0 {
		fmt.Fprintf(w, "Zones: %d\n", n)
	}
	if n := len(m.Walls); n > 0 {
		fmt.Fprintf(w, "Virtual walls: %d\n", n)
	}
	if n := len(m.NoGoAreas); n > 0 {
		fmt.Fprintf(w, "No-go areas: %d\n", n)
	}
	if n := len(m.NoMoppingAreas); n > 0 {
		fmt.Fprintf(w, "No-mop areas: %d\n", n)
	}
	if n := len(m.Obstacles); n > 0 {
		fmt.Fprintf(w, "Obstacles: %d\n", n)
	}
	if hash != "" {
		fmt.Fprintf(w, "Content hash: %s\n", hash)
	}
	return nil
}

func countPoints(p *mapdata.Path) int {
	n := 0
	for _, segment := range p.Points {
		n += len(segment)
	}
	return n
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vacmap/vacmap/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Prune    int
	Extract  string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <map-name>",
		Short: "List saved snapshots for a map",
		Long: `List snapshots saved to the history database, newest first.

Snapshots are written by "render --save" and deduplicated by content
hash, so the history only grows when the map actually changes.

Example:
  vacmap history kitchen --db ./history.db
  vacmap history kitchen --db ./history.db --limit 5
  vacmap history kitchen --db ./history.db --prune 10
  vacmap history kitchen --db ./history.db --extract <id> > map.png`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of snapshots to list (0 = all)")
	cmd.Flags().IntVar(&opts.Prune, "prune", -1, "keep only the newest N snapshots")
	cmd.Flags().StringVar(&opts.Extract, "extract", "", "write the PNG of the given snapshot ID to stdout")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, mapName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(opts.Database); err != nil {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
		return WrapExitError(ExitCommandError, "database not found", err)
	}

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

	if opts.Extract != "" {
		return extractSnapshot(ctx, st, mapName, opts.Extract, formatter)
	}

	if opts.Prune >= 0 {
		removed, err := st.Prune(ctx, mapName, opts.Prune)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to prune snapshots", err)
		}
		formatter.VerboseLog("Pruned %d snapshot(s)", removed)
	}

	snapshots, err := st.ListSnapshots(ctx, mapName, opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list snapshots", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(snapshots)
	}

	if len(snapshots) == 0 {
		fmt.Fprintf(formatter.Writer, "No snapshots for %q\n", mapName)
		return nil
	}
	for _, snap := range snapshots {
		fmt.Fprintf(formatter.Writer, "%s  %s  %s\n",
			snap.CreatedAt.Format("2006-01-02 15:04:05"), snap.ID, snap.ContentHash)
	}
	return nil
}

func extractSnapshot(ctx context.Context, st *store.Store, mapName, id string, formatter *OutputFormatter) error {
	snap, err := st.GetSnapshot(ctx, id)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load snapshot", err)
	}
	if snap.MapName != mapName {
		_ = formatter.Error(ErrCodeStore, fmt.Sprintf("snapshot %s does not belong to map %q", id, mapName), nil)
		return NewExitError(ExitCommandError, "snapshot not found for map")
	}
	if len(snap.PNG) == 0 {
		_ = formatter.Error(ErrCodeNoImage, "snapshot has no image", nil)
		return NewExitError(ExitFailure, "snapshot has no image")
	}
	if _, err := formatter.Writer.Write(snap.PNG); err != nil {
		return WrapExitError(ExitCommandError, "failed to write image", err)
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the SQLite snapshot",
	Long: `Remove the snapshot file and its WAL side files. Recorded runs are gone
afterwards; the CSVs and heatmaps under the output dir stay.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "delete without asking")
}

func runDrop(cmd *cobra.Command, args []string) error {
	path := cfg.SnapshotPath()
	if !dropForce {
		fmt.Fprintf(os.Stderr, "Refusing to delete %s without --force.\n", path)
		return nil
	}

	removed := 0
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	if removed == 0 {
		fmt.Fprintf(os.Stdout, "No snapshot at %s.\n", path)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Snapshot %s removed.\n", path)
	return nil
}

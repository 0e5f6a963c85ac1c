package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"compose-backup/src/backup"
	"compose-backup/src/target"
)

func newBackupCmd(stdout, stderr io.Writer) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "backup PROJECT_DIR REMOTE REMOTE_PATH",
		Short: "Back up one compose project and upload the bundle to an rclone remote",
		Long: "Archives the project tree, exports every named volume with services " +
			"stopped, bundles everything into one zip, uploads it, and rotates old " +
			"remote archives. REMOTE_PATH may be '' for the remote root.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 1 {
				return fmt.Errorf("--backups-to-keep must be at least 1, got %d", keep)
			}
			dest, err := target.New(args[1], args[2])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			docker, err := newDockerClient(ctx, stdout)
			if err != nil {
				return err
			}
			res := backup.Run(ctx, backup.Options{
				ProjectDir: args[0],
				Dest:       dest,
				Keep:       keep,
				Docker:     docker,
				Store:      newStore(stdout),
				Logger:     newLogger(cmd, stderr),
				Out:        stdout,
			})
			if res.Failed() {
				res.WriteFailureReport(stderr)
				return res.Err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "backups-to-keep", 4, "Number of most recent backups to keep on the remote")
	return cmd
}

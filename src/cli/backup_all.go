package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"compose-backup/src/backup"
	"compose-backup/src/target"
)

func newBackupAllCmd(stdout, stderr io.Writer) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "backup-all REMOTE REMOTE_PATH PROJECTS_DIR",
		Short: "Back up every compose project directory inside PROJECTS_DIR",
		Long: "Runs the backup workflow independently for each immediate " +
			"subdirectory of PROJECTS_DIR, in name order. One project's failure " +
			"does not stop the rest; the command fails if any project failed.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 1 {
				return fmt.Errorf("--backups-to-keep must be at least 1, got %d", keep)
			}
			dest, err := target.New(args[0], args[1])
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
			results, err := backup.RunAll(ctx, args[2], backup.Options{
				Dest:   dest,
				Keep:   keep,
				Docker: docker,
				Store:  newStore(stdout),
				Logger: newLogger(cmd, stderr),
				Out:    stdout,
			})
			for _, pr := range results {
				if pr.Result.Failed() {
					fmt.Fprintf(stderr, "\nProject %s failed:\n", pr.Project)
					pr.Result.WriteFailureReport(stderr)
				}
			}
			return err
		},
	}
	cmd.Flags().IntVar(&keep, "backups-to-keep", 4, "Number of most recent backups to keep on the remote")
	return cmd
}

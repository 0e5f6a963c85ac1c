package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command for the compose-backup CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose-backup",
		Short: "Back up Docker Compose projects: project tree, named volumes, remote rotation",

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newBackupCmd(stdout, stderr))
	cmd.AddCommand(newBackupAllCmd(stdout, stderr))
	cmd.AddCommand(newVolumesCmd(stdout, stderr))
	cmd.AddCommand(newRotateCmd(stdout, stderr))
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

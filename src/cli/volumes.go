package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"compose-backup/src/compose"
)

func newVolumesCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "volumes PROJECT_DIR",
		Short: "List the named volumes a compose project would back up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := compose.FindFile(args[0])
			if err != nil {
				return err
			}
			doc, err := compose.Load(path)
			if err != nil {
				return err
			}
			for _, vol := range compose.NamedVolumes(doc) {
				fmt.Fprintln(stdout, vol)
			}
			return nil
		},
	}
}

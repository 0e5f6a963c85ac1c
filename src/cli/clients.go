package cli

import (
	"context"
	"io"

	"compose-backup/src/dockercli"
	"compose-backup/src/rclone"
)

// Client constructors are package variables so command tests can substitute
// fakes without a docker or rclone binary on PATH.
var (
	newDockerClient = func(ctx context.Context, out io.Writer) (dockercli.Client, error) {
		return dockercli.Connect(ctx, out)
	}
	newStore = func(out io.Writer) rclone.Store {
		return rclone.NewCLI(out)
	}
)

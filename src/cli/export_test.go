package cli

import (
	"context"
	"io"

	"compose-backup/src/dockercli"
	"compose-backup/src/rclone"
)

// StubClients replaces the client constructors so command tests run without
// docker or rclone binaries. It returns a restore function.
func StubClients(docker dockercli.Client, store rclone.Store) (restore func()) {
	prevDocker, prevStore := newDockerClient, newStore
	newDockerClient = func(ctx context.Context, out io.Writer) (dockercli.Client, error) {
		return docker, nil
	}
	newStore = func(out io.Writer) rclone.Store {
		return store
	}
	return func() {
		newDockerClient, newStore = prevDocker, prevStore
	}
}

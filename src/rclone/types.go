package rclone

import (
	"context"
	"time"

	"compose-backup/src/target"
)

// Entry is one object listed at a remote destination. ModTime is the zero
// time when the remote did not report one or it could not be parsed; such
// entries are treated as the oldest during rotation.
type Entry struct {
	Path    string
	IsDir   bool
	ModTime time.Time
}

// Store is the remote object store used for backup archives. The real
// implementation shells out to rclone; tests use FakeStore.
type Store interface {
	// Upload copies a single local file into the destination.
	Upload(ctx context.Context, localFile string, dest target.Dest) error
	// List returns the file entries at the destination.
	List(ctx context.Context, dest target.Dest) ([]Entry, error)
	// Delete removes one remote file, addressed as "remote:path/file".
	Delete(ctx context.Context, remoteFile string) error
}

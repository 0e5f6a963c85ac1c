package dockercli

import "context"

// Client is a narrow interface over the container tooling this app needs:
// quiescing a compose project and exporting named volumes. Keep it small so
// it stays fakeable in tests.
type Client interface {
	// ComposeDown stops and removes all services of the project at dir.
	ComposeDown(ctx context.Context, dir string) error
	// ComposeUp starts all services of the project at dir, detached.
	ComposeUp(ctx context.Context, dir string) error
	// ExportVolume archives the full contents of the named volume into
	// destDir/archiveName as a gzipped tarball.
	ExportVolume(ctx context.Context, volume, destDir, archiveName string) error
}

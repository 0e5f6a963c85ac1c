package target

import (
	"fmt"
	"strings"
)

// Dest identifies an rclone destination: a configured remote name plus an
// optional path inside it. An empty Path addresses the remote root.
// Example canonical forms: "nas:" and "nas:backups/shop".
type Dest struct {
	Remote string
	Path   string
}

// New builds a Dest from a remote name and a path inside the remote.
// The path may be empty for the remote root.
func New(remote, path string) (Dest, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return Dest{}, fmt.Errorf("remote name must not be empty")
	}
	if strings.Contains(remote, ":") {
		return Dest{}, fmt.Errorf("invalid remote name %q: must not contain ':'", remote)
	}
	return Dest{Remote: remote, Path: strings.Trim(strings.TrimSpace(path), "/")}, nil
}

// Parse parses a destination string like "remote:path" or "remote:".
func Parse(raw string) (Dest, error) {
	s := strings.TrimSpace(raw)
	i := strings.Index(s, ":")
	if i <= 0 {
		return Dest{}, fmt.Errorf("invalid destination %q; expected format 'remote:path'", raw)
	}
	return New(s[:i], s[i+1:])
}

// String returns the rclone form of the destination.
func (d Dest) String() string {
	if d.Path == "" {
		return d.Remote + ":"
	}
	return d.Remote + ":" + d.Path
}

// Join returns the rclone form of a file or directory inside the destination.
func (d Dest) Join(name string) string {
	name = strings.TrimPrefix(name, "/")
	if d.Path == "" {
		return d.Remote + ":" + name
	}
	return d.Remote + ":" + d.Path + "/" + name
}

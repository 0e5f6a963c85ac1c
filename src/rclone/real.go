package rclone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"compose-backup/src/target"
)

// CLI runs the rclone binary. Progress output is written to out when it is
// non-nil.
type CLI struct {
	out io.Writer
}

func NewCLI(out io.Writer) *CLI {
	return &CLI{out: out}
}

func (c *CLI) Upload(ctx context.Context, localFile string, dest target.Dest) error {
	_, stderr, err := c.run(ctx, "copy", localFile, dest.String(), "--verbose")
	if err != nil {
		return fmt.Errorf("rclone: copy %s to %s: %w: %s", localFile, dest, err, stderr)
	}
	return nil
}

func (c *CLI) List(ctx context.Context, dest target.Dest) ([]Entry, error) {
	stdout, stderr, err := c.run(ctx, "lsjson", dest.String(), "--files-only")
	if err != nil {
		return nil, fmt.Errorf("rclone: list %s: %w: %s", dest, err, stderr)
	}
	entries, err := DecodeList([]byte(stdout))
	if err != nil {
		return nil, fmt.Errorf("rclone: list %s: %w", dest, err)
	}
	return entries, nil
}

func (c *CLI) Delete(ctx context.Context, remoteFile string) error {
	_, stderr, err := c.run(ctx, "deletefile", remoteFile)
	if err != nil {
		return fmt.Errorf("rclone: delete %s: %w: %s", remoteFile, err, stderr)
	}
	return nil
}

func (c *CLI) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "rclone", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if c.out != nil {
		cmd.Stderr = io.MultiWriter(c.out, &stderr)
	} else {
		cmd.Stderr = &stderr
	}
	err := cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

// listItem is the wire shape of one `rclone lsjson` element.
type listItem struct {
	Path    string `json:"Path"`
	Name    string `json:"Name"`
	IsDir   bool   `json:"IsDir"`
	ModTime string `json:"ModTime"`
}

// DecodeList parses `rclone lsjson` output. Entries with missing or
// malformed modification times keep the zero time rather than failing the
// whole listing.
func DecodeList(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var items []listItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse lsjson output: %w", err)
	}
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		path := it.Path
		if path == "" {
			path = it.Name
		}
		e := Entry{Path: path, IsDir: it.IsDir}
		if t, err := time.Parse(time.RFC3339, it.ModTime); err == nil {
			e.ModTime = t
		}
		entries = append(entries, e)
	}
	return entries, nil
}

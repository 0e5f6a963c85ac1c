package dockercli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ExportImage is the throwaway container image used for volume exports.
const ExportImage = "alpine"

// CLI drives the locally installed docker tooling. The compose command form
// (v2 plugin or standalone v1 binary) is detected once at construction and
// used consistently for the whole run.
type CLI struct {
	compose []string
	out     io.Writer
}

// Connect detects the available compose command and returns a ready client.
// Progress output from the underlying commands is written to out when it is
// non-nil.
func Connect(ctx context.Context, out io.Writer) (*CLI, error) {
	compose, err := DetectCompose(ctx)
	if err != nil {
		return nil, err
	}
	return &CLI{compose: compose, out: out}, nil
}

// DetectCompose probes for `docker compose` (v2 plugin) first and falls back
// to the standalone `docker-compose` binary.
func DetectCompose(ctx context.Context) ([]string, error) {
	// Guard against probes that hang.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	candidates := [][]string{
		{"docker", "compose"},
		{"docker-compose"},
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err != nil {
			continue
		}
		probe := exec.CommandContext(ctx, c[0], append(c[1:], "version")...)
		probe.Stdout = io.Discard
		probe.Stderr = io.Discard
		if probe.Run() == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("neither 'docker compose' nor 'docker-compose' was found on PATH")
}

// ComposeCommand returns the detected compose invocation, for log lines.
func (c *CLI) ComposeCommand() string {
	return strings.Join(c.compose, " ")
}

func (c *CLI) ComposeDown(ctx context.Context, dir string) error {
	return c.runCompose(ctx, dir, "down")
}

func (c *CLI) ComposeUp(ctx context.Context, dir string) error {
	return c.runCompose(ctx, dir, "up", "-d")
}

func (c *CLI) runCompose(ctx context.Context, dir string, args ...string) error {
	full := append(append([]string{}, c.compose[1:]...), args...)
	cmd := exec.CommandContext(ctx, c.compose[0], full...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stdout = c.output()
	cmd.Stderr = io.MultiWriter(c.output(), &stderr)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", c.ComposeCommand(), strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ExportVolume runs a short-lived container that mounts the volume and the
// destination directory and archives the former into the latter.
func (c *CLI) ExportVolume(ctx context.Context, volume, destDir, archiveName string) error {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolve export destination %s: %w", destDir, err)
	}
	cmd := exec.CommandContext(ctx, "docker", "run", "--rm",
		"-v", volume+":/volume",
		"-v", absDest+":/backup",
		ExportImage,
		"sh", "-c", fmt.Sprintf("cd /volume && tar czf /backup/%s .", archiveName),
	)
	var stderr bytes.Buffer
	cmd.Stdout = c.output()
	cmd.Stderr = io.MultiWriter(c.output(), &stderr)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("export volume %s: %w: %s", volume, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (c *CLI) output() io.Writer {
	if c.out == nil {
		return io.Discard
	}
	return c.out
}

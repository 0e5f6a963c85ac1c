package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"compose-backup/src/archive"
	"compose-backup/src/compose"
	"compose-backup/src/dockercli"
	"compose-backup/src/rclone"
	"compose-backup/src/rotate"
	"compose-backup/src/target"
)

// StagingPrefix names the run-scoped working directory created inside the
// project. The token suffix makes it exclusive to one run.
const StagingPrefix = ".docker-backup-temp-"

// Stage identifies a position in the backup workflow. Transitions only move
// forward; any failure jumps to StageFailed.
type Stage int

const (
	StageStart Stage = iota
	StageTreeArchived
	StageStaged
	StageDescriptorResolved
	StageServicesStopped
	StageVolumesExported
	StageServicesStarted
	StageBundled
	StageUploaded
	StageCleanedUp
	StageRotated
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageTreeArchived:
		return "archive project tree"
	case StageStaged:
		return "create staging directory"
	case StageDescriptorResolved:
		return "resolve compose descriptor"
	case StageServicesStopped:
		return "stop services"
	case StageVolumesExported:
		return "export volumes"
	case StageServicesStarted:
		return "start services"
	case StageBundled:
		return "create final bundle"
	case StageUploaded:
		return "upload bundle"
	case StageCleanedUp:
		return "clean up local artifacts"
	case StageRotated:
		return "rotate remote backups"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures one project backup run.
type Options struct {
	ProjectDir string
	Dest       target.Dest
	Keep       int

	Docker dockercli.Client
	Store  rclone.Store
	Tokens TokenSource
	Logger zerolog.Logger
	// Out receives user-facing progress lines. May be nil.
	Out io.Writer
}

// Result reports where a run ended and which artifacts survive on disk.
// On failure the staging directory and any bundle are deliberately
// preserved for manual recovery.
type Result struct {
	Project    string
	Stage      Stage
	Token      string
	StagingDir string
	BundlePath string
	// ServicesMayBeStopped is set when the run failed between stopping and
	// restarting services.
	ServicesMayBeStopped bool
	// CleanupWarnings lists best-effort cleanup steps that failed after the
	// upload already succeeded. They never fail the run.
	CleanupWarnings []string
	Err             error
}

// Failed reports whether the run ended in StageFailed.
func (r Result) Failed() bool { return r.Err != nil }

// WriteFailureReport prints the error and the location of every preserved
// artifact, so an operator can manually complete or clean up.
func (r Result) WriteFailureReport(w io.Writer) {
	if r.Err == nil || w == nil {
		return
	}
	fmt.Fprintf(w, "ERROR: %v\n", r.Err)
	if r.StagingDir != "" {
		fmt.Fprintf(w, "Staging directory preserved at: %s\n", r.StagingDir)
	}
	if r.BundlePath != "" {
		fmt.Fprintf(w, "Final bundle preserved at: %s\n", r.BundlePath)
	}
	if r.ServicesMayBeStopped {
		fmt.Fprintln(w, "Services may still be stopped; restart them manually once the cause is resolved.")
	}
}

// Run executes the backup workflow for one project, start to finish. It
// never moves a stage backward: each external operation blocks until it
// completes, and the first failure jumps to the terminal failed state with
// the preserved artifact paths in the Result.
func Run(ctx context.Context, opts Options) Result {
	r := runner{opts: opts, res: Result{Stage: StageStart}}
	return r.run(ctx)
}

type runner struct {
	opts Options
	res  Result

	projectDir  string
	projectName string
	token       string
}

func (r *runner) fail(stage Stage, kind Kind, err error) Result {
	r.res.Stage = StageFailed
	r.res.Err = &Error{Stage: stage, Kind: kind, Err: err}
	r.opts.Logger.Error().
		Str("project", r.res.Project).
		Str("stage", stage.String()).
		Err(err).
		Msg("backup failed")
	return r.res
}

func (r *runner) advance(stage Stage) {
	r.res.Stage = stage
	r.opts.Logger.Debug().
		Str("project", r.res.Project).
		Str("stage", stage.String()).
		Msg("stage complete")
}

func (r *runner) printf(format string, args ...any) {
	if r.opts.Out != nil {
		fmt.Fprintf(r.opts.Out, format, args...)
	}
}

func (r *runner) run(ctx context.Context) Result {
	if r.opts.Keep < 1 {
		return r.fail(StageStart, KindValidation, fmt.Errorf("backups to keep must be at least 1, got %d", r.opts.Keep))
	}
	if r.opts.Docker == nil || r.opts.Store == nil {
		return r.fail(StageStart, KindValidation, fmt.Errorf("docker client and remote store are required"))
	}
	tokens := r.opts.Tokens
	if tokens == nil {
		tokens = Clock()
	}

	projectDir, err := filepath.Abs(r.opts.ProjectDir)
	if err != nil {
		return r.fail(StageStart, KindConfig, fmt.Errorf("resolve project directory %s: %w", r.opts.ProjectDir, err))
	}
	fi, err := os.Stat(projectDir)
	if err != nil || !fi.IsDir() {
		return r.fail(StageStart, KindConfig, fmt.Errorf("project directory does not exist or is not a directory: %s", projectDir))
	}
	r.projectDir = projectDir
	r.projectName = filepath.Base(projectDir)
	r.token = tokens.Token()
	r.res.Project = r.projectName
	r.res.Token = r.token

	// Archive the whole project tree first, into the parent directory, so
	// the staging directory created below is never part of the tree archive.
	treeZip := filepath.Join(filepath.Dir(projectDir), fmt.Sprintf("%s-project-%s.zip", r.projectName, r.token))
	r.printf("Creating project archive %s\n", treeZip)
	if err := archive.ZipDir(projectDir, treeZip, r.opts.Out); err != nil {
		return r.fail(StageTreeArchived, KindIO, err)
	}
	r.advance(StageTreeArchived)

	stagingDir := filepath.Join(projectDir, StagingPrefix+r.token)
	if err := os.Mkdir(stagingDir, 0o755); err != nil {
		if os.IsExist(err) {
			return r.fail(StageStaged, KindConfig, fmt.Errorf("staging directory already exists (another run started in the same second?): %s", stagingDir))
		}
		return r.fail(StageStaged, KindIO, fmt.Errorf("create staging directory: %w", err))
	}
	r.res.StagingDir = stagingDir
	if err := os.Rename(treeZip, filepath.Join(stagingDir, filepath.Base(treeZip))); err != nil {
		return r.fail(StageStaged, KindIO, fmt.Errorf("move project archive into staging: %w", err))
	}
	r.advance(StageStaged)

	composeFile, err := compose.FindFile(projectDir)
	if err != nil {
		return r.fail(StageDescriptorResolved, KindConfig, err)
	}
	r.printf("Using compose file: %s\n", composeFile)
	doc, err := compose.Load(composeFile)
	if err != nil {
		return r.fail(StageDescriptorResolved, KindConfig, err)
	}
	volumes := compose.NamedVolumes(doc)
	if len(volumes) > 0 {
		r.printf("Detected named volumes: %s\n", strings.Join(volumes, ", "))
	} else {
		r.printf("WARNING: no named volumes detected in the compose file\n")
	}
	r.advance(StageDescriptorResolved)

	r.printf("Stopping services...\n")
	if err := r.opts.Docker.ComposeDown(ctx, projectDir); err != nil {
		return r.fail(StageServicesStopped, KindRuntime, err)
	}
	r.res.ServicesMayBeStopped = true
	r.advance(StageServicesStopped)

	// Exports run with services quiesced. A failure here aborts before the
	// restart stage, trading availability for snapshot correctness.
	for _, vol := range volumes {
		archiveName := fmt.Sprintf("volume-%s-%s.tar.gz", vol, r.token)
		r.printf("Exporting volume %s to %s\n", vol, archiveName)
		if err := r.opts.Docker.ExportVolume(ctx, vol, stagingDir, archiveName); err != nil {
			return r.fail(StageVolumesExported, KindRuntime, err)
		}
	}
	r.advance(StageVolumesExported)

	r.printf("Starting services...\n")
	if err := r.opts.Docker.ComposeUp(ctx, projectDir); err != nil {
		return r.fail(StageServicesStarted, KindRuntime, err)
	}
	r.res.ServicesMayBeStopped = false
	r.advance(StageServicesStarted)

	bundlePath := filepath.Join(projectDir, fmt.Sprintf("%s-%s.zip", r.projectName, r.token))
	r.printf("Creating final bundle %s\n", bundlePath)
	if err := archive.ZipDir(stagingDir, bundlePath, r.opts.Out); err != nil {
		r.res.BundlePath = bundlePath
		return r.fail(StageBundled, KindIO, err)
	}
	r.res.BundlePath = bundlePath
	r.advance(StageBundled)

	// Nothing local is deleted until the upload has succeeded; the upload is
	// the durability boundary.
	r.printf("Uploading %s to %s\n", filepath.Base(bundlePath), r.opts.Dest)
	if err := r.opts.Store.Upload(ctx, bundlePath, r.opts.Dest); err != nil {
		return r.fail(StageUploaded, KindRuntime, err)
	}
	r.advance(StageUploaded)

	if err := os.RemoveAll(stagingDir); err != nil {
		r.cleanupWarn("remove staging directory", err)
	} else {
		r.res.StagingDir = ""
	}
	if err := os.Remove(bundlePath); err != nil {
		r.cleanupWarn("remove local bundle", err)
	} else {
		r.res.BundlePath = ""
	}
	r.advance(StageCleanedUp)

	r.printf("Rotating backups at %s, keeping newest %d\n", r.opts.Dest, r.opts.Keep)
	if err := rotate.Rotate(ctx, r.opts.Store, r.opts.Dest, r.opts.Keep, r.opts.Out); err != nil {
		return r.fail(StageRotated, KindRuntime, err)
	}
	r.advance(StageRotated)

	r.advance(StageDone)
	r.opts.Logger.Info().
		Str("project", r.projectName).
		Str("token", r.token).
		Str("dest", r.opts.Dest.String()).
		Msg("backup completed")
	r.printf("Backup of %s completed successfully.\n", r.projectName)
	return r.res
}

// cleanupWarn records a best-effort cleanup failure. The remote copy already
// exists, so these never escalate to a run failure.
func (r *runner) cleanupWarn(what string, err error) {
	msg := fmt.Sprintf("%s: %v", what, err)
	r.res.CleanupWarnings = append(r.res.CleanupWarnings, msg)
	r.opts.Logger.Warn().
		Str("project", r.projectName).
		Msg("cleanup: " + msg)
	r.printf("WARNING: cleanup: %s\n", msg)
}

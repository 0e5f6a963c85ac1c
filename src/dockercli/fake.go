package dockercli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FakeClient is an in-memory Client for unit tests. It records every call in
// order and can be told to fail specific operations.
type FakeClient struct {
	Calls      []string
	DownErr    error
	UpErr      error
	ExportErrs map[string]error // volume name -> error
}

func NewFake() *FakeClient {
	return &FakeClient{ExportErrs: map[string]error{}}
}

func (f *FakeClient) ComposeDown(ctx context.Context, dir string) error {
	f.Calls = append(f.Calls, "down "+filepath.Base(dir))
	return f.DownErr
}

func (f *FakeClient) ComposeUp(ctx context.Context, dir string) error {
	f.Calls = append(f.Calls, "up "+filepath.Base(dir))
	return f.UpErr
}

// ExportVolume writes a stub archive so later bundling stages have real
// files to work with.
func (f *FakeClient) ExportVolume(ctx context.Context, volume, destDir, archiveName string) error {
	f.Calls = append(f.Calls, "export "+volume)
	if err := f.ExportErrs[volume]; err != nil {
		return err
	}
	stub := []byte(fmt.Sprintf("fake export of %s\n", volume))
	return os.WriteFile(filepath.Join(destDir, archiveName), stub, 0o644)
}

// CallsOf returns the recorded calls with the given verb ("down", "up",
// "export").
func (f *FakeClient) CallsOf(verb string) []string {
	var out []string
	for _, c := range f.Calls {
		if len(c) >= len(verb) && c[:len(verb)] == verb {
			out = append(out, c)
		}
	}
	return out
}

package rclone

import (
	"context"
	"path/filepath"
	"time"

	"compose-backup/src/target"
)

// FakeStore is an in-memory Store for unit tests.
type FakeStore struct {
	Entries   []Entry
	Uploads   []string
	Deleted   []string
	UploadErr error
	ListErr   error
	DeleteErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) Upload(ctx context.Context, localFile string, dest target.Dest) error {
	if f.UploadErr != nil {
		return f.UploadErr
	}
	f.Uploads = append(f.Uploads, localFile)
	f.Entries = append(f.Entries, Entry{Path: filepath.Base(localFile), ModTime: time.Now()})
	return nil
}

func (f *FakeStore) List(ctx context.Context, dest target.Dest) ([]Entry, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]Entry, len(f.Entries))
	copy(out, f.Entries)
	return out, nil
}

func (f *FakeStore) Delete(ctx context.Context, remoteFile string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, remoteFile)
	name := filepath.Base(remoteFile)
	kept := f.Entries[:0]
	for _, e := range f.Entries {
		if e.Path != name {
			kept = append(kept, e)
		}
	}
	f.Entries = kept
	return nil
}

package rotate

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"compose-backup/src/rclone"
	"compose-backup/src/target"
)

// ArchiveExt limits rotation to backup bundles, so unrelated objects
// colocated at the same remote path are never touched.
const ArchiveExt = ".zip"

// Plan returns the entries to delete so that only the newest keep archives
// remain. Entries are filtered to non-directory ArchiveExt files, then
// sorted by modification time ascending; entries without a trusted mod time
// sort first and are deleted before dated ones. The sort is stable, so ties
// keep their input order. keep must be at least 1.
func Plan(entries []rclone.Entry, keep int) ([]rclone.Entry, error) {
	if keep < 1 {
		return nil, fmt.Errorf("keep must be at least 1, got %d", keep)
	}
	var archives []rclone.Entry
	for _, e := range entries {
		if e.IsDir || !strings.HasSuffix(e.Path, ArchiveExt) {
			continue
		}
		archives = append(archives, e)
	}
	sort.SliceStable(archives, func(i, j int) bool {
		return archives[i].ModTime.Before(archives[j].ModTime)
	})
	if len(archives) <= keep {
		return nil, nil
	}
	return archives[:len(archives)-keep], nil
}

// Rotate lists the destination and deletes everything Plan selects, oldest
// first. Progress lines are written to out when it is non-nil.
func Rotate(ctx context.Context, store rclone.Store, dest target.Dest, keep int, out io.Writer) error {
	entries, err := store.List(ctx, dest)
	if err != nil {
		return err
	}
	toDelete, err := Plan(entries, keep)
	if err != nil {
		return err
	}
	if len(toDelete) == 0 {
		if out != nil {
			fmt.Fprintf(out, "Nothing to delete at %s (keep=%d)\n", dest, keep)
		}
		return nil
	}
	if out != nil {
		fmt.Fprintf(out, "Keeping newest %d backups at %s, deleting %d older\n", keep, dest, len(toDelete))
	}
	for _, e := range toDelete {
		remoteFile := dest.Join(e.Path)
		if out != nil {
			fmt.Fprintf(out, "Deleting %s\n", remoteFile)
		}
		if err := store.Delete(ctx, remoteFile); err != nil {
			return err
		}
	}
	return nil
}

package rotate_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"compose-backup/src/rclone"
	"compose-backup/src/rotate"
	"compose-backup/src/target"
)

func zipEntry(name string, mod time.Time) rclone.Entry {
	return rclone.Entry{Path: name, ModTime: mod}
}

func TestPlan_NothingToDeleteAtOrBelowKeep(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for n := 0; n <= 4; n++ {
		var entries []rclone.Entry
		for i := 0; i < n; i++ {
			entries = append(entries, zipEntry(fmt.Sprintf("b%d.zip", i), base.Add(time.Duration(i)*time.Hour)))
		}
		toDelete, err := rotate.Plan(entries, 4)
		if err != nil {
			t.Fatalf("Plan failed: %v", err)
		}
		if len(toDelete) != 0 {
			t.Fatalf("n=%d: expected empty delete set, got %v", n, toDelete)
		}
	}
}

func TestPlan_DeletesExactlyOldest(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	// Deliberately unsorted input.
	entries := []rclone.Entry{
		zipEntry("c.zip", base.Add(3*time.Hour)),
		zipEntry("a.zip", base.Add(1*time.Hour)),
		zipEntry("f.zip", base.Add(6*time.Hour)),
		zipEntry("b.zip", base.Add(2*time.Hour)),
		zipEntry("e.zip", base.Add(5*time.Hour)),
		zipEntry("d.zip", base.Add(4*time.Hour)),
	}
	toDelete, err := rotate.Plan(entries, 4)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	var names []string
	for _, e := range toDelete {
		names = append(names, e.Path)
	}
	if !reflect.DeepEqual(names, []string{"a.zip", "b.zip"}) {
		t.Fatalf("delete set = %v, want oldest two [a.zip b.zip]", names)
	}
}

func TestPlan_ZeroModTimeSortsFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := []rclone.Entry{
		zipEntry("dated.zip", base),
		zipEntry("undated.zip", time.Time{}),
	}
	toDelete, err := rotate.Plan(entries, 1)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(toDelete) != 1 || toDelete[0].Path != "undated.zip" {
		t.Fatalf("expected undated entry deleted first, got %v", toDelete)
	}
}

func TestPlan_FiltersNonArchives(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := []rclone.Entry{
		zipEntry("keep.zip", base),
		{Path: "notes.txt", ModTime: base.Add(-time.Hour)},
		{Path: "folder.zip", IsDir: true, ModTime: base.Add(-2 * time.Hour)},
	}
	toDelete, err := rotate.Plan(entries, 1)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(toDelete) != 0 {
		t.Fatalf("non-archive entries must never be deleted, got %v", toDelete)
	}
}

func TestPlan_InvalidKeep(t *testing.T) {
	if _, err := rotate.Plan(nil, 0); err == nil {
		t.Fatalf("expected error for keep=0")
	}
}

func TestRotate_DeletesOldestFirstViaStore(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store := rclone.NewFakeStore()
	for i := 1; i <= 6; i++ {
		store.Entries = append(store.Entries, zipEntry(fmt.Sprintf("shop-%d.zip", i), base.Add(time.Duration(i)*time.Hour)))
	}
	dest, _ := target.New("nas", "backups")

	if err := rotate.Rotate(context.Background(), store, dest, 4, nil); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	want := []string{"nas:backups/shop-1.zip", "nas:backups/shop-2.zip"}
	if !reflect.DeepEqual(store.Deleted, want) {
		t.Fatalf("deletes = %v, want %v (oldest first)", store.Deleted, want)
	}
	if len(store.Entries) != 4 {
		t.Fatalf("expected 4 entries retained, got %d", len(store.Entries))
	}
}

func TestRotate_ListFailure(t *testing.T) {
	store := rclone.NewFakeStore()
	store.ListErr = fmt.Errorf("remote unreachable")
	dest, _ := target.New("nas", "")
	if err := rotate.Rotate(context.Background(), store, dest, 4, nil); err == nil {
		t.Fatalf("expected listing failure to propagate")
	}
}

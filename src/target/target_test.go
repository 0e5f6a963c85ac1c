package target_test

import (
	"testing"

	"compose-backup/src/target"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name    string
		remote  string
		path    string
		want    string
		wantErr bool
	}{
		{"root", "nas", "", "nas:", false},
		{"with path", "nas", "backups/shop", "nas:backups/shop", false},
		{"trailing slash trimmed", "nas", "backups/", "nas:backups", false},
		{"leading slash trimmed", "nas", "/backups", "nas:backups", false},
		{"empty remote", "", "backups", "", true},
		{"colon in remote", "nas:extra", "backups", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := target.New(tc.remote, tc.path)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tc.want {
				t.Fatalf("String() = %q, want %q", d.String(), tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	d, err := target.Parse("nas:backups/shop")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if d.Remote != "nas" || d.Path != "backups/shop" {
		t.Fatalf("unexpected Dest: %+v", d)
	}
	if _, err := target.Parse("no-colon"); err == nil {
		t.Fatalf("expected error for destination without colon")
	}
	if _, err := target.Parse(":path"); err == nil {
		t.Fatalf("expected error for empty remote")
	}
}

func TestJoin(t *testing.T) {
	root, _ := target.New("nas", "")
	if got := root.Join("shop-1.zip"); got != "nas:shop-1.zip" {
		t.Fatalf("Join at root = %q", got)
	}
	sub, _ := target.New("nas", "backups")
	if got := sub.Join("shop-1.zip"); got != "nas:backups/shop-1.zip" {
		t.Fatalf("Join in path = %q", got)
	}
}

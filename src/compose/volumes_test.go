package compose_test

import (
	"reflect"
	"testing"

	"compose-backup/src/compose"
)

func TestNamedVolumes_SkipsHostPaths(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   int
	}{
		{"absolute path", "/var/lib/data", 0},
		{"relative dot path", "./conf", 0},
		{"parent path", "../shared", 0},
		{"home path", "~/data", 0},
		{"windows path", `C:\data`, 0},
		{"named volume", "data", 1},
		{"named volume with dash", "db-data", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := &compose.Document{
				Services: map[string]compose.Service{
					"web": {Volumes: []compose.Mount{{Source: tc.source, Target: "/mnt"}}},
				},
			}
			if got := compose.NamedVolumes(doc); len(got) != tc.want {
				t.Fatalf("NamedVolumes(%q) = %v, want %d entries", tc.source, got, tc.want)
			}
		})
	}
}

func TestNamedVolumes_NameOverrideWins(t *testing.T) {
	doc := &compose.Document{
		Services: map[string]compose.Service{
			"db": {Volumes: []compose.Mount{{Source: "dbdata", Target: "/var/lib/db"}}},
		},
		Volumes: map[string]compose.Volume{
			"dbdata": {Name: "shop_dbdata"},
		},
	}
	got := compose.NamedVolumes(doc)
	want := []string{"shop_dbdata"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NamedVolumes = %v, want %v", got, want)
	}
}

func TestNamedVolumes_DedupedAndSorted(t *testing.T) {
	doc := &compose.Document{
		Services: map[string]compose.Service{
			"web":    {Volumes: []compose.Mount{{Source: "zeta"}, {Source: "alpha"}}},
			"worker": {Volumes: []compose.Mount{{Source: "alpha"}, {Source: "zeta"}}},
		},
	}
	got := compose.NamedVolumes(doc)
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NamedVolumes = %v, want %v", got, want)
	}
}

func TestNamedVolumes_SkipsEmptySource(t *testing.T) {
	doc := &compose.Document{
		Services: map[string]compose.Service{
			"web": {Volumes: []compose.Mount{{Target: "/var/cache"}}},
		},
	}
	if got := compose.NamedVolumes(doc); len(got) != 0 {
		t.Fatalf("expected no volumes for sourceless mount, got %v", got)
	}
}

func TestParse_ShopScenario(t *testing.T) {
	data := []byte(`
services:
  web:
    image: nginx
    volumes:
      - data:/var/data
  db:
    image: postgres
    volumes:
      - dbdata:/var/lib/db
      - ./conf:/etc/conf
volumes:
  data:
  dbdata:
    name: shop_dbdata
`)
	doc, err := compose.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := compose.NamedVolumes(doc)
	want := []string{"data", "shop_dbdata"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NamedVolumes = %v, want %v", got, want)
	}
}

func TestParse_LongFormMount(t *testing.T) {
	data := []byte(`
services:
  db:
    volumes:
      - type: volume
        source: dbdata
        target: /var/lib/db
        read_only: true
      - type: bind
        source: ./conf
        target: /etc/conf
`)
	doc, err := compose.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	mounts := doc.Services["db"].Volumes
	if len(mounts) != 2 {
		t.Fatalf("expected 2 mounts, got %d", len(mounts))
	}
	if mounts[0].Source != "dbdata" || mounts[0].Target != "/var/lib/db" || mounts[0].Mode != "ro" {
		t.Fatalf("unexpected long-form mount: %+v", mounts[0])
	}
	got := compose.NamedVolumes(doc)
	if !reflect.DeepEqual(got, []string{"dbdata"}) {
		t.Fatalf("NamedVolumes = %v, want [dbdata]", got)
	}
}

func TestParse_ShortFormModes(t *testing.T) {
	data := []byte(`
services:
  web:
    volumes:
      - data:/var/data:ro
`)
	doc, err := compose.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m := doc.Services["web"].Volumes[0]
	if m.Source != "data" || m.Target != "/var/data" || m.Mode != "ro" {
		t.Fatalf("unexpected short-form mount: %+v", m)
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	if _, err := compose.Parse([]byte("services: [not: a: mapping")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	doc, err := compose.Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := compose.NamedVolumes(doc); len(got) != 0 {
		t.Fatalf("expected no volumes for empty document, got %v", got)
	}
}

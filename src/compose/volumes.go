package compose

import (
	"sort"
	"strings"
)

// NamedVolumes returns the deduplicated, sorted runtime names of every named
// volume referenced by the document's services. Bind mounts (path-like
// sources) and mounts without a source are excluded. A top-level volume
// definition with an explicit name overrides the declaration key.
func NamedVolumes(doc *Document) []string {
	seen := map[string]struct{}{}
	for _, svc := range doc.Services {
		for _, m := range svc.Volumes {
			key := m.Source
			if key == "" || isHostPath(key) {
				continue
			}
			name := key
			if def, ok := doc.Volumes[key]; ok && def.Name != "" {
				name = def.Name
			}
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// isHostPath reports whether a mount source refers to the host filesystem
// rather than a named volume: it contains a path separator or starts with
// "." or "~".
func isHostPath(source string) bool {
	return strings.ContainsAny(source, `/\`) ||
		strings.HasPrefix(source, ".") ||
		strings.HasPrefix(source, "~")
}

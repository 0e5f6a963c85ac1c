package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilenames lists the conventional compose file names, in the order
// they are searched.
var DefaultFilenames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// FindFile returns the path of the first compose file present in dir.
func FindFile(dir string) (string, error) {
	for _, name := range DefaultFilenames {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no compose file found in %s (tried: %s)", dir, strings.Join(DefaultFilenames, ", "))
}

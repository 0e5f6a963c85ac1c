package compose

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the subset of a compose file this tool cares about: which
// volumes each service mounts, and the top-level volume definitions that
// may override their runtime names.
type Document struct {
	Services map[string]Service `yaml:"services"`
	Volumes  map[string]Volume  `yaml:"volumes"`
}

// Service holds the volume mounts of one service.
type Service struct {
	Volumes []Mount `yaml:"volumes"`
}

// Volume is a top-level volume definition. Name, when set, is the
// identifier the container runtime uses instead of the declaration key.
type Volume struct {
	Name string `yaml:"name"`
}

// UnmarshalYAML tolerates the non-mapping definition shapes compose accepts
// (a bare key, null, or legacy scalar forms); only a mapping can carry a
// name override.
func (v *Volume) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	var def struct {
		Name string `yaml:"name"`
	}
	if err := value.Decode(&def); err != nil {
		return err
	}
	v.Name = def.Name
	return nil
}

// Mount is the normalized form of one service volume entry. Compose accepts
// either the short string form "source:target[:mode]" or a mapping with
// explicit source/target fields; both decode into this struct.
type Mount struct {
	Source string
	Target string
	Mode   string
}

// UnmarshalYAML normalizes the two accepted mount syntaxes.
func (m *Mount) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var short string
		if err := value.Decode(&short); err != nil {
			return err
		}
		parts := strings.SplitN(short, ":", 3)
		m.Source = parts[0]
		if len(parts) > 1 {
			m.Target = parts[1]
		}
		if len(parts) > 2 {
			m.Mode = parts[2]
		}
		return nil
	case yaml.MappingNode:
		var long struct {
			Type     string `yaml:"type"`
			Source   string `yaml:"source"`
			Target   string `yaml:"target"`
			ReadOnly bool   `yaml:"read_only"`
		}
		if err := value.Decode(&long); err != nil {
			return err
		}
		m.Source = long.Source
		m.Target = long.Target
		if long.ReadOnly {
			m.Mode = "ro"
		}
		return nil
	default:
		return fmt.Errorf("line %d: volume entry must be a string or a mapping", value.Line)
	}
}

// Parse decodes a compose document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse compose file: %w", err)
	}
	return &doc, nil
}

// Load reads and decodes the compose file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compose file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

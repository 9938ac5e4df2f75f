package dump

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawContentEntry decodes one line of a SpecEntry's contents. A bare
// scalar ("$.util.cmd") is shorthand for {path: "$.util.cmd", do:
// RECURSE, reorder: false}; the object form spells out do/reorder
// explicitly. This mirrors the teacher's own technique for decoding a
// field that is sometimes a bare value and sometimes a full record
// (internal/ext/config.go's Dep.Local / Dep.Module optional fields),
// implemented here via yaml.Node.Decode dispatch instead of tags.
type rawContentEntry struct {
	Path    string
	Do      string
	Reorder bool
}

func (r *rawContentEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Path = node.Value
		r.Do = "RECURSE"
		r.Reorder = false
		return nil
	}
	var full struct {
		Path    string `yaml:"path"`
		Do      string `yaml:"do"`
		Reorder bool   `yaml:"reorder"`
	}
	if err := node.Decode(&full); err != nil {
		return fmt.Errorf("content entry: %w", err)
	}
	if full.Path == "" {
		return &ConfigError{Reason: "content entry missing path"}
	}
	r.Path = full.Path
	if full.Do == "" {
		r.Do = "RECURSE"
	} else {
		r.Do = full.Do
	}
	r.Reorder = full.Reorder
	return nil
}

type rawSpecEntry struct {
	Filename string            `yaml:"filename"`
	Rest     bool              `yaml:"rest"`
	Contents []rawContentEntry `yaml:"contents"`
}

// ParseConfigYAML decodes a dump spec document (spec §6 "Config spec")
// from YAML into a validated Config. Parsing the spec is the trivial
// part the core spec calls out as out of scope; what matters is that
// every string shorthand and typed field lands in the same ContentEntry
// shape the driver consumes.
func ParseConfigYAML(data []byte) (*Config, error) {
	var raw []rawSpecEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config spec: %w", err)
	}
	if len(raw) == 0 {
		return BuildConfig(nil)
	}

	entries := make([]SpecEntry, 0, len(raw))
	for _, rse := range raw {
		if rse.Filename == "" {
			return nil, &ConfigError{Reason: "spec entry missing filename"}
		}
		se := SpecEntry{Filename: rse.Filename, Rest: rse.Rest}
		for _, rce := range rse.Contents {
			parts, err := toParts(rce.Path)
			if err != nil {
				return nil, err
			}
			do, err := parseDo(rce.Do)
			if err != nil {
				return nil, err
			}
			se.Contents = append(se.Contents, ContentEntry{Parts: parts, Do: do, Reorder: rce.Reorder})
		}
		entries = append(entries, se)
	}
	return BuildConfig(entries)
}

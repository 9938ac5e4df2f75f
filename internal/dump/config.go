package dump

// ContentEntry is a single normalized line from a SpecEntry's contents:
// a Parts path plus the depth directive to drive it to in that file.
// String-shorthand entries in the raw config ({path: "$.foo"}) normalize
// to {Parts: ..., Do: RECURSE, Reorder: false} before reaching here.
type ContentEntry struct {
	Parts   Parts
	Do      Do
	Reorder bool
}

// SpecEntry is one output file: its name, the bindings it claims (in
// declared order), and whether it is the distinguished rest file.
type SpecEntry struct {
	Filename string
	Contents []ContentEntry
	Rest     bool
}

// ConfigNode is one component of a Parts path in the trie built from the
// whole Config spec.
type ConfigNode struct {
	children    map[string]*ConfigNode
	firstFileNo int // index into Config.Entries; -1 if unclaimed at this node
	pruned      bool
}

func newConfigNode() *ConfigNode {
	return &ConfigNode{children: map[string]*ConfigNode{}, firstFileNo: -1}
}

// Config is the parsed, validated dump spec: an ordered sequence of
// files and the trie answering file-claim and prune-membership queries
// over arbitrary Parts paths.
type Config struct {
	Entries       []SpecEntry
	restIndex     int // -1 if no SpecEntry has Rest: true
	root          *ConfigNode
}

// BuildConfig builds the Config Tree in one pass over the spec, in
// declared file order (spec §4.2). At most one SpecEntry may set
// Rest: true; a second one is a fatal ConfigError.
func BuildConfig(entries []SpecEntry) (*Config, error) {
	c := &Config{Entries: entries, restIndex: -1, root: newConfigNode()}
	for fileNo, se := range entries {
		if se.Rest {
			if c.restIndex != -1 {
				return nil, &ConfigError{Reason: "multiple rest entries declared"}
			}
			c.restIndex = fileNo
		}
		for _, ce := range se.Contents {
			if len(ce.Parts) == 0 {
				return nil, &ConfigError{Reason: "content entry has empty parts", Parts: ce.Parts}
			}
			c.insert(ce.Parts, fileNo, ce.Do)
		}
	}
	return c, nil
}

func (c *Config) insert(parts Parts, fileNo int, do Do) {
	n := c.root
	for _, p := range parts {
		child, ok := n.children[p]
		if !ok {
			child = newConfigNode()
			n.children[p] = child
		}
		n = child
	}
	if n.firstFileNo == -1 {
		n.firstFileNo = fileNo
	}
	if do == PRUNE {
		n.pruned = true
	}
}

// ClaimedFile answers question (i): which file claims this Parts path.
// It walks the trie, inheriting firstFileNo from the closest ancestor
// that has one, falling back to the configured rest file. Returns
// ok == false if the path is unclaimed and no rest file was declared.
func (c *Config) ClaimedFile(parts Parts) (fileNo int, ok bool) {
	n := c.root
	claimed := -1
	for _, p := range parts {
		if n.firstFileNo != -1 {
			claimed = n.firstFileNo
		}
		child, exists := n.children[p]
		if !exists {
			break
		}
		n = child
	}
	if n.firstFileNo != -1 {
		claimed = n.firstFileNo
	}
	if claimed != -1 {
		return claimed, true
	}
	if c.restIndex != -1 {
		return c.restIndex, true
	}
	return -1, false
}

// IsPruned answers whether parts, or any prefix of it, was claimed with
// a PRUNE directive — i.e. reachability through this path is forbidden.
func (c *Config) IsPruned(parts Parts) bool {
	n := c.root
	if n.pruned {
		return true
	}
	for _, p := range parts {
		child, ok := n.children[p]
		if !ok {
			return false
		}
		n = child
		if n.pruned {
			return true
		}
	}
	return false
}

// RestFile returns the index of the rest SpecEntry, or -1 if none was
// declared.
func (c *Config) RestFile() int {
	return c.restIndex
}

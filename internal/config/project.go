package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Permission is one builtin-permission category spec.md §6 names in
// passing ("Flags toggle builtin-permission categories (filesystem, regex,
// etc.)"). Grounded on funvibe/funxy's internal/ext's yaml-driven config
// shape (internal/ext/config.go), generalized from Go-binding declarations
// to a flag bitset.
type Permission uint8

const (
	PermFilesystem Permission = 1 << iota
	PermRegex
	PermNetwork
)

var permNames = map[string]Permission{
	"filesystem": PermFilesystem,
	"regex":      PermRegex,
	"network":    PermNetwork,
}

// Permissions is a bitset of enabled builtin-permission categories.
type Permissions uint8

// Has reports whether p is enabled.
func (ps Permissions) Has(p Permission) bool { return Permissions(p)&ps != 0 }

// Project is the optional `spwn.yaml` file's shape: a project's allowed
// builtin-permission categories, named the way CLI flags spell them.
type Project struct {
	Permissions []string `yaml:"permissions"`
}

// ParseProject parses spwn.yaml content from bytes. path is used only for
// error messages.
func ParseProject(data []byte, path string) (Permissions, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	var flags Permissions
	for _, name := range p.Permissions {
		perm, ok := permNames[name]
		if !ok {
			return 0, fmt.Errorf("%s: unknown permission %q", path, name)
		}
		flags |= Permissions(perm)
	}
	return flags, nil
}

// LoadProject reads and parses a spwn.yaml file.
func LoadProject(path string) (Permissions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// FindProject searches for spwn.yaml starting from dir and walking up to
// parent directories, stopping at the first match or the filesystem root.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "spwn.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

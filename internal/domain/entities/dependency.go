package entities

import (
	"fmt"
	"strings"
)

// Dependency is a single declared library dependency
type Dependency struct {
	Configuration string // e.g. "implementation", "coreLibraryDesugaring"
	Name          string // group:artifact
	Version       string
	Enabled       bool
	Reason        string // Why a disabled entry is disabled
}

// Coordinate returns the group:artifact:version notation
func (d Dependency) Coordinate() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + ":" + d.Version
}

// ParseCoordinate splits group:artifact[:version] notation
func ParseCoordinate(coordinate string) (name, version string, err error) {
	parts := strings.Split(strings.TrimSpace(coordinate), ":")
	switch {
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return parts[0] + ":" + parts[1], "", nil
	case len(parts) == 3 && parts[0] != "" && parts[1] != "" && parts[2] != "":
		return parts[0] + ":" + parts[1], parts[2], nil
	default:
		return "", "", fmt.Errorf("invalid coordinate %q, want group:artifact[:version]", coordinate)
	}
}

// DependencySet is an ordered list of dependencies
type DependencySet struct {
	entries []Dependency
}

// NewDependencySet creates a set preserving declaration order
func NewDependencySet(deps []Dependency) DependencySet {
	entries := make([]Dependency, len(deps))
	copy(entries, deps)
	return DependencySet{entries: entries}
}

// All returns every entry, enabled or not
func (s DependencySet) All() []Dependency {
	out := make([]Dependency, len(s.entries))
	copy(out, s.entries)
	return out
}

// Active returns only enabled entries
func (s DependencySet) Active() []Dependency {
	return s.filter(true)
}

// Disabled returns entries kept for auditability but not handed to the build tool
func (s DependencySet) Disabled() []Dependency {
	return s.filter(false)
}

// WithoutDisabled returns a copy of the set holding only enabled entries
func (s DependencySet) WithoutDisabled() DependencySet {
	return DependencySet{entries: s.Active()}
}

// Len returns the total number of entries
func (s DependencySet) Len() int {
	return len(s.entries)
}

func (s DependencySet) filter(enabled bool) []Dependency {
	out := make([]Dependency, 0, len(s.entries))
	for _, d := range s.entries {
		if d.Enabled == enabled {
			out = append(out, d)
		}
	}
	return out
}

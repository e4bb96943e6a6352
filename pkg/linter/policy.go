package linter

import (
	"fmt"
	"strings"
)

// ProjectPolicy adjusts the active rules for files under selected paths.
type ProjectPolicy struct {
	Name string `yaml:"name"`
	// PathSubstrings selects files whose path contains any entry. Empty
	// selects every file.
	PathSubstrings []string `yaml:"paths"`
	PathExclusions []string `yaml:"exclusions"`
	Owners         []string `yaml:"owners"`
	DisabledRules  []string `yaml:"disabled"`
	EnabledRules   []string `yaml:"enabled"`
}

// MatchesAnyPath returns the first path substring contained in path.
func (p ProjectPolicy) MatchesAnyPath(path string) (string, bool) {
	return firstContained(p.PathSubstrings, path)
}

// MatchesAnyExclusions returns the first exclusion contained in path.
func (p ProjectPolicy) MatchesAnyExclusions(path string) (string, bool) {
	return firstContained(p.PathExclusions, path)
}

func firstContained(fragments []string, path string) (string, bool) {
	for _, f := range fragments {
		if strings.Contains(path, f) {
			return f, true
		}
	}
	return "", false
}

// IsValid checks that every rule named by the policy is registered.
func (p ProjectPolicy) IsValid(registry *Registry) error {
	for _, list := range [][]string{p.DisabledRules, p.EnabledRules} {
		for _, name := range list {
			if !registry.IsRegistered(name) {
				return fmt.Errorf("%w %q: unknown rule %q", ErrInvalidPolicy, p.Name, name)
			}
		}
	}
	return nil
}

// ListPathGlobs renders the path substrings as globs, e.g. "*rtl/* | *ip/*".
func (p ProjectPolicy) ListPathGlobs() string {
	globs := make([]string, len(p.PathSubstrings))
	for i, s := range p.PathSubstrings {
		globs[i] = "*" + s + "*"
	}
	return strings.Join(globs, " | ")
}

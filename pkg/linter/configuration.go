package linter

import (
	"sort"
	"strings"
)

// RuleSetting is the state of one rule in a configuration or bundle.
type RuleSetting struct {
	Enabled bool
	Params  string
}

// Configuration selects the active rules and their parameters. The zero
// value has no active rules; rule set expansion needs a registry, see
// NewConfiguration.
type Configuration struct {
	registry *Registry
	settings map[string]RuleSetting
}

// NewConfiguration creates an empty configuration whose rule sets expand
// against registry.
func NewConfiguration(registry *Registry) *Configuration {
	return &Configuration{
		registry: registry,
		settings: make(map[string]RuleSetting),
	}
}

func (c *Configuration) set(name string, setting RuleSetting) {
	if c.settings == nil {
		c.settings = make(map[string]RuleSetting)
	}
	c.settings[name] = setting
}

// TurnOn activates name, keeping any stored parameters.
func (c *Configuration) TurnOn(name string) {
	s := c.settings[name]
	s.Enabled = true
	c.set(name, s)
}

// TurnOff deactivates name.
func (c *Configuration) TurnOff(name string) {
	s := c.settings[name]
	s.Enabled = false
	c.set(name, s)
}

// RuleIsOn reports whether name is active.
func (c *Configuration) RuleIsOn(name string) bool {
	return c.settings[name].Enabled
}

// RuleParams returns the parameters stored for name.
func (c *Configuration) RuleParams(name string) string {
	return c.settings[name].Params
}

// UseRuleSet discards the current state and activates exactly the rules of
// set.
func (c *Configuration) UseRuleSet(set RuleSet) {
	c.settings = make(map[string]RuleSetting)
	if c.registry == nil {
		return
	}

	var names []string
	switch set {
	case RuleSetAll:
		names = c.registry.AllNames()
	case RuleSetDefault:
		names = c.registry.DefaultNames()
	}
	for _, name := range names {
		c.TurnOn(name)
	}
}

// UseRuleBundle applies the bundle entries in order.
func (c *Configuration) UseRuleBundle(bundle RuleBundle) {
	for _, name := range bundle.Order {
		setting := bundle.Rules[name]
		c.set(name, setting)
	}
}

// UseProjectPolicy applies policy when filePath is in its scope: disabled
// rules are turned off first, then enabled rules are turned on.
func (c *Configuration) UseProjectPolicy(policy ProjectPolicy, filePath string) {
	if len(policy.PathSubstrings) > 0 {
		if _, ok := policy.MatchesAnyPath(filePath); !ok {
			return
		}
	}
	if _, ok := policy.MatchesAnyExclusions(filePath); ok {
		return
	}
	for _, name := range policy.DisabledRules {
		c.TurnOff(name)
	}
	for _, name := range policy.EnabledRules {
		c.TurnOn(name)
	}
}

// ActiveRuleIDs returns the active rule names, sorted.
func (c *Configuration) ActiveRuleIDs() []string {
	ids := make([]string, 0, len(c.settings))
	for name, s := range c.settings {
		if s.Enabled {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids
}

// Equal compares the active rule sets only.
func (c *Configuration) Equal(other *Configuration) bool {
	a, b := c.ActiveRuleIDs(), other.ActiveRuleIDs()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (c *Configuration) Clone() *Configuration {
	out := NewConfiguration(c.registry)
	for name, s := range c.settings {
		out.settings[name] = s
	}
	return out
}

func (c *Configuration) String() string {
	return "{ " + strings.Join(c.ActiveRuleIDs(), ", ") + " }"
}

package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_TurnOnTurnOff(t *testing.T) {
	cfg := NewConfiguration(nil)
	assert.False(t, cfg.RuleIsOn("test-rule-1"))
	assert.Empty(t, cfg.ActiveRuleIDs())

	cfg.TurnOn("test-rule-1")
	assert.True(t, cfg.RuleIsOn("test-rule-1"))
	assert.False(t, cfg.RuleIsOn("test-rule-2"))

	cfg.TurnOn("test-rule-2")
	cfg.TurnOn("test-rule-2")
	assert.Equal(t, []string{"test-rule-1", "test-rule-2"}, cfg.ActiveRuleIDs())

	cfg.TurnOff("test-rule-1")
	cfg.TurnOff("test-rule-1")
	assert.Equal(t, []string{"test-rule-2"}, cfg.ActiveRuleIDs())

	// Unknown names are accepted.
	cfg.TurnOn("not-registered")
	assert.True(t, cfg.RuleIsOn("not-registered"))
}

func TestConfiguration_ZeroValue(t *testing.T) {
	var cfg Configuration
	cfg.TurnOn("a")
	assert.True(t, cfg.RuleIsOn("a"))
	cfg.UseRuleSet(RuleSetAll)
	assert.Empty(t, cfg.ActiveRuleIDs())
}

func TestConfiguration_Equal(t *testing.T) {
	c1, c2 := NewConfiguration(nil), NewConfiguration(nil)
	assert.True(t, c1.Equal(c2))

	c1.TurnOn("rule-x")
	assert.False(t, c1.Equal(c2))
	c2.TurnOn("rule-x")
	assert.True(t, c1.Equal(c2))

	c2.TurnOn("rule-y")
	assert.False(t, c1.Equal(c2))

	c1.TurnOff("rule-x")
	c2.TurnOff("rule-x")
	c2.TurnOff("rule-y")
	assert.True(t, c1.Equal(c2))
}

func TestConfiguration_String(t *testing.T) {
	cfg := NewConfiguration(nil)
	assert.Equal(t, "{  }", cfg.String())

	cfg.TurnOn("rule-abc")
	assert.Equal(t, "{ rule-abc }", cfg.String())

	cfg.TurnOn("rule-xyz")
	assert.Equal(t, "{ rule-abc, rule-xyz }", cfg.String())

	cfg.TurnOff("rule-abc")
	assert.Equal(t, "{ rule-xyz }", cfg.String())

	cfg.TurnOff("rule-xyz")
	assert.Equal(t, "{  }", cfg.String())
}

func TestConfiguration_UseRuleSet(t *testing.T) {
	registry := newTestRegistry(t)

	testCases := []struct {
		set      RuleSet
		expected []string
	}{
		{RuleSetNone, []string{}},
		{RuleSetDefault, []string{"test-rule-1", "test-rule-3"}},
		{RuleSetAll, []string{"test-rule-1", "test-rule-2", "test-rule-3", "test-rule-4", "test-rule-5"}},
	}

	for _, tc := range testCases {
		t.Run(tc.set.String(), func(t *testing.T) {
			cfg := NewConfiguration(registry)
			cfg.TurnOn("test-rule-2")
			cfg.TurnOn("test-rule-4")
			cfg.TurnOn("unrelated")

			// Rule sets reset; nothing from before survives.
			cfg.UseRuleSet(tc.set)
			assert.Equal(t, tc.expected, cfg.ActiveRuleIDs())
		})
	}
}

func TestConfiguration_UseRuleBundle(t *testing.T) {
	registry := newTestRegistry(t)
	cfg := NewConfiguration(registry)
	cfg.UseRuleSet(RuleSetDefault)

	bundle, err := ParseRuleBundle("-test-rule-1, test-rule-5=max:3, test-rule-2", registry)
	require.NoError(t, err)
	cfg.UseRuleBundle(bundle)

	assert.Equal(t, []string{"test-rule-2", "test-rule-3", "test-rule-5"}, cfg.ActiveRuleIDs())
	assert.Equal(t, "max:3", cfg.RuleParams("test-rule-5"))
	assert.Empty(t, cfg.RuleParams("test-rule-2"))

	// Toggling keeps stored parameters.
	cfg.TurnOff("test-rule-5")
	cfg.TurnOn("test-rule-5")
	assert.Equal(t, "max:3", cfg.RuleParams("test-rule-5"))

	clone := cfg.Clone()
	clone.TurnOff("test-rule-2")
	assert.True(t, cfg.RuleIsOn("test-rule-2"))
}

func TestConfiguration_UseProjectPolicy(t *testing.T) {
	testCases := []struct {
		name     string
		initial  []string
		policy   ProjectPolicy
		path     string
		rule     string
		expected bool
	}{
		{
			name:     "enable rule",
			policy:   ProjectPolicy{Name: "policyX", PathSubstrings: []string{"path"}, Owners: []string{"owner"}, EnabledRules: []string{"wanted-rule"}},
			path:     "some/path/foo",
			rule:     "wanted-rule",
			expected: true,
		},
		{
			name:     "enable path not matched",
			policy:   ProjectPolicy{Name: "policyX", PathSubstrings: []string{"not-gonna-match"}, EnabledRules: []string{"wanted-rule"}},
			path:     "some/path/foo",
			rule:     "wanted-rule",
			expected: false,
		},
		{
			name:     "disable rule",
			initial:  []string{"unwanted-rule"},
			policy:   ProjectPolicy{Name: "policyX", PathSubstrings: []string{"path"}, DisabledRules: []string{"unwanted-rule"}},
			path:     "some/path/foo",
			rule:     "unwanted-rule",
			expected: false,
		},
		{
			name:     "disable path not matched",
			initial:  []string{"unwanted-rule"},
			policy:   ProjectPolicy{Name: "policyX", PathSubstrings: []string{"does-not-match"}, DisabledRules: []string{"unwanted-rule"}},
			path:     "some/path/foo",
			rule:     "unwanted-rule",
			expected: true,
		},
		{
			name:     "enable wins over disable",
			policy:   ProjectPolicy{Name: "policyX", PathSubstrings: []string{"path"}, DisabledRules: []string{"wanted-rule"}, EnabledRules: []string{"wanted-rule"}},
			path:     "some/path/foo",
			rule:     "wanted-rule",
			expected: true,
		},
		{
			name:     "empty substrings match everything",
			policy:   ProjectPolicy{Name: "policyX", EnabledRules: []string{"wanted-rule"}},
			path:     "anything.sv",
			rule:     "wanted-rule",
			expected: true,
		},
		{
			name:     "exclusion wins",
			policy:   ProjectPolicy{Name: "policyX", PathSubstrings: []string{"path"}, PathExclusions: []string{"path/foo"}, EnabledRules: []string{"wanted-rule"}},
			path:     "some/path/foo",
			rule:     "wanted-rule",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfiguration(nil)
			for _, r := range tc.initial {
				cfg.TurnOn(r)
			}
			cfg.UseProjectPolicy(tc.policy, tc.path)
			assert.Equal(t, tc.expected, cfg.RuleIsOn(tc.rule))
		})
	}
}

func TestConfiguration_BlankPolicyNoChange(t *testing.T) {
	cfg, reference := NewConfiguration(nil), NewConfiguration(nil)
	cfg.UseProjectPolicy(ProjectPolicy{}, "")
	assert.True(t, cfg.Equal(reference))
}

func TestConfiguration_NonMatchingPolicyIdempotent(t *testing.T) {
	cfg, reference := NewConfiguration(nil), NewConfiguration(nil)
	for _, c := range []*Configuration{cfg, reference} {
		c.TurnOn("kept-rule")
	}

	policy := ProjectPolicy{
		Name:           "policyX",
		PathSubstrings: []string{"rtl"},
		EnabledRules:   []string{"wanted-rule"},
		DisabledRules:  []string{"kept-rule"},
	}
	for i := 0; i < 3; i++ {
		cfg.UseProjectPolicy(policy, "nomatch")
		assert.True(t, cfg.Equal(reference), "application %d", i+1)
	}
}

func TestConfiguration_PolicyOrder(t *testing.T) {
	disable := ProjectPolicy{Name: "disabler", PathSubstrings: []string{"path"}, DisabledRules: []string{"r"}}
	enable := ProjectPolicy{Name: "enabler", PathSubstrings: []string{"foo"}, EnabledRules: []string{"r"}}

	testCases := []struct {
		name     string
		policies []ProjectPolicy
		expected bool
	}{
		{"disable then enable", []ProjectPolicy{disable, enable}, true},
		{"enable then disable", []ProjectPolicy{enable, disable}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfiguration(nil)
			for _, p := range tc.policies {
				cfg.UseProjectPolicy(p, "some/path/foo")
			}
			assert.Equal(t, tc.expected, cfg.RuleIsOn("r"))
		})
	}
}

func TestProjectPolicy_Matches(t *testing.T) {
	policy := ProjectPolicy{
		Name:           "policyX",
		PathSubstrings: []string{"foo", "bar", "ba"},
		PathExclusions: []string{"zzz", "baz"},
	}

	testCases := []struct {
		path          string
		match         string
		matched       bool
		exclusion     string
		excludedMatch bool
	}{
		{"", "", false, "", false},
		{"a/foo/b.sv", "foo", true, "", false},
		{"bar.sv", "bar", true, "", false},
		{"x/baz/y", "ba", true, "baz", true},
		{"qux.sv", "", false, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			match, ok := policy.MatchesAnyPath(tc.path)
			assert.Equal(t, tc.matched, ok)
			assert.Equal(t, tc.match, match)

			excl, ok := policy.MatchesAnyExclusions(tc.path)
			assert.Equal(t, tc.excludedMatch, ok)
			assert.Equal(t, tc.exclusion, excl)
		})
	}
}

func TestProjectPolicy_IsValid(t *testing.T) {
	registry := newTestRegistry(t)

	testCases := []struct {
		name   string
		policy ProjectPolicy
		valid  bool
	}{
		{"disabled known", ProjectPolicy{Name: "p", DisabledRules: []string{"test-rule-1"}}, true},
		{"enabled known", ProjectPolicy{Name: "p", EnabledRules: []string{"test-rule-1"}}, true},
		{"both known", ProjectPolicy{Name: "p", DisabledRules: []string{"test-rule-1"}, EnabledRules: []string{"test-rule-2"}}, true},
		{"disabled unknown", ProjectPolicy{Name: "p", DisabledRules: []string{"not-a-test-rule"}}, false},
		{"enabled unknown", ProjectPolicy{Name: "p", EnabledRules: []string{"not-a-test-rule"}}, false},
		{"mixed disabled", ProjectPolicy{Name: "p", DisabledRules: []string{"test-rule-1", "not-a-test-rule"}}, false},
		{"mixed enabled", ProjectPolicy{Name: "p", EnabledRules: []string{"not-a-test-rule", "test-rule-1"}}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.IsValid(registry)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidPolicy)
			assert.Contains(t, err.Error(), "not-a-test-rule")
		})
	}
}

func TestProjectPolicy_ListPathGlobs(t *testing.T) {
	testCases := []struct {
		paths    []string
		expected string
	}{
		{nil, ""},
		{[]string{"path"}, "*path*"},
		{[]string{"path1", "path2"}, "*path1* | *path2*"},
		{[]string{"pa/th1", "pa/th2"}, "*pa/th1* | *pa/th2*"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			p := ProjectPolicy{Name: "policyX", PathSubstrings: tc.paths}
			assert.Equal(t, tc.expected, p.ListPathGlobs())
		})
	}
}

package rules

import (
	"sync"

	"github.com/platinummonkey/vlint/pkg/linter"
)

type builtin struct {
	kind    linter.RuleKind
	enabled bool
	create  func() describedRule
}

var builtins = []builtin{
	// Syntax tree rules
	{linter.KindSyntaxTree, true, func() describedRule { return NewAlwaysCombRule() }},
	{linter.KindSyntaxTree, true, func() describedRule { return NewExplicitParameterStorageTypeRule() }},
	{linter.KindSyntaxTree, false, func() describedRule { return NewSignalNameStyleRule() }},
	{linter.KindSyntaxTree, true, func() describedRule { return NewParameterNameStyleRule() }},
	{linter.KindSyntaxTree, false, func() describedRule { return NewModuleBeginBlockRule() }},

	// Token stream rules
	{linter.KindTokenStream, true, func() describedRule { return NewForbidDefparamRule() }},
	{linter.KindTokenStream, true, func() describedRule { return NewMacroNameStyleRule() }},

	// Line rules
	{linter.KindLine, true, func() describedRule { return NewLineLengthRule() }},
	{linter.KindLine, true, func() describedRule { return NewNoTabsRule() }},
	{linter.KindLine, true, func() describedRule { return NewNoTrailingSpacesRule() }},

	// Text structure rules
	{linter.KindTextStructure, true, func() describedRule { return NewPosixEOFRule() }},
	{linter.KindTextStructure, false, func() describedRule { return NewModuleFilenameRule() }},
}

// RegisterDefaultRules registers all built-in lint rules
func RegisterDefaultRules(registry *linter.Registry) error {
	for _, b := range builtins {
		probe := b.create()
		opts := []linter.RegisterOption{
			linter.WithTopic(probe.Topic()),
			linter.WithDescription(probe.GetDescription),
		}
		if b.enabled {
			opts = append(opts, linter.EnabledByDefault())
		}
		create := b.create
		factory := func() linter.Rule { return create() }
		if err := registry.Register(probe.Name(), b.kind, factory, opts...); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *linter.Registry
)

// Default returns a shared registry holding the built-in rules
func Default() *linter.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = linter.NewRegistry()
		if err := RegisterDefaultRules(defaultRegistry); err != nil {
			panic(err)
		}
	})
	return defaultRegistry
}

package linter

import "errors"

var (
	// ErrRuleAlreadyRegistered is returned when a rule name is registered twice
	ErrRuleAlreadyRegistered = errors.New("rule already registered")

	// ErrRuleNotFound is returned when a rule name is not in the registry
	ErrRuleNotFound = errors.New("rule not found")

	// ErrInvalidPolicy is returned when a project policy names an unknown rule
	ErrInvalidPolicy = errors.New("invalid project policy")

	// ErrInvalidRuleSet is returned for rule set text other than none, default or all
	ErrInvalidRuleSet = errors.New("invalid rule set")

	// ErrInvalidFlag is returned when a rule bundle names an unknown rule
	ErrInvalidFlag = errors.New("invalid flag")

	// ErrInvalidRuleParams is returned when a rule rejects its parameters
	ErrInvalidRuleParams = errors.New("invalid rule parameters")

	// ErrInvalidConfig is returned when a project configuration file fails validation
	ErrInvalidConfig = errors.New("invalid configuration")
)

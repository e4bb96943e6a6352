package linter

import (
	"fmt"
	"sort"
	"sync"
)

// Descriptor describes a registered rule.
type Descriptor struct {
	Name           string
	Kind           RuleKind
	Topic          string
	DefaultEnabled bool
	describe       func(DescriptionType) string
}

// Description renders the rule's description, or an empty string when the
// rule was registered without one.
func (d Descriptor) Description(mode DescriptionType) string {
	if d.describe == nil {
		return ""
	}
	return d.describe(mode)
}

// RegisterOption customizes a registration.
type RegisterOption func(*Descriptor)

// WithDescription attaches a description renderer.
func WithDescription(describe func(DescriptionType) string) RegisterOption {
	return func(d *Descriptor) { d.describe = describe }
}

// WithTopic records the style guide topic a rule enforces.
func WithTopic(topic string) RegisterOption {
	return func(d *Descriptor) { d.Topic = topic }
}

// EnabledByDefault adds the rule to the default rule set.
func EnabledByDefault() RegisterOption {
	return func(d *Descriptor) { d.DefaultEnabled = true }
}

type registration struct {
	descriptor Descriptor
	factory    Factory
}

// Registry maps rule names to factories. Names are unique across kinds.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]registration
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]registration),
	}
}

// Register adds a rule factory under name
func (r *Registry) Register(name string, kind RuleKind, factory Factory, opts ...RegisterOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[name]; exists {
		return fmt.Errorf("%w: %s", ErrRuleAlreadyRegistered, name)
	}

	d := Descriptor{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&d)
	}
	r.rules[name] = registration{descriptor: d, factory: factory}
	return nil
}

// MustRegister is Register for static tables; it panics on duplicates.
func (r *Registry) MustRegister(name string, kind RuleKind, factory Factory, opts ...RegisterOption) {
	if err := r.Register(name, kind, factory, opts...); err != nil {
		panic(err)
	}
}

// IsRegistered reports whether name is known
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[name]
	return ok
}

// CreateInstance returns a new, independent instance of the named rule
func (r *Registry) CreateInstance(name string) (Rule, RuleKind, error) {
	r.mu.RLock()
	reg, ok := r.rules[name]
	r.mu.RUnlock()

	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrRuleNotFound, name)
	}
	return reg.factory(), reg.descriptor.Kind, nil
}

// Descriptor returns the registration details of name
func (r *Registry) Descriptor(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.rules[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrRuleNotFound, name)
	}
	return reg.descriptor, nil
}

// Names returns the sorted names of every rule of kind
func (r *Registry) Names(kind RuleKind) []string {
	return r.names(func(d Descriptor) bool { return d.Kind == kind })
}

// AllNames returns every registered name, sorted
func (r *Registry) AllNames() []string {
	return r.names(func(Descriptor) bool { return true })
}

// DefaultNames returns the names in the default rule set, sorted
func (r *Registry) DefaultNames() []string {
	return r.names(func(d Descriptor) bool { return d.DefaultEnabled })
}

// Descriptors returns every descriptor sorted by kind, then name
func (r *Registry) Descriptors() []Descriptor {
	var out []Descriptor
	for _, kind := range Kinds {
		for _, name := range r.Names(kind) {
			d, _ := r.Descriptor(name)
			out = append(out, d)
		}
	}
	return out
}

func (r *Registry) names(keep func(Descriptor) bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name, reg := range r.rules {
		if keep(reg.descriptor) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

package category

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"housekeeping/warnings"
)

var (
	ErrConfiguration = errors.New("invalid warning category configuration")
	ErrNoCategory    = errors.New("no warning category provided")
)

// Class is a concrete warning category: a project, a kind and, for
// removals, the version the functionality goes away in.
type Class struct {
	project    string
	kind       Kind
	version    string
	name       string
	dispatcher *warnings.Dispatcher
}

// Option configures a Class at declaration.
type Option func(*Class)

// WithName overrides the generated display name.
func WithName(name string) Option {
	return func(c *Class) { c.name = name }
}

// WithDispatcher routes the category's warnings to d instead of
// warnings.Default().
func WithDispatcher(d *warnings.Dispatcher) Option {
	return func(c *Class) { c.dispatcher = d }
}

// New declares a category. RemovedIn categories need a version, pending
// ones must not carry one.
func New(project string, kind Kind, version string, opts ...Option) (*Class, error) {
	project = strings.TrimSpace(project)
	version = strings.TrimSpace(version)

	switch {
	case !kind.IsValid():
		return nil, fmt.Errorf("%w: unknown kind %s", ErrConfiguration, kind)
	case project == "":
		return nil, fmt.Errorf("%w: project must be a non-empty string", ErrConfiguration)
	case kind == KindRemovedIn && version == "":
		return nil, fmt.Errorf("%w: %s category for %s must name a removal version", ErrConfiguration, kind, project)
	case kind == KindPendingRemoval && version != "":
		return nil, fmt.Errorf("%w: %s category for %s cannot claim removal version %q", ErrConfiguration, kind, project, version)
	}

	c := &Class{
		project: project,
		kind:    kind,
		version: version,
		name:    defaultName(project, kind, version),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func NewRemovedIn(project, version string, opts ...Option) (*Class, error) {
	return New(project, KindRemovedIn, version, opts...)
}

func NewPendingRemoval(project string, opts ...Option) (*Class, error) {
	return New(project, KindPendingRemoval, "", opts...)
}

// MustRemovedIn is like NewRemovedIn but panics on misconfiguration.
func MustRemovedIn(project, version string, opts ...Option) *Class {
	c, err := NewRemovedIn(project, version, opts...)
	if err != nil {
		panic(err)
	}

	return c
}

// MustPendingRemoval is like NewPendingRemoval but panics on misconfiguration.
func MustPendingRemoval(project string, opts ...Option) *Class {
	c, err := NewPendingRemoval(project, opts...)
	if err != nil {
		panic(err)
	}

	return c
}

func (c *Class) Project() string { return c.project }
func (c *Class) Kind() Kind       { return c.kind }
func (c *Class) Version() string  { return c.version }

// Family implements warnings.Category.
func (c *Class) Family() warnings.Family { return c.kind.Family() }

// String implements warnings.Category.
func (c *Class) String() string { return c.name }

// Category implements Source.
func (c *Class) Category() *Class { return c }

// defaultName builds RemovedIn<Project><Version>Warning or
// PendingRemovalIn<Project>Warning.
func defaultName(project string, kind Kind, version string) string {
	if kind == KindRemovedIn {
		return "RemovedIn" + identifier(project) + identifier(version) + "Warning"
	}

	return "PendingRemovalIn" + identifier(project) + "Warning"
}

func identifier(s string) string {
	var b strings.Builder

	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}

		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}

		b.WriteRune(r)
	}

	return b.String()
}

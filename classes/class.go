package classes

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"housekeeping/category"
	"housekeeping/internal/common"
	"housekeeping/stack"
)

var (
	ErrNoNewBase         = errors.New("moved type embeds no replacement")
	ErrAlreadyRegistered = errors.New("type already registered")
)

func init() {
	stack.RegisterInternal()
}

var (
	deprecatedMessages = messageSet{
		init: category.Messages{
			Deprecated: "`{{.className}}` is deprecated and will be removed in {{.product}} {{.version}}.",
			Pending:    "`{{.className}}` is scheduled to be deprecated in a future version of {{.product}}.",
		},
		subclass: category.Messages{
			Deprecated: "`{{.subclassName}}` embeds `{{.className}}`, which is deprecated and will be removed in " +
				"{{.product}} {{.version}}.",
			Pending: "`{{.subclassName}}` embeds `{{.className}}`, which is scheduled to be deprecated in a future " +
				"version of {{.product}}.",
		},
	}
	movedMessages = messageSet{
		init: category.Messages{
			Deprecated: "`{{.oldClassName}}` is deprecated and will be removed in {{.product}} {{.version}}. " +
				"You will need to use `{{.newClassName}}` instead.",
			Pending: "`{{.oldClassName}}` is scheduled to be deprecated in a future version of {{.product}}. " +
				"To prepare, use `{{.newClassName}}` instead.",
		},
		subclass: category.Messages{
			Deprecated: "`{{.subclassName}}` embeds `{{.oldClassName}}`, which is deprecated and will be removed in " +
				"{{.product}} {{.version}}. You will need to embed `{{.newClassName}}` instead.",
			Pending: "`{{.subclassName}}` embeds `{{.oldClassName}}`, which is scheduled to be deprecated in a future " +
				"version of {{.product}}. To prepare, embed `{{.newClassName}}` instead.",
		},
	}
)

type messageSet struct {
	init     category.Messages
	subclass category.Messages
}

type marker struct {
	src      category.Source
	moved    bool
	newBase  reflect.Type
	messages messageSet
}

// Class is the deprecation state of a struct type: either it declares a
// marker, or it descends from a type that does. The lineage of a descendant
// is resolved on use, against the markers declared by then.
type Class struct {
	typ    reflect.Type
	marker *marker
	skip   bool
}

func (c *Class) Type() reflect.Type {
	return c.typ
}

// Marked reports whether the type declares a marker itself.
func (c *Class) Marked() bool {
	return c.marker != nil
}

// Origin returns the type declaring the marker this type is under, or nil
// for types unrelated to any marker.
func (c *Class) Origin() *Class {
	origin, _ := c.lineage()
	return origin
}

// Depth is 0 for a marker type, 1 for its direct children, and so on. It is
// -1 for unrelated types.
func (c *Class) Depth() int {
	_, depth := c.lineage()
	return depth
}

// NewBase returns the replacement of a moved type, nil otherwise.
func (c *Class) NewBase() reflect.Type {
	origin, _ := c.lineage()
	if origin == nil || !origin.marker.moved {
		return nil
	}

	return origin.marker.newBase
}

func (c *Class) String() string {
	return common.TypeName(c.typ)
}

// Init reports an instantiation. Call it from constructors; the warning is
// reported skip frames above the constructor's caller. Init on a nil Class
// does nothing.
func (c *Class) Init(skip int) {
	c.instantiated(stack.Resolve(3, skip))
}

func (c *Class) lineage() (*Class, int) {
	if c.marker != nil {
		return c, 0
	}

	return registry.lineage(c.typ, map[reflect.Type]bool{})
}

// participant returns the lineage of a type that warns at all: the marker
// type and its direct children, unless told to skip.
func (c *Class) participant() (*Class, int, bool) {
	if c == nil || c.skip {
		return nil, -1, false
	}

	origin, depth := c.lineage()

	return origin, depth, origin != nil && depth <= 1
}

func (c *Class) vars(origin *Class) category.Vars {
	vars := category.Vars{
		"className":    common.TypeName(origin.typ),
		"oldClassName": common.TypeName(origin.typ),
		"subclassName": common.TypeName(c.typ),
	}

	if origin.marker.moved {
		vars["newClassName"] = common.TypeName(origin.marker.newBase)
	}

	return vars
}

// instantiated emits for an instance of c, level 1 being the function
// calling instantiated. Direct children reuse the subclass message.
func (c *Class) instantiated(level int) {
	origin, depth, ok := c.participant()
	if !ok {
		return
	}

	m := origin.marker

	msgs := m.messages.init
	if depth == 1 {
		msgs = m.messages.subclass
	}

	category.Emit(m.src, msgs, stack.Resolve(level, 1), c.vars(origin))
}

// defined emits for the registration of a direct child.
func (c *Class) defined(level int) {
	origin, depth, ok := c.participant()
	if !ok || depth != 1 {
		return
	}

	m := origin.marker
	category.Emit(m.src, m.messages.subclass, stack.Resolve(level, 1), c.vars(origin))
}

type options struct {
	initMessage     string
	subclassMessage string
	newBase         reflect.Type
	skip            bool
}

// Option configures a declaration or registration.
type Option func(*options)

// InitMessage replaces the message emitted on instantiating the marker type.
func InitMessage(message string) Option {
	return func(o *options) { o.initMessage = message }
}

// SubclassMessage replaces the message emitted for direct children.
func SubclassMessage(message string) Option {
	return func(o *options) { o.subclassMessage = message }
}

// NewBase names the replacement of a moved type. It defaults to the last
// embedded field.
func NewBase(t reflect.Type) Option {
	return func(o *options) { o.newBase = t }
}

// SkipWarning keeps a registered direct child silent, at registration and
// on instantiation.
func SkipWarning() Option {
	return func(o *options) { o.skip = true }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) messages(fallback messageSet) messageSet {
	if o.initMessage != "" {
		fallback.init = category.Same(o.initMessage)
	}

	if o.subclassMessage != "" {
		fallback.subclass = category.Same(o.subclassMessage)
	}

	return fallback
}

// Deprecated declares T deprecated. Declaring is silent; instantiating T
// and embedding it are not.
//
// Message keys: className, subclassName.
func Deprecated[T any](src category.Source, opts ...Option) *Class {
	o := collect(opts)

	return declare(reflect.TypeFor[T](), &marker{
		src:      src,
		messages: o.messages(deprecatedMessages),
	})
}

// Moved declares that T moved to a new base type, by default the last type
// T embeds. It panics if there is none.
//
// Message keys: oldClassName, newClassName, subclassName.
func Moved[T any](src category.Source, opts ...Option) *Class {
	o := collect(opts)
	t := reflect.TypeFor[T]()

	newBase := o.newBase
	if newBase == nil {
		bases := embedded(t)
		if common.IsEmpty(bases) {
			panic(fmt.Errorf("%s: %w", common.TypeName(t), ErrNoNewBase))
		}

		newBase = bases[len(bases)-1]
	}

	return declare(t, &marker{
		src:      src,
		moved:    true,
		newBase:  newBase,
		messages: o.messages(movedMessages),
	})
}

// Register records T and warns if it directly embeds a marker type. It
// returns the existing entry, without warning, for a type registered before.
func Register[T any](opts ...Option) *Class {
	o := collect(opts)

	c, fresh := registry.add(reflect.TypeFor[T](), func(c *Class) {
		c.skip = o.skip
	})

	if fresh {
		c.defined(2)
	}

	return c
}

// New reports an instantiation of T at the caller and returns a new zero T.
func New[T any]() *T {
	Of[T]().instantiated(2)
	return new(T)
}

// Of returns the state of T: its registered entry, or one derived from the
// types it embeds. It is nil for types unrelated to any marker.
func Of[T any]() *Class {
	return Lookup(reflect.TypeFor[T]())
}

// Lookup is Of for a reflect.Type.
func Lookup(t reflect.Type) *Class {
	t = deref(t)

	if c, ok := registry.get(t); ok {
		return c
	}

	if origin, _ := registry.lineage(t, map[reflect.Type]bool{}); origin == nil {
		return nil
	}

	return &Class{typ: t}
}

// declare attaches a marker to t. A type gets its marker once, before it is
// registered; anything else panics with ErrAlreadyRegistered.
func declare(t reflect.Type, m *marker) *Class {
	c, fresh := registry.add(t, func(c *Class) {
		c.marker = m
	})

	if !fresh {
		panic(fmt.Errorf("declare %s: %w", common.TypeName(c.typ), ErrAlreadyRegistered))
	}

	return c
}

type classRegistry struct {
	mu      sync.RWMutex
	classes map[reflect.Type]*Class
}

var registry = &classRegistry{classes: map[reflect.Type]*Class{}}

func (r *classRegistry) get(t reflect.Type) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[t]

	return c, ok
}

// add stores a new entry for t, set up by setup. An existing entry is
// returned unchanged.
func (r *classRegistry) add(t reflect.Type, setup func(*Class)) (*Class, bool) {
	t = deref(t)

	c := &Class{typ: t}
	setup(c)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.classes[t]; ok {
		return existing, false
	}

	r.classes[t] = c

	return c, true
}

// lineage finds the marker type t descends from through the first embedded
// type that has one, and how many embeddings away it is.
func (r *classRegistry) lineage(t reflect.Type, visiting map[reflect.Type]bool) (*Class, int) {
	visiting[t] = true

	for _, base := range embedded(t) {
		if visiting[base] {
			continue
		}

		if parent, ok := r.get(base); ok && parent.marker != nil {
			return parent, 1
		}

		if origin, depth := r.lineage(base, visiting); origin != nil {
			return origin, depth + 1
		}
	}

	return nil, -1
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

// embedded lists the types of t's embedded fields in declaration order,
// pointers dereferenced.
func embedded(t reflect.Type) []reflect.Type {
	t = deref(t)
	if t.Kind() != reflect.Struct {
		return nil
	}

	var bases []reflect.Type

	for i := range t.NumField() {
		if field := t.Field(i); field.Anonymous {
			bases = append(bases, deref(field.Type))
		}
	}

	return bases
}

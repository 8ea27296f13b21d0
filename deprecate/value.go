package deprecate

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"housekeeping/category"
)

var (
	valueMessages = category.Messages{
		Deprecated: "`{{.oldName}}` for `{{.ownerName}}` has been deprecated and will be removed in {{.product}} {{.version}}.",
		Pending:    "`{{.oldName}}` for `{{.ownerName}}` is scheduled to be deprecated in a future version of {{.product}}.",
	}
	renamedValueMessages = category.Messages{
		Deprecated: "`{{.oldName}}` for `{{.ownerName}}` has been deprecated and will be removed in {{.product}} {{.version}}. " +
			"Use `{{.newName}}` instead.",
		Pending: "`{{.oldName}}` for `{{.ownerName}}` is scheduled to be deprecated in a future version of {{.product}}. " +
			"To prepare, use `{{.newName}}` instead.",
	}
)

var (
	_ fmt.Stringer   = (*Value[int])(nil)
	_ fmt.Formatter  = (*Value[int])(nil)
	_ yaml.Marshaler = (*Value[int])(nil)
)

// Value holds a value handed out under a deprecated name, such as an old
// key in a map passed to callbacks. Creating a Value is silent; the first
// access warns, later ones don't.
type Value[T any] struct {
	src    category.Source
	msgs   category.Messages
	vars   category.Vars
	level  int
	value  T
	warned atomic.Bool
}

// ArgValue wraps value, known to owner as oldName. WithNewName names its
// replacement.
//
// Message keys: ownerName, oldName, newName.
func ArgValue[T any](src category.Source, owner string, value T, oldName string, opts ...Option) *Value[T] {
	cfg := newConfig(opts)

	msgs := valueMessages
	if cfg.newName != "" {
		msgs = renamedValueMessages
	}

	return &Value[T]{
		src:  src,
		msgs: cfg.messages(msgs),
		vars: category.Vars{
			"ownerName": owner,
			"oldName":   oldName,
			"newName":   cfg.newName,
		},
		level: cfg.level(1),
		value: value,
	}
}

// Get returns the wrapped value.
func (v *Value[T]) Get() T {
	v.touch()
	return v.value
}

func (v *Value[T]) String() string {
	v.touch()
	return fmt.Sprint(v.value)
}

// Format formats the wrapped value, so every verb and flag behaves as it
// would on the value itself.
func (v *Value[T]) Format(f fmt.State, verb rune) {
	v.touch()
	fmt.Fprintf(f, fmt.FormatString(f, verb), v.value)
}

// Equal reports whether the wrapped value deeply equals other.
func (v *Value[T]) Equal(other T) bool {
	v.touch()
	return reflect.DeepEqual(v.value, other)
}

func (v *Value[T]) MarshalYAML() (any, error) {
	v.touch()
	return v.value, nil
}

// Warned reports whether the value was accessed yet. It does not count as an
// access.
func (v *Value[T]) Warned() bool {
	return v.warned.Load()
}

// touch runs two frames below the accessing code.
func (v *Value[T]) touch() {
	if v.warned.CompareAndSwap(false, true) {
		category.Emit(v.src, v.msgs, v.level, v.vars)
	}
}

package deprecate

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"housekeeping/category"
	"housekeeping/internal/common"
)

var (
	ErrTooManyArguments  = errors.New("too many positional arguments")
	ErrUnexpectedKeyword = errors.New("unexpected keyword argument")
	ErrMissingArgument   = errors.New("missing required argument")
	ErrArgumentType      = errors.New("argument of wrong type")
	ErrNoKeywordOnly     = errors.New("parameters have no keyword-only field")
	ErrDuplicateParam    = errors.New("duplicate parameter name")
)

const argTag = "arg"

var (
	kwonlyMessages = category.Messages{
		Deprecated: "Positional argument {{.posArgs}} must be passed as a keyword argument when calling `{{.funcName}}`. " +
			"Passing as a positional argument will be required in {{.product}} {{.version}}.",
		Pending: "Positional argument {{.posArgs}} should be passed as a keyword argument when calling `{{.funcName}}`. " +
			"Passing as a positional argument is scheduled to be deprecated in a future version of {{.product}}.",
	}
	kwonlyPluralMessages = category.Messages{
		Deprecated: "Positional arguments {{.posArgs}} must be passed as keyword arguments when calling `{{.funcName}}`. " +
			"Passing as positional arguments will be required in {{.product}} {{.version}}.",
		Pending: "Positional arguments {{.posArgs}} should be passed as keyword arguments when calling `{{.funcName}}`. " +
			"Passing as positional arguments is scheduled to be deprecated in a future version of {{.product}}.",
	}
)

// Kwargs are arguments passed by name.
type Kwargs map[string]any

// Param is one parameter of a wrapped function, backed by a field of its
// parameter struct.
type Param struct {
	Name        string
	Field       int
	Type        reflect.Type
	KeywordOnly bool
	Required    bool
}

// Shape is the parameter list of a wrapped function. Parameters from
// FirstKeywordOnly on are keyword-only.
type Shape struct {
	Params           []Param
	FirstKeywordOnly int
}

// ShapeOf derives the shape of a parameter struct. Fields are named by the
// first element of their `arg` tag, then their `json` tag, then the field
// name; the `kwonly` and `required` tag options mark keyword-only and
// required parameters. Unexported fields and fields tagged `arg:"-"` are
// not parameters.
//
// Every parameter following the first keyword-only one is keyword-only too.
func ShapeOf(t reflect.Type) (Shape, error) {
	if t.Kind() != reflect.Struct {
		return Shape{}, fmt.Errorf("%s is not a struct: %w", common.TypeName(t), ErrNoKeywordOnly)
	}

	shape := Shape{FirstKeywordOnly: -1}
	seen := make(map[string]string, t.NumField())

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(argTag)
		if tag == "-" {
			continue
		}

		name, options, _ := strings.Cut(tag, ",")
		if name == "" {
			name, _, _ = strings.Cut(field.Tag.Get("json"), ",")
		}

		if name == "" || name == "-" {
			name = field.Name
		}

		if other, ok := seen[name]; ok {
			return Shape{}, fmt.Errorf("%s: fields %s and %s are both %q: %w",
				common.TypeName(t), other, field.Name, name, ErrDuplicateParam)
		}

		seen[name] = field.Name

		param := Param{Name: name, Field: i, Type: field.Type}

		for _, opt := range strings.Split(options, ",") {
			switch opt {
			case "kwonly":
				param.KeywordOnly = true
			case "required":
				param.Required = true
			}
		}

		if shape.FirstKeywordOnly >= 0 {
			param.KeywordOnly = true
		} else if param.KeywordOnly {
			shape.FirstKeywordOnly = len(shape.Params)
		}

		shape.Params = append(shape.Params, param)
	}

	if shape.FirstKeywordOnly < 0 {
		return Shape{}, fmt.Errorf("%s: %w", common.TypeName(t), ErrNoKeywordOnly)
	}

	return shape, nil
}

// Lookup returns the parameter with the given name.
func (s Shape) Lookup(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// KeywordOnlyFunc is a function whose trailing parameters became
// keyword-only, still accepting them positionally with a warning.
type KeywordOnlyFunc[P, R any] struct {
	src   category.Source
	fn    func(P) R
	shape Shape
	cfg   config
	name  string
}

// NonKeywordOnlyArgs wraps fn, whose parameters are the fields of P. It
// panics if P has no keyword-only field.
//
// Message keys: funcName, posArgs.
func NonKeywordOnlyArgs[P, R any](src category.Source, fn func(P) R, opts ...Option) *KeywordOnlyFunc[P, R] {
	shape, err := ShapeOf(reflect.TypeFor[P]())
	if err != nil {
		panic(err)
	}

	return &KeywordOnlyFunc[P, R]{
		src:   src,
		fn:    fn,
		shape: shape,
		cfg:   newConfig(opts),
		name:  common.FuncName(fn),
	}
}

func (f *KeywordOnlyFunc[P, R]) Shape() Shape {
	return f.shape
}

// Call binds args to the parameters in order, skipping the ones in kwargs,
// and calls the function. Keyword-only parameters filled positionally are
// reported in a single warning.
func (f *KeywordOnlyFunc[P, R]) Call(args []any, kwargs Kwargs) (R, error) {
	var (
		params P
		zero   R
	)

	moved, err := f.bind(reflect.ValueOf(&params).Elem(), args, kwargs)
	if err != nil {
		return zero, fmt.Errorf("call %s: %w", f.name, err)
	}

	if !common.IsEmpty(moved) {
		msgs := kwonlyPluralMessages
		if common.IsSingle(moved) {
			msgs = kwonlyMessages
		}

		quoted := make([]string, len(moved))
		for i, name := range moved {
			quoted[i] = "`" + name + "`"
		}

		category.Emit(f.src, f.cfg.messages(msgs), f.cfg.level(0), category.Vars{
			"funcName": f.name,
			"posArgs":  strings.Join(quoted, ", "),
		})
	}

	return f.fn(params), nil
}

func (f *KeywordOnlyFunc[P, R]) bind(dst reflect.Value, args []any, kwargs Kwargs) ([]string, error) {
	for _, name := range slices.Sorted(maps.Keys(kwargs)) {
		if _, ok := f.shape.Lookup(name); !ok {
			return nil, fmt.Errorf("%w %q", ErrUnexpectedKeyword, name)
		}
	}

	for _, p := range f.shape.Params {
		if arg, ok := kwargs[p.Name]; ok {
			if err := assign(dst.Field(p.Field), p, arg); err != nil {
				return nil, err
			}
		}
	}

	var (
		moved []string
		next  int
	)

	for i, p := range f.shape.Params {
		if _, ok := kwargs[p.Name]; ok {
			continue
		}

		if next < len(args) {
			if err := assign(dst.Field(p.Field), p, args[next]); err != nil {
				return nil, err
			}

			if i >= f.shape.FirstKeywordOnly {
				moved = append(moved, p.Name)
			}

			next++

			continue
		}

		if p.Required {
			return nil, fmt.Errorf("%w %q", ErrMissingArgument, p.Name)
		}
	}

	if next < len(args) {
		return nil, fmt.Errorf("%w: got %d, takes at most %d", ErrTooManyArguments, len(args), next)
	}

	return moved, nil
}

func assign(field reflect.Value, p Param, arg any) error {
	if arg == nil {
		switch p.Type.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			field.SetZero()
			return nil
		default:
			return fmt.Errorf("%w: %q cannot be nil", ErrArgumentType, p.Name)
		}
	}

	v := reflect.ValueOf(arg)

	switch {
	case v.Type().AssignableTo(p.Type):
		field.Set(v)
	case convertible(v.Type(), p.Type):
		field.Set(v.Convert(p.Type))
	default:
		return fmt.Errorf("%w: %q wants %s, got %s",
			ErrArgumentType, p.Name, common.TypeName(p.Type), common.TypeName(v.Type()))
	}

	return nil
}

// convertible permits conversions between types of the same kind and
// between numeric types, which is what untyped constants at call sites
// need. Conversions between, say, ints and strings are refused.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}

	return from.Kind() == to.Kind() || (isNumeric(from.Kind()) && isNumeric(to.Kind()))
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Complex128
}

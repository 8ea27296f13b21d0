package common

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

const UnknownStr = "<unknown>"

// FuncName returns the qualified name of a function value followed by "()",
// e.g. "example.com/pkg.(*Type).Method()". Closures keep their runtime
// suffix ("pkg.Outer.func1()").
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return UnknownStr
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return UnknownStr
	}

	// Method values are wrapped by the compiler with a "-fm" suffix.
	return strings.TrimSuffix(f.Name(), "-fm") + "()"
}

// TypeName returns the fully qualified name of a type: named types as
// "import/path.Name", composite types spelled out, builtins as is.
func TypeName(t reflect.Type) string {
	if t == nil {
		return UnknownStr
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + TypeName(t.Elem())
	case reflect.Slice:
		if t.Name() == "" {
			return "[]" + TypeName(t.Elem())
		}
	case reflect.Array:
		if t.Name() == "" {
			return "[" + strconv.Itoa(t.Len()) + "]" + TypeName(t.Elem())
		}
	case reflect.Map:
		if t.Name() == "" {
			return "map[" + TypeName(t.Key()) + "]" + TypeName(t.Elem())
		}
	}

	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}

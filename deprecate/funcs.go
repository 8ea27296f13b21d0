package deprecate

import (
	"errors"
	"fmt"
	"reflect"

	"housekeeping/category"
	"housekeeping/internal/common"
)

var ErrNotFunc = errors.New("not a function")

var (
	funcMessages = category.Messages{
		Deprecated: "`{{.funcName}}` is deprecated and will be removed in {{.product}} {{.version}}.",
		Pending:    "`{{.funcName}}` is scheduled to be deprecated in a future version of {{.product}}.",
	}
	movedMessages = category.Messages{
		Deprecated: "`{{.oldFuncName}}` has moved to `{{.newFuncName}}`. " +
			"The old function is deprecated and will be removed in {{.product}} {{.version}}.",
		Pending: "`{{.oldFuncName}}` has moved to `{{.newFuncName}}`. " +
			"The old function is scheduled to be deprecated in a future version of {{.product}}.",
	}
)

// Func returns fn wrapped to warn on every call before running fn. Results
// and panics of fn pass through unchanged.
//
// Message keys: funcName.
func Func[F any](src category.Source, fn F, opts ...Option) F {
	cfg := newConfig(opts)
	msgs := cfg.messages(funcMessages)
	vars := category.Vars{"funcName": common.FuncName(fn)}

	return wrap(fn, func() {
		category.Emit(src, msgs, cfg.level(1), vars)
	})
}

// Moved is Func for functions that have a replacement. newFunc is either the
// replacement function or a string naming it. fn itself keeps being called;
// forwarding to the replacement is up to fn.
//
// Message keys: oldFuncName, newFuncName.
func Moved[F any](src category.Source, fn F, newFunc any, opts ...Option) F {
	var newName string

	switch v := newFunc.(type) {
	case string:
		newName = v + "()"
	default:
		if reflect.ValueOf(newFunc).Kind() != reflect.Func {
			panic(fmt.Errorf("moved to %T: %w", newFunc, ErrNotFunc))
		}

		newName = common.FuncName(newFunc)
	}

	cfg := newConfig(opts)
	msgs := cfg.messages(movedMessages)
	vars := category.Vars{
		"oldFuncName": common.FuncName(fn),
		"newFuncName": newName,
	}

	return wrap(fn, func() {
		category.Emit(src, msgs, cfg.level(1), vars)
	})
}

// wrap builds a function of fn's type running warn and then fn. warn runs
// two frames below the caller of the wrapped function.
func wrap[F any](fn F, warn func()) F {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Errorf("wrap %T: %w", fn, ErrNotFunc))
	}

	variadic := v.Type().IsVariadic()

	return reflect.MakeFunc(v.Type(), func(args []reflect.Value) []reflect.Value {
		warn()

		if variadic {
			return v.CallSlice(args)
		}

		return v.Call(args)
	}).Interface().(F)
}

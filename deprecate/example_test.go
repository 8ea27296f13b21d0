package deprecate_test

import (
	"fmt"
	"path/filepath"

	"housekeeping/category"
	"housekeeping/deprecate"
	"housekeeping/warnings"
)

func newExampleCategory() *category.Class {
	d := warnings.NewDispatcher(warnings.SinkFunc(func(r warnings.Record) {
		fmt.Printf("%s: %s: %s\n", filepath.Base(r.Frame.File), r.Category, r.Message)
	}))
	d.SimpleFilter(warnings.ActionAlways)

	return category.MustRemovedIn("My Product", "2.0", category.WithDispatcher(d))
}

func ExampleMoved() {
	removedIn20 := newExampleCategory()
	add := deprecate.Moved(removedIn20, addNumbers, "mathutil.Add")

	fmt.Println(add(2, 3))
	// Output:
	// example_test.go: RemovedInMyProduct20Warning: `housekeeping/deprecate_test.addNumbers()` has moved to `mathutil.Add()`. The old function is deprecated and will be removed in My Product 2.0.
	// 5
}

func ExampleNonKeywordOnlyArgs() {
	type params struct {
		Name  string `arg:"name"`
		Greet string `arg:"greeting,kwonly"`
	}

	removedIn20 := newExampleCategory()
	hello := deprecate.NonKeywordOnlyArgs(removedIn20, func(p params) string {
		return p.Greet + ", " + p.Name
	})

	s, _ := hello.Call([]any{"Ada"}, deprecate.Kwargs{"greeting": "Hi"})
	fmt.Println(s)

	s, _ = hello.Call([]any{"Ada", "Hello"}, nil)
	fmt.Println(s)
	// Output:
	// Hi, Ada
	// example_test.go: RemovedInMyProduct20Warning: Positional argument `greeting` must be passed as a keyword argument when calling `housekeeping/deprecate_test.ExampleNonKeywordOnlyArgs.func1()`. Passing as a positional argument will be required in My Product 2.0.
	// Hello, Ada
}

func ExampleArgValue() {
	removedIn20 := newExampleCategory()
	opts := map[string]any{
		"color":  "red",
		"colour": deprecate.ArgValue(removedIn20, "paint()", "red", "colour", deprecate.WithNewName("color")),
	}

	fmt.Println(opts["color"])
	fmt.Println(opts["colour"])
	fmt.Println(opts["colour"])
	// Output:
	// red
	// example_test.go: RemovedInMyProduct20Warning: `colour` for `paint()` has been deprecated and will be removed in My Product 2.0. Use `color` instead.
	// red
	// red
}

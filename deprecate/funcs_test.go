package deprecate_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housekeeping/category"
	"housekeeping/deprecate"
	"housekeeping/internal/assertwarn"
)

const prefix = "housekeeping/deprecate_test"

func addNumbers(a, b int) int {
	return a + b
}

func joinWords(sep string, words ...string) string {
	return strings.Join(words, sep)
}

func sumNumbers(nums ...int) int {
	total := 0
	for _, n := range nums {
		total += n
	}

	return total
}

var errBroken = errors.New("broken")

func failing() error {
	return errBroken
}

func TestFunc(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	tests := []struct {
		name    string
		cat     *category.Class
		message string
	}{
		{
			name: "removed in",
			cat:  cats.RemovedIn,
			message: "`" + prefix + ".addNumbers()` is deprecated and will be removed in " +
				"My Product 1.0.",
		},
		{
			name: "pending",
			cat:  cats.Pending,
			message: "`" + prefix + ".addNumbers()` is scheduled to be deprecated in a " +
				"future version of My Product.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add := deprecate.Func(tt.cat, addNumbers)

			var result int
			cats.Warning(t, tt.cat, tt.message, "result = add(1, 2)", func() {
				result = add(1, 2)
			})
			assert.Equal(t, 3, result)
		})
	}
}

func TestFunc_EveryCall(t *testing.T) {
	cats := assertwarn.NewCategories(t)
	add := deprecate.Func(cats.RemovedIn, addNumbers)

	for range 3 {
		add(1, 2)
	}

	assert.Len(t, cats.Take(), 3)
}

func TestFunc_WithMessage(t *testing.T) {
	cats := assertwarn.NewCategories(t)
	add := deprecate.Func(cats.RemovedIn, addNumbers,
		deprecate.WithMessage("Custom message: {{.funcName}}; {{.product}} {{.version}}."))

	cats.Warning(t, cats.RemovedIn, "Custom message: "+prefix+".addNumbers(); My Product 1.0.", "add(1, 2)", func() {
		add(1, 2)
	})
}

func TestFunc_Variadic(t *testing.T) {
	cats := assertwarn.NewCategories(t)
	join := deprecate.Func(cats.Pending, joinWords)
	sum := deprecate.Func(cats.Pending, sumNumbers)

	assert.Equal(t, "a-b-c", join("-", "a", "b", "c"))
	assert.Equal(t, "x", join("-", []string{"x"}...))
	assert.Equal(t, 6, sum(1, 2, 3))
	assert.Equal(t, 0, sum())
	assert.Len(t, cats.Take(), 4)
}

func TestFunc_PassesThrough(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	fail := deprecate.Func(cats.RemovedIn, failing)
	assert.ErrorIs(t, fail(), errBroken)

	explode := deprecate.Func(cats.RemovedIn, func() { panic("boom") })
	assert.PanicsWithValue(t, "boom", explode)

	assert.Len(t, cats.Take(), 2, "warnings are emitted before the call")
}

type counter struct {
	n int
}

func (c *counter) Inc(by int) int {
	c.n += by
	return c.n
}

func TestFunc_MethodValue(t *testing.T) {
	cats := assertwarn.NewCategories(t)
	c := &counter{}
	inc := deprecate.Func(cats.RemovedIn, c.Inc)

	cats.Warning(t, cats.RemovedIn,
		"`"+prefix+".(*counter).Inc()` is deprecated and will be removed in My Product 1.0.",
		"inc(2)", func() {
			inc(2)
		})
	assert.Equal(t, 2, c.n)
}

func TestFunc_StackOffset(t *testing.T) {
	cats := assertwarn.NewCategories(t)
	add := deprecate.Func(cats.RemovedIn, addNumbers, deprecate.StackOffset(1))
	forward := func(a, b int) int {
		return add(a, b)
	}

	r := cats.Warning(t, cats.RemovedIn,
		"`"+prefix+".addNumbers()` is deprecated and will be removed in My Product 1.0.",
		"forward(3, 4)", func() {
			forward(3, 4)
		})
	assert.Contains(t, r.Frame.Function, "TestFunc_StackOffset")
}

func TestFunc_Nested(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	add := deprecate.Func(cats.RemovedIn, addNumbers)
	for range 3 {
		add = deprecate.Func(cats.Pending, add)
	}

	add(1, 1)

	records := cats.Take()
	require.Len(t, records, 4)

	for _, r := range records {
		assert.Equal(t, "add(1, 1)", assertwarn.SourceLine(t, r), "nested wrappers report the caller")
	}
}

func TestFunc_NotAFunction(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	assert.Panics(t, func() { deprecate.Func(cats.RemovedIn, 42) })
	assert.Panics(t, func() { deprecate.Func[func()](cats.RemovedIn, nil) })
}

func newAddNumbers(a, b int) int {
	return a + b
}

func TestMoved(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	tests := []struct {
		name    string
		cat     *category.Class
		newFunc any
		message string
	}{
		{
			name:    "removed in",
			cat:     cats.RemovedIn,
			newFunc: newAddNumbers,
			message: "`" + prefix + ".addNumbers()` has moved to `" + prefix + ".newAddNumbers()`. " +
				"The old function is deprecated and will be removed in My Product 1.0.",
		},
		{
			name:    "pending",
			cat:     cats.Pending,
			newFunc: newAddNumbers,
			message: "`" + prefix + ".addNumbers()` has moved to `" + prefix + ".newAddNumbers()`. " +
				"The old function is scheduled to be deprecated in a future version of My Product.",
		},
		{
			name:    "named replacement",
			cat:     cats.RemovedIn,
			newFunc: "mathutil.Add",
			message: "`" + prefix + ".addNumbers()` has moved to `mathutil.Add()`. " +
				"The old function is deprecated and will be removed in My Product 1.0.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add := deprecate.Moved(tt.cat, addNumbers, tt.newFunc)

			var result int
			cats.Warning(t, tt.cat, tt.message, "result = add(2, 2)", func() {
				result = add(2, 2)
			})
			assert.Equal(t, 4, result)
		})
	}
}

func TestMoved_CallsOldFunction(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	called := ""
	old := deprecate.Moved(cats.RemovedIn, func() { called = "old" }, func() { called = "new" })
	old()

	assert.Equal(t, "old", called)
}

func TestMoved_BadReplacement(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	assert.Panics(t, func() { deprecate.Moved(cats.RemovedIn, addNumbers, 42) })
}

func TestFunc_CalledThroughOnce(t *testing.T) {
	cats := assertwarn.NewCategories(t)
	setup := deprecate.Func(cats.RemovedIn, func() {})

	var once sync.Once
	cats.Warning(t, cats.RemovedIn,
		"`"+prefix+".TestFunc_CalledThroughOnce.func1()` is deprecated and will be removed in My Product 1.0.",
		"once.Do(setup)", func() {
			once.Do(setup)
		})
}

package stack_test

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housekeeping/stack"
)

func currentLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

func TestPackageOf(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"main.main", "main"},
		{"runtime.goexit", "runtime"},
		{"housekeeping/stack.Caller", "housekeeping/stack"},
		{"housekeeping/category.(*Class).Warn", "housekeeping/category"},
		{"housekeeping/deprecate.Func[...].func1", "housekeeping/deprecate"},
		{"housekeeping/deprecate.Func[go.shape.func(example.com/x.T)].func1", "housekeeping/deprecate"},
		{"housekeeping/deprecate_test.TestFunc.func2", "housekeeping/deprecate_test"},
		{"gopkg.in/yaml%2ev3.(*encoder).marshal", "gopkg.in/yaml.v3"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stack.PackageOf(tt.name))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, 1, stack.Resolve(0, 0))
	assert.Equal(t, 1, stack.Resolve(-5, 2))
	assert.Equal(t, 2, stack.Resolve(stack.DefaultLevel, 0))
	assert.Equal(t, 5, stack.Resolve(stack.DefaultLevel, 3))

	prev := stack.Resolve(stack.DefaultLevel, 0)
	for extra := 1; extra < 10; extra++ {
		next := stack.Resolve(stack.DefaultLevel, extra)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestCaller_Self(t *testing.T) {
	frame, line := stack.Caller(0), currentLine()

	assert.Equal(t, "housekeeping/stack_test.TestCaller_Self", frame.Function)
	assert.Equal(t, line, frame.Line)
	assert.Equal(t, "housekeeping/stack_test", frame.Package())
	assert.False(t, frame.IsZero())
}

//go:noinline
func callerOfHelper() stack.Frame {
	return stack.Caller(1)
}

func TestCaller_Levels(t *testing.T) {
	frame, line := callerOfHelper(), currentLine()

	assert.Equal(t, "housekeeping/stack_test.TestCaller_Levels", frame.Function)
	assert.Equal(t, line, frame.Line)
}

func TestCaller_SkipsReflectTrampolines(t *testing.T) {
	fn := reflect.ValueOf(callerOfHelper)

	out, line := fn.Call(nil), currentLine()
	require.Len(t, out, 1)

	frame := out[0].Interface().(stack.Frame)
	assert.Equal(t, "housekeeping/stack_test.TestCaller_SkipsReflectTrampolines", frame.Function)
	assert.Equal(t, line, frame.Line)
}

func TestCaller_RunsOutOfFrames(t *testing.T) {
	frame := stack.Caller(1000)

	assert.False(t, frame.IsZero())
	assert.NotEqual(t, "runtime", frame.Package())
}

func TestIsInternal(t *testing.T) {
	frame := stack.Frame{Function: "example.com/forwarder.Wrap.func1", File: "wrap.go", Line: 3}
	assert.False(t, stack.IsInternal(frame))

	stack.RegisterInternalPackage("example.com/forwarder")
	assert.True(t, stack.IsInternal(frame))

	assert.False(t, stack.IsInternal(stack.Frame{Function: "example.com/other.Wrap"}))
}

func TestFrame_String(t *testing.T) {
	assert.Equal(t, "<unknown>", stack.Frame{}.String())
	assert.Equal(t, "a.go:12", stack.Frame{Function: "x.F", File: "a.go", Line: 12}.String())
}

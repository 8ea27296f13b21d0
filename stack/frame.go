package stack

import (
	"strconv"
	"strings"
)

// Frame is a single resolved call frame.
type Frame struct {
	Function string
	File     string
	Line     int
}

// Package returns the import path of the package the frame's function lives in.
func (f Frame) Package() string {
	return PackageOf(f.Function)
}

// IsZero reports whether the frame could not be resolved.
func (f Frame) IsZero() bool {
	return f.Function == "" && f.File == "" && f.Line == 0
}

func (f Frame) String() string {
	if f.IsZero() {
		return "<unknown>"
	}

	return f.File + ":" + strconv.Itoa(f.Line)
}

// PackageOf extracts the package import path from a runtime function name.
//
// Handles the forms produced by the runtime:
//   - "pkg/path.Func"
//   - "pkg/path.(*Type).Method.func1"
//   - "pkg/path.Generic[...].func2", where brackets may hold other paths
//   - "gopkg.in/yaml%2ev3.Marshal", with the last element's dots escaped
func PackageOf(funcName string) string {
	name := funcName
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	slash := strings.LastIndexByte(name, '/')
	if dot := strings.IndexByte(name[slash+1:], '.'); dot >= 0 {
		name = name[:slash+1+dot]
	}

	return strings.ReplaceAll(name, "%2e", ".")
}

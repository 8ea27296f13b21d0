package stack

import "runtime"

// DefaultLevel points at the caller of the function that emits a warning.
const DefaultLevel = 2

const maxDepth = 64

// Resolve adds the frames a wrapping layer introduces to a base level.
// The result never drops below 1, the frame issuing the call.
func Resolve(base, extra int) int {
	if level := base + extra; level > 1 {
		return level
	}

	return 1
}

// Caller returns the frame skip levels above the function calling Caller,
// 0 identifying that function itself.
//
// Trampoline frames are not counted. Once skip frames are consumed, internal
// frames are passed over too. If the stack ends first, the outermost counted
// frame is returned, which for a package init is the init function itself.
func Caller(skip int) Frame {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	mu.RLock()
	defer mu.RUnlock()

	var (
		last    Frame
		leading = true
	)

	for {
		fr, more := frames.Next()
		frame := Frame{Function: fr.Function, File: fr.File, Line: fr.Line}
		pkg := frame.Package()

		switch {
		case leading && pkg == self:
			// Caller itself, possibly inlined.
		case isTrampoline(pkg):
		default:
			leading = false
			last = frame

			if skip <= 0 && !isInternal(pkg) {
				return frame
			}

			skip--
		}

		if !more {
			return last
		}
	}
}

package stack

import (
	"runtime"
	"sync"
)

var (
	mu sync.RWMutex

	// self is the import path of this package, resolved at init.
	self string

	internal    = map[string]struct{}{}
	trampolines = map[string]struct{}{
		"runtime": {},
		"reflect": {},
		"fmt":     {},
		"sync":    {},
	}
)

func init() {
	pc, _, _, _ := runtime.Caller(0)
	self = PackageOf(runtime.FuncForPC(pc).Name())
}

// RegisterInternal marks the calling package as internal wrapping machinery.
// Packages call it from init.
func RegisterInternal() {
	pcs := make([]uintptr, 8)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		fr, more := frames.Next()
		if pkg := PackageOf(fr.Function); pkg != self && pkg != "runtime" {
			RegisterInternalPackage(pkg)
			return
		}

		if !more {
			return
		}
	}
}

// RegisterInternalPackage marks a package as internal wrapping machinery.
func RegisterInternalPackage(pkgPath string) {
	mu.Lock()
	defer mu.Unlock()

	internal[pkgPath] = struct{}{}
}

// RegisterTrampoline marks a package whose frames never count as a level,
// such as a package that calls user methods on a value it was handed.
func RegisterTrampoline(pkgPath string) {
	mu.Lock()
	defer mu.Unlock()

	trampolines[pkgPath] = struct{}{}
}

// IsInternal reports whether the frame belongs to registered wrapping machinery.
func IsInternal(f Frame) bool {
	mu.RLock()
	defer mu.RUnlock()

	return isInternal(f.Package())
}

func isInternal(pkg string) bool {
	_, ok := internal[pkg]
	return ok
}

func isTrampoline(pkg string) bool {
	if pkg == "" {
		return true
	}

	_, ok := trampolines[pkg]
	return ok
}

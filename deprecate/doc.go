// Package deprecate wraps functions, values and packages so that using them
// emits a deprecation warning pointing at the code that used them.
//
//	var RemovedIn20 = category.MustRemovedIn("My Product", "2.0")
//
//	// Deprecated: use Sum.
//	var Add = deprecate.Moved(RemovedIn20, add, Sum)
//
// Function wrappers warn on every call. Values wrapped with ArgValue warn
// once, on first access. Module and ModuleMoved are meant for package init.
package deprecate

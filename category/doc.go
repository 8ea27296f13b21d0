// Package category declares deprecation warning categories.
//
// A project declares its categories once, at package load:
//
//	var (
//		RemovedInMyProduct20 = category.MustRemovedIn("My Product", "2.0")
//		PendingMyProduct     = category.MustPendingRemoval("My Product")
//	)
//
// and passes them to every deprecate and classes helper. Categories are
// immutable and safe for concurrent use.
package category

// Package classes marks struct types as deprecated or moved.
//
// Go has no class definition hook, so definitions are reported by an
// explicit registration step and instantiations by constructors:
//
//	type OldWidget struct{ Widget }
//
//	var _ = classes.Moved[OldWidget](RemovedIn20)
//
//	type CustomWidget struct{ OldWidget }
//
//	// Warns: CustomWidget embeds OldWidget.
//	var _ = classes.Register[CustomWidget]()
//
//	func NewCustomWidget() *CustomWidget {
//		classes.Of[CustomWidget]().Init(0)
//		return &CustomWidget{}
//	}
//
// Only the type declaring the marker and the types directly embedding it
// take part. Types embedding those are silent, unless they declare a marker
// of their own, which starts a new chain.
//
// A type declares its marker once, before anything registers it; declaring
// twice, or after Register, panics. Descendants find their marker type when
// used, so instantiations warn even for children registered first, while
// the registration warning is only emitted for markers declared by then.
package classes

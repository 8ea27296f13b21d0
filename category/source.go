package category

// Source provides the category to warn with. *Class is a Source, and Lazy
// defers the lookup to emission time, which helps when categories and the
// code they deprecate would otherwise initialize in a cycle.
type Source interface {
	Category() *Class
}

// Lazy resolves a category on every emission.
type Lazy func() *Class

func (f Lazy) Category() *Class {
	if f == nil {
		return nil
	}

	return f()
}

// Of resolves src, panicking with ErrNoCategory when there is nothing to
// warn with.
func Of(src Source) *Class {
	if src == nil {
		panic(ErrNoCategory)
	}

	c := src.Category()
	if c == nil {
		panic(ErrNoCategory)
	}

	return c
}

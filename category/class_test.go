package category_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housekeeping/category"
	"housekeeping/internal/assertwarn"
	"housekeeping/warnings"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		project string
		kind    category.Kind
		version string
		valid   bool
	}{
		{"removed in with version", "My Product", category.KindRemovedIn, "2.0", true},
		{"pending without version", "My Product", category.KindPendingRemoval, "", true},
		{"removed in without version", "My Product", category.KindRemovedIn, "", false},
		{"removed in with blank version", "My Product", category.KindRemovedIn, "  ", false},
		{"pending with version", "My Product", category.KindPendingRemoval, "3.0", false},
		{"empty project", "", category.KindRemovedIn, "2.0", false},
		{"unknown kind", "My Product", category.Kind(0), "", false},
		{"out of range kind", "My Product", category.Kind(category.KindTotal), "1.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := category.New(tt.project, tt.kind, tt.version)
			if !tt.valid {
				assert.ErrorIs(t, err, category.ErrConfiguration)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.project, c.Project())
			assert.Equal(t, tt.kind, c.Kind())
			assert.Equal(t, tt.version, c.Version())
		})
	}
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { category.MustRemovedIn("My Product", "2.0") })
	assert.NotPanics(t, func() { category.MustPendingRemoval("My Product") })
	assert.Panics(t, func() { category.MustRemovedIn("My Product", "") })
	assert.Panics(t, func() { category.MustPendingRemoval("") })
}

func TestClass_Names(t *testing.T) {
	removed := category.MustRemovedIn("My Product", "1.0")
	assert.Equal(t, "RemovedInMyProduct10Warning", removed.String())
	assert.Equal(t, warnings.FamilyDeprecation, removed.Family())

	pending := category.MustPendingRemoval("my-product")
	assert.Equal(t, "PendingRemovalInMyProductWarning", pending.String())
	assert.Equal(t, warnings.FamilyPendingDeprecation, pending.Family())

	named := category.MustRemovedIn("Review Board", "8.0", category.WithName("RemovedInReviewBoard80Warning"))
	assert.Equal(t, "RemovedInReviewBoard80Warning", named.String())

	assert.Same(t, removed, removed.Category())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "PendingRemoval", category.KindPendingRemoval.String())
	assert.Equal(t, "RemovedIn", category.KindRemovedIn.String())
	assert.Equal(t, "Kind(0)", category.Kind(0).String())
	assert.Equal(t, warnings.Family(0), category.Kind(0).Family())
}

func TestClass_Format(t *testing.T) {
	c := category.MustRemovedIn("My Product", "1.0")

	assert.Equal(t, "plain text", c.Format("plain text", nil))
	assert.Equal(t, "`f()` goes in My Product 1.0.",
		c.Format("`{{.funcName}}` goes in {{.product}} {{.version}}.", category.Vars{"funcName": "f()"}))
	assert.Equal(t, "My Product wins",
		c.Format("{{.product}} wins", category.Vars{"product": "Other"}))
	assert.Equal(t, "{{broken", c.Format("{{broken", nil))
	assert.Equal(t, "`{{.funcName}}` goes in {{.version}}.",
		c.Format("`{{.funcName}}` goes in {{.version}}.", category.Vars{"className": "C"}))
}

func TestClass_Warn(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	direct := func() {
		cats.RemovedIn.Warn("Custom {{.product}} {{.version}} {{.extra}}",
			category.WithVars(category.Vars{"extra": "x"}))
	}

	cats.Warning(t, cats.RemovedIn, "Custom My Product 1.0 x", "direct()", func() {
		direct()
	})

	cats.Warning(t, cats.Pending, "here", `cats.Pending.Warn("here", category.StackLevel(1))`, func() {
		cats.Pending.Warn("here", category.StackLevel(1))
	})
}

func TestClass_Warn_StackOffset(t *testing.T) {
	cats := assertwarn.NewCategories(t)

	deprecatedHelper := func() {
		cats.RemovedIn.Warn("helper is deprecated", category.StackOffset(1))
	}
	forwarder := func() {
		deprecatedHelper()
	}

	cats.Warning(t, cats.RemovedIn, "helper is deprecated", "forwarder()", func() {
		forwarder()
	})
}

func TestEmit(t *testing.T) {
	cats := assertwarn.NewCategories(t)
	msgs := category.Messages{
		Deprecated: "`{{.name}}` is removed in {{.product}} {{.version}}.",
		Pending:    "`{{.name}}` will go away in a future version of {{.product}}.",
	}

	emitter := func(src category.Source) {
		category.Emit(src, msgs, 2, category.Vars{"name": "thing"})
	}

	cats.Warning(t, cats.RemovedIn, "`thing` is removed in My Product 1.0.", "emitter(cats.RemovedIn)", func() {
		emitter(cats.RemovedIn)
	})

	cats.Warning(t, cats.Pending, "`thing` will go away in a future version of My Product.", "emitter(cats.Pending)", func() {
		emitter(cats.Pending)
	})

	lazy := category.Lazy(func() *category.Class { return cats.RemovedIn })
	cats.Warning(t, cats.RemovedIn, "`thing` is removed in My Product 1.0.", "emitter(lazy)", func() {
		emitter(lazy)
	})
}

func TestOf(t *testing.T) {
	c := category.MustRemovedIn("My Product", "1.0")

	assert.Same(t, c, category.Of(c))
	assert.Same(t, c, category.Of(category.Lazy(func() *category.Class { return c })))

	assert.PanicsWithValue(t, category.ErrNoCategory, func() { category.Of(nil) })
	assert.PanicsWithValue(t, category.ErrNoCategory, func() { category.Of(category.Lazy(nil)) })
	assert.PanicsWithValue(t, category.ErrNoCategory, func() {
		category.Of(category.Lazy(func() *category.Class { return nil }))
	})
}

func TestMessages_Or(t *testing.T) {
	fallback := category.Messages{Deprecated: "d", Pending: "p"}

	assert.Equal(t, fallback, category.Messages{}.Or(fallback))
	assert.Equal(t, category.Same("x"), category.Same("x").Or(fallback))
}

func ExampleClass_Format() {
	removed := category.MustRemovedIn("My Product", "2.0")
	pending := category.MustPendingRemoval("My Product")

	fmt.Println(removed)
	fmt.Println(pending)
	fmt.Println(removed.Format("`old()` will be removed in {{.product}} {{.version}}.", nil))

	// Output:
	// RemovedInMyProduct20Warning
	// PendingRemovalInMyProductWarning
	// `old()` will be removed in My Product 2.0.
}

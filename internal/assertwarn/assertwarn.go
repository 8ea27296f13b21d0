// Package assertwarn holds the test helpers shared by housekeeping's
// packages: isolated categories and call-site assertions.
package assertwarn

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housekeeping/category"
	"housekeeping/warnings"
)

const Product = "My Product"

// Categories is a pair of categories wired to a private dispatcher that
// records everything.
type Categories struct {
	RemovedIn *category.Class
	Pending   *category.Class
	Recorder  *warnings.Recorder
}

func NewCategories(t testing.TB) Categories {
	t.Helper()

	rec := warnings.NewRecorder()
	d := warnings.NewDispatcher(rec)
	d.SimpleFilter(warnings.ActionAlways)

	return Categories{
		RemovedIn: category.MustRemovedIn(Product, "1.0", category.WithDispatcher(d)),
		Pending:   category.MustPendingRemoval(Product, category.WithDispatcher(d)),
		Recorder:  rec,
	}
}

// Take returns the records so far and resets the recorder.
func (c Categories) Take() []warnings.Record {
	records := c.Recorder.Records()
	c.Recorder.Reset()

	return records
}

// Warning runs fn and asserts it emitted exactly one warning of cat with the
// message, reported on a source line reading line once trimmed.
func (c Categories) Warning(t testing.TB, cat *category.Class, message, line string, fn func()) warnings.Record {
	t.Helper()

	c.Recorder.Reset()
	fn()

	records := c.Take()
	require.Len(t, records, 1, spew.Sdump(records))

	r := records[0]
	assert.Same(t, cat, r.Category)
	assert.Equal(t, message, r.Message)
	assert.Equal(t, line, SourceLine(t, r), "reported at %s (%s)", r.Frame, r.Frame.Function)

	return r
}

// NoWarnings runs fn and asserts nothing was emitted.
func (c Categories) NoWarnings(t testing.TB, fn func()) {
	t.Helper()

	c.Recorder.Reset()
	fn()

	records := c.Take()
	assert.Empty(t, records, spew.Sdump(records))
}

var (
	sourceMu    sync.Mutex
	sourceCache = map[string][]string{}
)

// SourceLine returns the trimmed source line a record was reported on.
func SourceLine(t testing.TB, r warnings.Record) string {
	t.Helper()

	sourceMu.Lock()
	defer sourceMu.Unlock()

	lines, ok := sourceCache[r.Frame.File]
	if !ok {
		data, err := os.ReadFile(r.Frame.File)
		require.NoError(t, err)

		lines = strings.Split(string(data), "\n")
		sourceCache[r.Frame.File] = lines
	}

	require.True(t, r.Frame.Line > 0 && r.Frame.Line <= len(lines), "line %d out of range in %s", r.Frame.Line, r.Frame.File)

	return strings.TrimSpace(lines[r.Frame.Line-1])
}

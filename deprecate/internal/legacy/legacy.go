// Package legacy is a deprecated package used to observe warnings emitted
// during package initialization.
package legacy

import (
	"housekeeping/category"
	"housekeeping/deprecate"
	"housekeeping/warnings"
)

var (
	Recorder = warnings.NewRecorder()

	RemovedIn = category.MustRemovedIn("My Product", "1.0",
		category.WithDispatcher(newDispatcher()))
)

func newDispatcher() *warnings.Dispatcher {
	d := warnings.NewDispatcher(Recorder)
	d.SimpleFilter(warnings.ActionAlways)

	return d
}

func init() {
	deprecate.ModuleMoved(RemovedIn, "housekeeping/deprecate/internal/legacy", "housekeeping/deprecate")
}

package warnings

import (
	"os"
	"slices"
	"sync"

	"github.com/phuslu/log"

	"housekeeping/stack"
)

// EnvFilters names the environment variable read by the default dispatcher.
const EnvFilters = "GOWARNINGS"

func init() {
	stack.RegisterInternal()
}

type seenKey struct {
	category string
	message  string
	file     string
	line     int
}

// Dispatcher filters records and passes them to its sinks. The zero value
// is not usable, see NewDispatcher.
type Dispatcher struct {
	mu       sync.Mutex
	filters  []Filter
	sinks    []Sink
	seen     map[seenKey]struct{}
	fallback Action
}

// NewDispatcher creates a dispatcher without filters, whose unmatched
// records use the default action.
func NewDispatcher(sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:    sinks,
		seen:     make(map[seenKey]struct{}),
		fallback: ActionDefault,
	}
}

// DefaultFilters shows each deprecation once per location and hides
// pending deprecations.
func DefaultFilters() []Filter {
	return []Filter{
		{Action: ActionDefault, Category: "deprecation"},
		{Action: ActionIgnore, Category: "pending"},
	}
}

// Warn dispatches a warning reported at the given stack level, 1 being the
// function calling Warn.
func (d *Dispatcher) Warn(cat Category, message string, level int) {
	frame := stack.Caller(level)

	d.Dispatch(Record{Category: cat, Message: message, Frame: frame})
}

// Dispatch filters an already resolved record. A record matched by an error
// filter panics with *Error.
func (d *Dispatcher) Dispatch(r Record) {
	d.mu.Lock()

	action := d.fallback
	if f, ok := Match(d.filters, r); ok {
		action = f.Action
	}

	switch action {
	case ActionIgnore:
		d.mu.Unlock()
		return

	case ActionError:
		d.mu.Unlock()
		panic(&Error{Record: r})

	case ActionOnce, ActionModule, ActionDefault:
		key := seenKey{category: r.Category.String(), message: r.Message}
		if action != ActionOnce {
			key.file = r.Frame.File
		}

		if action == ActionDefault {
			key.line = r.Frame.Line
		}

		if _, ok := d.seen[key]; ok {
			d.mu.Unlock()
			return
		}

		d.seen[key] = struct{}{}
	}

	sinks := slices.Clone(d.sinks)
	d.mu.Unlock()

	for _, s := range sinks {
		s.Handle(r)
	}
}

// Filter inserts a filter in front of the existing ones.
func (d *Dispatcher) Filter(f Filter) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filters = append([]Filter{f}, d.filters...)
}

// SimpleFilter inserts a filter matching every record.
func (d *Dispatcher) SimpleFilter(action Action) {
	d.Filter(Filter{Action: action})
}

// SetFilters replaces the filter list, first match winning.
func (d *Dispatcher) SetFilters(filters []Filter) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filters = slices.Clone(filters)
}

// Filters returns a copy of the filter list in evaluation order.
func (d *Dispatcher) Filters() []Filter {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.filters)
}

// ResetFilters drops every filter and forgets what was already shown.
func (d *Dispatcher) ResetFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filters = nil
	clear(d.seen)
}

// AddSink appends a sink.
func (d *Dispatcher) AddSink(s Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sinks = append(d.sinks, s)
}

// Catch runs fn with every record recorded instead of shown, regardless of
// filters, and returns the records. Filters and sinks are restored
// afterwards, also when fn panics.
func (d *Dispatcher) Catch(fn func()) []Record {
	rec := NewRecorder()

	d.mu.Lock()
	filters, sinks := d.filters, d.sinks
	d.filters = append([]Filter{{Action: ActionAlways}}, filters...)
	d.sinks = []Sink{rec}
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.filters, d.sinks = filters, sinks
		d.mu.Unlock()
	}()

	fn()

	return rec.Records()
}

var (
	defaultMu         sync.RWMutex
	defaultDispatcher *Dispatcher
	defaultOnce       sync.Once
)

// LoadEnvFilters parses the GOWARNINGS environment variable. Invalid
// entries are logged to logger and left out.
func LoadEnvFilters(logger *log.Logger) []Filter {
	filters, err := ParseFilterSpec(os.Getenv(EnvFilters))
	if err != nil {
		logger.Warn().Err(err).Str("env", EnvFilters).Msg("ignoring invalid warning filter entries")
	}

	return filters
}

// Default returns the process-wide dispatcher. On first use it is built
// with GOWARNINGS filters over DefaultFilters and a TextSink on stderr.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		d := NewDispatcher(NewTextSink(os.Stderr))

		d.SetFilters(append(LoadEnvFilters(&log.DefaultLogger), DefaultFilters()...))

		defaultMu.Lock()
		if defaultDispatcher == nil {
			defaultDispatcher = d
		}
		defaultMu.Unlock()
	})

	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultDispatcher
}

// SetDefault replaces the process-wide dispatcher and returns the previous one.
func SetDefault(d *Dispatcher) *Dispatcher {
	prev := Default()

	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultDispatcher = d

	return prev
}

// Warn dispatches through the default dispatcher, level 1 being the
// function calling Warn.
func Warn(cat Category, message string, level int) {
	Default().Warn(cat, message, stack.Resolve(level, 1))
}

// Catch records everything fn emits through the default dispatcher.
func Catch(fn func()) []Record {
	return Default().Catch(fn)
}

package warnings

import (
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/phuslu/log"
)

// Sink receives the records that survive filtering.
type Sink interface {
	Handle(r Record)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r Record)

func (f SinkFunc) Handle(r Record) { f(r) }

// Recorder keeps every record it is handed.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Handle(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
}

// Records returns a copy of what was recorded so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.records)
}

// Reset forgets the recorded records.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = nil
}

// TextSink writes records the way a console expects them:
//
//	file:line: Category: message
//	  source line
type TextSink struct {
	mu       sync.Mutex
	w        io.Writer
	source   bool
	lines    map[string][]string
	location *color.Color
	category *color.Color
}

// TextOption configures a TextSink.
type TextOption func(*TextSink)

// WithSourceLine toggles printing the reported source line, on by default.
func WithSourceLine(enabled bool) TextOption {
	return func(s *TextSink) { s.source = enabled }
}

// WithColor forces colored output on or off. By default it follows
// color.NoColor.
func WithColor(enabled bool) TextOption {
	return func(s *TextSink) {
		for _, c := range []*color.Color{s.location, s.category} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

func NewTextSink(w io.Writer, opts ...TextOption) *TextSink {
	s := &TextSink{
		w:        w,
		source:   true,
		lines:    make(map[string][]string),
		location: color.New(color.Bold),
		category: color.New(color.FgYellow, color.Bold),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *TextSink) Handle(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString(s.location.Sprint(r.Frame.String()))
	b.WriteString(": ")
	b.WriteString(s.category.Sprint(r.Category.String()))
	b.WriteString(": ")
	b.WriteString(r.Message)
	b.WriteByte('\n')

	if s.source {
		if line := s.sourceLine(r.Frame.File, r.Frame.Line); line != "" {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	// Console output is best effort.
	_, _ = io.WriteString(s.w, b.String())
}

func (s *TextSink) sourceLine(file string, line int) string {
	if file == "" || line <= 0 {
		return ""
	}

	lines, ok := s.lines[file]
	if !ok {
		data, err := os.ReadFile(file)
		if err == nil {
			lines = strings.Split(string(data), "\n")
		}

		s.lines[file] = lines
	}

	if line > len(lines) {
		return ""
	}

	return strings.TrimSpace(lines[line-1])
}

// LogSink forwards records to a structured logger as warn events.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink logs through logger, or log.DefaultLogger when nil.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = &log.DefaultLogger
	}

	return &LogSink{logger: logger}
}

func (s *LogSink) Handle(r Record) {
	s.logger.Warn().
		Str("category", r.Category.String()).
		Str("family", r.Category.Family().String()).
		Str("function", r.Frame.Function).
		Str("file", r.Frame.File).
		Int("line", r.Frame.Line).
		Msg(r.Message)
}

package category

import (
	"bytes"
	"maps"
	"strings"
	"sync"
	"text/template"

	"housekeeping/stack"
	"housekeeping/warnings"
)

func init() {
	stack.RegisterInternal()
}

// Vars are the template values a message is rendered with, in addition to
// "product" and "version".
type Vars map[string]any

type warnConfig struct {
	level  int
	offset int
	vars   Vars
}

// WarnOption configures a single emission.
type WarnOption func(*warnConfig)

// StackLevel sets the reported level, 1 being the function calling Warn.
// Defaults to stack.DefaultLevel.
func StackLevel(level int) WarnOption {
	return func(cfg *warnConfig) { cfg.level = level }
}

// StackOffset adds frames on top of the level, for callers that reach Warn
// through wrappers of their own.
func StackOffset(n int) WarnOption {
	return func(cfg *warnConfig) { cfg.offset += n }
}

// WithVars adds template values for the message.
func WithVars(vars Vars) WarnOption {
	return func(cfg *warnConfig) {
		if cfg.vars == nil {
			cfg.vars = Vars{}
		}

		maps.Copy(cfg.vars, vars)
	}
}

// Warn emits message with this category. The message is a text/template
// rendered with the caller's vars plus {{.product}} and {{.version}}; by
// default it is reported at the caller of the function calling Warn.
func (c *Class) Warn(message string, opts ...WarnOption) {
	cfg := warnConfig{level: stack.DefaultLevel}
	for _, opt := range opts {
		opt(&cfg)
	}

	text := c.Format(message, cfg.vars)
	level := stack.Resolve(cfg.level, cfg.offset+1)

	if c.dispatcher != nil {
		c.dispatcher.Warn(c, text, level)
		return
	}

	warnings.Default().Warn(c, text, level)
}

// Format renders a message template. Messages that fail to parse, or refer
// to a value missing from vars, are returned unchanged.
func (c *Class) Format(message string, vars Vars) string {
	if !strings.Contains(message, "{{") {
		return message
	}

	tmpl, err := parseMessage(message)
	if err != nil {
		return message
	}

	data := make(map[string]any, len(vars)+2)
	maps.Copy(data, vars)
	data["product"] = c.project
	data["version"] = c.version

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return message
	}

	return buf.String()
}

var templates sync.Map

func parseMessage(message string) (*template.Template, error) {
	if tmpl, ok := templates.Load(message); ok {
		return tmpl.(*template.Template), nil
	}

	tmpl, err := template.New("message").Option("missingkey=error").Parse(message)
	if err != nil {
		return nil, err
	}

	templates.Store(message, tmpl)

	return tmpl, nil
}

// Messages holds the text for each kind; the one matching the category's
// kind is emitted.
type Messages struct {
	Deprecated string
	Pending    string
}

// Same uses one custom message for both kinds.
func Same(message string) Messages {
	return Messages{Deprecated: message, Pending: message}
}

// Or returns m with empty entries taken from fallback.
func (m Messages) Or(fallback Messages) Messages {
	if m.Deprecated == "" {
		m.Deprecated = fallback.Deprecated
	}

	if m.Pending == "" {
		m.Pending = fallback.Pending
	}

	return m
}

// Emit warns with the message matching the kind of src's category. level 1
// is the function calling Emit.
func Emit(src Source, msgs Messages, level int, vars Vars) {
	c := Of(src)

	message := msgs.Deprecated
	if c.kind == KindPendingRemoval {
		message = msgs.Pending
	}

	c.Warn(message, StackLevel(stack.Resolve(level, 1)), WithVars(vars))
}

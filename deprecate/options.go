package deprecate

import (
	"housekeeping/category"
	"housekeeping/stack"
)

func init() {
	stack.RegisterInternal()

	// Value implements yaml.Marshaler; the encoder's frames sit between
	// the accessing code and the value.
	stack.RegisterTrampoline("gopkg.in/yaml.v3")
}

type config struct {
	message string
	newName string
	offset  int
}

// Option configures a wrapper.
type Option func(*config)

// WithMessage replaces the default messages of both kinds. The message is a
// template; see each wrapper for the keys it provides.
func WithMessage(message string) Option {
	return func(cfg *config) { cfg.message = message }
}

// WithNewName names the replacement of a deprecated value.
func WithNewName(name string) Option {
	return func(cfg *config) { cfg.newName = name }
}

// StackOffset reports n frames further up, for wrappers reached through
// forwarding functions of the caller's own.
func StackOffset(n int) Option {
	return func(cfg *config) { cfg.offset += n }
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func (cfg config) messages(fallback category.Messages) category.Messages {
	if cfg.message == "" {
		return fallback
	}

	return category.Same(cfg.message)
}

// level is the emission level for code calling category.Emit from frames
// into the wrapper, 1 meaning the wrapper function itself.
func (cfg config) level(frames int) int {
	return stack.Resolve(stack.DefaultLevel+frames, cfg.offset)
}

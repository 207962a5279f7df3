package creek

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/creek-lang/creek/dynload"
	"github.com/creek-lang/creek/object"
)

// Option describes a function used to configure an Interpreter or a
// Save/Load call.
type Option func(*options)

type options struct {
	globals         map[string]any
	stdout          io.Writer
	loader          object.NativeLoader
	libraries       map[string]*dynload.Library
	allowNative     []string
	restrictNative  bool
	logger          zerolog.Logger
	withoutBuiltins bool
}

func collectOptions(opts ...Option) *options {
	o := &options{
		globals:   map[string]any{},
		libraries: map[string]*dynload.Library{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithGlobals provides global variables. This option is additive, so
// multiple WithGlobals options may be supplied. If the same key is
// supplied multiple times, the last supplied value is used.
func WithGlobals(globals map[string]any) Option {
	return func(o *options) {
		for k, v := range globals {
			o.globals[k] = v
		}
	}
}

// WithGlobal supplies a single named global variable.
func WithGlobal(name string, value any) Option {
	return func(o *options) {
		o.globals[name] = value
	}
}

// WithoutBuiltins opts out of the default builtin functions and type
// methods.
func WithoutBuiltins() Option {
	return func(o *options) {
		o.withoutBuiltins = true
	}
}

// WithStdout sets the writer print expressions write to. Output is
// discarded by default.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithLoader replaces the native library registry used by dynamic-load
// expressions. WithLibrary and WithAllowNative have no effect when a
// loader is supplied.
func WithLoader(loader object.NativeLoader) Option {
	return func(o *options) {
		o.loader = loader
	}
}

// WithLibrary registers a native library under path.
func WithLibrary(path string, lib *dynload.Library) Option {
	return func(o *options) {
		o.libraries[path] = lib
	}
}

// WithAllowNative restricts dynamic loading to the given library paths.
// Calling it with no paths disables native loading entirely.
func WithAllowNative(paths ...string) Option {
	return func(o *options) {
		o.restrictNative = true
		o.allowNative = append(o.allowNative, paths...)
	}
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

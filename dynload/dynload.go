// Package dynload provides the native library registry that dynamic-load
// expressions resolve through.
//
// Libraries are registered by path from Go code. A registry can be limited
// to an allow-list of paths, in which case every other library fails to
// load even when registered.
package dynload

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/creek-lang/creek/errz"
	"github.com/creek-lang/creek/object"
)

var (
	ErrLibraryNotFound = errors.New("library not found")
	ErrNotAllowed      = errors.New("library not allowed")
	ErrSymbolNotFound  = errors.New("symbol not found")
)

// Library is a set of native functions, classes and variables exported
// under one path.
type Library struct {
	funcs   map[string]object.BuiltinFunction
	methods map[string]map[string]object.BuiltinFunction
	vars    map[string]object.Value
}

func NewLibrary() *Library {
	return &Library{
		funcs:   map[string]object.BuiltinFunction{},
		methods: map[string]map[string]object.BuiltinFunction{},
		vars:    map[string]object.Value{},
	}
}

// Func exports a function.
func (l *Library) Func(name string, fn object.BuiltinFunction) *Library {
	l.funcs[name] = fn
	return l
}

// Method exports a method of a class. The function receives the instance
// as its first argument.
func (l *Library) Method(class, method string, fn object.BuiltinFunction) *Library {
	methods, ok := l.methods[class]
	if !ok {
		methods = map[string]object.BuiltinFunction{}
		l.methods[class] = methods
	}
	methods[method] = fn
	return l
}

// Var exports a variable.
func (l *Library) Var(name string, v object.Value) *Library {
	l.vars[name] = v
	return l
}

// Registry maps library paths to libraries. It implements
// object.NativeLoader and is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	libs    map[string]*Library
	allowed map[string]bool
	logger  zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithAllowList restricts loading to the given library paths.
func WithAllowList(paths ...string) Option {
	return func(r *Registry) {
		r.allowed = map[string]bool{}
		for _, p := range paths {
			r.allowed[p] = true
		}
	}
}

// WithLogger sets the logger used to report failed loads.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		libs:   map[string]*Library{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds lib under path.
func (r *Registry) Register(path string, lib *Library) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.libs[path]; exists {
		return fmt.Errorf("library %q is already registered", path)
	}
	r.libs[path] = lib
	return nil
}

// Libraries returns the registered paths in sorted order.
func (r *Registry) Libraries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.libs))
	for p := range r.libs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (r *Registry) library(path string) (*Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.allowed != nil && !r.allowed[path] {
		return nil, fmt.Errorf("%w: %q", ErrNotAllowed, path)
	}
	lib, ok := r.libs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLibraryNotFound, path)
	}
	return lib, nil
}

func (r *Registry) fail(err error, kind, lib, name string) error {
	r.logger.Warn().Err(err).Str("library", lib).Str(kind, name).Msg("native load failed")
	return err
}

func missing[T any](exports map[string]T, lib, name string) error {
	names := make([]string, 0, len(exports))
	for n := range exports {
		names = append(names, n)
	}
	err := fmt.Errorf("%w: %q in library %q", ErrSymbolNotFound, name, lib)
	if hint := errz.FormatSuggestions(errz.SuggestSimilar(name, names)); hint != "" {
		err = fmt.Errorf("%w (%s)", err, hint)
	}
	return err
}

func (r *Registry) LoadFunc(lib, name string) (object.BuiltinFunction, error) {
	l, err := r.library(lib)
	if err != nil {
		return nil, r.fail(err, "func", lib, name)
	}
	fn, ok := l.funcs[name]
	if !ok {
		return nil, r.fail(missing(l.funcs, lib, name), "func", lib, name)
	}
	return fn, nil
}

func (r *Registry) LoadMethod(lib, class, method string) (object.BuiltinFunction, error) {
	l, err := r.library(lib)
	if err != nil {
		return nil, r.fail(err, "class", lib, class)
	}
	methods, ok := l.methods[class]
	if !ok {
		return nil, r.fail(missing(l.methods, lib, class), "class", lib, class)
	}
	fn, ok := methods[method]
	if !ok {
		return nil, r.fail(missing(methods, lib, method), "method", lib, method)
	}
	return fn, nil
}

func (r *Registry) LoadVar(lib, name string) (object.Value, error) {
	l, err := r.library(lib)
	if err != nil {
		return nil, r.fail(err, "var", lib, name)
	}
	v, ok := l.vars[name]
	if !ok {
		return nil, r.fail(missing(l.vars, lib, name), "var", lib, name)
	}
	return v.Copy(), nil
}

var _ object.NativeLoader = (*Registry)(nil)

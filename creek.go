// Package creek embeds the Creek scripting runtime.
//
// Programs are expression trees (see package ast). A tree can be evaluated
// directly with an Interpreter, or saved as a bytecode file and loaded
// again later without the original source:
//
//	interp, err := creek.New(creek.WithStdout(os.Stdout))
//	...
//	if err := creek.Save("prog.creek", root); err != nil { ... }
//	root, err = creek.Load("prog.creek")
//	result, err := interp.Eval(root)
//
// A bytecode file starts with an 8-byte magic and the pointer width of the
// host that wrote it, followed by the file's symbol table and the encoded
// tree. Files only load on hosts with the same pointer width.
package creek

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/creek-lang/creek/ast"
	"github.com/creek-lang/creek/builtins"
	"github.com/creek-lang/creek/dynload"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/symbol"
)

// Interpreter evaluates expression trees against one global scope, so
// globals defined by one evaluation are visible to the next. It is not
// safe for concurrent use.
type Interpreter struct {
	global *object.GlobalScope
	logger zerolog.Logger
}

// New creates an Interpreter configured by opts.
func New(opts ...Option) (*Interpreter, error) {
	o := collectOptions(opts...)
	loader := o.loader
	if loader == nil {
		var regOpts []dynload.Option
		if o.restrictNative {
			regOpts = append(regOpts, dynload.WithAllowList(o.allowNative...))
		}
		regOpts = append(regOpts, dynload.WithLogger(o.logger))
		registry := dynload.NewRegistry(regOpts...)
		paths := make([]string, 0, len(o.libraries))
		for path := range o.libraries {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			if err := registry.Register(path, o.libraries[path]); err != nil {
				return nil, err
			}
		}
		loader = registry
	}

	global := object.NewGlobalScope(o.stdout, loader)
	if !o.withoutBuiltins {
		if err := builtins.Install(global); err != nil {
			return nil, err
		}
	}
	globals, err := object.AsValues(o.globals)
	if err != nil {
		return nil, err
	}
	for name, value := range globals {
		// A supplied global replaces a builtin of the same name.
		if v, err := global.Lookup(symbol.Intern(name)); err == nil {
			v.Set(value)
			continue
		}
		if _, err := global.Define(symbol.Intern(name), value); err != nil {
			return nil, err
		}
	}
	return &Interpreter{global: global, logger: o.logger}, nil
}

// Global returns the interpreter's global scope.
func (i *Interpreter) Global() *object.GlobalScope {
	return i.global
}

// Eval evaluates root in a new scope whose parent is the global scope. A
// return at the top level ends the program with its value. Errors raised
// by the program and not caught by it are returned.
func (i *Interpreter) Eval(root ast.Node) (object.Value, error) {
	if root == nil {
		return nil, ast.ErrNilNode
	}
	result, err := root.Eval(i.global.NewCallScope())
	if err != nil {
		i.logger.Debug().Err(err).Msg("evaluation failed")
		return nil, err
	}
	return result, nil
}

// EvalBytes decodes bytecode file contents and evaluates the program.
func (i *Interpreter) EvalBytes(data []byte) (object.Value, error) {
	root, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return i.Eval(root)
}

// EvalFile loads the bytecode file at path and evaluates the program.
func (i *Interpreter) EvalFile(path string) (object.Value, error) {
	root, err := Load(path, WithLogger(i.logger))
	if err != nil {
		return nil, err
	}
	return i.Eval(root)
}

// Eval evaluates root with a new Interpreter configured by opts.
func Eval(root ast.Node, opts ...Option) (object.Value, error) {
	interp, err := New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creek: %w", err)
	}
	return interp.Eval(root)
}

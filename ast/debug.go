package ast

import (
	"fmt"

	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// Print writes the debug text of X to the interpreter output and yields X.
type Print struct {
	X Node
}

func (x *Print) Op() op.Code      { return op.Print }
func (x *Print) Children() []Node { return []Node{x.X} }

func (x *Print) Eval(scope *object.Scope) (object.Value, error) {
	v, stop, err := eval(scope, x.X)
	if stop {
		return v, err
	}
	if _, err := fmt.Fprintln(scope.Global().Stdout(), v.Inspect()); err != nil {
		return nil, err
	}
	return v, nil
}

func (x *Print) Encode(m *symbol.Map) (*bytecode.Buffer, error) {
	e := newEncoder(op.Print, m)
	e.node(x.X)
	return e.done()
}

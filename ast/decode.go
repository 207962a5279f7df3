package ast

import (
	"fmt"

	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// MaxDepth bounds how deeply nested a decoded tree may be.
const MaxDepth = 10000

// Decode reads exactly one expression tree from buf. Names are resolved
// through m, which must already hold the file's symbol table. On failure
// no partial tree is returned.
func Decode(buf *bytecode.Buffer, m *symbol.Map) (Node, error) {
	d := &decoder{buf: buf, m: m}
	n := d.node()
	if d.err != nil {
		return nil, d.err
	}
	return n, nil
}

// decoder mirrors encoder: the first error sticks and every later read
// returns a zero value.
type decoder struct {
	buf   *bytecode.Buffer
	m     *symbol.Map
	depth int
	err   error
}

type decodeFunc func(d *decoder, code op.Code) Node

var decoders [256]decodeFunc

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) node() Node {
	if d.err != nil {
		return nil
	}
	offset := d.buf.Offset()
	code, err := d.buf.ReadOp()
	if err != nil {
		d.fail(err)
		return nil
	}
	fn := decoders[code]
	if fn == nil {
		d.fail(fmt.Errorf("%w: unknown opcode %s at offset %d", bytecode.ErrInvalidBytecode, code, offset))
		return nil
	}
	if d.depth >= MaxDepth {
		d.fail(fmt.Errorf("%w: nesting deeper than %d at offset %d", bytecode.ErrInvalidBytecode, MaxDepth, offset))
		return nil
	}
	d.depth++
	n := fn(d, code)
	d.depth--
	if d.err != nil {
		return nil
	}
	return n
}

func (d *decoder) count() int {
	if d.err != nil {
		return 0
	}
	n, err := d.buf.ReadCount()
	d.fail(err)
	return n
}

func (d *decoder) nodes() []Node {
	n := d.count()
	nodes := make([]Node, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		nodes = append(nodes, d.node())
	}
	return nodes
}

func (d *decoder) name() symbol.Name {
	if d.err != nil {
		return symbol.Name{}
	}
	id, err := d.buf.ReadInt32()
	if err != nil {
		d.fail(err)
		return symbol.Name{}
	}
	n, err := d.m.Global(id)
	if err != nil {
		d.fail(fmt.Errorf("%w: %w", bytecode.ErrInvalidBytecode, err))
	}
	return n
}

func (d *decoder) names() []symbol.Name {
	n := d.count()
	names := make([]symbol.Name, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		names = append(names, d.name())
	}
	return names
}

func (d *decoder) boolean() bool {
	if d.err != nil {
		return false
	}
	b, err := d.buf.ReadBool()
	d.fail(err)
	return b
}

func (d *decoder) number() float64 {
	if d.err != nil {
		return 0
	}
	f, err := d.buf.ReadFloat64()
	d.fail(err)
	return f
}

func (d *decoder) str() string {
	if d.err != nil {
		return ""
	}
	s, err := d.buf.ReadString()
	d.fail(err)
	return s
}

func init() {
	for _, code := range []op.Code{
		op.Add, op.Sub, op.Mul, op.Div, op.Mod, op.Exp,
		op.BitAnd, op.BitOr, op.BitXor, op.BitShiftLeft, op.BitShiftRight,
		op.BoolXor,
		op.Cmp, op.EQ, op.NE, op.LT, op.LE, op.GT, op.GE,
	} {
		decoders[code] = decodeBinary
	}
	for _, code := range []op.Code{op.Negate, op.BitNot, op.BoolNot} {
		decoders[code] = decodeUnary
	}
	for _, code := range []op.Code{op.VarCreateLocal, op.VarCreateGlobal} {
		decoders[code] = decodeCreateVar
	}
	for _, code := range []op.Code{op.VarLoadLocal, op.VarLoadGlobal} {
		decoders[code] = decodeLoadVar
	}
	for _, code := range []op.Code{op.VarStoreLocal, op.VarStoreGlobal} {
		decoders[code] = decodeStoreVar
	}

	decoders[op.Nop] = func(d *decoder, _ op.Code) Node { return &Void{} }
	decoders[op.Print] = func(d *decoder, _ op.Code) Node { return &Print{X: d.node()} }
	decoders[op.BoolAnd] = func(d *decoder, _ op.Code) Node { return &And{X: d.node(), Y: d.node()} }
	decoders[op.BoolOr] = func(d *decoder, _ op.Code) Node { return &Or{X: d.node(), Y: d.node()} }

	decoders[op.DataVoid] = func(d *decoder, _ op.Code) Node { return &Void{} }
	decoders[op.DataNull] = func(d *decoder, _ op.Code) Node { return &Null{} }
	decoders[op.DataBoolean] = func(d *decoder, _ op.Code) Node { return &Boolean{Value: d.boolean()} }
	decoders[op.DataNumber] = func(d *decoder, _ op.Code) Node { return &Number{Value: d.number()} }
	decoders[op.DataString] = func(d *decoder, _ op.Code) Node { return &String{Value: d.str()} }
	decoders[op.DataIdentifier] = func(d *decoder, _ op.Code) Node { return &Identifier{Name: d.name()} }
	decoders[op.DataVector] = func(d *decoder, _ op.Code) Node { return &Vector{Items: d.nodes()} }
	decoders[op.DataMap] = decodeMap
	decoders[op.DataFunction] = decodeFunction
	decoders[op.DataClass] = decodeClass

	decoders[op.ControlBlock] = func(d *decoder, _ op.Code) Node { return &BasicBlock{Body: d.nodes()} }
	decoders[op.ControlDo] = decodeDo
	decoders[op.ControlIf] = func(d *decoder, _ op.Code) Node {
		return &If{Cond: d.node(), Then: d.node(), Else: d.node()}
	}
	decoders[op.ControlSwitch] = decodeSwitch
	decoders[op.ControlLoop] = func(d *decoder, _ op.Code) Node { return &Loop{Body: d.node()} }
	decoders[op.ControlWhile] = func(d *decoder, _ op.Code) Node { return &While{Cond: d.node(), Body: d.node()} }
	decoders[op.ControlFor] = func(d *decoder, _ op.Code) Node {
		return &For{Var: d.name(), Init: d.node(), Limit: d.node(), Step: d.node(), Body: d.node()}
	}
	decoders[op.ControlForIn] = func(d *decoder, _ op.Code) Node {
		return &ForIn{Var: d.name(), Range: d.node(), Body: d.node()}
	}
	decoders[op.ControlTry] = decodeTry
	decoders[op.ControlThrow] = func(d *decoder, _ op.Code) Node { return &Throw{X: d.node()} }
	decoders[op.ControlReturn] = func(d *decoder, _ op.Code) Node { return &Return{X: d.node()} }
	decoders[op.ControlBreak] = func(d *decoder, _ op.Code) Node { return &Break{X: d.node()} }

	decoders[op.Call] = decodeCall
	decoders[op.VariadicCall] = decodeCall
	decoders[op.CallMethod] = decodeCallMethod
	decoders[op.VariadicCallMethod] = decodeCallMethod
	decoders[op.IndexGet] = func(d *decoder, _ op.Code) Node { return &IndexGet{X: d.node(), Index: d.node()} }
	decoders[op.IndexSet] = func(d *decoder, _ op.Code) Node {
		return &IndexSet{X: d.node(), Index: d.node(), Value: d.node()}
	}
	decoders[op.AttrGet] = func(d *decoder, _ op.Code) Node { return &AttrGet{X: d.node(), Attr: d.name()} }
	decoders[op.AttrSet] = func(d *decoder, _ op.Code) Node {
		return &AttrSet{X: d.node(), Attr: d.name(), Value: d.node()}
	}

	decoders[op.DynFunc] = func(d *decoder, _ op.Code) Node {
		return &DynFunc{Params: d.names(), Variadic: d.boolean(), Library: d.str(), Func: d.str()}
	}
	decoders[op.DynClass] = decodeDynClass
	decoders[op.DynVar] = func(d *decoder, _ op.Code) Node { return &DynVar{Name: d.name(), Library: d.str()} }
}

func decodeBinary(d *decoder, code op.Code) Node {
	return &Binary{Operator: code, X: d.node(), Y: d.node()}
}

func decodeUnary(d *decoder, code op.Code) Node {
	return &Unary{Operator: code, X: d.node()}
}

func decodeMap(d *decoder, _ op.Code) Node {
	n := d.count()
	pairs := make([]Pair, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		pairs = append(pairs, Pair{Key: d.node(), Value: d.node()})
	}
	return &Map{Pairs: pairs}
}

func decodeFunction(d *decoder, _ op.Code) Node {
	return &Function{Params: d.names(), Variadic: d.boolean(), Body: d.node()}
}

func decodeClass(d *decoder, _ op.Code) Node {
	class := &Class{Name: d.name(), Super: d.node()}
	if _, ok := class.Super.(*Void); ok {
		class.Super = nil
	}
	n := d.count()
	for i := 0; i < n && d.err == nil; i++ {
		class.Methods = append(class.Methods, Method{
			Name:     d.name(),
			Params:   d.names(),
			Variadic: d.boolean(),
			Body:     d.node(),
		})
	}
	return class
}

// decodeDo turns a do wrapping a basic block back into a scoped block.
func decodeDo(d *decoder, _ op.Code) Node {
	x := d.node()
	if b, ok := x.(*BasicBlock); ok {
		return &Block{Body: b.Body}
	}
	return &Do{X: x}
}

func decodeSwitch(d *decoder, _ op.Code) Node {
	s := &Switch{Cond: d.node()}
	n := d.count()
	for i := 0; i < n && d.err == nil; i++ {
		s.Cases = append(s.Cases, Case{Values: d.nodes(), Body: d.node()})
	}
	s.Default = d.node()
	return s
}

func decodeTry(d *decoder, _ op.Code) Node {
	t := &Try{Body: d.node()}
	if d.boolean() {
		t.Binding = d.name()
	}
	t.Catch = d.node()
	return t
}

func decodeCall(d *decoder, code op.Code) Node {
	c := &Call{Fn: d.node(), Args: d.nodes()}
	if code == op.VariadicCall {
		c.Vararg = d.node()
	}
	return c
}

func decodeCallMethod(d *decoder, code op.Code) Node {
	c := &CallMethod{Object: d.node(), Method: d.name(), Args: d.nodes()}
	if code == op.VariadicCallMethod {
		c.Vararg = d.node()
	}
	return c
}

func decodeDynClass(d *decoder, _ op.Code) Node {
	c := &DynClass{Name: d.name()}
	n := d.count()
	for i := 0; i < n && d.err == nil; i++ {
		c.Methods = append(c.Methods, DynMethod{
			Params:   d.names(),
			Variadic: d.boolean(),
			Name:     d.name(),
		})
	}
	c.Library = d.str()
	return c
}

func decodeCreateVar(d *decoder, code op.Code) Node {
	return &CreateVar{Name: d.name(), Value: d.node(), Global: code == op.VarCreateGlobal}
}

func decodeLoadVar(d *decoder, code op.Code) Node {
	return &LoadVar{Name: d.name(), Global: code == op.VarLoadGlobal}
}

func decodeStoreVar(d *decoder, code op.Code) Node {
	return &StoreVar{Name: d.name(), Value: d.node(), Global: code == op.VarStoreGlobal}
}

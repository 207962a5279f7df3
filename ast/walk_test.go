package ast

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

func opsOf(root Node) []op.Code {
	var codes []op.Code
	for n := range Preorder(root) {
		codes = append(codes, n.Op())
	}
	return codes
}

func TestPreorder(t *testing.T) {
	root := binop(op.Add, num(1), &Unary{Operator: op.Negate, X: num(2)})
	require.Equal(t, []op.Code{op.Add, op.DataNumber, op.Negate, op.DataNumber}, opsOf(root))

	// Children come in encoding order.
	loop := &For{Var: sym("i"), Init: num(0), Limit: str("limit"), Step: &Null{}, Body: &Void{}}
	require.Equal(t, []op.Code{op.ControlFor, op.DataNumber, op.DataString, op.DataNull, op.DataVoid}, opsOf(loop))

	var count int
	for range Preorder(root) {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestInspect(t *testing.T) {
	root := &Block{Body: []Node{
		&If{Cond: &Boolean{Value: true}, Then: num(1)},
		&Vector{Items: []Node{num(2), num(3)}},
	}}
	var numbers int
	Inspect(root, func(n Node) bool {
		if _, ok := n.(*Number); ok {
			numbers++
		}
		// Skip vector contents.
		_, isVector := n.(*Vector)
		return !isVector
	})
	require.Equal(t, 1, numbers)
}

type countingVisitor map[op.Code]int

func (v countingVisitor) Visit(n Node) Visitor {
	v[n.Op()]++
	return v
}

func TestWalkSkipsNilChildren(t *testing.T) {
	v := countingVisitor{}
	Walk(v, &Switch{Cond: num(1), Cases: []Case{{Values: []Node{num(2)}, Body: nil}}})
	require.Equal(t, countingVisitor{op.ControlSwitch: 1, op.DataNumber: 2}, v)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(&Block{Body: []Node{num(1)}}))
	require.ErrorIs(t, Validate(nil), ErrNilNode)

	long := string(make([]byte, bytecode.MaxStringLen+1))
	err := Validate(&Block{Body: []Node{
		&Return{},
		&Print{X: &String{Value: long}},
		&Binary{Operator: op.Print, X: num(1), Y: num(2)},
		&DynVar{Name: sym("v"), Library: long},
	}})
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 4)
	require.ErrorIs(t, merr.Errors[0], ErrNilNode)
	require.ErrorIs(t, merr.Errors[1], bytecode.ErrStringTooLong)
	require.ErrorContains(t, merr.Errors[2], "not a valid binary operator")
	require.ErrorIs(t, merr.Errors[3], bytecode.ErrStringTooLong)
}

func TestMeasure(t *testing.T) {
	root := &Block{Body: []Node{
		&Class{Name: sym("Point"), Methods: []Method{
			{Name: sym("init"), Params: []symbol.Name{sym("self")}, Body: &Null{}},
		}},
		&Function{Body: &String{Value: "hello"}},
		&DynVar{Name: sym("pi"), Library: "libm.so"},
	}}
	require.Equal(t, Stats{
		NodeCount:     6,
		MaxDepth:      3,
		FunctionCount: 2,
		ClassCount:    1,
		NativeCount:   1,
		StringBytes:   5,
	}, Measure(root))
	require.Equal(t, Stats{}, Measure(nil))
}

// Package dis renders Creek expression trees as an indented listing of
// opcodes, one line per node in encoding order.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/creek-lang/creek"
	"github.com/creek-lang/creek/ast"
	"github.com/creek-lang/creek/object"
	"github.com/creek-lang/creek/op"
	"github.com/creek-lang/creek/symbol"
)

// Instruction is one node of a disassembled tree.
type Instruction struct {
	Depth      int
	Opcode     op.Code
	Name       string
	Annotation string
}

// Disassemble flattens the tree rooted at root into instructions, parents
// before children.
func Disassemble(root ast.Node) ([]Instruction, error) {
	if root == nil {
		return nil, ast.ErrNilNode
	}
	var out []Instruction
	var visit func(n ast.Node, depth int) error
	visit = func(n ast.Node, depth int) error {
		code := n.Op()
		out = append(out, Instruction{
			Depth:      depth,
			Opcode:     code,
			Name:       code.String(),
			Annotation: annotate(n),
		})
		for i, child := range n.Children() {
			if child == nil {
				return fmt.Errorf("%s: child %d: %w", code, i, ast.ErrNilNode)
			}
			if err := visit(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func signature(params []symbol.Name, variadic bool) string {
	parts := make([]string, len(params))
	for i, n := range params {
		parts[i] = n.String()
	}
	if variadic && len(parts) > 0 {
		parts[len(parts)-1] += "..."
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func annotate(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Boolean:
		return object.NewBool(n.Value).Inspect()
	case *ast.Number:
		return object.NewNumber(n.Value).Inspect()
	case *ast.String:
		return object.NewString(n.Value).Inspect()
	case *ast.Identifier:
		return n.Name.String()
	case *ast.Vector:
		return fmt.Sprintf("%d items", len(n.Items))
	case *ast.Map:
		return fmt.Sprintf("%d pairs", len(n.Pairs))
	case *ast.Function:
		return signature(n.Params, n.Variadic)
	case *ast.Class:
		return fmt.Sprintf("%s (%d methods)", n.Name, len(n.Methods))
	case *ast.Block:
		return fmt.Sprintf("%d statements", len(n.Body))
	case *ast.BasicBlock:
		return fmt.Sprintf("%d statements", len(n.Body))
	case *ast.Switch:
		return fmt.Sprintf("%d cases", len(n.Cases))
	case *ast.For:
		return n.Var.String()
	case *ast.ForIn:
		return n.Var.String()
	case *ast.Try:
		return "catch " + n.Binding.String()
	case *ast.Call:
		return fmt.Sprintf("%d args", len(n.Args))
	case *ast.CallMethod:
		return fmt.Sprintf("%s, %d args", n.Method, len(n.Args))
	case *ast.AttrGet:
		return n.Attr.String()
	case *ast.AttrSet:
		return n.Attr.String()
	case *ast.CreateVar:
		return n.Name.String()
	case *ast.LoadVar:
		return n.Name.String()
	case *ast.StoreVar:
		return n.Name.String()
	case *ast.DynFunc:
		return fmt.Sprintf("%s%s from %s", n.Func, signature(n.Params, n.Variadic), n.Library)
	case *ast.DynClass:
		return fmt.Sprintf("%s (%d methods) from %s", n.Name, len(n.Methods), n.Library)
	case *ast.DynVar:
		return fmt.Sprintf("%s from %s", n.Name, n.Library)
	}
	return ""
}

// Print writes the instructions to w, indenting each by its depth.
func Print(instructions []Instruction, w io.Writer) error {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	width := 0
	for _, instr := range instructions {
		if n := 2*instr.Depth + len(instr.Name); n > width {
			width = n
		}
	}
	for _, instr := range instructions {
		indent := strings.Repeat("  ", instr.Depth)
		line := indent + bold(instr.Name)
		if instr.Annotation != "" {
			pad := width - 2*instr.Depth - len(instr.Name) + 2
			line += strings.Repeat(" ", pad) + cyan(instr.Annotation)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Fprint disassembles root and prints the listing to w.
func Fprint(w io.Writer, root ast.Node) error {
	instructions, err := Disassemble(root)
	if err != nil {
		return err
	}
	return Print(instructions, w)
}

// FprintFile loads the bytecode file at path and prints its listing to w.
func FprintFile(w io.Writer, path string) error {
	root, err := creek.Load(path)
	if err != nil {
		return err
	}
	return Fprint(w, root)
}

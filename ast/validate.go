package ast

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/creek-lang/creek/bytecode"
)

// Validate reports every structural problem in the tree rooted at root that
// would make it fail to encode: missing required children, strings too
// long for the wire format, and operators a node cannot carry. It returns
// nil when the tree is sound.
func Validate(root Node) error {
	if root == nil {
		return ErrNilNode
	}
	var result *multierror.Error
	for n := range Preorder(root) {
		for i, child := range n.Children() {
			if child == nil {
				result = multierror.Append(result, fmt.Errorf("%s: child %d: %w", n.Op(), i, ErrNilNode))
			}
		}
		for _, s := range nodeStrings(n) {
			if len(s) > bytecode.MaxStringLen {
				result = multierror.Append(result, fmt.Errorf("%s: %w (%d bytes)", n.Op(), bytecode.ErrStringTooLong, len(s)))
			}
		}
		switch n := n.(type) {
		case *Binary:
			if !isBinary(n.Operator) {
				result = multierror.Append(result, opError(n.Operator, "binary"))
			}
		case *Unary:
			if !isUnary(n.Operator) {
				result = multierror.Append(result, opError(n.Operator, "unary"))
			}
		}
	}
	return result.ErrorOrNil()
}

func nodeStrings(n Node) []string {
	switch n := n.(type) {
	case *String:
		return []string{n.Value}
	case *DynFunc:
		return []string{n.Library, n.Func}
	case *DynClass:
		return []string{n.Library}
	case *DynVar:
		return []string{n.Library}
	}
	return nil
}

package ast

// Stats contains statistics about an expression tree.
// This is useful for auditing programs before evaluation.
type Stats struct {
	// NodeCount is the total number of nodes.
	NodeCount int

	// MaxDepth is the nesting depth of the deepest node. A lone literal
	// has depth 1.
	MaxDepth int

	// FunctionCount is the number of function and method literals.
	FunctionCount int

	// ClassCount is the number of class literals, native classes included.
	ClassCount int

	// NativeCount is the number of dynamic-load expressions.
	NativeCount int

	// StringBytes is the total length of string literals.
	StringBytes int
}

type measurer struct {
	stats *Stats
	depth int
}

func (m measurer) Visit(n Node) Visitor {
	s := m.stats
	s.NodeCount++
	s.MaxDepth = max(s.MaxDepth, m.depth)
	switch n := n.(type) {
	case *String:
		s.StringBytes += len(n.Value)
	case *Function:
		s.FunctionCount++
	case *Class:
		s.ClassCount++
		s.FunctionCount += len(n.Methods)
	case *DynFunc, *DynVar:
		s.NativeCount++
	case *DynClass:
		s.NativeCount++
		s.ClassCount++
	}
	return measurer{stats: s, depth: m.depth + 1}
}

// Measure computes the statistics of the tree rooted at root.
func Measure(root Node) Stats {
	var s Stats
	if root != nil {
		Walk(measurer{stats: &s, depth: 1}, root)
	}
	return s
}

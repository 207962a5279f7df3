package object

// Void is the result of an expression that produces nothing.
type Void struct {
	base
}

// Null is the null literal.
type Null struct {
	base
}

func NewVoid() *Void {
	return &Void{base: base{VOID}}
}

func NewNull() *Null {
	return &Null{base: base{NULL}}
}

func (v *Void) Inspect() string { return "void" }
func (v *Void) Copy() Value { return NewVoid() }
func (v *Void) Bool() (bool, error) { return false, nil }
func (v *Void) Compare(o Value) (int, error) {
	return CompareTypes(v, o), nil
}

func (n *Null) Inspect() string { return "null" }
func (n *Null) Copy() Value { return NewNull() }
func (n *Null) Bool() (bool, error) { return false, nil }
func (n *Null) Compare(o Value) (int, error) {
	return CompareTypes(n, o), nil
}

package object

// NativeLoader resolves the symbols named by dynamic-load expressions.
// Library paths are opaque to the evaluator; the loader decides what they
// refer to.
type NativeLoader interface {
	// LoadFunc returns the function name exported by lib.
	LoadFunc(lib, name string) (BuiltinFunction, error)

	// LoadMethod returns method of the class exported by lib.
	LoadMethod(lib, class, method string) (BuiltinFunction, error)

	// LoadVar returns the value of the variable name exported by lib.
	LoadVar(lib, name string) (Value, error)
}

package typechecker

const (
	builtinPrint    = "print"
	builtinFunction = "function"
)

// registerBuiltins seeds the root scope. `function` is an identity-like stub
// whose call type is the type of its first argument.
func registerBuiltins(env *Environment) {
	env.Define(builtinPrint, FunctionType{Params: []Type{UnknownType{}}, Return: VoidType})
	env.Define(builtinFunction, FunctionType{Params: []Type{UnknownType{}}, Return: UnknownType{}})
}

package interpreter

import (
	"fmt"
	"strconv"

	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.Identifier:
		return env.Get(n.Name)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.TypedValue:
		return i.evaluateTypedValue(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	default:
		return runtime.NullValue{}, nil
	}
}

// evaluateFunctionCall dispatches print by the callee value's name and runs
// user functions in a child of the caller's scope.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	name := call.Callee.Name
	callee, ok := env.Lookup(name)
	if !ok {
		return nil, diag.Runtime(diag.CodeUndefinedFunction, "Undefined function '%s'", name)
	}
	fn, ok := callee.(runtime.FunctionValue)
	if !ok {
		return nil, diag.Runtime(diag.CodeNotCallable, "'%s' is not a function", name)
	}

	if fn.Name == builtinPrint {
		args, err := i.evaluateArguments(call.Arguments, env)
		if err != nil {
			return nil, err
		}
		for _, arg := range args {
			fmt.Fprintln(i.out, valueToString(arg))
		}
		return runtime.NullValue{}, nil
	}

	if len(call.Arguments) != len(fn.Params) {
		return nil, diag.Runtime(diag.CodeArityMismatch, "Function '%s' expects %d arguments, got %d", name, len(fn.Params), len(call.Arguments))
	}
	args, err := i.evaluateArguments(call.Arguments, env)
	if err != nil {
		return nil, err
	}
	return i.invokeFunction(fn, args, env)
}

func (i *Interpreter) evaluateArguments(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	values := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

func (i *Interpreter) invokeFunction(fn runtime.FunctionValue, args []runtime.Value, caller *runtime.Environment) (runtime.Value, error) {
	if err := i.ctx.Err(); err != nil {
		return nil, diag.Runtime(diag.CodeInterrupted, "Execution interrupted: %v", err)
	}
	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return nil, diag.Runtime(diag.CodeCallDepth, "Maximum call depth %d exceeded calling '%s'", i.maxDepth, fn.Name)
	}
	i.depth++
	defer func() { i.depth-- }()

	frame := caller.Extend()
	for idx, param := range fn.Params {
		frame.Define(param.Name, args[idx])
	}
	return i.evaluateStatements(fn.Body, frame)
}

// evaluateTypedValue builds a literal from a bare identifier payload, or
// checks the inner value's variant against the tag.
func (i *Interpreter) evaluateTypedValue(tv *ast.TypedValue, env *runtime.Environment) (runtime.Value, error) {
	if text, literal := tv.LiteralText(); literal {
		switch tv.TypeName {
		case "String":
			return runtime.StringValue{Val: text}, nil
		case "Integer":
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return nil, diag.Runtime(diag.CodeLiteralConversion, "Cannot convert '%s' to Integer", text)
			}
			return runtime.IntegerValue{Val: n}, nil
		}
	}

	val, err := i.evaluateExpression(tv.Value, env)
	if err != nil {
		return nil, err
	}
	switch {
	case tv.TypeName == "String" && val.Kind() == runtime.KindString,
		tv.TypeName == "Integer" && val.Kind() == runtime.KindInteger:
		return val, nil
	}
	return nil, diag.Runtime(diag.CodeTypeMismatch, "Type mismatch: expected %s, got %s", tv.TypeName, describeValue(val))
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OperatorIs:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.OperatorIsNot:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	default:
		return nil, diag.Runtime(diag.CodeUnknownOperator, "Unknown operator: %s", expr.Operator)
	}
}

package interpreter

import (
	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/runtime"
)

// evaluateStatements runs stmts in env and yields the last statement's value.
func (i *Interpreter) evaluateStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	var last runtime.Value = runtime.NullValue{}
	for _, stmt := range stmts {
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.FunctionDeclaration:
		env.Define(n.ID.Name, runtime.NewFunctionValue(n))
		return runtime.NullValue{}, nil
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.Comment:
		return runtime.NullValue{}, nil
	case ast.Expression:
		return i.evaluateExpression(n, env)
	default:
		return runtime.NullValue{}, nil
	}
}

// evaluateIfStatement runs the body in the current scope.
func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return nil, err
	}
	if !runtime.Truthy(cond) {
		return runtime.NullValue{}, nil
	}
	return i.evaluateStatements(stmt.Body, env)
}

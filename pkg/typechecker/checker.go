// Package typechecker performs gradual type checking of tagl programs. It fails
// on the first violation and never mutates the program.
package typechecker

import (
	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
)

// Checker validates programs against a persistent global scope.
type Checker struct {
	global *Environment
	env    *Environment
}

// New returns a checker whose global scope holds only the built-ins.
func New() *Checker {
	c := &Checker{}
	c.Reset()
	return c
}

// Check validates program with a fresh checker.
func Check(program *ast.Program) error {
	return New().Check(program)
}

// Reset discards every global definition except the built-ins.
func (c *Checker) Reset() {
	c.global = NewEnvironment(nil)
	registerBuiltins(c.global)
	c.env = c.global
}

// GlobalEnvironment exposes the root scope.
func (c *Checker) GlobalEnvironment() *Environment {
	return c.global
}

// Checkpoint records the global scope. Calling the returned func puts it back,
// undoing every definition made since.
func (c *Checker) Checkpoint() func() {
	saved := c.global.snapshot()
	return func() {
		c.global.restore(saved)
		c.env = c.global
	}
}

// Check validates every top-level statement in order. Definitions made by a
// program that fails checking are rolled back.
func (c *Checker) Check(program *ast.Program) error {
	if program == nil {
		return nil
	}
	rollback := c.Checkpoint()
	c.env = c.global
	for _, stmt := range program.Body {
		if _, err := c.checkStatement(stmt); err != nil {
			rollback()
			return err
		}
	}
	return nil
}

func (c *Checker) checkStatement(stmt ast.Statement) (Type, error) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		return c.checkFunctionDeclaration(s)
	case *ast.IfStatement:
		return c.checkIfStatement(s)
	case *ast.Comment:
		return VoidType, nil
	case ast.Expression:
		return c.checkExpression(s)
	default:
		return UnknownType{}, nil
	}
}

func (c *Checker) checkFunctionDeclaration(decl *ast.FunctionDeclaration) (Type, error) {
	params := make([]Type, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = TypeFromName(p.TypeName)
	}
	// Bound before the body so the body may call itself.
	c.env.Define(decl.ID.Name, FunctionType{Params: params, Return: VoidType})

	prev := c.env
	c.env = prev.Extend()
	defer func() { c.env = prev }()

	for i, p := range decl.Params {
		c.env.Define(p.Name, params[i])
	}
	for _, stmt := range decl.Body {
		if _, err := c.checkStatement(stmt); err != nil {
			return nil, err
		}
	}
	return VoidType, nil
}

func (c *Checker) checkIfStatement(stmt *ast.IfStatement) (Type, error) {
	cond, err := c.checkExpression(stmt.Condition)
	if err != nil {
		return nil, err
	}
	if !isUnknown(cond) && !SameType(cond, BooleanType) {
		return nil, diag.Type(diag.CodeConditionType, "If condition must be a boolean, got %s", typeName(cond))
	}
	for _, s := range stmt.Body {
		if _, err := c.checkStatement(s); err != nil {
			return nil, err
		}
	}
	return VoidType, nil
}

func (c *Checker) checkExpression(expr ast.Expression) (Type, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return StringType, nil
	case *ast.IntegerLiteral:
		return IntegerType, nil
	case *ast.Identifier:
		typ, ok := c.env.Lookup(e.Name)
		if !ok {
			return nil, diag.Type(diag.CodeUndefinedVariable, "Undefined variable '%s'", e.Name)
		}
		return typ, nil
	case *ast.FunctionCall:
		return c.checkFunctionCall(e)
	case *ast.TypedValue:
		return c.checkTypedValue(e)
	case *ast.BinaryExpression:
		return c.checkBinaryExpression(e)
	default:
		return UnknownType{}, nil
	}
}

func (c *Checker) checkFunctionCall(call *ast.FunctionCall) (Type, error) {
	name := call.Callee.Name
	callee, ok := c.env.Lookup(name)
	if !ok {
		return nil, diag.Type(diag.CodeUndefinedFunction, "Undefined function '%s'", name)
	}

	switch name {
	case builtinPrint:
		for _, arg := range call.Arguments {
			if _, err := c.checkExpression(arg); err != nil {
				return nil, err
			}
		}
		return VoidType, nil
	case builtinFunction:
		if len(call.Arguments) > 0 {
			return c.checkExpression(call.Arguments[0])
		}
		return UnknownType{}, nil
	}

	fn, ok := callee.(FunctionType)
	if !ok {
		return nil, diag.Type(diag.CodeNotCallable, "'%s' is not a function", name)
	}
	if len(call.Arguments) != len(fn.Params) {
		return nil, diag.Type(diag.CodeArityMismatch, "Function '%s' expects %d arguments, got %d", name, len(fn.Params), len(call.Arguments))
	}
	for i, arg := range call.Arguments {
		actual, err := c.checkExpression(arg)
		if err != nil {
			return nil, err
		}
		if !Compatible(actual, fn.Params[i]) {
			return nil, diag.Type(diag.CodeTypeMismatch, "Type mismatch: expected %s, got %s", typeName(fn.Params[i]), typeName(actual))
		}
	}
	return fn.Return, nil
}

// checkTypedValue treats a bare identifier payload as literal text.
func (c *Checker) checkTypedValue(tv *ast.TypedValue) (Type, error) {
	expected := TypeFromName(tv.TypeName)
	if _, literal := tv.LiteralText(); literal {
		return expected, nil
	}
	actual, err := c.checkExpression(tv.Value)
	if err != nil {
		return nil, err
	}
	if !Compatible(actual, expected) {
		return nil, diag.Type(diag.CodeTypeMismatch, "Type mismatch: expected %s, got %s", typeName(expected), typeName(actual))
	}
	return expected, nil
}

func (c *Checker) checkBinaryExpression(bin *ast.BinaryExpression) (Type, error) {
	if _, err := c.checkExpression(bin.Left); err != nil {
		return nil, err
	}
	if _, err := c.checkExpression(bin.Right); err != nil {
		return nil, err
	}
	switch bin.Operator {
	case ast.OperatorIs, ast.OperatorIsNot:
		return BooleanType, nil
	default:
		return nil, diag.Type(diag.CodeUnknownOperator, "Unknown operator: %s", bin.Operator)
	}
}

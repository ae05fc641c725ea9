package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

// Typed value helpers.

func StrOf(text string) *TypedValue {
	return NewTypedValue("String", ID(text))
}

func IntOf(text string) *TypedValue {
	return NewTypedValue("Integer", ID(text))
}

func Typed(typeName string, value Expression) *TypedValue {
	return NewTypedValue(typeName, value)
}

// Expression helpers.

func Call(name string, args ...Expression) *FunctionCall {
	if args == nil {
		args = []Expression{}
	}
	return NewFunctionCall(ID(name), args)
}

func Is(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OperatorIs, left, right)
}

func IsNot(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OperatorIsNot, left, right)
}

// Statement helpers.

func Param(name, typeName string) *Parameter {
	return NewParameter(name, typeName)
}

func Fn(name string, params []*Parameter, body ...Statement) *FunctionDeclaration {
	if params == nil {
		params = []*Parameter{}
	}
	return NewFunctionDeclaration(ID(name), params, stmts(body))
}

func If(condition Expression, body ...Statement) *IfStatement {
	return NewIfStatement(condition, stmts(body))
}

func Note(text string) *Comment {
	return NewComment(text)
}

func Prog(body ...Statement) *Program {
	return NewProgram(stmts(body))
}

func Params(params ...*Parameter) []*Parameter {
	if params == nil {
		return []*Parameter{}
	}
	return params
}

func stmts(body []Statement) []Statement {
	if body == nil {
		return []Statement{}
	}
	return body
}

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/lexer"
	"tagl/interpreter-go/pkg/parser"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := parser.ParseSource(source, lexer.Options{})
	require.NoError(t, err)
	return program
}

func TestParseFunctionDeclarationAndCall(t *testing.T) {
	program := parse(t, `
func greet(name: String, count: Integer) {
	print(name)
}
greet(String(Alice), 3)
`)

	expected := ast.Prog(
		ast.Fn("greet", ast.Params(ast.Param("name", "String"), ast.Param("count", "Integer")),
			ast.Call("print", ast.ID("name")),
		),
		ast.Call("greet", ast.Str("Alice"), ast.Int(3)),
	)
	assert.Equal(t, expected, program)
}

func TestParseParameterTypeNames(t *testing.T) {
	program := parse(t, "func f(a: Unknown, b: Whatever) { }")
	expected := ast.Prog(ast.Fn("f", ast.Params(ast.Param("a", "Unknown"), ast.Param("b", "Whatever"))))
	assert.Equal(t, expected, program)
}

func TestParseIfWithEquality(t *testing.T) {
	program := parse(t, "if String[Hello] is not String[World] { print(String[True]) }")
	expected := ast.Prog(
		ast.If(ast.IsNot(ast.StrOf("Hello"), ast.StrOf("World")),
			ast.Call("print", ast.StrOf("True")),
		),
	)
	assert.Equal(t, expected, program)
}

func TestParseTypedValueWrapsExpression(t *testing.T) {
	program := parse(t, "Integer[Integer(5)] String[name()]")
	expected := ast.Prog(
		ast.Typed("Integer", ast.Int(5)),
		ast.Typed("String", ast.Call("name")),
	)
	assert.Equal(t, expected, program)
}

func TestParseTrueAndFalseAreIdentifiers(t *testing.T) {
	program := parse(t, "True False")
	assert.Equal(t, ast.Prog(ast.ID("True"), ast.ID("False")), program)
}

func TestParseCommentsAreStatements(t *testing.T) {
	program := parse(t, "// top\nfunc f() {\n// inner\n}")
	expected := ast.Prog(ast.Note("top"), ast.Fn("f", nil, ast.Note("inner")))
	assert.Equal(t, expected, program)
}

func TestParseEqualityIsNotChainable(t *testing.T) {
	// The second `is` begins a new statement and has no left operand.
	_, err := parser.ParseSource("a is b is c", lexer.Options{})
	require.Error(t, err)
	assert.Equal(t, "Unexpected token: Equals", err.Error())
}

func TestParseEmptyProgram(t *testing.T) {
	program := parse(t, "   // only a comment")
	assert.Equal(t, ast.Prog(ast.Note("only a comment")), program)
	assert.Equal(t, ast.Prog(), parse(t, ""))
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source  string
		message string
		code    diag.Code
	}{
		{"func (", "Expected function name after 'func' keyword", diag.CodeExpectedToken},
		{"func f {", "Expected '(' after function name", diag.CodeExpectedToken},
		{"func f(a: String {", "Expected ',' between parameters", diag.CodeInvalidParameter},
		{"func f(a String) {}", "Expected ':' after parameter name", diag.CodeInvalidParameter},
		{"func f(: String) {}", "Expected parameter name", diag.CodeInvalidParameter},
		{"func f(a: 1) {}", "Expected type name after ':'", diag.CodeInvalidParameter},
		{"func f() print", "Expected '{' after function declaration", diag.CodeExpectedToken},
		{"func f() { print(x)", "Expected '}' after function body", diag.CodeUnexpectedEOF},
		{"if x print", "Expected '{' after if condition", diag.CodeExpectedToken},
		{"if x { print(x)", "Expected '}' after if body", diag.CodeUnexpectedEOF},
		{"f(a b)", "Expected ',' between arguments", diag.CodeInvalidArguments},
		{"f(a", "Expected ',' between arguments", diag.CodeUnexpectedEOF},
		{"String Hello", "Expected '[' after type name", diag.CodeExpectedToken},
		{"String[Hello", "Expected ']' after type value", diag.CodeUnexpectedEOF},
		{"Unknown[x]", "Unexpected token: TypeUnknown", diag.CodeUnexpectedToken},
		{"}", "Unexpected token: RightBrace", diag.CodeUnexpectedToken},
		{"print(", "Unexpected token: EOF", diag.CodeUnexpectedEOF},
	}

	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			_, err := parser.ParseSource(tc.source, lexer.Options{})
			if assert.Error(t, err) {
				assert.Equal(t, tc.message, err.Error())
				assert.True(t, diag.Is(err, tc.code), "code for %q", tc.source)
				stage, ok := diag.StageOf(err)
				assert.True(t, ok)
				assert.Equal(t, diag.StageSyntax, stage)
			}
		})
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := parser.ParseSource("func f() {\n  }\n}", lexer.Options{})
	require.Error(t, err)
	d, ok := diag.As(err)
	require.True(t, ok)
	assert.Equal(t, diag.Location{Line: 3, Column: 1}, d.Location)
}

func TestParseWordBoundedKeywords(t *testing.T) {
	program, err := parser.ParseSource("isReady is not isDone", lexer.Options{WordBoundedKeywords: true})
	require.NoError(t, err)
	assert.Equal(t, ast.Prog(ast.IsNot(ast.ID("isReady"), ast.ID("isDone"))), program)
}

package interpreter

import (
	"bytes"

	"tagl/interpreter-go/pkg/lexer"
	"tagl/interpreter-go/pkg/parser"
	"tagl/interpreter-go/pkg/typechecker"
)

// runSource parses, optionally checks, and interprets source, returning
// everything print wrote.
func runSource(source string, check bool) (string, error) {
	program, err := parser.ParseSource(source, lexer.Options{})
	if err != nil {
		return "", err
	}
	if check {
		if err := typechecker.Check(program); err != nil {
			return "", err
		}
	}
	var out bytes.Buffer
	err = New(Options{Stdout: &out}).Interpret(program)
	return out.String(), err
}

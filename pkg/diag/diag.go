// Package diag defines the structured errors shared by the parser, the type
// checker and the interpreter.
package diag

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline stage that produced an error.
type Stage string

const (
	StageSyntax  Stage = "syntax"
	StageType    Stage = "type"
	StageRuntime Stage = "runtime"
)

// Code enumerates the specific causes a stage can report.
type Code string

const (
	// syntax
	CodeExpectedToken    Code = "expected_token"
	CodeUnexpectedToken  Code = "unexpected_token"
	CodeUnexpectedEOF    Code = "unexpected_eof"
	CodeInvalidParameter Code = "invalid_parameter"
	CodeInvalidArguments Code = "invalid_arguments"

	// type and runtime
	CodeUndefinedVariable Code = "undefined_variable"
	CodeUndefinedFunction Code = "undefined_function"
	CodeArityMismatch     Code = "arity_mismatch"
	CodeTypeMismatch      Code = "type_mismatch"
	CodeConditionType     Code = "condition_type"
	CodeNotCallable       Code = "not_callable"
	CodeUnknownOperator   Code = "unknown_operator"

	// runtime only
	CodeLiteralConversion Code = "literal_conversion"
	CodeCallDepth         Code = "call_depth"
	CodeInterrupted       Code = "interrupted"
)

// Location points at a source position. Zero values mean unknown.
type Location struct {
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Error is the error type returned by every stage after the lexer.
// Error() yields the bare message so callers matching on text keep working.
type Error struct {
	Stage    Stage    `json:"stage" yaml:"stage"`
	Code     Code     `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	Location Location `json:"location,omitempty" yaml:"location,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Syntax builds a parser error.
func Syntax(code Code, loc Location, format string, args ...interface{}) *Error {
	return &Error{Stage: StageSyntax, Code: code, Message: fmt.Sprintf(format, args...), Location: loc}
}

// Type builds a type checker error.
func Type(code Code, format string, args ...interface{}) *Error {
	return &Error{Stage: StageType, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Runtime builds an interpreter error.
func Runtime(code Code, format string, args ...interface{}) *Error {
	return &Error{Stage: StageRuntime, Code: code, Message: fmt.Sprintf(format, args...)}
}

// As unwraps err to a *Error.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// StageOf returns the stage that produced err.
func StageOf(err error) (Stage, bool) {
	de, ok := As(err)
	if !ok {
		return "", false
	}
	return de.Stage, true
}

// Describe formats an error for CLI output.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	de, ok := As(err)
	if !ok {
		return "error: " + err.Error()
	}
	prefix := string(de.Stage) + " error: "
	if loc := formatLocation(de.Location); loc != "" {
		return prefix + loc + ": " + de.Message
	}
	return prefix + de.Message
}

func formatLocation(loc Location) string {
	switch {
	case loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("line %d, column %d", loc.Line, loc.Column)
	case loc.Line > 0:
		return fmt.Sprintf("line %d", loc.Line)
	default:
		return ""
	}
}

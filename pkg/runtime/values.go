package runtime

import (
	"fmt"

	"tagl/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindBool
	KindNull
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// FunctionValue holds a declaration by value. It captures no scope; calls
// resolve free names against the caller's scope chain.
type FunctionValue struct {
	Name   string
	Params []*ast.Parameter
	Body   []ast.Statement
}

func (v FunctionValue) Kind() Kind { return KindFunction }

// NewFunctionValue copies the declaration's parameter and body lists.
func NewFunctionValue(decl *ast.FunctionDeclaration) FunctionValue {
	params := make([]*ast.Parameter, len(decl.Params))
	copy(params, decl.Params)
	body := make([]ast.Statement, len(decl.Body))
	copy(body, decl.Body)
	return FunctionValue{Name: decl.ID.Name, Params: params, Body: body}
}

// Truthy implements the conditional test used by `if`.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case NullValue:
		return false
	case IntegerValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case FunctionValue:
		return true
	default:
		return false
	}
}

// Equal compares like-variant values structurally. Values of different
// variants, and function values, are never equal.
func Equal(a, b Value) bool {
	switch left := a.(type) {
	case StringValue:
		right, ok := b.(StringValue)
		return ok && left.Val == right.Val
	case IntegerValue:
		right, ok := b.(IntegerValue)
		return ok && left.Val == right.Val
	case BoolValue:
		right, ok := b.(BoolValue)
		return ok && left.Val == right.Val
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	default:
		return false
	}
}

package typechecker

import "strings"

// Type represents a tagl type understood by the checker.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveString  PrimitiveKind = "String"
	PrimitiveInteger PrimitiveKind = "Integer"
	PrimitiveBoolean PrimitiveKind = "Boolean"
	PrimitiveVoid    PrimitiveKind = "Void"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

var (
	StringType  = PrimitiveType{Kind: PrimitiveString}
	IntegerType = PrimitiveType{Kind: PrimitiveInteger}
	BooleanType = PrimitiveType{Kind: PrimitiveBoolean}
	VoidType    = PrimitiveType{Kind: PrimitiveVoid}
)

// FunctionType is the type of a declared or built-in function.
type FunctionType struct {
	Params []Type
	Return Type
}

func (f FunctionType) Name() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = typeName(p)
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> " + typeName(f.Return)
}

// UnknownType is the gradual-typing sentinel, compatible with every type.
type UnknownType struct{}

func (UnknownType) Name() string { return "Unknown" }

func typeName(t Type) string {
	if t == nil {
		return "Unknown"
	}
	return t.Name()
}

func isUnknown(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(UnknownType)
	return ok
}

// SameType reports structural equality. Type names are canonical, so
// comparing them compares structure.
func SameType(a, b Type) bool {
	return typeName(a) == typeName(b)
}

// Compatible reports whether a value of type actual may be used where
// expected is required: an exact match, or either side Unknown.
func Compatible(actual, expected Type) bool {
	if isUnknown(actual) || isUnknown(expected) {
		return true
	}
	return SameType(actual, expected)
}

// TypeFromName resolves a declared type name. Unrecognised names degrade to Unknown.
func TypeFromName(name string) Type {
	switch name {
	case "String":
		return StringType
	case "Integer":
		return IntegerType
	case "Boolean":
		return BooleanType
	default:
		return UnknownType{}
	}
}

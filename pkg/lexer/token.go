package lexer

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a token category.
type Kind string

const (
	Identifier     Kind = "Identifier"
	StringLiteral  Kind = "StringLiteral"
	IntegerLiteral Kind = "IntegerLiteral"

	TypeString  Kind = "TypeString"
	TypeInteger Kind = "TypeInteger"
	TypeUnknown Kind = "TypeUnknown"
	TypeTrue    Kind = "TypeTrue"
	TypeFalse   Kind = "TypeFalse"

	LeftBracket  Kind = "LeftBracket"
	RightBracket Kind = "RightBracket"
	LeftBrace    Kind = "LeftBrace"
	RightBrace   Kind = "RightBrace"
	LeftParen    Kind = "LeftParen"
	RightParen   Kind = "RightParen"
	Equals       Kind = "Equals"    // is
	NotEquals    Kind = "NotEquals" // is not
	Colon        Kind = "Colon"
	Comma        Kind = "Comma"

	If   Kind = "If"
	Func Kind = "Func"

	Comment Kind = "Comment"
	EOF     Kind = "EOF"
)

// keywords maps whole identifier text to its keyword or type-name kind.
var keywords = map[string]Kind{
	"String":  TypeString,
	"Integer": TypeInteger,
	"Unknown": TypeUnknown,
	"True":    TypeTrue,
	"False":   TypeFalse,
	"if":      If,
	"func":    Func,
}

// Token is a single lexical unit. Text holds the payload of identifiers,
// string literals and comments; Int holds the payload of integer literals.
type Token struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Int    int64  `json:"int,omitempty" yaml:"int,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// tokenDocument is the encoded form of a Token. Int is a pointer so an
// integer literal keeps its payload even when it is zero.
type tokenDocument struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Int    *int64 `json:"int,omitempty" yaml:"int,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

func (t Token) document() tokenDocument {
	doc := tokenDocument{Kind: t.Kind, Text: t.Text, Line: t.Line, Column: t.Column}
	if t.Kind == IntegerLiteral || t.Int != 0 {
		n := t.Int
		doc.Int = &n
	}
	return doc
}

// MarshalJSON encodes the token, always including an integer literal's value.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.document())
}

// MarshalYAML is the yaml.v3 counterpart of MarshalJSON.
func (t Token) MarshalYAML() (interface{}, error) {
	return t.document(), nil
}

// String renders the token in its debug form, e.g. Identifier("Hello").
func (t Token) String() string {
	switch t.Kind {
	case Identifier, StringLiteral, Comment:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case IntegerLiteral:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	default:
		return string(t.Kind)
	}
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

// Describe is the user-facing form used in parser messages.
func (t Token) Describe() string {
	return t.String()
}

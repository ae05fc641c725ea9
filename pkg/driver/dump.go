package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/lexer"
)

// Format selects a dump encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format %q", name)
	}
}

// DumpTokens writes tokens one per line in text form, or as a document.
func DumpTokens(w io.Writer, tokens []lexer.Token, format Format) error {
	if format == FormatText {
		for _, tok := range tokens {
			if _, err := fmt.Fprintln(w, tok.String()); err != nil {
				return err
			}
		}
		return nil
	}
	return encode(w, tokens, format)
}

// DumpProgram writes the AST as an indented tree in text form, or as a document.
func DumpProgram(w io.Writer, program *ast.Program, format Format) error {
	if format == FormatText {
		_, err := io.WriteString(w, FormatProgram(program))
		return err
	}
	return encode(w, program, format)
}

func encode(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// FormatProgram renders the AST as an indented outline.
func FormatProgram(program *ast.Program) string {
	var b strings.Builder
	b.WriteString("Program\n")
	if program != nil {
		for _, stmt := range program.Body {
			writeNode(&b, stmt, 1)
		}
	}
	return b.String()
}

func writeNode(b *strings.Builder, node ast.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch n := node.(type) {
	case *ast.FunctionDeclaration:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name + ": " + p.TypeName
		}
		fmt.Fprintf(b, "FunctionDeclaration %s(%s)\n", n.ID.Name, strings.Join(params, ", "))
		for _, stmt := range n.Body {
			writeNode(b, stmt, depth+1)
		}
	case *ast.IfStatement:
		b.WriteString("IfStatement\n")
		writeNode(b, n.Condition, depth+1)
		for _, stmt := range n.Body {
			writeNode(b, stmt, depth+1)
		}
	case *ast.Comment:
		fmt.Fprintf(b, "Comment %q\n", n.Text)
	case *ast.StringLiteral:
		fmt.Fprintf(b, "StringLiteral %q\n", n.Value)
	case *ast.IntegerLiteral:
		fmt.Fprintf(b, "IntegerLiteral %d\n", n.Value)
	case *ast.Identifier:
		fmt.Fprintf(b, "Identifier %s\n", n.Name)
	case *ast.FunctionCall:
		fmt.Fprintf(b, "FunctionCall %s\n", n.Callee.Name)
		for _, arg := range n.Arguments {
			writeNode(b, arg, depth+1)
		}
	case *ast.TypedValue:
		fmt.Fprintf(b, "TypedValue %s\n", n.TypeName)
		writeNode(b, n.Value, depth+1)
	case *ast.BinaryExpression:
		fmt.Fprintf(b, "BinaryExpression %s\n", n.Operator)
		writeNode(b, n.Left, depth+1)
		writeNode(b, n.Right, depth+1)
	default:
		fmt.Fprintf(b, "%s\n", node.NodeType())
	}
}

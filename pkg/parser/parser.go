// Package parser builds a tagl program from a token stream with a single-token
// lookahead recursive-descent parser. Parsing stops at the first error.
package parser

import (
	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/lexer"
)

// Parser walks a token slice produced by the lexer.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New constructs a parser over tokens. A missing trailing EOF token is tolerated.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete program.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseSource lexes and parses source in one step.
func ParseSource(source string, opts lexer.Options) (*ast.Program, error) {
	return Parse(lexer.LexWithOptions(source, opts))
}

// ParseProgram consumes statements until end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	body := []ast.Statement{}
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return ast.NewProgram(body), nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	eof := lexer.Token{Kind: lexer.EOF, Line: 1, Column: 1}
	if n := len(p.tokens); n > 0 {
		eof.Line, eof.Column = p.tokens[n-1].Line, p.tokens[n-1].Column
	}
	return eof
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == lexer.EOF
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind lexer.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// errorAt reports a syntax error positioned at tok. Running out of input
// always reports as unexpected_eof so callers can ask for more source.
func errorAt(code diag.Code, tok lexer.Token, format string, args ...interface{}) error {
	if tok.Kind == lexer.EOF {
		code = diag.CodeUnexpectedEOF
	}
	return diag.Syntax(code, diag.Location{Line: tok.Line, Column: tok.Column}, format, args...)
}

// expect consumes a token of the given kind or reports message at the current token.
func (p *Parser) expect(kind lexer.Kind, message string) error {
	if p.match(kind) {
		return nil
	}
	return errorAt(diag.CodeExpectedToken, p.peek(), "%s", message)
}

package parser

import (
	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Func:
		return p.parseFunctionDeclaration()
	case lexer.If:
		return p.parseIfStatement()
	case lexer.Comment:
		p.advance()
		return ast.NewComment(tok.Text), nil
	default:
		return p.parseExpression()
	}
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	p.advance()

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LeftBrace, "Expected '{' after if condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RightBrace, "Expected '}' after if body"); err != nil {
		return nil, err
	}
	return ast.NewIfStatement(condition, body), nil
}

// parseBlockBody reads statements up to a closing brace or end of input. The
// caller consumes the brace.
func (p *Parser) parseBlockBody() ([]ast.Statement, error) {
	body := []ast.Statement{}
	for !p.check(lexer.RightBrace) && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

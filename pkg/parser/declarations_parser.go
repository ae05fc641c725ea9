package parser

import (
	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/lexer"
)

func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	p.advance()

	nameTok := p.advance()
	if nameTok.Kind != lexer.Identifier {
		return nil, errorAt(diag.CodeExpectedToken, nameTok, "Expected function name after 'func' keyword")
	}
	if err := p.expect(lexer.LeftParen, "Expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RightParen, "Expected ')' after parameters"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LeftBrace, "Expected '{' after function declaration"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RightBrace, "Expected '}' after function body"); err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(ast.NewIdentifier(nameTok.Text), params, body), nil
}

func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	params := []*ast.Parameter{}
	if p.check(lexer.RightParen) {
		return params, nil
	}

	for {
		nameTok := p.advance()
		if nameTok.Kind != lexer.Identifier {
			return nil, errorAt(diag.CodeInvalidParameter, nameTok, "Expected parameter name")
		}
		if !p.match(lexer.Colon) {
			return nil, errorAt(diag.CodeInvalidParameter, p.peek(), "Expected ':' after parameter name")
		}
		typeName, err := p.parseParameterType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.NewParameter(nameTok.Text, typeName))

		if p.check(lexer.RightParen) {
			return params, nil
		}
		if !p.check(lexer.Comma) {
			return nil, errorAt(diag.CodeInvalidParameter, p.peek(), "Expected ',' between parameters")
		}
		p.advance()
	}
}

// parseParameterType accepts the String, Integer and Unknown type tokens, or
// any identifier verbatim. Unrecognised names are resolved by the checker.
func (p *Parser) parseParameterType() (string, error) {
	tok := p.advance()
	switch tok.Kind {
	case lexer.TypeString:
		return "String", nil
	case lexer.TypeInteger:
		return "Integer", nil
	case lexer.TypeUnknown:
		return "Unknown", nil
	case lexer.Identifier:
		return tok.Text, nil
	default:
		return "", errorAt(diag.CodeInvalidParameter, tok, "Expected type name after ':'")
	}
}

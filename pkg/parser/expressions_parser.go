package parser

import (
	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/lexer"
)

// parseExpression parses a primary with at most one `is` / `is not` suffix.
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	var operator string
	switch {
	case p.check(lexer.Equals):
		operator = ast.OperatorIs
	case p.check(lexer.NotEquals):
		operator = ast.OperatorIsNot
	default:
		return left, nil
	}
	p.advance()

	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpression(operator, left, right), nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.StringLiteral:
		p.advance()
		return ast.NewStringLiteral(tok.Text), nil
	case lexer.IntegerLiteral:
		p.advance()
		return ast.NewIntegerLiteral(tok.Int), nil
	case lexer.Identifier:
		p.advance()
		if !p.check(lexer.LeftParen) {
			return ast.NewIdentifier(tok.Text), nil
		}
		p.advance()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RightParen, "Expected ')' after function arguments"); err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(ast.NewIdentifier(tok.Text), args), nil
	case lexer.TypeString, lexer.TypeInteger:
		return p.parseTypedValue()
	case lexer.TypeTrue:
		p.advance()
		return ast.NewIdentifier("True"), nil
	case lexer.TypeFalse:
		p.advance()
		return ast.NewIdentifier("False"), nil
	default:
		return nil, errorAt(diag.CodeUnexpectedToken, tok, "Unexpected token: %s", tok)
	}
}

func (p *Parser) parseTypedValue() (ast.Expression, error) {
	typeName := "String"
	if p.advance().Kind == lexer.TypeInteger {
		typeName = "Integer"
	}
	if err := p.expect(lexer.LeftBracket, "Expected '[' after type name"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RightBracket, "Expected ']' after type value"); err != nil {
		return nil, err
	}
	return ast.NewTypedValue(typeName, value), nil
}

func (p *Parser) parseArguments() ([]ast.Expression, error) {
	args := []ast.Expression{}
	if p.check(lexer.RightParen) {
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.check(lexer.RightParen) {
			return args, nil
		}
		if !p.check(lexer.Comma) {
			return nil, errorAt(diag.CodeInvalidArguments, p.peek(), "Expected ',' between arguments")
		}
		p.advance()
	}
}

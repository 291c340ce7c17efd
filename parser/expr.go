// Copyright © 2025 The Whisker authors

package parser

import (
	"strconv"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser/ast"
	"github.com/whiskertales/whisker/parser/token"
)

// parseExpression parses an expression with precedence climbing, lowest
// binding first: or, and, equality, comparison, additive, multiplicative,
// unary, primary.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	return p.parseBinary(p.parseAnd, token.OR)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.parseBinary(p.parseEquality, token.AND)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinary(p.parseComparison, token.EQ, token.NEQ)
}

func (p *Parser) parseComparison() ast.Expr {
	return p.parseBinary(p.parseAdditive, token.LT, token.GT, token.LTE, token.GTE)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinary(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinary(p.parseUnary, token.STAR, token.SLASH)
}

func (p *Parser) parseBinary(next func() ast.Expr, kinds ...token.Kind) ast.Expr {
	left := next()
	for p.checkAny(kinds...) {
		op := p.advance()
		right := next()
		left = &ast.BinaryExpr{
			Op:      op.Literal,
			X:       left,
			Y:       right,
			SrcSpan: left.Span().Merge(right.Span()),
		}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.check(token.NOT) || p.check(token.MINUS) {
		op := p.advance()
		if !p.enterNesting(op) {
			return &ast.BadExpr{SrcSpan: op.Span}
		}
		x := p.parseUnary()
		p.leaveNesting()
		return &ast.UnaryExpr{
			Op:      op.Literal,
			X:       x,
			SrcSpan: op.Span.Merge(x.Span()),
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek(0)
	switch tok.Kind {
	case token.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.Literal, SrcSpan: tok.Span}
	case token.NUMBER:
		p.advance()
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorAt(diagnostic.ParseExpectedExpression, tok, describe(tok))
			return &ast.BadExpr{SrcSpan: tok.Span}
		}
		return &ast.NumberLit{Value: n, SrcSpan: tok.Span}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: tok.Kind == token.TRUE, SrcSpan: tok.Span}
	case token.VARIABLE:
		p.advance()
		return &ast.VarRef{Name: tok.Literal, SrcSpan: tok.Span}
	case token.IDENT:
		p.advance()
		return &ast.Ident{Name: tok.Literal, SrcSpan: tok.Span}
	case token.LPAREN:
		open := p.advance()
		if !p.enterNesting(open) {
			return &ast.BadExpr{SrcSpan: open.Span}
		}
		x := p.parseExpression()
		p.leaveNesting()
		if _, ok := p.expect(token.RPAREN, diagnostic.ParseUnexpectedToken); !ok {
			return &ast.BadExpr{SrcSpan: open.Span.Merge(x.Span())}
		}
		// Grouping folds away; the inner expression keeps its own span.
		return x
	default:
		code := diagnostic.ParseExpectedExpression
		if p.inContext("condition") {
			code = diagnostic.ParseExpectedCondition
		}
		p.errorAt(code, tok, describe(tok))
		return &ast.BadExpr{SrcSpan: tok.Span}
	}
}

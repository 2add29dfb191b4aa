package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/token"
)

// parseExpr parses a full expression with Pratt precedence climbing. It
// always returns a usable ExprID; ok=false means an error-marker node is in
// the tree and the caller should resync.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precAssignment)
}

func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return left, false
	}

	for {
		kind := p.lx.Peek().Kind
		prec, rightAssoc, isOp := binaryOpPrec(kind)
		if !isOp || prec < minPrec {
			return left, true
		}
		p.advance()

		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, ok := p.parseBinaryExpr(nextMin)

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, binaryOpFor(kind), left, right)
		if !ok {
			return left, false
		}
	}
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	var op ast.ExprUnaryOp
	switch p.lx.Peek().Kind {
	case token.Minus:
		op = ast.ExprUnaryMinus
	case token.Bang:
		op = ast.ExprUnaryNot
	default:
		return p.parsePostfixExpr()
	}

	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, op, operand), ok
}

// parsePostfixExpr parses a primary expression followed by any chain of
// calls, index accesses, and member accesses.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return expr, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			p.advance()
			args, ok := p.parseCallArgs()
			span := p.arenas.Exprs.Get(expr).Span.Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewCall(span, expr, args)
			if !ok {
				return expr, false
			}

		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				p.resyncUntil(token.RBracket, token.Semicolon, token.RBrace)
			}
			closeTok, closed := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' after index")
			span := p.arenas.Exprs.Get(expr).Span.Cover(closeTok.Span)
			expr = p.arenas.Exprs.NewIndex(span, expr, index)
			if !ok || !closed {
				return expr, false
			}

		case token.Dot:
			p.advance()
			field, fieldSpan, ok := p.parseIdent()
			span := p.arenas.Exprs.Get(expr).Span.Cover(fieldSpan)
			expr = p.arenas.Exprs.NewMember(span, expr, field)
			if !ok {
				return expr, false
			}

		default:
			return expr, true
		}
	}
}

// parseCallArgs parses a comma-separated argument list up to and including
// the closing paren. The opening paren is already consumed.
func (p *Parser) parseCallArgs() ([]ast.ExprID, bool) {
	var args []ast.ExprID
	if p.at(token.RParen) {
		p.advance()
		return args, true
	}

	for {
		arg, ok := p.parseExpr()
		args = append(args, arg)
		if !ok {
			p.resyncUntil(token.Comma, token.RParen, token.Semicolon, token.RBrace)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after arguments"); !ok {
		return args, false
	}
	return args, true
}

// parsePrimaryExpr parses the atoms: identifiers, literals, and
// parenthesised expressions. On failure it reports SynExpectExpression and
// returns an error marker without consuming the offending token; the caller
// owns recovery.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		name := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewIdent(tok.Span, name), true

	case token.IntLit:
		p.advance()
		value := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitInt, value), true

	case token.FloatLit:
		p.advance()
		value := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFloat, value), true

	case token.StringLit:
		p.advance()
		value := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, value), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		value := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBool, value), true

	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RParen, token.Semicolon, token.RBrace)
		}
		closeTok, closed := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' to close group")
		span := open.Span.Cover(closeTok.Span)
		group := p.arenas.Exprs.NewGroup(span, inner)
		return group, ok && closed

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+describeToken(tok)+"\"")
		return p.arenas.Exprs.NewBad(p.getDiagnosticSpan()), false
	}
}

func describeToken(tok token.Token) string {
	if tok.Text != "" {
		return tok.Text
	}
	return tok.Kind.String()
}

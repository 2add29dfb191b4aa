package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// parseBlock parses `{ stmt* }` and returns the block statement plus its
// span. The caller guarantees the current token is '{'.
func (p *Parser) parseBlock() (ast.StmtID, source.Span) {
	open := p.advance() // {
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			skipped := p.resyncStmt()
			stmt = p.arenas.Stmts.NewBad(skipped)
		}
		stmts = append(stmts, stmt)
	}
	closeTok, _ := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close block")
	span := open.Span.Cover(closeTok.Span)
	return p.arenas.Stmts.NewBlock(span, stmts), span
}

// parseStmt dispatches on the first token of a statement.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.LBrace:
		stmt, _ := p.parseBlock()
		return stmt, true
	case token.KwLet:
		return p.parseLetStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		kw := p.advance()
		end := p.finishSemicolon()
		return p.arenas.Stmts.NewBreak(kw.Span.Cover(end)), true
	case token.KwContinue:
		kw := p.advance()
		end := p.finishSemicolon()
		return p.arenas.Stmts.NewContinue(kw.Span.Cover(end)), true
	case token.KwEmit:
		return p.parseEmitStmt()
	case token.Semicolon:
		// An empty statement is tolerated without a node.
		sp := p.advance().Span
		return p.arenas.Stmts.NewBlock(sp, nil), true
	default:
		return p.parseExprStmt()
	}
}

// resyncStmt skips to the next statement boundary.
func (p *Parser) resyncStmt() source.Span {
	skipped := p.resyncUntil(
		token.Semicolon, token.RBrace,
		token.KwLet, token.KwIf, token.KwWhile, token.KwFor,
		token.KwReturn, token.KwBreak, token.KwContinue, token.KwEmit,
	)
	if p.at(token.Semicolon) {
		skipped = skipped.Cover(p.advance().Span)
	}
	return skipped
}

func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	kw := p.advance() // let
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	typ := p.parseOptionalTypeAnnotation()
	value, end := p.parseInitializer()
	return p.arenas.Stmts.NewLet(kw.Span.Cover(end), name, typ, value), true
}

// parseIfStmt parses `if expr { ... } [else (if ... | { ... })]`.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kw := p.advance() // if
	cond, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.LBrace, token.Semicolon, token.RBrace)
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectLBrace, "expected '{' after if condition")
		return ast.NoStmtID, false
	}
	then, thenSpan := p.parseBlock()

	els := ast.NoStmtID
	endSpan := thenSpan
	if p.at(token.KwElse) {
		p.advance()
		switch {
		case p.at(token.KwIf):
			elseStmt, ok := p.parseIfStmt()
			if !ok {
				return ast.NoStmtID, false
			}
			els = elseStmt
			endSpan = p.arenas.Stmts.Get(elseStmt).Span
		case p.at(token.LBrace):
			elseStmt, elseSpan := p.parseBlock()
			els = elseStmt
			endSpan = elseSpan
		default:
			p.err(diag.SynExpectLBrace, "expected '{' or 'if' after 'else'")
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(kw.Span.Cover(endSpan), cond, then, els), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	kw := p.advance() // while
	cond, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.LBrace, token.Semicolon, token.RBrace)
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectLBrace, "expected '{' after while condition")
		return ast.NoStmtID, false
	}
	body, bodySpan := p.parseBlock()
	return p.arenas.Stmts.NewWhile(kw.Span.Cover(bodySpan), cond, body), true
}

// parseForStmt parses `for NAME in expr { ... }`.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	kw := p.advance() // for
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' after loop variable"); !ok {
		return ast.NoStmtID, false
	}
	iter, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.LBrace, token.Semicolon, token.RBrace)
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectLBrace, "expected '{' after for header")
		return ast.NoStmtID, false
	}
	body, bodySpan := p.parseBlock()
	return p.arenas.Stmts.NewFor(kw.Span.Cover(bodySpan), name, iter, body), true
}

// parseReturnStmt parses `return [expr];`.
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance() // return
	value := ast.NoExprID
	if !p.atAny(token.Semicolon, token.RBrace) {
		expr, ok := p.parseExpr()
		value = expr
		if !ok {
			end := p.recoverToStmtEnd()
			return p.arenas.Stmts.NewReturn(kw.Span.Cover(end), value), true
		}
	}
	end := p.finishSemicolon()
	return p.arenas.Stmts.NewReturn(kw.Span.Cover(end), value), true
}

// parseEmitStmt parses `emit NAME(args);`.
func (p *Parser) parseEmitStmt() (ast.StmtID, bool) {
	kw := p.advance() // emit
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after event name"); !ok {
		return ast.NoStmtID, false
	}
	args, ok := p.parseCallArgs()
	if !ok {
		return ast.NoStmtID, false
	}
	end := p.finishSemicolon()
	return p.arenas.Stmts.NewEmit(kw.Span.Cover(end), name, args), true
}

// parseExprStmt parses an expression (assignments included) followed by ';'.
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		end := p.recoverToStmtEnd()
		return p.arenas.Stmts.NewExpr(start.Cover(end), expr), true
	}
	end := p.finishSemicolon()
	return p.arenas.Stmts.NewExpr(start.Cover(end), expr), true
}

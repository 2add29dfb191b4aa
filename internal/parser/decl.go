package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// parseLetItem parses a top-level `let NAME [: type] = expr;`.
func (p *Parser) parseLetItem() (ast.ItemID, bool) {
	kw := p.advance() // let
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	typ := p.parseOptionalTypeAnnotation()
	value, end := p.parseInitializer()
	return p.arenas.Items.NewLet(kw.Span.Cover(end), name, typ, value), true
}

// parseConstItem parses a top-level `const NAME [: type] = expr;`.
func (p *Parser) parseConstItem() (ast.ItemID, bool) {
	kw := p.advance() // const
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	typ := p.parseOptionalTypeAnnotation()
	value, end := p.parseInitializer()
	return p.arenas.Items.NewConst(kw.Span.Cover(end), name, typ, value), true
}

// parseOptionalTypeAnnotation parses `: type` if present.
func (p *Parser) parseOptionalTypeAnnotation() ast.TypeID {
	if !p.at(token.Colon) {
		return ast.NoTypeID
	}
	p.advance()
	return p.parseType()
}

// parseInitializer parses `= expr` plus the closing semicolon, with
// recovery shared by every let/const form. A missing or unparseable
// initializer becomes an error-marker expression; the declaration itself
// survives.
func (p *Parser) parseInitializer() (ast.ExprID, source.Span) {
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in declaration"); !ok {
		bad := p.arenas.Exprs.NewBad(p.getDiagnosticSpan())
		end := p.recoverToStmtEnd()
		return bad, end
	}

	value, ok := p.parseExpr()
	if !ok {
		end := p.recoverToStmtEnd()
		return value, end
	}

	end := p.finishSemicolon()
	return value, end
}

// finishSemicolon consumes the statement-closing ';'. A semicolon missing
// right before '}' or EOF is tolerated with a warning; anywhere else it is
// an error followed by a resync.
func (p *Parser) finishSemicolon() source.Span {
	if p.at(token.Semicolon) {
		return p.advance().Span
	}
	if p.atAny(token.RBrace, token.EOF) {
		p.want(token.Semicolon, diag.SynExpectSemicolon, "missing ';'")
		return p.lastSpan
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
	return p.recoverToStmtEnd()
}

// recoverToStmtEnd skips to the nearest statement boundary and eats the
// semicolon if that is what stopped the scan.
func (p *Parser) recoverToStmtEnd() source.Span {
	skipped := p.resyncUntil(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		skipped = skipped.Cover(p.advance().Span)
	}
	return skipped
}

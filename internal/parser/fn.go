package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// parseFnModifiers consumes a run of `pub`, `payable`, `view` keywords.
// Duplicates are reported once each.
func (p *Parser) parseFnModifiers() (ast.FnModifiers, source.Span, bool) {
	var mods ast.FnModifiers
	span := p.lx.Peek().Span
	seen := false
	for {
		var flag ast.FnModifiers
		switch p.lx.Peek().Kind {
		case token.KwPub:
			flag = ast.FnModPub
		case token.KwPayable:
			flag = ast.FnModPayable
		case token.KwView:
			flag = ast.FnModView
		default:
			return mods, span, seen
		}
		tok := p.advance()
		if mods.Has(flag) {
			p.report(diag.SynModifierNotAllowed, diag.SevError, tok.Span,
				"duplicate modifier '"+tok.Text+"'")
		}
		mods |= flag
		if !seen {
			span = tok.Span
			seen = true
		} else {
			span = span.Cover(tok.Span)
		}
	}
}

// parseFnItem parses `fn NAME(params) [-> type] { body }`. modSpan is the
// span of any leading modifiers, folded into the item span.
func (p *Parser) parseFnItem(mods ast.FnModifiers, modSpan source.Span) (ast.ItemID, bool) {
	decl, span, ok := p.parseFnDecl(mods)
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewFn(modSpan.Cover(span), decl), true
}

// parseFnDecl parses the declaration shared by free functions and contract
// methods, starting at the `fn` keyword.
func (p *Parser) parseFnDecl(mods ast.FnModifiers) (ast.FnDecl, source.Span, bool) {
	kw := p.advance() // fn
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.FnDecl{}, kw.Span, false
	}

	params, ok := p.parseFnParams()
	if !ok {
		return ast.FnDecl{}, kw.Span, false
	}

	ret := ast.NoTypeID
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynExpectLBrace, "expected '{' to begin function body")
		return ast.FnDecl{}, kw.Span, false
	}
	body, bodySpan := p.parseBlock()

	decl := ast.FnDecl{
		Name:      name,
		Modifiers: mods,
		Params:    params,
		Return:    ret,
		Body:      body,
	}
	return decl, kw.Span.Cover(bodySpan), true
}

// parseFnParams parses `(name: type, ...)`. A bad parameter resyncs to the
// next comma or the closing paren so later parameters still parse.
func (p *Parser) parseFnParams() ([]ast.ParamID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after function name"); !ok {
		return nil, false
	}

	var params []ast.ParamID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseFnParam()
		if ok {
			params = append(params, param)
		} else {
			p.resyncUntil(token.Comma, token.RParen, token.LBrace, token.Semicolon)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after parameters"); !ok {
		return params, false
	}
	return params, true
}

func (p *Parser) parseFnParam() (ast.ParamID, bool) {
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoParamID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
		return ast.NoParamID, false
	}
	typ := p.parseType()
	typeSpan := p.arenas.Types.Get(typ).Span
	return p.arenas.Items.NewParam(name, typ, nameSpan.Cover(typeSpan)), true
}

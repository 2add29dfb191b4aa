package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// parseContractItem parses `contract NAME { members }`.
func (p *Parser) parseContractItem() (ast.ItemID, bool) {
	kw := p.advance() // contract
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	open, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after contract name")
	if !ok {
		return ast.NoItemID, false
	}

	var members []ast.MemberID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseMember()
		if !ok {
			skipped := p.resyncMember()
			member = p.arenas.Items.NewMemberBad(skipped)
		}
		members = append(members, member)
	}

	closeTok, _ := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close contract body")
	bodySpan := open.Span.Cover(closeTok.Span)
	return p.arenas.Items.NewContract(kw.Span.Cover(closeTok.Span), name, members, bodySpan), true
}

// parseMember dispatches on the first token of a contract member.
func (p *Parser) parseMember() (ast.MemberID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseMemberLet()
	case token.KwConst:
		return p.parseMemberConst()
	case token.KwFn:
		return p.parseMemberFn(0, p.lx.Peek().Span)
	case token.KwPub, token.KwPayable, token.KwView:
		mods, modSpan, ok := p.parseFnModifiers()
		if ok && p.at(token.KwFn) {
			return p.parseMemberFn(mods, modSpan)
		}
		p.report(diag.SynUnexpectedToken, diag.SevError, modSpan,
			"expected 'fn' after function modifiers")
		return ast.NoMemberID, false
	case token.KwEvent:
		return p.parseMemberEvent()
	default:
		p.err(diag.SynExpectMember, "expected contract member: 'let', 'const', 'fn', or 'event'")
		return ast.NoMemberID, false
	}
}

// resyncMember skips to the next member boundary inside a contract body.
func (p *Parser) resyncMember() source.Span {
	skipped := p.resyncUntil(
		token.Semicolon, token.RBrace,
		token.KwLet, token.KwConst, token.KwFn, token.KwEvent,
		token.KwPub, token.KwPayable, token.KwView,
	)
	if p.at(token.Semicolon) {
		skipped = skipped.Cover(p.advance().Span)
	}
	return skipped
}

func (p *Parser) parseMemberLet() (ast.MemberID, bool) {
	kw := p.advance() // let
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoMemberID, false
	}
	typ := p.parseOptionalTypeAnnotation()
	value, end := p.parseInitializer()
	return p.arenas.Items.NewMemberLet(kw.Span.Cover(end), name, typ, value), true
}

func (p *Parser) parseMemberConst() (ast.MemberID, bool) {
	kw := p.advance() // const
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoMemberID, false
	}
	typ := p.parseOptionalTypeAnnotation()
	value, end := p.parseInitializer()
	return p.arenas.Items.NewMemberConst(kw.Span.Cover(end), name, typ, value), true
}

func (p *Parser) parseMemberFn(mods ast.FnModifiers, modSpan source.Span) (ast.MemberID, bool) {
	decl, span, ok := p.parseFnDecl(mods)
	if !ok {
		return ast.NoMemberID, false
	}
	return p.arenas.Items.NewMemberFn(modSpan.Cover(span), decl), true
}

// parseMemberEvent parses `event NAME(params);`.
func (p *Parser) parseMemberEvent() (ast.MemberID, bool) {
	kw := p.advance() // event
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoMemberID, false
	}
	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoMemberID, false
	}
	end := p.finishSemicolon()
	return p.arenas.Items.NewMemberEvent(kw.Span.Cover(end), name, params), true
}

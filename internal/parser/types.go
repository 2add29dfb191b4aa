package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/token"
)

// parseType parses a flat type expression: a named type, a `[]T` list, or a
// `map[K]V`. It always returns a usable TypeID; an unparseable annotation
// becomes a TypeBad marker so the surrounding declaration survives.
func (p *Parser) parseType() ast.TypeID {
	switch p.lx.Peek().Kind {
	case token.Ident:
		tok := p.advance()
		name := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Types.NewName(tok.Span, name)

	case token.LBracket:
		open := p.advance()
		if _, ok := p.expect(token.RBracket, diag.SynExpectType, "expected ']' in list type"); !ok {
			return p.arenas.Types.NewBad(open.Span)
		}
		elem := p.parseType()
		elemSpan := p.arenas.Types.Get(elem).Span
		return p.arenas.Types.NewList(open.Span.Cover(elemSpan), elem)

	case token.KwMap:
		return p.parseMapType()

	default:
		p.err(diag.SynExpectType, "expected type, got \""+p.lx.Peek().Text+"\"")
		return p.arenas.Types.NewBad(p.getDiagnosticSpan())
	}
}

// parseMapType parses `map[K]V` starting at the `map` keyword.
func (p *Parser) parseMapType() ast.TypeID {
	kw := p.advance() // map
	if _, ok := p.expect(token.LBracket, diag.SynExpectType, "expected '[' after 'map'"); !ok {
		return p.arenas.Types.NewBad(kw.Span)
	}
	key := p.parseType()
	if _, ok := p.expect(token.RBracket, diag.SynExpectType, "expected ']' after map key type"); !ok {
		return p.arenas.Types.NewBad(kw.Span)
	}
	value := p.parseType()
	valueSpan := p.arenas.Types.Get(value).Span
	return p.arenas.Types.NewMap(kw.Span.Cover(valueSpan), key, value)
}

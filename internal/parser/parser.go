package parser

import (
	"slices"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/source"
	"sable/internal/token"
)

type Options struct {
	// MaxErrors caps reported parse errors; 0 means unlimited.
	MaxErrors     uint
	CurrentErrors uint
	// Strict promotes the parser's advisory warnings to errors.
	Strict   bool
	Reporter diag.Reporter
}

// Enough reports whether the error cap has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
}

// ParseFile parses one file into the arenas. It requires an already
// constructed lexer over a source.File. Parsing never fails outright;
// unparseable regions become error-marker nodes and the tree stays
// traversable.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems runs the top-level loop: parse items until EOF, resyncing on
// failure.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			skipped := p.resyncTop()
			itemID = p.arenas.Items.NewBad(skipped)
		}
		p.pushItem(itemID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

func (p *Parser) pushItem(item ast.ItemID) {
	f := p.arenas.Files.Get(p.file)
	f.Items = append(f.Items, item)
}

// parseItem dispatches on the first token of a top-level construct.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwContract:
		return p.parseContractItem()
	case token.KwLet:
		return p.parseLetItem()
	case token.KwConst:
		return p.parseConstItem()
	case token.KwFn:
		return p.parseFnItem(0, p.lx.Peek().Span)
	case token.KwPub, token.KwPayable, token.KwView:
		mods, modSpan, ok := p.parseFnModifiers()
		if ok && p.at(token.KwFn) {
			return p.parseFnItem(mods, modSpan)
		}
		p.report(diag.SynUnexpectedToken, diag.SevError, modSpan,
			"expected 'fn' after function modifiers")
		return ast.NoItemID, false
	case token.KwEvent:
		p.err(diag.SynEventOutsideBody, "event declarations are only allowed inside a contract body")
		return ast.NoItemID, false
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.lx.Peek().Span,
			"unexpected top-level construct, expected 'contract', 'let', 'const', or 'fn'")
		return ast.NoItemID, false
	}
}

// resyncTop skips to the next top-level boundary: a semicolon, an item
// starter, '}', or EOF. Returns the span of the skipped region.
func (p *Parser) resyncTop() source.Span {
	skipped := p.resyncUntil(
		token.Semicolon, token.RBrace,
		token.KwContract, token.KwLet, token.KwConst, token.KwFn, token.KwPub,
	)
	if p.atAny(token.Semicolon, token.RBrace) {
		end := p.advance()
		skipped = skipped.Cover(end.Span)
	}
	return skipped
}

// resyncUntil advances past tokens until one of the given kinds or EOF,
// returning the span of everything skipped. The stop token is not consumed.
func (p *Parser) resyncUntil(kinds ...token.Kind) source.Span {
	skipped := p.lx.Peek().Span
	for !p.at(token.EOF) && !p.atAny(kinds...) {
		tok := p.advance()
		skipped = skipped.Cover(tok.Span)
	}
	return skipped
}

// parseIdent expects an identifier and interns it.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, p.getDiagnosticSpan(), false
}

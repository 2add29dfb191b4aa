package parser

import (
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan returns the best span for a diagnostic at the current
// position. At EOF the position right after the last consumed token reads
// better than an empty span at offset 0.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && peek.Span.Empty() && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports an error and returns an
// Invalid token without consuming anything.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// want is the advisory variant of expect: a missing token is a warning and
// parsing proceeds as if it were present.
func (p *Parser) want(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	sev := diag.SevWarning
	if p.opts.Strict {
		sev = diag.SevError
	}
	p.report(code, sev, diagSpan, msg)
	return p.lx.Peek(), false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) warn(code diag.Code, msg string) bool {
	sev := diag.SevWarning
	if p.opts.Strict {
		sev = diag.SevError
	}
	return p.report(code, sev, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(diag.PhaseParse, code, sev, sp, msg, nil)
	return true
}

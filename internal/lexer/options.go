package lexer

import (
	"sable/internal/diag"
	"sable/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil: errors are dropped but lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.PhaseLex, code, diag.SevError, sp, msg, nil)
	}
}

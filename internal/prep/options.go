package prep

import (
	"sable/internal/diag"
	"sable/internal/source"
)

type Options struct {
	// MaxIncludeDepth bounds nested #include splicing. The root file is at
	// depth 0.
	MaxIncludeDepth uint
	// MaxMacroDepth bounds recursive macro expansion within one line.
	MaxMacroDepth uint
	// Strict turns macro redefinition into an error instead of a warning.
	Strict bool
	// Reporter may be nil: diagnostics are dropped but processing continues.
	Reporter diag.Reporter
}

func (p *preprocessor) err(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg)
}

func (p *preprocessor) warn(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevWarning, sp, msg)
}

func (p *preprocessor) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(diag.PhasePrep, code, sev, sp, msg, nil)
	}
}

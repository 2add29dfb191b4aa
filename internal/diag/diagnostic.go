package diag

import (
	"sable/internal/source"
)

// Note attaches secondary context to a diagnostic ("included from here").
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported problem or advisory. It is immutable once
// created; producers build a new value per report.
type Diagnostic struct {
	Severity Severity
	Phase    Phase
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, phase Phase, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Phase:    phase,
		Code:     code,
		Primary:  primary,
		Message:  msg,
		Notes:    nil,
	}
}

func NewError(phase Phase, code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, phase, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

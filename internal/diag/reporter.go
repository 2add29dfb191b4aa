package diag

import "sable/internal/source"

// Reporter is the minimal contract phases use to emit diagnostics without
// coupling to storage. Implementations: BagReporter (appends to a Bag),
// DedupReporter (suppresses duplicates).
type Reporter interface {
	Report(phase Phase, code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter is the adapter that writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(phase Phase, code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Phase: phase, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

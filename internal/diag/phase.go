package diag

// Phase records which pipeline stage produced a diagnostic. Reports keep
// phase provenance so a reader can tell a preprocessor problem from a parse
// problem at the same location.
type Phase uint8

const (
	// PhaseDriver covers orchestration-level problems (unreadable entry file).
	PhaseDriver Phase = iota
	// PhasePrep covers include and macro resolution.
	PhasePrep
	// PhaseLex covers tokenization.
	PhaseLex
	// PhaseParse covers syntax analysis.
	PhaseParse
	// PhaseSema is reserved for downstream semantic passes.
	PhaseSema
)

func (p Phase) String() string {
	switch p {
	case PhaseDriver:
		return "driver"
	case PhasePrep:
		return "prep"
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseSema:
		return "sema"
	}
	return "unknown"
}

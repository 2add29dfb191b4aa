package diagfmt

import (
	"encoding/json"
	"io"

	"sable/internal/diag"
	"sable/internal/source"
)

// LocationJSON is a span resolved for machine consumption.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Col       uint32 `json:"col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Phase    string       `json:"phase"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
}

// JSON writes diagnostics as one indented JSON document.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, buf *source.Buffer, opts JSONOpts) error {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(diags)),
	}
	for i := range diags {
		d := &diags[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Phase:    d.Phase.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, buf, opts),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, buf, opts),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
		if d.Severity >= diag.SevError {
			out.Errors++
		}
	}
	out.Count = len(out.Diagnostics)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func makeLocation(sp source.Span, fs *source.FileSet, buf *source.Buffer, opts JSONOpts) LocationJSON {
	lj := LocationJSON{
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	loc, ok := resolveLocation(fs, buf, sp, opts.PathMode)
	if !ok {
		return lj
	}
	lj.File = loc.Path
	if opts.IncludePositions {
		lj.Line = loc.Line
		lj.Col = loc.Col
	}
	return lj
}

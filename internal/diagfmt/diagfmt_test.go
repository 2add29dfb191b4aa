package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/diagfmt"
	"sable/internal/source"
)

func TestPretty_HeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.sbl", []byte("let x = ;\n"))

	d := diag.NewError(diag.PhaseParse, diag.SynExpectExpression,
		source.Span{File: id, Start: 8, End: 9}, "expected expression")

	var out bytes.Buffer
	diagfmt.Pretty(&out, []diag.Diagnostic{d}, fs, nil, diagfmt.PrettyOpts{})

	got := out.String()
	if !strings.Contains(got, "main.sbl:1:9: error [SYN4005]: expected expression") {
		t.Errorf("Header missing, got:\n%s", got)
	}
	if !strings.Contains(got, "   1 | let x = ;") {
		t.Errorf("Source line missing, got:\n%s", got)
	}
	caret := "     | " + strings.Repeat(" ", 8) + "^"
	if !strings.Contains(got, caret) {
		t.Errorf("Caret line %q missing, got:\n%s", caret, got)
	}
}

func TestPretty_UnderlineCoversSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.sbl", []byte("let total = 1;\n"))

	d := diag.NewError(diag.PhaseParse, diag.SynUnexpectedToken,
		source.Span{File: id, Start: 4, End: 9}, "msg")

	var out bytes.Buffer
	diagfmt.Pretty(&out, []diag.Diagnostic{d}, fs, nil, diagfmt.PrettyOpts{})

	if !strings.Contains(out.String(), "^~~~~") {
		t.Errorf("Expected a 5-wide underline, got:\n%s", out.String())
	}
}

func TestPretty_FallbackWithoutLocation(t *testing.T) {
	fs := source.NewFileSet() // empty; the span cannot resolve

	d := diag.NewError(diag.PhaseDriver, diag.IOSourceUnreadable,
		source.Span{}, "source unreadable: absent.sbl")

	var out bytes.Buffer
	diagfmt.Pretty(&out, []diag.Diagnostic{d}, fs, nil, diagfmt.PrettyOpts{})

	got := out.String()
	if !strings.Contains(got, "error [IO1001]: source unreadable: absent.sbl") {
		t.Errorf("Fallback line missing, got:\n%s", got)
	}
	if strings.Contains(got, ":0:0:") {
		t.Errorf("Fallback should not fabricate positions, got:\n%s", got)
	}
}

func TestPretty_RemapsPreprocessedSpans(t *testing.T) {
	fs := source.NewFileSet()
	origin := fs.AddVirtual("lib/inc.sbl", []byte("first line\nlet broken = ;\n"))

	buf := source.NewBuffer(0)
	buf.MarkSegment(origin, 2)
	if err := buf.AppendString("let broken = ;\n"); err != nil {
		t.Fatal(err)
	}
	sealedID := buf.Seal(fs, "preprocessed:main.sbl")

	// The span points into the sealed buffer; display must name the origin.
	d := diag.NewError(diag.PhaseParse, diag.SynExpectExpression,
		source.Span{File: sealedID, Start: 13, End: 14}, "expected expression")

	var out bytes.Buffer
	diagfmt.Pretty(&out, []diag.Diagnostic{d}, fs, buf, diagfmt.PrettyOpts{})

	got := out.String()
	if !strings.Contains(got, "lib/inc.sbl:2:") {
		t.Errorf("Span not remapped to origin, got:\n%s", got)
	}
	if strings.Contains(got, "preprocessed:") {
		t.Errorf("Sealed path leaked into output:\n%s", got)
	}
}

func TestPretty_BasenameMode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("deep/nested/dir/main.sbl", []byte("let x = ;\n"))

	d := diag.NewError(diag.PhaseParse, diag.SynExpectExpression,
		source.Span{File: id, Start: 8, End: 9}, "msg")

	var out bytes.Buffer
	diagfmt.Pretty(&out, []diag.Diagnostic{d}, fs, nil, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})

	got := out.String()
	if !strings.HasPrefix(got, "main.sbl:1:9:") {
		t.Errorf("Expected basename path, got:\n%s", got)
	}
}

func TestPretty_Notes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.sbl", []byte("let x = 1;\n"))

	d := diag.NewError(diag.PhasePrep, diag.PrepIncludeCycle,
		source.Span{File: id, Start: 0, End: 3}, "include cycle").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "first included here")

	var out bytes.Buffer
	diagfmt.Pretty(&out, []diag.Diagnostic{d}, fs, nil, diagfmt.PrettyOpts{ShowNotes: true})
	if !strings.Contains(out.String(), "note: main.sbl:1:5: first included here") {
		t.Errorf("Note missing, got:\n%s", out.String())
	}

	out.Reset()
	diagfmt.Pretty(&out, []diag.Diagnostic{d}, fs, nil, diagfmt.PrettyOpts{ShowNotes: false})
	if strings.Contains(out.String(), "note:") {
		t.Errorf("Notes should be suppressed, got:\n%s", out.String())
	}
}

func TestJSON_Document(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.sbl", []byte("let x = ;\n"))

	diags := []diag.Diagnostic{
		diag.NewError(diag.PhaseParse, diag.SynExpectExpression,
			source.Span{File: id, Start: 8, End: 9}, "expected expression"),
		diag.New(diag.SevWarning, diag.PhaseParse, diag.SynExpectSemicolon,
			source.Span{File: id, Start: 9, End: 9}, "missing ';'"),
	}

	var out bytes.Buffer
	err := diagfmt.JSON(&out, diags, fs, nil, diagfmt.JSONOpts{IncludePositions: true})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var doc diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, out.String())
	}

	if doc.Count != 2 {
		t.Errorf("Count: expected 2, got %d", doc.Count)
	}
	if doc.Errors != 1 {
		t.Errorf("Errors: expected 1, got %d", doc.Errors)
	}

	first := doc.Diagnostics[0]
	if first.Code != "SYN4005" {
		t.Errorf("Code: expected SYN4005, got %q", first.Code)
	}
	if first.Severity != diag.SevError.String() {
		t.Errorf("Severity: expected %q, got %q", diag.SevError.String(), first.Severity)
	}
	if first.Location.File != "main.sbl" {
		t.Errorf("File: expected main.sbl, got %q", first.Location.File)
	}
	if first.Location.StartByte != 8 || first.Location.EndByte != 9 {
		t.Errorf("Bytes: expected 8-9, got %d-%d", first.Location.StartByte, first.Location.EndByte)
	}
	if first.Location.Line != 1 || first.Location.Col != 9 {
		t.Errorf("Position: expected 1:9, got %d:%d", first.Location.Line, first.Location.Col)
	}
}

func TestJSON_WithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.sbl", []byte("let x = ;\n"))

	diags := []diag.Diagnostic{
		diag.NewError(diag.PhaseParse, diag.SynExpectExpression,
			source.Span{File: id, Start: 8, End: 9}, "msg"),
	}

	var out bytes.Buffer
	if err := diagfmt.JSON(&out, diags, fs, nil, diagfmt.JSONOpts{}); err != nil {
		t.Fatal(err)
	}

	var doc diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Diagnostics[0].Location.Line != 0 || doc.Diagnostics[0].Location.Col != 0 {
		t.Error("Positions should be omitted when not requested")
	}
}

func TestJSON_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	if err := diagfmt.JSON(&out, nil, source.NewFileSet(), nil, diagfmt.JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var doc diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Count != 0 || doc.Errors != 0 {
		t.Errorf("Expected an empty document, got %+v", doc)
	}
}

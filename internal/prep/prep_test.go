package prep_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/prep"
	"sable/internal/source"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(phase diag.Phase, code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Phase:    phase,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) CountCode(code diag.Code) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

// writeFiles lays out a temp project; keys are relative paths.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runPrep(t *testing.T, dir, root string, opts prep.Options) (*source.FileSet, *source.Buffer, *testReporter, error) {
	t.Helper()
	reporter := &testReporter{}
	opts.Reporter = reporter
	if opts.MaxIncludeDepth == 0 {
		opts.MaxIncludeDepth = 16
	}
	if opts.MaxMacroDepth == 0 {
		opts.MaxMacroDepth = 64
	}
	fs := source.NewFileSet()
	buf := source.NewBuffer(0)
	_, err := prep.Run(fs, filepath.Join(dir, root), opts, buf)
	return fs, buf, reporter, err
}

func TestRun_PassThrough(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "let a = 1;\nlet b = 2;\n",
	})
	_, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("Unexpected diagnostics: %v", reporter.diagnostics)
	}
	if got := buf.String(); got != "let a = 1;\nlet b = 2;\n" {
		t.Errorf("Output mismatch: %q", got)
	}
}

func TestRun_IncludeSplice(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl":    "let before = 1;\n#include \"lib/inc.sbl\"\nlet after = 2;\n",
		"lib/inc.sbl": "let included = 3;\n",
	})
	fs, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("Unexpected diagnostics: %v", reporter.diagnostics)
	}

	want := "let before = 1;\nlet included = 3;\nlet after = 2;\n"
	if got := buf.String(); got != want {
		t.Fatalf("Spliced output mismatch:\nwant %q\ngot  %q", want, got)
	}

	// The middle line must resolve back to the included file, line 1.
	off := uint32(strings.Index(buf.String(), "included"))
	fileID, line, ok := buf.Resolve(off)
	if !ok {
		t.Fatal("Resolve found no segment")
	}
	f := fs.Get(fileID)
	if filepath.Base(f.Path) != "inc.sbl" || line != 1 {
		t.Errorf("Expected inc.sbl:1, got %s:%d", f.Path, line)
	}

	// And the line after the include maps to main.sbl line 3.
	off = uint32(strings.Index(buf.String(), "after"))
	fileID, line, ok = buf.Resolve(off)
	if !ok {
		t.Fatal("Resolve found no segment")
	}
	f = fs.Get(fileID)
	if filepath.Base(f.Path) != "main.sbl" || line != 3 {
		t.Errorf("Expected main.sbl:3, got %s:%d", f.Path, line)
	}
}

func TestRun_DefineExpansion(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "#define LIMIT 100\nlet cap = LIMIT;\n",
	})
	_, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("Unexpected diagnostics: %v", reporter.diagnostics)
	}
	if got := buf.String(); got != "let cap = 100;\n" {
		t.Errorf("Expansion mismatch: %q", got)
	}
}

func TestRun_ExpansionSkipsStringsAndComments(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "#define X 1\nlet s = \"X\"; // X stays\nlet v = X;\n",
	})
	_, buf, _, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "let s = \"X\"; // X stays\nlet v = 1;\n"
	if got := buf.String(); got != want {
		t.Errorf("Expansion mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRun_SelfRecursiveMacro(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "#define LOOP LOOP\nlet x = LOOP;\n",
	})
	_, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{MaxMacroDepth: 8})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := reporter.CountCode(diag.PrepMacroDepth); n != 1 {
		t.Errorf("Expected exactly 1 macro depth diagnostic, got %d", n)
	}
	// The runaway macro expands to nothing; the rest of the line survives.
	if got := buf.String(); got != "let x = ;\n" {
		t.Errorf("Expected empty expansion, got %q", got)
	}
}

func TestRun_Undef(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "#define X 1\n#undef X\nlet v = X;\n",
	})
	_, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("Unexpected diagnostics: %v", reporter.diagnostics)
	}
	if got := buf.String(); got != "let v = X;\n" {
		t.Errorf("Undef should stop expansion, got %q", got)
	}
}

func TestRun_UndefUnknownWarns(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "#undef NEVER_DEFINED\n",
	})
	_, _, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := reporter.CountCode(diag.PrepUndefUnknown); n != 1 {
		t.Fatalf("Expected 1 undef warning, got %d", n)
	}
	if reporter.diagnostics[0].Severity != diag.SevWarning {
		t.Errorf("Expected warning severity, got %v", reporter.diagnostics[0].Severity)
	}
}

func TestRun_RedefinitionStrictness(t *testing.T) {
	files := map[string]string{
		"main.sbl": "#define X 1\n#define X 2\nlet v = X;\n",
	}

	t.Run("lenient", func(t *testing.T) {
		dir := writeFiles(t, files)
		_, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if n := reporter.CountCode(diag.PrepMacroRedefined); n != 1 {
			t.Fatalf("Expected 1 redefinition diagnostic, got %d", n)
		}
		if reporter.diagnostics[0].Severity != diag.SevWarning {
			t.Errorf("Expected warning, got %v", reporter.diagnostics[0].Severity)
		}
		// Last definition wins.
		if got := buf.String(); got != "let v = 2;\n" {
			t.Errorf("Expected last definition to win, got %q", got)
		}
	})

	t.Run("strict", func(t *testing.T) {
		dir := writeFiles(t, files)
		_, _, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{Strict: true})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if n := reporter.CountCode(diag.PrepMacroRedefined); n != 1 {
			t.Fatalf("Expected 1 redefinition diagnostic, got %d", n)
		}
		if reporter.diagnostics[0].Severity != diag.SevError {
			t.Errorf("Expected error in strict mode, got %v", reporter.diagnostics[0].Severity)
		}
	})
}

func TestRun_IncludeDepthLimit(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.sbl": "#include \"b.sbl\"\n",
		"b.sbl": "#include \"c.sbl\"\n",
		"c.sbl": "let deep = 1;\n",
	})
	_, _, reporter, err := runPrep(t, dir, "a.sbl", prep.Options{MaxIncludeDepth: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := reporter.CountCode(diag.PrepIncludeDepth); n != 1 {
		t.Errorf("Expected 1 depth diagnostic, got %d", n)
	}
}

func TestRun_IncludeCycle(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.sbl": "#include \"b.sbl\"\n",
		"b.sbl": "#include \"a.sbl\"\n",
	})
	_, _, reporter, err := runPrep(t, dir, "a.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := reporter.CountCode(diag.PrepIncludeCycle); n != 1 {
		t.Errorf("Expected 1 cycle diagnostic, got %d", n)
	}
}

func TestRun_MissingIncludeIsRecoverable(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "#include \"ghost.sbl\"\nlet after = 1;\n",
	})
	_, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Missing include must not abort: %v", err)
	}
	if n := reporter.CountCode(diag.PrepIncludeNotFound); n != 1 {
		t.Errorf("Expected 1 not-found diagnostic, got %d", n)
	}
	if got := buf.String(); got != "let after = 1;\n" {
		t.Errorf("Remaining lines should still be processed, got %q", got)
	}
}

func TestRun_RootUnreadableIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, _, reporter, err := runPrep(t, dir, "absent.sbl", prep.Options{})
	if err == nil {
		t.Fatal("Expected an error for an unreadable root file")
	}
	var fatal *prep.FatalIOError
	if !errors.As(err, &fatal) {
		t.Fatalf("Expected *prep.FatalIOError, got %T: %v", err, err)
	}
	if n := reporter.CountCode(diag.IOSourceUnreadable); n != 1 {
		t.Errorf("Expected 1 I/O diagnostic, got %d", n)
	}
}

func TestRun_BadDirectives(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown", "#frobnicate\n", diag.PrepUnknownDirective},
		{"define without name", "#define\n", diag.PrepBadDirective},
		{"define bad name", "#define 9lives 1\n", diag.PrepBadDirective},
		{"include without path", "#include\n", diag.PrepBadDirective},
		{"include unquoted", "#include foo.sbl\n", diag.PrepBadDirective},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"main.sbl": tt.src})
			_, _, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if n := reporter.CountCode(tt.code); n != 1 {
				t.Errorf("Expected 1 %v diagnostic, got %d (all: %v)", tt.code, n, reporter.diagnostics)
			}
		})
	}
}

func TestRun_DirectiveInsideBlockComment(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.sbl": "/*\n#include \"ghost.sbl\"\n*/\nlet x = 1;\n",
	})
	_, buf, reporter, err := runPrep(t, dir, "main.sbl", prep.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("Commented directive must be ignored: %v", reporter.diagnostics)
	}
	if !strings.Contains(buf.String(), "let x = 1;") {
		t.Errorf("Output lost trailing code: %q", buf.String())
	}
}

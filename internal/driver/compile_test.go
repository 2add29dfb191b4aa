package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sable/internal/diag"
	"sable/internal/driver"
)

func writeProject(t *testing.T, files map[string]string) string {
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

func TestCompile_CleanFile(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.sbl": "contract Bank {\n\tlet total: u64 = 0;\n}\n",
	})
	res, err := driver.Compile(filepath.Join(dir, "main.sbl"), driver.DefaultFlags())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("Unexpected diagnostics: %v", res.Diagnostics)
	}
	if res.State != driver.StateDone {
		t.Errorf("Expected StateDone, got %v", res.State)
	}
	if res.Aborted {
		t.Error("Clean compile must not be aborted")
	}
	if !res.FileID.IsValid() {
		t.Error("Expected a valid AST root")
	}
}

func TestCompile_PrepDiagnosticsPrecedeParse(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.sbl": "#include \"ghost.sbl\"\nlet x = ;\n",
	})
	res, err := driver.Compile(filepath.Join(dir, "main.sbl"), driver.DefaultFlags())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(res.Diagnostics) < 2 {
		t.Fatalf("Expected prep and parse diagnostics, got %v", res.Diagnostics)
	}
	if res.Diagnostics[0].Phase != diag.PhasePrep {
		t.Errorf("First diagnostic should come from the preprocessor, got %v", res.Diagnostics[0].Phase)
	}
	if res.Diagnostics[1].Phase != diag.PhaseParse {
		t.Errorf("Second diagnostic should come from the parser, got %v", res.Diagnostics[1].Phase)
	}
	// The bag was drained into Result; the tree is still usable.
	if !res.FileID.IsValid() {
		t.Error("Parse errors must not discard the AST root")
	}
}

func TestCompile_UnreadableRootAborts(t *testing.T) {
	res, err := driver.Compile(filepath.Join(t.TempDir(), "absent.sbl"), driver.DefaultFlags())
	if err != nil {
		t.Fatalf("An unreadable root is a diagnostic, not a Go error: %v", err)
	}
	if !res.Aborted {
		t.Error("Expected Aborted")
	}
	if res.State != driver.StateAbortedIO {
		t.Errorf("Expected StateAbortedIO, got %v", res.State)
	}
	if res.FileID.IsValid() {
		t.Error("Aborted compile must not carry an AST root")
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.IOSourceUnreadable {
		t.Errorf("Expected the single I/O diagnostic, got %v", res.Diagnostics)
	}
}

func TestCompile_WarningsAsErrors(t *testing.T) {
	files := map[string]string{
		"main.sbl": "fn f() { return 1 }\n",
	}

	t.Run("off", func(t *testing.T) {
		dir := writeProject(t, files)
		res, err := driver.Compile(filepath.Join(dir, "main.sbl"), driver.DefaultFlags())
		if err != nil {
			t.Fatal(err)
		}
		if res.HasErrors() {
			t.Errorf("Missing semicolon should stay a warning: %v", res.Diagnostics)
		}
		if len(res.Diagnostics) != 1 || res.Diagnostics[0].Severity != diag.SevWarning {
			t.Errorf("Expected one warning, got %v", res.Diagnostics)
		}
	})

	t.Run("on", func(t *testing.T) {
		dir := writeProject(t, files)
		flags := driver.DefaultFlags()
		flags.WarningsAsErrors = true
		res, err := driver.Compile(filepath.Join(dir, "main.sbl"), flags)
		if err != nil {
			t.Fatal(err)
		}
		if !res.HasErrors() {
			t.Error("Promotion to error did not happen")
		}
		if len(res.Diagnostics) != 1 || res.Diagnostics[0].Severity != diag.SevError {
			t.Errorf("Expected one promoted error, got %v", res.Diagnostics)
		}
	})
}

func TestCompile_StrictMode(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.sbl": "#define X 1\n#define X 2\nlet v = X;\n",
	})
	flags := driver.DefaultFlags()
	flags.StrictMode = true
	res, err := driver.Compile(filepath.Join(dir, "main.sbl"), flags)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() {
		t.Errorf("Strict mode should turn the redefinition into an error: %v", res.Diagnostics)
	}
}

func TestCompile_IncludeSpanRemapping(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.sbl": "#include \"bad.sbl\"\n",
		"bad.sbl":  "let broken = ;\n",
	})
	res, err := driver.Compile(filepath.Join(dir, "main.sbl"), driver.DefaultFlags())
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() {
		t.Fatal("Expected a parse error from the included file")
	}

	var parseDiag *diag.Diagnostic
	for i := range res.Diagnostics {
		if res.Diagnostics[i].Phase == diag.PhaseParse {
			parseDiag = &res.Diagnostics[i]
			break
		}
	}
	if parseDiag == nil {
		t.Fatalf("No parse diagnostic in %v", res.Diagnostics)
	}

	fileID, line, ok := res.Buffer.Resolve(parseDiag.Primary.Start)
	if !ok {
		t.Fatal("Span did not resolve through the buffer")
	}
	f := res.FileSet.Get(fileID)
	if filepath.Base(f.Path) != "bad.sbl" || line != 1 {
		t.Errorf("Expected bad.sbl:1, got %s:%d", f.Path, line)
	}
}

func TestCompile_MaxDiagnosticsCapsBag(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.sbl": "let a = ;\nlet b = ;\nlet c = ;\nlet d = ;\n",
	})
	flags := driver.DefaultFlags()
	flags.MaxDiagnostics = 2
	res, err := driver.Compile(filepath.Join(dir, "main.sbl"), flags)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 2 {
		t.Errorf("Expected 2 capped diagnostics, got %d", len(res.Diagnostics))
	}
}

func TestCompileDir(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.sbl":       "let a = 1;\n",
		"b.sbl":       "let b = ;\n",
		"sub/c.sbl":   "contract C { }\n",
		"ignored.txt": "not sable\n",
	})

	results, err := driver.CompileDir(context.Background(), dir, driver.DefaultFlags(), 2)
	if err != nil {
		t.Fatalf("CompileDir failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// Sorted by path: a.sbl, b.sbl, sub/c.sbl.
	if filepath.Base(results[0].Path) != "a.sbl" ||
		filepath.Base(results[1].Path) != "b.sbl" ||
		filepath.Base(results[2].Path) != "c.sbl" {
		t.Errorf("Results not sorted: %v", []string{results[0].Path, results[1].Path, results[2].Path})
	}

	// Diagnostics stay isolated per file.
	if results[0].Result.HasErrors() {
		t.Errorf("a.sbl should be clean: %v", results[0].Result.Diagnostics)
	}
	if !results[1].Result.HasErrors() {
		t.Error("b.sbl should carry its error")
	}
	if results[2].Result.HasErrors() {
		t.Errorf("c.sbl should be clean: %v", results[2].Result.Diagnostics)
	}
}

func TestCompileDir_Empty(t *testing.T) {
	results, err := driver.CompileDir(context.Background(), t.TempDir(), driver.DefaultFlags(), 0)
	if err != nil {
		t.Fatalf("CompileDir failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestTokenize(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.sbl": "#define X 1\nlet v = X;\n",
	})
	res, err := driver.Tokenize(filepath.Join(dir, "main.sbl"), 100)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	// No preprocessing: the directive line is lexed raw, so the '#' shows up
	// as an unknown character.
	if !res.Bag.HasErrors() {
		t.Error("Expected the raw '#' to be flagged")
	}
	if len(res.Tokens) == 0 {
		t.Fatal("Expected tokens")
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind.String() != "eof" {
		t.Errorf("Token stream should end with EOF, got %v", last.Kind)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state driver.State
		want  string
	}{
		{driver.StateInit, "init"},
		{driver.StateDone, "done"},
		{driver.StateAbortedIO, "aborted-io"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State %d: expected %q, got %q", tt.state, tt.want, got)
		}
	}
}

// Package driver wires the compilation pipeline: preprocessing into a
// sealed buffer, parsing into arenas, then draining diagnostics. It owns
// the per-compile state machine and the warnings-as-errors policy.
package driver

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/parser"
	"sable/internal/prep"
	"sable/internal/source"
)

// State names the phase a compilation is in or ended at.
type State uint8

const (
	StateInit State = iota
	StatePreprocessing
	StateParsing
	StateReporting
	StateDone
	// StateAbortedIO means the root source was unreadable; the parser
	// never ran and the single fatal diagnostic is in Diagnostics.
	StateAbortedIO
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StatePreprocessing:
		return "preprocessing"
	case StateParsing:
		return "parsing"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	case StateAbortedIO:
		return "aborted-io"
	default:
		return "unknown"
	}
}

// Result is everything one compile produced. Diagnostics is the drained,
// insertion-ordered sequence; the Bag behind it is already empty.
type Result struct {
	FileSet *source.FileSet
	Buffer  *source.Buffer
	Builder *ast.Builder
	// FileID is the AST root; NoFileID when the compile aborted.
	FileID      ast.FileID
	Diagnostics []diag.Diagnostic
	State       State
	Aborted     bool
}

// HasErrors reports whether the compile produced at least one
// error-severity diagnostic. Its absence is the sole success signal; an
// AST may exist even when errors are present.
func (r *Result) HasErrors() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// Compile runs the whole front end on one entry file. The error return is
// reserved for invariant violations (an exhausted buffer, bad flag
// conversion); source-level problems, the unreadable root included, are in
// Result.Diagnostics.
func Compile(path string, flags Flags) (*Result, error) {
	c := &compilation{
		fs:    source.NewFileSet(),
		buf:   source.NewBuffer(1 << 12),
		bag:   diag.NewBag(flags.MaxDiagnostics),
		flags: flags,
		state: StateInit,
	}
	c.builder = ast.NewBuilder(ast.Hints{})
	return c.run(path)
}

type compilation struct {
	fs      *source.FileSet
	buf     *source.Buffer
	bag     *diag.Bag
	builder *ast.Builder
	flags   Flags
	state   State
}

func (c *compilation) to(next State) { c.state = next }

func (c *compilation) run(path string) (*Result, error) {
	reporter := diag.BagReporter{Bag: c.bag}

	c.to(StatePreprocessing)
	_, err := prep.Run(c.fs, path, prep.Options{
		MaxIncludeDepth: c.flags.MaxIncludeDepth,
		MaxMacroDepth:   c.flags.MaxMacroDepth,
		Strict:          c.flags.StrictMode,
		Reporter:        diag.NewDedupReporter(reporter),
	}, c.buf)
	if err != nil {
		var ioErr *prep.FatalIOError
		if errors.As(err, &ioErr) {
			c.to(StateAbortedIO)
			return c.finish(ast.NoFileID, true), nil
		}
		return nil, fmt.Errorf("preprocess %s: %w", path, err)
	}

	sealedID := c.buf.Seal(c.fs, "preprocessed:"+path)
	sealed := c.fs.Get(sealedID)

	c.to(StateParsing)
	maxErrors, err := safecast.Conv[uint](c.flags.MaxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("max diagnostics overflow: %w", err)
	}
	lx := lexer.New(sealed, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(c.fs, lx, c.builder, parser.Options{
		MaxErrors: maxErrors,
		Strict:    c.flags.StrictMode,
		Reporter:  reporter,
	})

	return c.finish(parsed.File, false), nil
}

// finish drains the bag exactly once, applying the warnings-as-errors
// promotion, and settles the terminal state.
func (c *compilation) finish(file ast.FileID, aborted bool) *Result {
	if !aborted {
		c.to(StateReporting)
	}
	items := c.bag.Drain()
	if c.flags.WarningsAsErrors {
		for i := range items {
			if items[i].Severity == diag.SevWarning {
				items[i].Severity = diag.SevError
			}
		}
	}
	if !aborted {
		c.to(StateDone)
	}
	return &Result{
		FileSet:     c.fs,
		Buffer:      c.buf,
		Builder:     c.builder,
		FileID:      file,
		Diagnostics: items,
		State:       c.state,
		Aborted:     aborted,
	}
}

// Package prep implements the Sable preprocessor. It resolves #include
// splices and object-like #define macros depth-first, writing the result
// into a source.Buffer with a segment per emitted line so downstream spans
// resolve back to the original file and line.
package prep

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"

	"sable/internal/diag"
	"sable/internal/source"
)

// FatalIOError reports that the root source file could not be read. It is
// the only condition that halts the pipeline before parsing; everything
// else the preprocessor hits is a recoverable diagnostic.
type FatalIOError struct {
	Path string
	Err  error
}

func (e *FatalIOError) Error() string {
	return fmt.Sprintf("source unreadable: %s: %v", e.Path, e.Err)
}

func (e *FatalIOError) Unwrap() error { return e.Err }

type preprocessor struct {
	fs     *source.FileSet
	out    *source.Buffer
	opts   Options
	macros *macroTable
	stack  []string // normalized paths of files currently being spliced

	inBlockComment bool
	depthHit       bool // at most one PrepMacroDepth per line
}

// Run preprocesses the file at path into out. Every included file is loaded
// into fs so its diagnostics carry spans into real file content. The
// returned FileID identifies the root file. A non-nil error is either a
// *FatalIOError for an unreadable root or a buffer exhaustion; all other
// problems become diagnostics and processing continues.
func Run(fs *source.FileSet, path string, opts Options, out *source.Buffer) (source.FileID, error) {
	p := &preprocessor{
		fs:     fs,
		out:    out,
		opts:   opts,
		macros: newMacroTable(),
	}

	rootID, err := fs.Load(path)
	if err != nil {
		ioErr := &FatalIOError{Path: path, Err: err}
		p.err(diag.IOSourceUnreadable, source.Span{}, ioErr.Error())
		return 0, ioErr
	}

	root := fs.Get(rootID)
	p.stack = append(p.stack, root.Path)
	if err := p.processFile(root, 0); err != nil {
		return rootID, err
	}
	return rootID, nil
}

func (p *preprocessor) processFile(f *source.File, depth uint) error {
	content := f.Content
	lineStart := 0
	for lineNo := uint32(1); lineStart < len(content); lineNo++ {
		lineEnd := lineStart
		for lineEnd < len(content) && content[lineEnd] != '\n' {
			lineEnd++
		}
		sp := lineSpan(f.ID, lineStart, lineEnd)
		line := string(content[lineStart:lineEnd])
		if err := p.processLine(f, line, lineNo, sp, depth); err != nil {
			return err
		}
		lineStart = lineEnd + 1
	}
	return nil
}

func (p *preprocessor) processLine(f *source.File, line string, lineNo uint32, sp source.Span, depth uint) error {
	if !p.inBlockComment && strings.HasPrefix(line, "#") {
		return p.processDirective(f, line, sp, depth)
	}

	p.depthHit = false
	expanded := p.expandLine(line, sp)
	p.out.MarkSegment(f.ID, lineNo)
	return p.out.AppendString(expanded + "\n")
}

func (p *preprocessor) processDirective(f *source.File, line string, sp source.Span, depth uint) error {
	name, args := splitWord(strings.TrimSpace(line[1:]))
	switch name {
	case "include":
		return p.processInclude(f, args, sp, depth)
	case "define":
		p.processDefine(args, sp)
	case "undef":
		p.processUndef(args, sp)
	case "":
		// A bare '#' line is dropped, C style.
	default:
		p.err(diag.PrepUnknownDirective, sp, fmt.Sprintf("unknown directive #%s", name))
	}
	return nil
}

func (p *preprocessor) processInclude(f *source.File, args string, sp source.Span, depth uint) error {
	target, ok := parseIncludePath(args)
	if !ok {
		p.err(diag.PrepBadDirective, sp, `expected #include "path"`)
		return nil
	}
	if depth+1 > p.opts.MaxIncludeDepth {
		p.err(diag.PrepIncludeDepth, sp,
			fmt.Sprintf("include depth limit %d exceeded", p.opts.MaxIncludeDepth))
		return nil
	}

	full := filepath.Join(filepath.Dir(f.Path), target)
	incID, err := p.fs.Load(full)
	if err != nil {
		p.err(diag.PrepIncludeNotFound, sp, fmt.Sprintf("cannot include %q: %v", target, err))
		return nil
	}

	inc := p.fs.Get(incID)
	for _, active := range p.stack {
		if active == inc.Path {
			p.err(diag.PrepIncludeCycle, sp, fmt.Sprintf("include cycle through %q", target))
			return nil
		}
	}

	p.stack = append(p.stack, inc.Path)
	err = p.processFile(inc, depth+1)
	p.stack = p.stack[:len(p.stack)-1]
	return err
}

func (p *preprocessor) processDefine(args string, sp source.Span) {
	name, body := splitWord(args)
	if !isMacroName(name) {
		p.err(diag.PrepBadDirective, sp, "expected #define NAME [text]")
		return
	}
	_, redefined := p.macros.define(Macro{Name: name, Body: body, DefSpan: sp})
	if redefined {
		msg := fmt.Sprintf("macro %q redefined", name)
		if p.opts.Strict {
			p.err(diag.PrepMacroRedefined, sp, msg)
		} else {
			p.warn(diag.PrepMacroRedefined, sp, msg)
		}
	}
}

func (p *preprocessor) processUndef(args string, sp source.Span) {
	name, rest := splitWord(args)
	if !isMacroName(name) || rest != "" {
		p.err(diag.PrepBadDirective, sp, "expected #undef NAME")
		return
	}
	if !p.macros.undef(name) {
		p.warn(diag.PrepUndefUnknown, sp, fmt.Sprintf("macro %q is not defined", name))
	}
}

// parseIncludePath extracts the quoted path of an #include argument.
func parseIncludePath(args string) (string, bool) {
	if len(args) < 2 || args[0] != '"' {
		return "", false
	}
	end := strings.IndexByte(args[1:], '"')
	if end < 0 {
		return "", false
	}
	path := args[1 : 1+end]
	if path == "" || strings.TrimSpace(args[2+end:]) != "" {
		return "", false
	}
	return path, true
}

// splitWord returns the first whitespace-delimited word of s and the
// trimmed remainder.
func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return s[:i], strings.TrimSpace(s[i:])
		}
	}
	return s, ""
}

func isMacroName(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}

func lineSpan(file source.FileID, start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("line start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("line end overflow: %w", err))
	}
	return source.Span{File: file, Start: s, End: e}
}

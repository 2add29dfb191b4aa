// Package diagfmt renders drained diagnostics for humans (pretty, with
// color and caret underlines) and for tools (JSON). It never mutates the
// diagnostics it is given.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sable/internal/diag"
	"sable/internal/source"
)

// Pretty renders diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <sev> [<CODE>]: <message>
//	   <line> | <source text>
//	          | <caret underline>
//
// Spans into the preprocessed buffer are shown at their origin file and
// line via buf's segment table; pass buf=nil to skip the remap.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, buf *source.Buffer, opts PrettyOpts) {
	for i := range diags {
		prettyOne(w, &diags[i], fs, buf, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, buf *source.Buffer, opts PrettyOpts) {
	sev := severityLabel(d.Severity, opts.Color)
	code := d.Code.ID()

	loc, ok := resolveLocation(fs, buf, d.Primary, opts.PathMode)
	if !ok {
		fmt.Fprintf(w, "%s [%s]: %s\n", sev, code, d.Message)
		return
	}

	fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n", loc.Path, loc.Line, loc.Col, sev, code, d.Message)
	prettySnippet(w, loc, d.Primary, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nloc, ok := resolveLocation(fs, buf, note.Span, opts.PathMode)
			if !ok {
				fmt.Fprintf(w, "  note: %s\n", note.Msg)
				continue
			}
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", nloc.Path, nloc.Line, nloc.Col, note.Msg)
		}
	}
}

// prettySnippet prints the source line with a caret underline sized to the
// span (clamped to the line end).
func prettySnippet(w io.Writer, loc location, sp source.Span, opts PrettyOpts) {
	if loc.Text == "" {
		return
	}

	lineNo := fmt.Sprintf("%4d", loc.Line)
	fmt.Fprintf(w, "%s | %s\n", lineNo, loc.Text)

	// Columns are 1-based byte offsets into the line; clamp to its length.
	col := int(loc.Col)
	if col < 1 {
		col = 1
	}
	if col > len(loc.Text)+1 {
		col = len(loc.Text) + 1
	}
	width := int(sp.Len())
	if width < 1 {
		width = 1
	}
	if col-1+width > len(loc.Text) {
		width = len(loc.Text) - (col - 1)
		if width < 1 {
			width = 1
		}
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(loc.Text[:col-1]))
	underlineWidth := runewidth.StringWidth(loc.Text[col-1 : col-1+min(width, len(loc.Text)-(col-1))])
	if underlineWidth < 1 {
		underlineWidth = 1
	}
	underline := "^" + strings.Repeat("~", underlineWidth-1)
	if opts.Color {
		underline = color.New(color.FgHiRed, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "%s | %s%s\n", strings.Repeat(" ", len(lineNo)), pad, underline)
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := strings.ToLower(sev.String())
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgHiRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgHiYellow, color.Bold).Sprint(label)
	default:
		return color.New(color.FgHiCyan).Sprint(label)
	}
}

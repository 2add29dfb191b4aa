package diagfmt

import (
	"sable/internal/source"
)

// location is a resolved display position for one span. For spans into a
// preprocessed buffer it already points at the origin file and line.
type location struct {
	Path string
	Line uint32
	Col  uint32
	Text string // the source line the span starts on
}

// resolveLocation maps a span to its display location. Spans into a sealed
// preprocessed file are remapped through the buffer's segment table back to
// the file and line the text came from. Returns ok=false when the span
// cannot be located (empty FileSet after an aborted compile).
func resolveLocation(fs *source.FileSet, buf *source.Buffer, sp source.Span, mode PathMode) (location, bool) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return location{}, false
	}

	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)

	loc := location{
		Path: f.Path,
		Line: start.Line,
		Col:  start.Col,
		Text: f.GetLine(start.Line),
	}

	if f.Flags&source.FilePreprocessed != 0 && buf != nil {
		if origID, origLine, ok := buf.Resolve(sp.Start); ok && int(origID) < fs.Len() {
			origin := fs.Get(origID)
			loc.Path = origin.Path
			loc.Line = origLine
			loc.Text = origin.GetLine(origLine)
		}
	}

	if mode == PathModeBasename {
		loc.Path = source.BaseName(loc.Path)
	}
	return loc, true
}

package prep

import (
	"fmt"
	"strings"

	"sable/internal/diag"
	"sable/internal/source"
)

// expandLine substitutes object macros in one ordinary line. String literals
// and comments pass through untouched; block comment state carries across
// lines.
func (p *preprocessor) expandLine(line string, sp source.Span) string {
	var sb strings.Builder
	i := 0
	for i < len(line) {
		if p.inBlockComment {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				sb.WriteString(line[i:])
				return sb.String()
			}
			sb.WriteString(line[i : i+end+2])
			i += end + 2
			p.inBlockComment = false
			continue
		}

		c := line[i]
		switch {
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			sb.WriteString(line[i:])
			return sb.String()
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			p.inBlockComment = true
			sb.WriteString("/*")
			i += 2
		case c == '"':
			i = copyString(line, i, &sb)
		case isIdentStart(c):
			j := i + 1
			for j < len(line) && isIdentPart(line[j]) {
				j++
			}
			word := line[i:j]
			if m, ok := p.macros.lookup(word); ok {
				sb.WriteString(p.expandMacro(m, sp, 1))
			} else {
				sb.WriteString(word)
			}
			i = j
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// expandMacro rescans a macro body for further macro names. depth counts
// nested substitutions; crossing MaxMacroDepth substitutes the empty
// expansion and reports at most once per line.
func (p *preprocessor) expandMacro(m Macro, sp source.Span, depth uint) string {
	if depth > p.opts.MaxMacroDepth {
		if !p.depthHit {
			p.depthHit = true
			p.err(diag.PrepMacroDepth, sp,
				fmt.Sprintf("macro expansion depth limit %d exceeded expanding %q",
					p.opts.MaxMacroDepth, m.Name))
		}
		return ""
	}

	body := m.Body
	var sb strings.Builder
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '"':
			i = copyString(body, i, &sb)
		case isIdentStart(c):
			j := i + 1
			for j < len(body) && isIdentPart(body[j]) {
				j++
			}
			word := body[i:j]
			if next, ok := p.macros.lookup(word); ok {
				sb.WriteString(p.expandMacro(next, sp, depth+1))
			} else {
				sb.WriteString(word)
			}
			i = j
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// copyString copies a double-quoted literal starting at src[i] into sb and
// returns the index past the closing quote. Escaped quotes stay inside the
// literal; an unterminated literal runs to end of line (the lexer will
// report it).
func copyString(src string, i int, sb *strings.Builder) int {
	j := i + 1
	for j < len(src) {
		if src[j] == '\\' && j+1 < len(src) {
			j += 2
			continue
		}
		if src[j] == '"' {
			j++
			break
		}
		j++
	}
	sb.WriteString(src[i:j])
	return j
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

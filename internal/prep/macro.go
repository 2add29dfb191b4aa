package prep

import (
	"sable/internal/source"
)

// Macro is one object-like macro. Function-like macros are not part of the
// language.
type Macro struct {
	Name    string
	Body    string
	DefSpan source.Span // the #define line, for redefinition notes
}

type macroTable struct {
	byName map[string]Macro
}

func newMacroTable() *macroTable {
	return &macroTable{byName: make(map[string]Macro)}
}

func (t *macroTable) define(m Macro) (prev Macro, redefined bool) {
	prev, redefined = t.byName[m.Name]
	t.byName[m.Name] = m
	return prev, redefined
}

func (t *macroTable) undef(name string) bool {
	if _, ok := t.byName[name]; !ok {
		return false
	}
	delete(t.byName, name)
	return true
}

func (t *macroTable) lookup(name string) (Macro, bool) {
	m, ok := t.byName[name]
	return m, ok
}

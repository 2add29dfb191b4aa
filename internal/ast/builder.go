package ast

import (
	"sable/internal/source"
)

// Hints sizes the arenas up front. Zero values fall back to per-arena
// defaults.
type Hints struct {
	Files uint
	Items uint
	Stmts uint
	Exprs uint
	Types uint
}

// Builder bundles every arena of one compilation plus the string interner the
// parser writes identifiers and literal spellings into. A Builder is built
// once per compile and is not safe for concurrent use.
type Builder struct {
	Files *Files
	Items *Items
	Stmts *Stmts
	Exprs *Exprs
	Types *Types

	StringsInterner *source.Interner
}

func NewBuilder(h Hints) *Builder {
	if h.Files == 0 {
		h.Files = 1 << 2
	}
	return &Builder{
		Files:           NewFiles(h.Files),
		Items:           NewItems(h.Items),
		Stmts:           NewStmts(h.Stmts),
		Exprs:           NewExprs(h.Exprs),
		Types:           NewTypes(h.Types),
		StringsInterner: source.NewInterner(),
	}
}

// ErrorNodeCount reports how many error-marker nodes the tree contains, one
// count per node class. Recovery quality checks in tests and tooling use it.
type ErrorNodeCount struct {
	Items   int
	Members int
	Stmts   int
	Exprs   int
	Types   int
}

func (c ErrorNodeCount) Total() int {
	return c.Items + c.Members + c.Stmts + c.Exprs + c.Types
}

func (b *Builder) CountErrorNodes() ErrorNodeCount {
	var c ErrorNodeCount
	for i := range b.Items.Arena.Slice() {
		if b.Items.Arena.Slice()[i].Kind == ItemBad {
			c.Items++
		}
	}
	for i := range b.Items.Members.Slice() {
		if b.Items.Members.Slice()[i].Kind == MemberBad {
			c.Members++
		}
	}
	for i := range b.Stmts.Arena.Slice() {
		if b.Stmts.Arena.Slice()[i].Kind == StmtBad {
			c.Stmts++
		}
	}
	for i := range b.Exprs.Arena.Slice() {
		if b.Exprs.Arena.Slice()[i].Kind == ExprBad {
			c.Exprs++
		}
	}
	for i := range b.Types.Arena.Slice() {
		if b.Types.Arena.Slice()[i].Kind == TypeBad {
			c.Types++
		}
	}
	return c
}

package diag

import (
	"sort"
)

// Bag is the compile-scoped diagnostic collector. One Bag exists per compile
// invocation; phases append through a Reporter and the driver drains it
// exactly once at the end of the pipeline. Insertion order is preserved, so
// the drained sequence reflects phase order and discovery order within a
// phase.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends a diagnostic, honoring the cap. Returns false when the
// diagnostic was not added because the limit was reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether at least one diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether at least one diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only slice of the diagnostics. Do not modify it; it
// aliases the Bag's internal storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Drain returns the accumulated diagnostics in insertion order and clears
// the bag. A second Drain on the same Bag returns an empty sequence.
func (b *Bag) Drain() []Diagnostic {
	items := b.items
	b.items = nil
	return items
}

// Sort orders diagnostics by file, start, end, severity (desc), code for a
// stable, deterministic presentation. Drained sequences keep insertion
// order; Sort exists for presentation layers that prefer positional order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

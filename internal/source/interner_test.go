package source_test

import (
	"testing"

	"sable/internal/source"
)

func TestInterner_Dedup(t *testing.T) {
	in := source.NewInterner()

	a := in.Intern("contract")
	b := in.Intern("balance")
	a2 := in.Intern("contract")

	if a != a2 {
		t.Errorf("Same string got different IDs: %d vs %d", a, a2)
	}
	if a == b {
		t.Errorf("Different strings got the same ID: %d", a)
	}

	if s, ok := in.Lookup(a); !ok || s != "contract" {
		t.Errorf("Lookup(%d): expected (contract,true), got (%q,%v)", a, s, ok)
	}
}

func TestInterner_EmptyStringIsNoStringID(t *testing.T) {
	in := source.NewInterner()
	if id := in.Intern(""); id != source.NoStringID {
		t.Errorf("Intern(\"\") should be NoStringID, got %d", id)
	}
}

func TestInterner_InvalidLookup(t *testing.T) {
	in := source.NewInterner()
	if _, ok := in.Lookup(source.StringID(99)); ok {
		t.Error("Lookup of an unknown ID should report ok=false")
	}
}

func TestInterner_InternBytes(t *testing.T) {
	in := source.NewInterner()
	id1 := in.InternBytes([]byte("emit"))
	id2 := in.Intern("emit")
	if id1 != id2 {
		t.Errorf("InternBytes and Intern disagree: %d vs %d", id1, id2)
	}
	if got := in.MustLookup(id1); got != "emit" {
		t.Errorf("MustLookup: expected emit, got %q", got)
	}
}

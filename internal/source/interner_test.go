package source

import "testing"

func TestInternAssignsStableIDs(t *testing.T) {
	in := NewInterner()
	first := in.Intern("counter")
	second := in.Intern("counter")
	if first != second {
		t.Fatalf("expected interning the same name twice to return the same ID, got %d and %d", first, second)
	}
}

func TestInternDistinguishesDistinctNames(t *testing.T) {
	in := NewInterner()
	a := in.Intern("x")
	b := in.Intern("y")
	if a == b {
		t.Fatal("expected distinct names to receive distinct IDs")
	}
}

func TestLookupRoundTripsInternedName(t *testing.T) {
	in := NewInterner()
	id := in.Intern("result")
	s, ok := in.Lookup(id)
	if !ok || s != "result" {
		t.Fatalf("expected Lookup to return (%q, true), got (%q, %v)", "result", s, ok)
	}
}

func TestLookupRejectsUnknownID(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatal("expected Lookup on an ID this Interner never minted to fail")
	}
}

func TestNoStringIDResolvesToEmptyString(t *testing.T) {
	in := NewInterner()
	s, ok := in.Lookup(NoStringID)
	if !ok || s != "" {
		t.Fatalf("expected NoStringID to resolve to the empty string, got (%q, %v)", s, ok)
	}
}

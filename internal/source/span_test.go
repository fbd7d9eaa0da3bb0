package source

import (
	"strings"
	"testing"
)

func TestSpanStringReportsOffsets(t *testing.T) {
	s := Span{Start: 10, End: 20}
	out := s.String()
	if !strings.Contains(out, "10") || !strings.Contains(out, "20") {
		t.Fatalf("expected the rendered span to mention both offsets, got %q", out)
	}
}

func TestZeroSpanIsWellFormed(t *testing.T) {
	// The checker hands out a zero Span when a failure has no node-level
	// position of its own (e.g. a scope-merge conflict); String must still
	// produce something usable in a diagnostic.
	var s Span
	if s.String() == "" {
		t.Fatal("expected even a zero-value Span to render")
	}
}

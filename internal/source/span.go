// Package source holds the two small, parser-agnostic primitives every IR
// node carries: an interned name (StringID) and a source position (Span).
// The pipeline consumes an already-parsed tree and owns no file set of its
// own; positions are inherited from whatever produced the IR and exist
// here only so the checker can attach them to a diagnostic.
package source

import "fmt"

// Span is a byte-offset range within the compilation unit an IR node came
// from. The pipeline never resolves a Span back to source text itself —
// that is the surface compiler's job — so Span carries no file identity,
// only the offsets the checker reports in "Ill-typed intermediate code
// after <phase>: <position>: ..." diagnostics.
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Package irchecker re-verifies that an IR program produced by an earlier
// pass still satisfies every structural invariant of the data model: closed
// concrete type annotations, effect soundness, scoping discipline, and the
// per-node rule table. It never surfaces a diagnostic meant for the
// language user; a failure here means an earlier pass produced invalid IR.
package irchecker

import (
	"fmt"

	"github.com/ZenVoich/motoko/internal/source"
)

// Error is the checker's single failure shape: a phase name, the offending
// node's position, and a human-readable message. It is the only error the
// checker ever returns; the driver prints it and terminates.
type Error struct {
	Phase   string
	Pos     source.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Ill-typed intermediate code after %s: %s: IR type error: %s", e.Phase, e.Pos, e.Message)
}

func fail(phase string, pos source.Span, format string, args ...any) error {
	return &Error{Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

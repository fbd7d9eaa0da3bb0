// Package trace provides a tracing subsystem for the IR pipeline: the
// initial checker run, the tail-call and async/await transform passes, and
// the checker re-runs between them.
//
// # Usage
//
// Enable tracing via ir-pipeline's persistent flags:
//
//	ir-pipeline run --trace-mode=stream --trace-output=- --trace-level=phase fixture.mp
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: No span events are emitted
//   - LevelPhase: Unit and pass boundaries
//   - LevelDebug: Everything
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: One compilation unit, start to finish
//   - ScopePass: One phase within a unit (check, tailcall, asynccps)
//
// # Context Propagation
//
// driver.Run and driver.RunBatch take the Tracer as an argument and read the
// enclosing span from the context (CurrentSpan). Code that receives only a
// context can carry a Tracer in it:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "tailcall", parentID)
//	defer span.End("")
package trace

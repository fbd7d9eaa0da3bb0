// Package driver sequences the IR pipeline's passes over one or many
// compilation units: self tail-call optimization, the async/await CPS
// transform, and the checker run before and after each.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irchecker"
	"github.com/ZenVoich/motoko/internal/irtransform/asynccps"
	"github.com/ZenVoich/motoko/internal/irtransform/tailcall"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/trace"
)

// Unit is one compilation unit to run through the pipeline: an IR program
// plus the type interner it was built against. irtypes.Interner is not
// safe for concurrent use, so each Unit passed to RunBatch must own a
// distinct Interner; Run also mints a fresh per-unit name counter so units
// never share mutable naming state.
type Unit struct {
	Name    string
	Types   *irtypes.Interner
	Program *ir.Program
}

// Result is the pipeline's outcome for one unit.
type Result struct {
	Name    string
	Program *ir.Program
	Err     error
}

// Run drives a single unit through check -> tailcall -> check -> asynccps ->
// check, per cfg's phase toggles, emitting a trace.ScopePass span per phase.
func Run(ctx context.Context, tr trace.Tracer, cfg Config, u Unit) (*ir.Program, error) {
	parent := trace.CurrentSpan(ctx).SpanID
	driverSpan := trace.Begin(tr, trace.ScopeDriver, "unit:"+u.Name, parent)
	defer driverSpan.End("")

	names := ir.NewCounter()
	prog := u.Program

	checker := irchecker.New(u.Types, "initial")
	if err := runCheck(tr, driverSpan.ID(), checker, prog); err != nil {
		return nil, fmt.Errorf("unit %q: %w", u.Name, err)
	}

	if cfg.Pipeline.RunTailCall {
		span := trace.Begin(tr, trace.ScopePass, "tailcall", driverSpan.ID())
		prog = tailcall.New(u.Types, names).Transform(prog)
		span.End("")

		if cfg.Pipeline.CheckBetween {
			checker.Phase = "post-tailcall"
			if err := runCheck(tr, driverSpan.ID(), checker, prog); err != nil {
				return nil, fmt.Errorf("unit %q: %w", u.Name, err)
			}
		}
	}

	if cfg.Pipeline.RunAsyncCPS {
		span := trace.Begin(tr, trace.ScopePass, "asynccps", driverSpan.ID())
		prog = asynccps.New(u.Types, names).Transform(prog)
		span.End("")

		if cfg.Pipeline.CheckBetween {
			checker.Phase = "post-asynccps"
			if err := runCheck(tr, driverSpan.ID(), checker, prog); err != nil {
				return nil, fmt.Errorf("unit %q: %w", u.Name, err)
			}
		}
	}

	return prog, nil
}

func runCheck(tr trace.Tracer, parent uint64, checker *irchecker.Checker, prog *ir.Program) error {
	span := trace.Begin(tr, trace.ScopePass, "check:"+checker.Phase, parent)
	defer span.End("")
	return checker.Check(prog, ir.NewScope())
}

// RunBatch runs every unit concurrently, capped at jobs goroutines
// (GOMAXPROCS if jobs <= 0), using a per-item errgroup.
func RunBatch(ctx context.Context, tr trace.Tracer, cfg Config, units []Unit, jobs int) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(units), 1)))

	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			prog, err := Run(gctx, tr, cfg, u)
			results[i] = Result{Name: u.Name, Program: prog, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

package trace

import (
	"strings"
	"testing"
	"time"
)

func TestNopSatisfiesTracer(t *testing.T) {
	var tr Tracer = Nop
	tr.Emit(&Event{Kind: KindPoint, Name: "x"})
	if tr.Enabled() {
		t.Fatal("Nop should report disabled")
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(8, LevelDebug)
	b := NewRingTracer(8, LevelDebug)
	multi := NewMultiTracer(LevelDebug, a, b)

	multi.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: "probe"})

	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatalf("expected both ring tracers to receive the event, got %d and %d", len(a.Snapshot()), len(b.Snapshot()))
	}
}

func TestFormatEventChromeProducesValidPhase(t *testing.T) {
	ev := &Event{Kind: KindSpanBegin, Scope: ScopePass, Name: "tailcall", Time: time.Now()}
	out := string(FormatEvent(ev, FormatChrome))
	if !strings.Contains(out, `"ph":"B"`) {
		t.Fatalf("expected a begin phase in chrome output, got %q", out)
	}
}

func TestSpanBeginEndRoundTrip(t *testing.T) {
	r := NewRingTracer(8, LevelPhase)
	span := Begin(r, ScopePass, "asynccps", 0)
	span.End("ok")

	events := r.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected a begin and an end event, got %d", len(events))
	}
	if events[0].Kind != KindSpanBegin || events[1].Kind != KindSpanEnd {
		t.Fatalf("expected begin then end, got %v then %v", events[0].Kind, events[1].Kind)
	}
}

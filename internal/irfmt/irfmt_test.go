package irfmt

import (
	"strings"
	"testing"

	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
)

func TestFprintExprNoColorIsPlain(t *testing.T) {
	types := irtypes.NewInterner(nil)
	bi := types.Builtins()
	lit := &ir.Expr{Kind: ir.KLit, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitNat(3)}}

	p := New(types, types.Strings)
	var sb strings.Builder
	p.FprintExpr(&sb, lit)

	out := sb.String()
	if !strings.Contains(out, "Lit") {
		t.Fatalf("expected the dump to mention the Lit kind, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes with Color unset, got %q", out)
	}
}

func TestFprintProgramShowsFlavor(t *testing.T) {
	types := irtypes.NewInterner(nil)
	prog := &ir.Program{Flavor: ir.Flavor{HasAwait: true}}

	p := New(types, types.Strings)
	var sb strings.Builder
	p.FprintProgram(&sb, prog)

	if !strings.Contains(sb.String(), "has_await=true") {
		t.Fatalf("expected flavor line to report has_await, got %q", sb.String())
	}
}

func TestFprintExprVarResolvesName(t *testing.T) {
	types := irtypes.NewInterner(nil)
	bi := types.Builtins()
	name := types.Strings.Intern("counter")
	v := &ir.Expr{Kind: ir.KVar, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.VarData{Name: name}}

	p := New(types, types.Strings)
	var sb strings.Builder
	p.FprintExpr(&sb, v)

	if !strings.Contains(sb.String(), "counter") {
		t.Fatalf("expected the variable's resolved name in the dump, got %q", sb.String())
	}
}

package ir

import (
	"testing"

	"github.com/ZenVoich/motoko/internal/irtypes"
)

func newTestBuilder() (*Builder, *irtypes.Interner, irtypes.Builtins) {
	types := irtypes.NewInterner(nil)
	b := NewBuilder(types, NewCounter())
	return b, types, types.Builtins()
}

func TestFreshVarProducesDistinctNames(t *testing.T) {
	b, _, bi := newTestBuilder()
	v1 := b.FreshVar("temp", bi.Nat)
	v2 := b.FreshVar("temp", bi.Nat)
	n1 := v1.Data.(VarData).Name
	n2 := v2.Data.(VarData).Name
	if n1 == n2 {
		t.Fatal("FreshVar must mint distinct names on successive calls")
	}
}

func TestBlockExprEffectIsLubOfDeclsAndResult(t *testing.T) {
	b, types, bi := newTestBuilder()
	pureInit := &Expr{Kind: KLit, Type: bi.Nat, Effect: irtypes.Triv, Data: LitData{Value: LitNat(1)}}
	awaitInit := &Expr{Kind: KAwait, Type: bi.Nat, Effect: irtypes.Await, Data: AwaitData{}}
	result := &Expr{Kind: KLit, Type: bi.Unit, Effect: irtypes.Triv, Data: LitData{Value: LitNull()}}

	pat := Pattern{Kind: PWild, Type: bi.Nat, Data: WildData{}}
	pureBlock := b.BlockExpr([]Decl{{Kind: DLet, Data: LetDeclData{Pattern: pat, Init: pureInit}}}, result)
	if pureBlock.Effect != irtypes.Triv {
		t.Fatalf("block with pure decl should be Triv, got %v", pureBlock.Effect)
	}
	awaitBlock := b.BlockExpr([]Decl{{Kind: DLet, Data: LetDeclData{Pattern: pat, Init: awaitInit}}}, result)
	if awaitBlock.Effect != irtypes.Await {
		t.Fatalf("block with an awaiting decl should be Await, got %v", awaitBlock.Effect)
	}
	_ = types
}

func TestTupleExprTypeIsSeq(t *testing.T) {
	b, types, bi := newTestBuilder()
	e1 := &Expr{Kind: KLit, Type: bi.Nat, Effect: irtypes.Triv, Data: LitData{Value: LitNat(1)}}
	e2 := &Expr{Kind: KLit, Type: bi.Bool, Effect: irtypes.Triv, Data: LitData{Value: LitBool(true)}}
	tup := b.TupleExpr([]*Expr{e1, e2})
	elems, ok := types.TupleElems(tup.Type)
	if !ok || len(elems) != 2 || elems[0] != bi.Nat || elems[1] != bi.Bool {
		t.Fatalf("tuple type mismatch: %v, ok=%v", elems, ok)
	}
}

func TestProjectLooksUpTupleElementType(t *testing.T) {
	b, types, bi := newTestBuilder()
	tupT := types.RegisterTuple([]irtypes.TypeID{bi.Nat, bi.Bool})
	tup := &Expr{Kind: KVar, Type: tupT, Effect: irtypes.Triv, Data: VarData{}}
	proj := b.Project(tup, 1)
	if proj.Type != bi.Bool {
		t.Fatalf("Project(_, 1) type = %v, want Bool", proj.Type)
	}
}

func TestApplicationEffectIsLubOfFuncAndArg(t *testing.T) {
	b, _, bi := newTestBuilder()
	f := &Expr{Kind: KVar, Effect: irtypes.Triv, Data: VarData{}}
	argAwait := &Expr{Kind: KAwait, Effect: irtypes.Await, Data: AwaitData{}}
	call := b.Application(irtypes.FuncLocal, f, nil, argAwait, bi.Nat)
	if call.Effect != irtypes.Await {
		t.Fatalf("Application effect = %v, want Await", call.Effect)
	}
}

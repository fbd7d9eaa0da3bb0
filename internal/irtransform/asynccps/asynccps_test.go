package asynccps

import (
	"testing"

	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
)

// newAwaitingAsync builds `async { await a }` where a : async Nat, so that
// the async body's own effect is Await.
func newAwaitingAsync(types *irtypes.Interner) *ir.Expr {
	bi := types.Builtins()
	asyncNat := types.Intern(irtypes.MakeAsync(bi.Nat))
	aName := types.Strings.Intern("a")
	aVar := &ir.Expr{Kind: ir.KVar, Type: asyncNat, Effect: irtypes.Triv, Data: ir.VarData{Name: aName}}
	awaitExpr := &ir.Expr{Kind: ir.KAwait, Type: bi.Nat, Effect: irtypes.Await, Data: ir.AwaitData{Operand: aVar}}
	return &ir.Expr{Kind: ir.KAsync, Type: asyncNat, Effect: irtypes.Triv, Data: ir.AsyncData{Body: awaitExpr}}
}

func TestTranslateAsyncWrapsPrimAsyncCall(t *testing.T) {
	types := irtypes.NewInterner(nil)
	asyncExpr := newAwaitingAsync(types)

	tr := New(types, ir.NewCounter())
	rewritten := tr.T(asyncExpr, labelEnv{})

	callData, ok := rewritten.Data.(ir.CallData)
	if !ok {
		t.Fatalf("Async should translate to a call to prim_async, got %T", rewritten.Data)
	}
	prim, ok := callData.Func.Data.(ir.PrimData)
	if !ok || prim.Name != "@async" {
		t.Fatalf("expected callee to be the @async primitive, got %#v", callData.Func.Data)
	}
	lambda, ok := callData.Arg.Data.(ir.FuncData)
	if !ok {
		t.Fatalf("expected the argument to prim_async to be a lambda, got %T", callData.Arg.Data)
	}
	if len(lambda.Params) != 1 {
		t.Fatalf("expected the lambda to take exactly k_ret, got %d params", len(lambda.Params))
	}
}

func TestTranslateAwaitCallsPrimAwait(t *testing.T) {
	types := irtypes.NewInterner(nil)
	bi := types.Builtins()
	asyncNat := types.Intern(irtypes.MakeAsync(bi.Nat))
	aName := types.Strings.Intern("a")
	aVar := &ir.Expr{Kind: ir.KVar, Type: asyncNat, Effect: irtypes.Triv, Data: ir.VarData{Name: aName}}
	awaitExpr := &ir.Expr{Kind: ir.KAwait, Type: bi.Nat, Effect: irtypes.Await, Data: ir.AwaitData{Operand: aVar}}

	tr := New(types, ir.NewCounter())
	k := synCont(&ir.Expr{Kind: ir.KVar, Type: irtypes.NoTypeID, Effect: irtypes.Triv, Data: ir.VarData{Name: types.Strings.Intern("k0")}})
	rewritten := tr.C(awaitExpr, k, labelEnv{})

	callData, ok := rewritten.Data.(ir.CallData)
	if !ok {
		t.Fatalf("Await should translate to a call to prim_await, got %T", rewritten.Data)
	}
	prim, ok := callData.Func.Data.(ir.PrimData)
	if !ok || prim.Name != "@await" {
		t.Fatalf("expected callee to be the @await primitive, got %#v", callData.Func.Data)
	}
	tup, ok := callData.Arg.Data.(ir.TupData)
	if !ok || len(tup.Elems) != 2 {
		t.Fatalf("expected prim_await's argument to be (async_value, continuation), got %#v", callData.Arg.Data)
	}
}

func TestTransformClearsHasAwaitFlavor(t *testing.T) {
	types := irtypes.NewInterner(nil)
	prog := &ir.Program{Flavor: ir.Flavor{HasAwait: true}}

	tr := New(types, ir.NewCounter())
	rewritten := tr.Transform(prog)

	if rewritten.Flavor.HasAwait {
		t.Fatal("expected the async/await CPS transform to clear has_await")
	}
}

func TestBlockWithAwaitingInitializerSplitsDeclareDefine(t *testing.T) {
	types := irtypes.NewInterner(nil)
	bi := types.Builtins()
	asyncNat := types.Intern(irtypes.MakeAsync(bi.Nat))

	aName := types.Strings.Intern("a")
	aVar := &ir.Expr{Kind: ir.KVar, Type: asyncNat, Effect: irtypes.Triv, Data: ir.VarData{Name: aName}}
	awaitExpr := &ir.Expr{Kind: ir.KAwait, Type: bi.Nat, Effect: irtypes.Await, Data: ir.AwaitData{Operand: aVar}}

	xName := types.Strings.Intern("x")
	letDecl := ir.Decl{Kind: ir.DLet, Data: ir.LetDeclData{
		Pattern: ir.Pattern{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: xName}},
		Init:    awaitExpr,
	}}
	xVar := &ir.Expr{Kind: ir.KVar, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.VarData{Name: xName}}
	block := &ir.Expr{Kind: ir.KBlock, Type: bi.Nat, Effect: irtypes.Await, Data: ir.BlockData{Decls: []ir.Decl{letDecl}, Result: xVar}}

	tr := New(types, ir.NewCounter())
	k := synCont(&ir.Expr{Kind: ir.KVar, Type: irtypes.NoTypeID, Effect: irtypes.Triv, Data: ir.VarData{Name: types.Strings.Intern("k0")}})
	rewritten := tr.C(block, k, labelEnv{})

	outer, ok := rewritten.Data.(ir.BlockData)
	if !ok {
		t.Fatalf("expected a block, got %T", rewritten.Data)
	}
	if len(outer.Decls) != 1 {
		t.Fatalf("expected one DDeclare for x, got %d", len(outer.Decls))
	}
	declData, ok := outer.Decls[0].Data.(ir.DeclareDeclData)
	if !ok || declData.Name != xName {
		t.Fatalf("expected DDeclare(x), got %#v", outer.Decls[0].Data)
	}
}

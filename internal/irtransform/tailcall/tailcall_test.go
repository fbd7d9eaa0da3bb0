package tailcall

import (
	"testing"

	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

func newSelfRecursiveFunc(types *irtypes.Interner, strings *source.Interner, tailCall bool) (source.StringID, *ir.Expr) {
	bi := types.Builtins()
	fName := strings.Intern("f")
	nName := strings.Intern("n")

	nVar := &ir.Expr{Kind: ir.KVar, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.VarData{Name: nName}}
	zero := &ir.Expr{Kind: ir.KLit, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitNat(0)}}
	cond := &ir.Expr{Kind: ir.KRel, Type: bi.Bool, Effect: irtypes.Triv, Data: ir.RelData{Op: ir.RelEq, OperandType: bi.Nat, Left: nVar, Right: zero}}

	one := &ir.Expr{Kind: ir.KLit, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitNat(1)}}
	nMinus1 := &ir.Expr{Kind: ir.KBin, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.BinData{Op: ir.BinSub, OperandType: bi.Nat, Left: nVar, Right: one}}

	fVar := &ir.Expr{Kind: ir.KVar, Type: irtypes.NoTypeID, Effect: irtypes.Triv, Data: ir.VarData{Name: fName}}
	selfCall := &ir.Expr{Kind: ir.KCall, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.CallData{Conv: irtypes.FuncLocal, Func: fVar, TypeArgs: nil, Arg: nMinus1}}

	var elseBranch *ir.Expr
	if tailCall {
		elseBranch = selfCall
	} else {
		elseBranch = &ir.Expr{Kind: ir.KBin, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.BinData{Op: ir.BinAdd, OperandType: bi.Nat, Left: selfCall, Right: one}}
	}

	ifExpr := &ir.Expr{Kind: ir.KIf, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.IfData{Cond: cond, Then: zero, Else: elseBranch}}

	params := []ir.Pattern{{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: nName}}}
	funcData := ir.FuncData{
		Sort: irtypes.FuncLocal, Control: irtypes.CtlReturns, Name: fName,
		Params: params, ParamTypes: []irtypes.TypeID{bi.Nat}, ResultTypes: []irtypes.TypeID{bi.Nat}, Body: ifExpr,
	}
	funcType := types.RegisterFunc(irtypes.FuncLocal, irtypes.CtlReturns, nil, []irtypes.TypeID{bi.Nat}, []irtypes.TypeID{bi.Nat})
	return fName, &ir.Expr{Kind: ir.KFunc, Type: funcType, Effect: irtypes.Triv, Data: funcData}
}

func TestSelfTailCallIsRewrittenToLoop(t *testing.T) {
	types := irtypes.NewInterner(nil)
	_, fExpr := newSelfRecursiveFunc(types, types.Strings, true)

	tr := New(types, ir.NewCounter())
	rewritten := tr.rewriteExpr(env{tailPos: true, info: nil}, fExpr)

	funcData, ok := rewritten.Data.(ir.FuncData)
	if !ok {
		t.Fatalf("rewritten node is not a FuncData: %T", rewritten.Data)
	}
	body, ok := funcData.Body.Data.(ir.BlockData)
	if !ok {
		t.Fatalf("rewritten body should be a block of var-temp decls + loop, got %T", funcData.Body.Data)
	}
	if len(body.Decls) != 1 {
		t.Fatalf("expected exactly one var-temp decl, got %d", len(body.Decls))
	}
	if _, ok := body.Decls[0].Data.(ir.VarDeclData); !ok {
		t.Fatalf("expected the prelude decl to declare the mutable temp, got %T", body.Decls[0].Data)
	}
	if _, ok := body.Result.Data.(ir.LoopData); !ok {
		t.Fatalf("expected the block's result to be a loop, got %T", body.Result.Data)
	}
}

func TestNonTailSelfCallIsLeftUnchanged(t *testing.T) {
	types := irtypes.NewInterner(nil)
	_, fExpr := newSelfRecursiveFunc(types, types.Strings, false)

	tr := New(types, ir.NewCounter())
	rewritten := tr.rewriteExpr(env{tailPos: true, info: nil}, fExpr)

	funcData, ok := rewritten.Data.(ir.FuncData)
	if !ok {
		t.Fatalf("rewritten node is not a FuncData: %T", rewritten.Data)
	}
	if _, ok := funcData.Body.Data.(ir.BlockData); ok {
		t.Fatal("non-tail self call must not trigger the loop rewrite")
	}
	ifData, ok := funcData.Body.Data.(ir.IfData)
	if !ok {
		t.Fatalf("body should remain an If node, got %T", funcData.Body.Data)
	}
	binData, ok := ifData.Else.Data.(ir.BinData)
	if !ok {
		t.Fatalf("else branch should remain the unrewritten Bin(+1) expression, got %T", ifData.Else.Data)
	}
	if _, ok := binData.Left.Data.(ir.CallData); !ok {
		t.Fatal("the self call nested inside the + should remain an ordinary CallData")
	}
}

package irchecker

import (
	"testing"

	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

func freshTypes() (*irtypes.Interner, irtypes.Builtins) {
	types := irtypes.NewInterner(source.NewInterner())
	return types, types.Builtins()
}

func natLit(n uint64, t irtypes.TypeID) *ir.Expr {
	return &ir.Expr{Kind: ir.KLit, Type: t, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitNat(n)}}
}

func boolLit(b bool, t irtypes.TypeID) *ir.Expr {
	return &ir.Expr{Kind: ir.KLit, Type: t, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitBool(b)}}
}

func varExpr(name source.StringID, t irtypes.TypeID) *ir.Expr {
	return &ir.Expr{Kind: ir.KVar, Type: t, Effect: irtypes.Triv, Data: ir.VarData{Name: name}}
}

func TestCheckLiteralAcceptsMatchingAnnotation(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	prog := &ir.Program{Flavor: ir.DefaultFlavor()}
	scope := ir.NewScope()

	e := natLit(3, bi.Nat)
	if err := c.checkExpr(ir.NewContext(scope, prog.Flavor), e); err != nil {
		t.Fatalf("expected a well-typed literal to pass, got %v", err)
	}
}

func TestCheckLiteralRejectsMismatchedAnnotation(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	e := &ir.Expr{Kind: ir.KLit, Type: bi.Bool, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitNat(3)}}
	err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e)
	if err == nil {
		t.Fatal("expected a Nat literal annotated Bool to be rejected")
	}
}

func TestCheckVarRejectsUnboundName(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	name := types.Strings.Intern("missing")
	e := varExpr(name, bi.Nat)
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected a reference to an unbound variable to be rejected")
	}
}

func TestCheckVarAcceptsBoundName(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	name := types.Strings.Intern("n")
	scope := ir.NewScope().ExtendVal(name, bi.Nat)

	e := varExpr(name, bi.Nat)
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err != nil {
		t.Fatalf("expected a bound variable reference to pass, got %v", err)
	}
}

func TestCheckIfAcceptsMatchingBranches(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	e := &ir.Expr{
		Kind: ir.KIf, Type: bi.Nat, Effect: irtypes.Triv,
		Data: ir.IfData{Cond: boolLit(true, bi.Bool), Then: natLit(1, bi.Nat), Else: natLit(2, bi.Nat)},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err != nil {
		t.Fatalf("expected matching if branches to pass, got %v", err)
	}
}

func TestCheckIfRejectsNonBoolCondition(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	e := &ir.Expr{
		Kind: ir.KIf, Type: bi.Nat, Effect: irtypes.Triv,
		Data: ir.IfData{Cond: natLit(1, bi.Nat), Then: natLit(1, bi.Nat), Else: natLit(2, bi.Nat)},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected a Nat scrutinee to be rejected")
	}
}

func TestCheckIfRejectsBranchTypeMismatch(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	e := &ir.Expr{
		Kind: ir.KIf, Type: bi.Nat, Effect: irtypes.Triv,
		Data: ir.IfData{Cond: boolLit(true, bi.Bool), Then: natLit(1, bi.Nat), Else: boolLit(false, bi.Bool)},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected a Bool else-branch under a Nat annotation to be rejected")
	}
}

func TestCheckAwaitOutsideAsyncIsRejected(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	asyncType := types.Intern(irtypes.Type{Kind: irtypes.KindAsync, Elem: bi.Nat})
	operand := &ir.Expr{Kind: ir.KVar, Type: asyncType, Effect: irtypes.Triv, Data: ir.VarData{Name: types.Strings.Intern("p")}}
	scope = scope.ExtendVal(types.Strings.Intern("p"), asyncType)

	e := &ir.Expr{Kind: ir.KAwait, Type: bi.Nat, Effect: irtypes.Await, Data: ir.AwaitData{Operand: operand}}
	ctx := ir.NewContext(scope, ir.DefaultFlavor()).WithAsync(false)
	if err := c.checkExpr(ctx, e); err == nil {
		t.Fatal("expected await outside of an async block to be rejected")
	}
}

func TestCheckAwaitInsideAsyncIsAccepted(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	asyncType := types.Intern(irtypes.Type{Kind: irtypes.KindAsync, Elem: bi.Nat})
	name := types.Strings.Intern("p")
	operand := varExpr(name, asyncType)
	scope = scope.ExtendVal(name, asyncType)

	e := &ir.Expr{Kind: ir.KAwait, Type: bi.Nat, Effect: irtypes.Await, Data: ir.AwaitData{Operand: operand}}
	ctx := ir.NewContext(scope, ir.DefaultFlavor()).WithAsync(true)
	if err := c.checkExpr(ctx, e); err != nil {
		t.Fatalf("expected await inside an async block to pass, got %v", err)
	}
}

func TestCheckAwaitRejectedWhenFlavorHasErasedIt(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	asyncType := types.Intern(irtypes.Type{Kind: irtypes.KindAsync, Elem: bi.Nat})
	name := types.Strings.Intern("p")
	operand := varExpr(name, asyncType)
	scope = scope.ExtendVal(name, asyncType)

	e := &ir.Expr{Kind: ir.KAwait, Type: bi.Nat, Effect: irtypes.Await, Data: ir.AwaitData{Operand: operand}}
	flavor := ir.DefaultFlavor()
	flavor.HasAwait = false
	ctx := ir.NewContext(scope, flavor).WithAsync(true)
	if err := c.checkExpr(ctx, e); err == nil {
		t.Fatal("expected await to be rejected once the flavor has erased it")
	}
}

func TestCheckEffectAnnotationMismatchIsRejected(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	asyncType := types.Intern(irtypes.Type{Kind: irtypes.KindAsync, Elem: bi.Nat})
	name := types.Strings.Intern("p")
	operand := varExpr(name, asyncType)
	scope = scope.ExtendVal(name, asyncType)

	// annotated Triv, but await's inferred effect is Await.
	e := &ir.Expr{Kind: ir.KAwait, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.AwaitData{Operand: operand}}
	ctx := ir.NewContext(scope, ir.DefaultFlavor()).WithAsync(true)
	if err := c.checkExpr(ctx, e); err == nil {
		t.Fatal("expected an under-annotated effect to be rejected")
	}
}

func TestCheckArrayRejectsMutabilityMismatch(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	immutArray := types.Intern(irtypes.Type{Kind: irtypes.KindArray, Elem: bi.Nat})
	e := &ir.Expr{
		Kind: ir.KArray, Type: immutArray, Effect: irtypes.Triv,
		Data: ir.ArrayData{Elems: []*ir.Expr{natLit(1, bi.Nat)}, ElemType: bi.Nat, Mut: true},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected a mutable array literal annotated as an immutable array type to be rejected")
	}
}

func TestCheckArrayAcceptsMatchingImmutableArray(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	arrayType := types.Intern(irtypes.Type{Kind: irtypes.KindArray, Elem: bi.Nat})
	e := &ir.Expr{
		Kind: ir.KArray, Type: arrayType, Effect: irtypes.Triv,
		Data: ir.ArrayData{Elems: []*ir.Expr{natLit(1, bi.Nat)}, ElemType: bi.Nat, Mut: false},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err != nil {
		t.Fatalf("expected a matching immutable array literal to pass, got %v", err)
	}
}

func TestCheckAssignRejectsImmutableTarget(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	name := types.Strings.Intern("n")
	scope := ir.NewScope().ExtendVal(name, bi.Nat)

	e := &ir.Expr{
		Kind: ir.KAssign, Type: bi.Unit, Effect: irtypes.Triv,
		Data: ir.AssignData{Target: varExpr(name, bi.Nat), Source: natLit(1, bi.Nat)},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected assignment to an immutable target to be rejected")
	}
}

func TestCheckAssignAcceptsMutableTarget(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	mutNat := types.AsMut(bi.Nat)
	name := types.Strings.Intern("n")
	scope := ir.NewScope().ExtendVal(name, mutNat)

	e := &ir.Expr{
		Kind: ir.KAssign, Type: bi.Unit, Effect: irtypes.Triv,
		Data: ir.AssignData{Target: varExpr(name, mutNat), Source: natLit(1, bi.Nat)},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err != nil {
		t.Fatalf("expected assignment to a mutable target to pass, got %v", err)
	}
}

func TestCheckBlockGathersLetBeforeUse(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	name := types.Strings.Intern("x")
	pat := ir.Pattern{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: name}}
	decl := ir.Decl{Kind: ir.DLet, Data: ir.LetDeclData{Pattern: pat, Init: natLit(1, bi.Nat)}}
	result := varExpr(name, bi.Nat)

	e := &ir.Expr{
		Kind: ir.KBlock, Type: bi.Nat, Effect: irtypes.Triv,
		Data: ir.BlockData{Decls: []ir.Decl{decl}, Result: result},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err != nil {
		t.Fatalf("expected a block referencing its own let-binding to pass, got %v", err)
	}
}

func TestCheckBlockRejectsDuplicateBinding(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	name := types.Strings.Intern("x")
	pat := ir.Pattern{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: name}}
	decl1 := ir.Decl{Kind: ir.DLet, Data: ir.LetDeclData{Pattern: pat, Init: natLit(1, bi.Nat)}}
	decl2 := ir.Decl{Kind: ir.DLet, Data: ir.LetDeclData{Pattern: pat, Init: natLit(2, bi.Nat)}}

	e := &ir.Expr{
		Kind: ir.KBlock, Type: bi.Nat, Effect: irtypes.Triv,
		Data: ir.BlockData{Decls: []ir.Decl{decl1, decl2}, Result: natLit(3, bi.Nat)},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected two let-decls binding the same name in one block to be rejected")
	}
}

func TestCheckLoopRequiresNonAnnotation(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	body := &ir.Expr{Kind: ir.KTup, Type: bi.Unit, Effect: irtypes.Triv, Data: ir.TupData{Elems: nil}}
	e := &ir.Expr{Kind: ir.KLoop, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.LoopData{Body: body}}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected a loop annotated with something other than Non to be rejected")
	}
}

func TestCheckBreakRejectsLabelNotInScope(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	label := types.Strings.Intern("done")
	e := &ir.Expr{
		Kind: ir.KBreak, Type: bi.Non, Effect: irtypes.Triv,
		Data: ir.BreakData{Label: label, Arg: natLit(1, bi.Nat)},
	}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected a break to an out-of-scope label to be rejected")
	}
}

func TestCheckBreakAcceptsBoundLabel(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	label := types.Strings.Intern("done")
	ctx := ir.NewContext(scope, ir.DefaultFlavor()).WithLabel(label, bi.Nat)
	e := &ir.Expr{
		Kind: ir.KBreak, Type: bi.Non, Effect: irtypes.Triv,
		Data: ir.BreakData{Label: label, Arg: natLit(1, bi.Nat)},
	}
	if err := c.checkExpr(ctx, e); err != nil {
		t.Fatalf("expected a break to a bound label to pass, got %v", err)
	}
}

func TestCheckRetRejectsOutsideFunction(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")
	scope := ir.NewScope()

	e := &ir.Expr{Kind: ir.KRet, Type: bi.Non, Effect: irtypes.Triv, Data: ir.RetData{Arg: natLit(1, bi.Nat)}}
	if err := c.checkExpr(ir.NewContext(scope, ir.DefaultFlavor()), e); err == nil {
		t.Fatal("expected a return outside of a function body to be rejected")
	}
}

func TestCheckPatternRejectsDuplicateBindingWithinOnePattern(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")

	name := types.Strings.Intern("x")
	tup := ir.Pattern{
		Kind: ir.PTup,
		Type: types.Seq([]irtypes.TypeID{bi.Nat, bi.Nat}),
		Data: ir.TupPatData{Elems: []ir.Pattern{
			{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: name}},
			{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: name}},
		}},
	}
	if _, err := c.checkPattern(tup); err == nil {
		t.Fatal("expected a tuple pattern binding the same name twice to be rejected")
	}
}

func TestCheckPatternAltRejectsBoundVariable(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")

	name := types.Strings.Intern("x")
	alt := ir.Pattern{
		Kind: ir.PAlt,
		Type: bi.Nat,
		Data: ir.AltPatData{Alts: []ir.Pattern{
			{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: name}},
			{Kind: ir.PWild, Type: bi.Nat, Data: ir.WildData{}},
		}},
	}
	if _, err := c.checkPattern(alt); err == nil {
		t.Fatal("expected an alternative pattern that binds a variable to be rejected")
	}
}

func TestCheckTypRejectsUnresolvedPre(t *testing.T) {
	types, _ := freshTypes()
	c := New(types, "test")

	pre := types.Intern(irtypes.Type{Kind: irtypes.KindPre})
	if err := c.checkTyp(source.Span{}, pre); err == nil {
		t.Fatal("expected an unresolved Pre annotation to be rejected")
	}
}

func TestCheckProgramTopLevelArgumentsAndFields(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")

	argName := types.Strings.Intern("init")
	arg := ir.Pattern{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: argName}}
	fieldLabel := types.Strings.Intern("get")
	field := ir.ActorField{Label: fieldLabel, Value: varExpr(argName, bi.Nat)}

	prog := &ir.Program{
		Arguments:   []ir.Pattern{arg},
		DeclGroups:  nil,
		ActorFields: []ir.ActorField{field},
		Flavor:      ir.DefaultFlavor(),
	}
	if err := c.Check(prog, ir.NewScope()); err != nil {
		t.Fatalf("expected a program whose actor field reads its own argument to pass, got %v", err)
	}
}

func TestCheckProgramRejectsFieldReferencingUnknownName(t *testing.T) {
	types, bi := freshTypes()
	c := New(types, "test")

	fieldLabel := types.Strings.Intern("get")
	unknown := types.Strings.Intern("missing")
	field := ir.ActorField{Label: fieldLabel, Value: varExpr(unknown, bi.Nat)}

	prog := &ir.Program{ActorFields: []ir.ActorField{field}, Flavor: ir.DefaultFlavor()}
	if err := c.Check(prog, ir.NewScope()); err == nil {
		t.Fatal("expected a program whose actor field references an unbound name to be rejected")
	}
}

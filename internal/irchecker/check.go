package irchecker

import (
	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// Checker re-verifies an IR program against the data model's structural
// invariants. A Checker is single-use per Check call but the
// zero-allocation struct itself may be reused across phases by changing
// Phase.
type Checker struct {
	Types *irtypes.Interner
	Phase string
}

// New returns a Checker for the given phase name, used only in error
// messages.
func New(types *irtypes.Interner, phase string) *Checker {
	return &Checker{Types: types, Phase: phase}
}

// Check walks prog under the top-level scope and either completes silently
// or returns a single *Error.
func (c *Checker) Check(prog *ir.Program, scope ir.Scope) error {
	ctx := ir.NewContext(scope, prog.Flavor)

	for _, arg := range prog.Arguments {
		bound, err := c.checkPattern(arg)
		if err != nil {
			return err
		}
		ctx = ctx.WithScope(ctx.Scope.ExtendVals(bound))
	}

	for _, block := range prog.DeclGroups {
		nextCtx, err := c.checkBlockDecls(ctx, block)
		if err != nil {
			return err
		}
		ctx = nextCtx
	}

	for _, field := range prog.ActorFields {
		fieldCtx := ctx.WithAsync(false).ClearLabels()
		if err := c.checkExpr(fieldCtx, field.Value); err != nil {
			return err
		}
	}
	return nil
}

// checkBlockDecls runs the two-phase gather+check over one declaration
// block and returns the context extended with its bindings.
func (c *Checker) checkBlockDecls(ctx ir.Context, decls []ir.Decl) (ir.Context, error) {
	gathered, err := c.gather(ctx.Scope, decls)
	if err != nil {
		return ir.Context{}, err
	}
	bodyCtx := ctx.WithScope(gathered)
	for _, d := range decls {
		if err := c.checkDecl(bodyCtx, d); err != nil {
			return ir.Context{}, err
		}
	}
	return bodyCtx, nil
}

func (c *Checker) checkDecl(ctx ir.Context, d ir.Decl) error {
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		if err := c.checkExpr(ctx, data.Init); err != nil {
			return err
		}
		if !c.Types.Subtype(data.Init.Type, data.Pattern.Type) {
			return fail(c.Phase, d.Pos, "let-bound initializer's type is not a subtype of the pattern's annotation")
		}
		_, err := c.checkPattern(data.Pattern)
		return err
	case ir.VarDeclData:
		if err := c.checkExpr(ctx, data.Init); err != nil {
			return err
		}
		if !c.Types.IsMut(data.Type) {
			return fail(c.Phase, d.Pos, "var declaration's recorded type must be a mutable cell")
		}
		if !c.Types.Subtype(data.Init.Type, c.Types.AsImmut(data.Type)) {
			return fail(c.Phase, d.Pos, "var initializer's type is not a subtype of the cell's element type")
		}
		return nil
	case ir.TypeDeclData:
		_, ok := c.Types.LookupCon(data.Con)
		if !ok {
			return fail(c.Phase, d.Pos, "type declaration references an unknown constructor")
		}
		return nil
	case ir.DeclareDeclData:
		return c.checkTyp(d.Pos, data.Type)
	case ir.DefineDeclData:
		if data.Init == nil {
			return fail(c.Phase, d.Pos, "define declaration has no initializer")
		}
		declared, ok := ctx.Scope.Vals[data.Name]
		if !ok {
			return fail(c.Phase, d.Pos, "define declaration's name was never declared")
		}
		if err := c.checkExpr(ctx, data.Init); err != nil {
			return err
		}
		target := declared
		if data.Mut {
			target = c.Types.AsImmut(declared)
		}
		if !c.Types.Subtype(data.Init.Type, target) {
			return fail(c.Phase, d.Pos, "define declaration's initializer is not a subtype of the declared type")
		}
		return nil
	default:
		return fail(c.Phase, d.Pos, "unrecognized declaration payload")
	}
}

// checkExpr implements the per-node rule table.
func (c *Checker) checkExpr(ctx ir.Context, e *ir.Expr) error {
	if e == nil {
		return nil
	}
	if err := c.checkTyp(e.Pos, e.Type); err != nil {
		return err
	}
	inferred, err := c.checkNode(ctx, e)
	if err != nil {
		return err
	}
	if inferred > e.Effect {
		return fail(c.Phase, e.Pos, "inferred effect %s exceeds the annotated effect %s", inferred, e.Effect)
	}
	return nil
}

func (c *Checker) checkNode(ctx ir.Context, e *ir.Expr) (irtypes.Effect, error) {
	switch data := e.Data.(type) {
	case ir.LitData:
		prim := c.Types.Intern(irtypes.MakePrim(data.Value.Prim))
		if !c.Types.Subtype(prim, e.Type) {
			return 0, fail(c.Phase, e.Pos, "literal's primitive type is not a subtype of its annotation")
		}
		return irtypes.Triv, nil

	case ir.VarData:
		t, ok := ctx.Scope.Vals[data.Name]
		if !ok {
			return 0, fail(c.Phase, e.Pos, "variable reference to a name not in scope")
		}
		if !c.Types.Subtype(t, e.Type) && !c.Types.Subtype(c.Types.AsImmut(t), e.Type) {
			return 0, fail(c.Phase, e.Pos, "variable's scope type is not a subtype of its annotation")
		}
		return irtypes.Triv, nil

	case ir.PrimData:
		return irtypes.Triv, nil

	case ir.UnData:
		if err := c.checkExpr(ctx, data.Operand); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Operand.Type, data.OperandType) {
			return 0, fail(c.Phase, e.Pos, "unary operator's operand type does not match its declared operand type")
		}
		return data.Operand.Effect, nil

	case ir.BinData:
		if err := c.checkExpr(ctx, data.Left); err != nil {
			return 0, err
		}
		if err := c.checkExpr(ctx, data.Right); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Left.Type, data.OperandType) || !c.Types.Subtype(data.Right.Type, data.OperandType) {
			return 0, fail(c.Phase, e.Pos, "binary operator's operand type does not match its declared operand type")
		}
		return irtypes.MaxEffect(data.Left.Effect, data.Right.Effect), nil

	case ir.RelData:
		if err := c.checkExpr(ctx, data.Left); err != nil {
			return 0, err
		}
		if err := c.checkExpr(ctx, data.Right); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Left.Type, data.OperandType) || !c.Types.Subtype(data.Right.Type, data.OperandType) {
			return 0, fail(c.Phase, e.Pos, "relational operator's operand type does not match its declared operand type")
		}
		return irtypes.MaxEffect(data.Left.Effect, data.Right.Effect), nil

	case ir.ShowData:
		if err := c.checkExpr(ctx, data.Operand); err != nil {
			return 0, err
		}
		if !ctx.Flavor.HasShow {
			return 0, fail(c.Phase, e.Pos, "show operator used but the current flavor has already erased it")
		}
		if !c.Types.Subtype(data.Operand.Type, data.OperandType) {
			return 0, fail(c.Phase, e.Pos, "show operator's operand type does not match its declared operand type")
		}
		return data.Operand.Effect, nil

	case ir.TupData:
		eff := irtypes.Triv
		elemTypes := make([]irtypes.TypeID, len(data.Elems))
		for i, sub := range data.Elems {
			if err := c.checkExpr(ctx, sub); err != nil {
				return 0, err
			}
			elemTypes[i] = sub.Type
			eff = irtypes.MaxEffect(eff, sub.Effect)
		}
		if !c.Types.Subtype(c.Types.Seq(elemTypes), e.Type) {
			return 0, fail(c.Phase, e.Pos, "tuple's element types are not a subtype of its annotation")
		}
		return eff, nil

	case ir.ProjData:
		if err := c.checkExpr(ctx, data.Tuple); err != nil {
			return 0, err
		}
		elems, ok := c.Types.AsTupSub(data.Tuple.Type)
		if !ok || data.Index >= len(elems) {
			return 0, fail(c.Phase, e.Pos, "tuple projection index out of range for the tuple's type")
		}
		if !c.Types.Subtype(elems[data.Index], e.Type) {
			return 0, fail(c.Phase, e.Pos, "projected component type is not a subtype of the annotation")
		}
		return data.Tuple.Effect, nil

	case ir.OptData:
		tt, ok := c.Types.Lookup(e.Type)
		if !ok || tt.Kind != irtypes.KindOption {
			return 0, fail(c.Phase, e.Pos, "option injection's annotation is not an option type")
		}
		if data.Inner == nil {
			return irtypes.Triv, nil
		}
		if err := c.checkExpr(ctx, data.Inner); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Inner.Type, tt.Elem) {
			return 0, fail(c.Phase, e.Pos, "option injection's inner type is not a subtype of its element type")
		}
		return data.Inner.Effect, nil

	case ir.TagData:
		arms, ok := c.Types.AsVariantSub(e.Type)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "variant injection's annotation does not destructure as a variant")
		}
		armType, ok := irtypes.LookupArm(arms, data.Name)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "variant injection names an arm absent from its annotation")
		}
		if data.Inner == nil {
			return irtypes.Triv, nil
		}
		if err := c.checkExpr(ctx, data.Inner); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Inner.Type, armType) {
			return 0, fail(c.Phase, e.Pos, "variant injection's inner type is not a subtype of its arm's type")
		}
		return data.Inner.Effect, nil

	case ir.DotData:
		if err := c.checkExpr(ctx, data.Object); err != nil {
			return 0, err
		}
		sort, fields, ok := c.Types.AsObjSub(data.Object.Type)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "field access on a non-object type")
		}
		if sort == irtypes.ObjActor {
			return 0, fail(c.Phase, e.Pos, "non-actor field access (DotE) used on an actor object; use ActorDotE")
		}
		ft, ok := irtypes.LookupField(fields, data.Label)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "field access names a field absent from the object's type")
		}
		if !c.Types.Subtype(ft, e.Type) {
			return 0, fail(c.Phase, e.Pos, "field's declared type is not a subtype of the access's annotation")
		}
		return data.Object.Effect, nil

	case ir.ActorDotData:
		if err := c.checkExpr(ctx, data.Object); err != nil {
			return 0, err
		}
		sort, fields, ok := c.Types.AsObjSub(data.Object.Type)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "actor field access on a non-object type")
		}
		if sort != irtypes.ObjActor {
			return 0, fail(c.Phase, e.Pos, "actor field access (ActorDotE) used on a non-actor object; use DotE")
		}
		ft, ok := irtypes.LookupField(fields, data.Label)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "actor field access names a field absent from the actor's type")
		}
		if !c.Types.Subtype(ft, e.Type) {
			return 0, fail(c.Phase, e.Pos, "actor field's declared type is not a subtype of the access's annotation")
		}
		return data.Object.Effect, nil

	case ir.ArrayData:
		eff := irtypes.Triv
		for _, sub := range data.Elems {
			if err := c.checkExpr(ctx, sub); err != nil {
				return 0, err
			}
			if !c.Types.Subtype(sub.Type, data.ElemType) {
				return 0, fail(c.Phase, e.Pos, "array element's type is not a subtype of the array's declared element type")
			}
			eff = irtypes.MaxEffect(eff, sub.Effect)
		}
		elemType, ok := c.Types.AsArraySub(e.Type)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "array literal's annotation is not an array type")
		}
		if data.Mut != c.Types.IsMut(elemType) {
			return 0, fail(c.Phase, e.Pos, "array literal's mutability does not match its annotation")
		}
		if !c.Types.Subtype(c.Types.AsImmut(elemType), data.ElemType) && !c.Types.Subtype(data.ElemType, c.Types.AsImmut(elemType)) {
			return 0, fail(c.Phase, e.Pos, "array literal's element type does not match its annotation")
		}
		return eff, nil

	case ir.IdxData:
		if err := c.checkExpr(ctx, data.Array); err != nil {
			return 0, err
		}
		if err := c.checkExpr(ctx, data.Index); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Index.Type, c.Types.Builtins().Nat) {
			return 0, fail(c.Phase, e.Pos, "array index's type is not a subtype of Nat")
		}
		elemType, ok := c.Types.AsArraySub(data.Array.Type)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "indexing a non-array type")
		}
		if !c.Types.Subtype(c.Types.AsImmut(elemType), e.Type) {
			return 0, fail(c.Phase, e.Pos, "array element's type is not a subtype of the index expression's annotation")
		}
		return irtypes.MaxEffect(data.Array.Effect, data.Index.Effect), nil

	case ir.AssignData:
		if err := c.checkExpr(ctx, data.Target); err != nil {
			return 0, err
		}
		if err := c.checkExpr(ctx, data.Source); err != nil {
			return 0, err
		}
		if !c.Types.IsMut(data.Target.Type) {
			return 0, fail(c.Phase, e.Pos, "expected mutable assignment target")
		}
		if !c.Types.Subtype(data.Source.Type, c.Types.AsImmut(data.Target.Type)) {
			return 0, fail(c.Phase, e.Pos, "assignment source's type is not a subtype of the target cell's element type")
		}
		if e.Type != c.Types.Builtins().Unit {
			return 0, fail(c.Phase, e.Pos, "assignment's annotation must be unit")
		}
		return irtypes.MaxEffect(data.Target.Effect, data.Source.Effect), nil

	case ir.CallData:
		return c.checkCall(ctx, e, data)

	case ir.BlockData:
		bodyCtx, err := c.checkBlockDecls(ctx, data.Decls)
		if err != nil {
			return 0, err
		}
		if err := c.checkExpr(bodyCtx, data.Result); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Result.Type, e.Type) {
			return 0, fail(c.Phase, e.Pos, "block's result type is not a subtype of its annotation")
		}
		eff := data.Result.Effect
		for _, d := range data.Decls {
			eff = irtypes.MaxEffect(eff, declInitEffect(d))
		}
		return eff, nil

	case ir.IfData:
		if err := c.checkExpr(ctx, data.Cond); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Cond.Type, c.Types.Builtins().Bool) {
			return 0, fail(c.Phase, e.Pos, "if scrutinee's type is not a subtype of Bool")
		}
		if err := c.checkExpr(ctx, data.Then); err != nil {
			return 0, err
		}
		if err := c.checkExpr(ctx, data.Else); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Then.Type, e.Type) || !c.Types.Subtype(data.Else.Type, e.Type) {
			return 0, fail(c.Phase, e.Pos, "an if branch's type is not a subtype of the if's annotation")
		}
		return irtypes.MaxEffects(data.Cond.Effect, data.Then.Effect, data.Else.Effect), nil

	case ir.SwitchData:
		if err := c.checkExpr(ctx, data.Scrutinee); err != nil {
			return 0, err
		}
		eff := data.Scrutinee.Effect
		for _, cs := range data.Cases {
			if !c.Types.Subtype(cs.Pattern.Type, data.Scrutinee.Type) {
				return 0, fail(c.Phase, cs.Pattern.Pos, "case pattern's type is not a subtype of the scrutinee's type")
			}
			bound, err := c.checkPattern(cs.Pattern)
			if err != nil {
				return 0, err
			}
			caseCtx := ctx.WithScope(ctx.Scope.ExtendVals(bound))
			if err := c.checkExpr(caseCtx, cs.Body); err != nil {
				return 0, err
			}
			if !c.Types.Subtype(cs.Body.Type, e.Type) {
				return 0, fail(c.Phase, cs.Body.Pos, "case body's type is not a subtype of the switch's annotation")
			}
			eff = irtypes.MaxEffect(eff, cs.Body.Effect)
		}
		return eff, nil

	case ir.LoopData:
		if err := c.checkExpr(ctx, data.Body); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Body.Type, c.Types.Builtins().Unit) {
			return 0, fail(c.Phase, e.Pos, "loop body's type is not a subtype of unit")
		}
		if e.Type != c.Types.Builtins().Non {
			return 0, fail(c.Phase, e.Pos, "loop's annotation must be Non")
		}
		return data.Body.Effect, nil

	case ir.LabelData:
		labelCtx := ctx.WithLabel(data.Label, data.LabelType)
		if err := c.checkExpr(labelCtx, data.Body); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Body.Type, data.LabelType) {
			return 0, fail(c.Phase, e.Pos, "labeled body's type is not a subtype of the label's type")
		}
		if !c.Types.Subtype(data.LabelType, e.Type) {
			return 0, fail(c.Phase, e.Pos, "label's type is not a subtype of the labeled expression's annotation")
		}
		return data.Body.Effect, nil

	case ir.BreakData:
		info, ok := ctx.Labels[data.Label]
		if !ok {
			return 0, fail(c.Phase, e.Pos, "break to a label not in scope")
		}
		if err := c.checkExpr(ctx, data.Arg); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Arg.Type, info.Type) {
			return 0, fail(c.Phase, e.Pos, "break argument's type is not a subtype of the label's type")
		}
		if e.Type != c.Types.Builtins().Non {
			return 0, fail(c.Phase, e.Pos, "break's annotation must be Non")
		}
		return data.Arg.Effect, nil

	case ir.RetData:
		if ctx.Return == nil {
			return 0, fail(c.Phase, e.Pos, "return used outside of a function body")
		}
		if err := c.checkExpr(ctx, data.Arg); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Arg.Type, *ctx.Return) {
			return 0, fail(c.Phase, e.Pos, "return argument's type is not a subtype of the return slot's type")
		}
		if e.Type != c.Types.Builtins().Non {
			return 0, fail(c.Phase, e.Pos, "return's annotation must be Non")
		}
		return data.Arg.Effect, nil

	case ir.AsyncData:
		if !ctx.Flavor.HasAwait {
			return 0, fail(c.Phase, e.Pos, "async block used but the current flavor has already erased await")
		}
		bodyCtx := ctx.ClearLabels().WithReturn(data.Body.Type).WithAsync(true)
		if err := c.checkExpr(bodyCtx, data.Body); err != nil {
			return 0, err
		}
		elem, ok := c.Types.AsAsyncSub(e.Type)
		if !ok || !c.Types.Subtype(data.Body.Type, elem) {
			return 0, fail(c.Phase, e.Pos, "async block's annotation is not Async of its body's type")
		}
		return irtypes.Triv, nil

	case ir.AwaitData:
		if !ctx.Flavor.HasAwait {
			return 0, fail(c.Phase, e.Pos, "await used but the current flavor has already erased await")
		}
		if !ctx.Async {
			return 0, fail(c.Phase, e.Pos, "await used outside of an async block")
		}
		if err := c.checkExpr(ctx, data.Operand); err != nil {
			return 0, err
		}
		elem, ok := c.Types.AsAsyncSub(data.Operand.Type)
		if !ok {
			return 0, fail(c.Phase, e.Pos, "await operand is not an async type")
		}
		if !c.Types.Subtype(elem, e.Type) {
			return 0, fail(c.Phase, e.Pos, "await's resolved type is not a subtype of its annotation")
		}
		return irtypes.Await, nil

	case ir.AssertData:
		if err := c.checkExpr(ctx, data.Cond); err != nil {
			return 0, err
		}
		if !c.Types.Subtype(data.Cond.Type, c.Types.Builtins().Bool) {
			return 0, fail(c.Phase, e.Pos, "assert condition's type is not a subtype of Bool")
		}
		return data.Cond.Effect, nil

	case ir.FuncData:
		return c.checkFunc(ctx, e, data)

	case ir.ActorData:
		return c.checkActorOrObj(ctx, e, irtypes.ObjActor, data.Fields)

	case ir.NewObjData:
		return c.checkActorOrObj(ctx, e, data.Sort, objFieldsOf(data.Fields))

	default:
		return 0, fail(c.Phase, e.Pos, "unrecognized expression payload")
	}
}

func declInitEffect(d ir.Decl) irtypes.Effect {
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		return data.Init.Effect
	case ir.VarDeclData:
		return data.Init.Effect
	case ir.DefineDeclData:
		if data.Init != nil {
			return data.Init.Effect
		}
	}
	return irtypes.Triv
}

func objFieldsOf(fields []ir.ObjField) []ir.ActorField {
	out := make([]ir.ActorField, len(fields))
	for i, f := range fields {
		out[i] = ir.ActorField{Label: f.Label, Value: f.Value}
	}
	return out
}

func (c *Checker) checkCall(ctx ir.Context, e *ir.Expr, data ir.CallData) (irtypes.Effect, error) {
	if err := c.checkExpr(ctx, data.Func); err != nil {
		return 0, err
	}
	if err := c.checkExpr(ctx, data.Arg); err != nil {
		return 0, err
	}
	fn, ok := c.Types.AsFuncSub(data.Func.Type)
	if !ok {
		return 0, fail(c.Phase, e.Pos, "call target's type does not destructure as a function")
	}
	if fn.Sort != data.Conv {
		return 0, fail(c.Phase, e.Pos, "call convention does not match the callee's declared sort")
	}
	if len(data.TypeArgs) != len(fn.Binds) {
		return 0, fail(c.Phase, e.Pos, "call's type argument count does not match the callee's binder count")
	}
	for i, ta := range data.TypeArgs {
		bound := c.Types.Open(data.TypeArgs, fn.Binds[i].Bound)
		if !c.Types.Subtype(ta, bound) {
			return 0, fail(c.Phase, e.Pos, "call's type argument does not satisfy the corresponding binder's bound")
		}
	}
	domain := c.Types.Open(data.TypeArgs, c.Types.Seq(fn.Domain))
	codomain := c.Types.Open(data.TypeArgs, c.Types.Seq(fn.Codomain))
	if !c.Types.Subtype(data.Arg.Type, domain) {
		return 0, fail(c.Phase, e.Pos, "call argument's type is not a subtype of the callee's domain")
	}
	if !c.Types.Subtype(codomain, e.Type) {
		return 0, fail(c.Phase, e.Pos, "call's codomain is not a subtype of its annotation")
	}
	if data.Conv == irtypes.FuncShared {
		if !c.Types.IsConcrete(domain) || !c.Types.IsConcrete(codomain) {
			return 0, fail(c.Phase, e.Pos, "shared call's domain and codomain must be concrete")
		}
	}
	return irtypes.MaxEffect(data.Func.Effect, data.Arg.Effect), nil
}

func (c *Checker) checkFunc(ctx ir.Context, e *ir.Expr, data ir.FuncData) (irtypes.Effect, error) {
	bodyScope := ctx.Scope
	for i, p := range data.Params {
		bound, err := c.checkPattern(p)
		if err != nil {
			return 0, err
		}
		if i < len(data.ParamTypes) && !c.Types.Subtype(p.Type, data.ParamTypes[i]) {
			return 0, fail(c.Phase, p.Pos, "function parameter pattern's type does not match the declared parameter type")
		}
		bodyScope = bodyScope.ExtendVals(bound)
	}
	codomain := c.Types.Seq(data.ResultTypes)
	bodyCtx := ir.Context{Scope: bodyScope, Labels: map[source.StringID]ir.LabelInfo{}, Flavor: ctx.Flavor}.WithReturn(codomain).WithAsync(false)
	if err := c.checkExpr(bodyCtx, data.Body); err != nil {
		return 0, err
	}
	if data.Control == irtypes.CtlReturns && !c.Types.Subtype(data.Body.Type, codomain) {
		return 0, fail(c.Phase, e.Pos, "function body's type is not a subtype of its declared codomain")
	}
	domain := make([]irtypes.TypeID, len(data.ParamTypes))
	copy(domain, data.ParamTypes)
	funcType := c.Types.RegisterFunc(data.Sort, data.Control, data.Binds, domain, data.ResultTypes)
	if !c.Types.Subtype(funcType, e.Type) {
		return 0, fail(c.Phase, e.Pos, "function value's constructed type is not a subtype of its annotation")
	}
	if data.Sort == irtypes.FuncShared {
		if !c.Types.IsConcrete(c.Types.Seq(data.ParamTypes)) || !c.Types.IsConcrete(c.Types.Seq(data.ResultTypes)) {
			return 0, fail(c.Phase, e.Pos, "shared function's domain and codomain must be concrete")
		}
		if data.Control == irtypes.CtlPromises {
			if len(data.ResultTypes) != 1 {
				return 0, fail(c.Phase, e.Pos, "a promising shared function must have exactly one result type")
			}
			elem, ok := c.Types.AsAsyncSub(data.ResultTypes[0])
			if !ok || !c.Types.Subtype(elem, c.Types.Builtins().Shared) {
				return 0, fail(c.Phase, e.Pos, "a promising shared function's result must be Async of a shared type")
			}
		}
	}
	return irtypes.Triv, nil
}

func (c *Checker) checkActorOrObj(ctx ir.Context, e *ir.Expr, sort irtypes.ObjSort, fields []ir.ActorField) (irtypes.Effect, error) {
	fieldCtx := ctx
	if sort == irtypes.ObjActor {
		fieldCtx = ctx.WithAsync(false)
	}
	eff := irtypes.Triv
	fieldTypes := make([]irtypes.Field, len(fields))
	for i, f := range fields {
		if err := c.checkExpr(fieldCtx, f.Value); err != nil {
			return 0, err
		}
		fieldTypes[i] = irtypes.Field{Label: f.Label, Type: f.Value.Type}
		eff = irtypes.MaxEffect(eff, f.Value.Effect)
	}
	if !irtypes.FieldsSortedDistinct(fieldTypes) {
		return 0, fail(c.Phase, e.Pos, "object type's fields are not distinct and sorted")
	}
	objType := c.Types.RegisterObject(sort, fieldTypes)
	if !c.Types.Subtype(objType, e.Type) {
		return 0, fail(c.Phase, e.Pos, "constructed object's type is not a subtype of its annotation")
	}
	return eff, nil
}

package ir

import (
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// Builder bundles the shared state smart constructors need: an interner for
// deriving result types (Seq, MakeMut, ...) and a counter for fresh names.
// It carries no scope/context; callers are responsible for those.
type Builder struct {
	Types *irtypes.Interner
	Names *Counter
}

// NewBuilder returns a Builder over the given interner and counter.
func NewBuilder(types *irtypes.Interner, names *Counter) *Builder {
	return &Builder{Types: types, Names: names}
}

// FreshVar generates a unique variable expression of type t, named from
// hint.
func (b *Builder) FreshVar(hint string, t irtypes.TypeID) *Expr {
	name := b.Types.Strings.Intern(b.Names.FreshName(hint))
	return &Expr{Kind: KVar, Type: t, Effect: irtypes.Triv, Data: VarData{Name: name}}
}

// LetExpr wraps body in a single-declaration block `let v = e; body`. Its
// type and effect are body's, lubbed with e's effect.
func (b *Builder) LetExpr(v Pattern, e *Expr, body *Expr) *Expr {
	decl := Decl{Kind: DLet, Data: LetDeclData{Pattern: v, Init: e}}
	return b.BlockExpr([]Decl{decl}, body)
}

// BlockExpr assembles a block from decls and a result expression. Its
// effect is the lub of every declaration initializer's effect and the
// result's.
func (b *Builder) BlockExpr(decls []Decl, result *Expr) *Expr {
	eff := result.Effect
	for _, d := range decls {
		eff = irtypes.MaxEffect(eff, declEffect(d))
	}
	return &Expr{Kind: KBlock, Type: result.Type, Effect: eff, Data: BlockData{Decls: decls, Result: result}}
}

func declEffect(d Decl) irtypes.Effect {
	switch data := d.Data.(type) {
	case LetDeclData:
		return data.Init.Effect
	case VarDeclData:
		return data.Init.Effect
	case DefineDeclData:
		if data.Init != nil {
			return data.Init.Effect
		}
	}
	return irtypes.Triv
}

// IfExpr builds a conditional; annotation is the caller-supplied result
// type t, and effect is the lub of the scrutinee's and both branches'.
func (b *Builder) IfExpr(cond, then, els *Expr, t irtypes.TypeID) *Expr {
	eff := irtypes.MaxEffects(cond.Effect, then.Effect, els.Effect)
	return &Expr{Kind: KIf, Type: t, Effect: eff, Data: IfData{Cond: cond, Then: then, Else: els}}
}

// FuncExpr builds a function value. A function literal is always Triv: its
// body's effect only matters when the function is later called.
func (b *Builder) FuncExpr(data FuncData, funcType irtypes.TypeID) *Expr {
	return &Expr{Kind: KFunc, Type: funcType, Effect: irtypes.Triv, Data: data}
}

// TupleExpr builds a tuple literal; its type is Seq(elem types), and its
// effect is the lub of its elements'.
func (b *Builder) TupleExpr(elems []*Expr) *Expr {
	ts := make([]irtypes.TypeID, len(elems))
	eff := irtypes.Triv
	for i, e := range elems {
		ts[i] = e.Type
		eff = irtypes.MaxEffect(eff, e.Effect)
	}
	return &Expr{Kind: KTup, Type: b.Types.Seq(ts), Effect: eff, Data: TupData{Elems: elems}}
}

// BreakExpr builds `break label(arg)`; its annotation is Non (it never
// produces a value at its own position).
func (b *Builder) BreakExpr(label source.StringID, arg *Expr) *Expr {
	return &Expr{Kind: KBreak, Type: b.Types.Builtins().Non, Effect: arg.Effect, Data: BreakData{Label: label, Arg: arg}}
}

// RetExpr builds `return arg`; annotation is Non.
func (b *Builder) RetExpr(arg *Expr) *Expr {
	return &Expr{Kind: KRet, Type: b.Types.Builtins().Non, Effect: arg.Effect, Data: RetData{Arg: arg}}
}

// AssignExpr builds `target := source`; annotation is Unit.
func (b *Builder) AssignExpr(target, sourceExpr *Expr) *Expr {
	eff := irtypes.MaxEffect(target.Effect, sourceExpr.Effect)
	return &Expr{Kind: KAssign, Type: b.Types.Builtins().Unit, Effect: eff, Data: AssignData{Target: target, Source: sourceExpr}}
}

// Application builds a call whose effect is the lub of f's and arg's.
// resultType is the (already-instantiated) codomain, wrapped by the caller
// as Seq if the callee returns multiple results.
func (b *Builder) Application(conv irtypes.FuncSort, f *Expr, typeArgs []irtypes.TypeID, arg *Expr, resultType irtypes.TypeID) *Expr {
	eff := irtypes.MaxEffect(f.Effect, arg.Effect)
	return &Expr{Kind: KCall, Type: resultType, Effect: eff, Data: CallData{Conv: conv, Func: f, TypeArgs: typeArgs, Arg: arg}}
}

// Project builds the i-th projection of a tuple expression.
func (b *Builder) Project(tuple *Expr, i int) *Expr {
	elems, ok := b.Types.AsTupSub(tuple.Type)
	t := irtypes.NoTypeID
	if ok && i < len(elems) {
		t = elems[i]
	}
	return &Expr{Kind: KProj, Type: t, Effect: tuple.Effect, Data: ProjData{Tuple: tuple, Index: i}}
}

// Idx builds `arr[index]`.
func (b *Builder) Idx(arr, index *Expr) *Expr {
	elem, _ := b.Types.AsArraySub(arr.Type)
	eff := irtypes.MaxEffect(arr.Effect, index.Effect)
	return &Expr{Kind: KIdx, Type: b.Types.AsImmut(elem), Effect: eff, Data: IdxData{Array: arr, Index: index}}
}

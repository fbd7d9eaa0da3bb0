// Package asynccps eliminates async/await by rewriting every expression
// that may suspend into continuation-passing style, leaving pure subtrees
// in direct style.
package asynccps

import (
	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// Transformer carries the interner and fresh-name counter the pass needs.
type Transformer struct {
	Types *irtypes.Interner
	Names *ir.Counter
}

// New returns a Transformer.
func New(types *irtypes.Interner, names *ir.Counter) *Transformer {
	return &Transformer{Types: types, Names: names}
}

func (t *Transformer) fresh(hint string) source.StringID {
	return t.Types.Strings.Intern(t.Names.FreshName(hint))
}

// cont is a continuation: either a meta-level Go function invoked exactly
// once, or a syntactic IR variable of function type.
type cont struct {
	meta func(*ir.Expr) *ir.Expr
	syn  *ir.Expr
}

func metaCont(f func(*ir.Expr) *ir.Expr) cont { return cont{meta: f} }
func synCont(v *ir.Expr) cont                 { return cont{syn: v} }

func (t *Transformer) invoke(k cont, value *ir.Expr) *ir.Expr {
	if k.meta != nil {
		return k.meta(value)
	}
	non := t.Types.Builtins().Non
	return &ir.Expr{Kind: ir.KCall, Pos: value.Pos, Type: non, Effect: value.Effect,
		Data: ir.CallData{Conv: irtypes.FuncLocal, Func: k.syn, TypeArgs: nil, Arg: value}}
}

// letcont reifies a meta continuation of the given parameter type into a
// fresh local function, then calls use with the resulting syntactic
// continuation; an already-syntactic k is passed through unchanged.
func (t *Transformer) letcont(paramType irtypes.TypeID, k cont, use func(cont) *ir.Expr) *ir.Expr {
	if k.syn != nil {
		return use(k)
	}
	non := t.Types.Builtins().Non
	kName := t.fresh("k")
	paramName := t.fresh("v")
	paramVar := &ir.Expr{Kind: ir.KVar, Type: paramType, Effect: irtypes.Triv, Data: ir.VarData{Name: paramName}}
	body := k.meta(paramVar)
	funcType := t.Types.RegisterFunc(irtypes.FuncLocal, irtypes.CtlReturns, nil, []irtypes.TypeID{paramType}, []irtypes.TypeID{non})
	funcData := ir.FuncData{
		Sort: irtypes.FuncLocal, Control: irtypes.CtlReturns, Name: kName,
		Params:      []ir.Pattern{{Kind: ir.PVar, Type: paramType, Data: ir.VarPatData{Name: paramName}}},
		ParamTypes:  []irtypes.TypeID{paramType},
		ResultTypes: []irtypes.TypeID{non},
		Body:        body,
	}
	kVar := &ir.Expr{Kind: ir.KVar, Type: funcType, Effect: irtypes.Triv, Data: ir.VarData{Name: kName}}
	kFuncExpr := &ir.Expr{Kind: ir.KFunc, Type: funcType, Effect: irtypes.Triv, Data: funcData}
	inner := use(synCont(kVar))
	decl := ir.Decl{Kind: ir.DLet, Data: ir.LetDeclData{
		Pattern: ir.Pattern{Kind: ir.PVar, Type: funcType, Data: ir.VarPatData{Name: kName}},
		Init:    kFuncExpr,
	}}
	return &ir.Expr{Kind: ir.KBlock, Type: inner.Type, Effect: irtypes.MaxEffect(kFuncExpr.Effect, inner.Effect),
		Data: ir.BlockData{Decls: []ir.Decl{decl}, Result: inner}}
}

// labelBinding is one entry of the label environment: either Cont(k) (a
// break/return to this label becomes a continuation call) or a plain
// passthrough label.
type labelBinding struct {
	isCont bool
	k      cont
}

type labelEnv map[source.StringID]labelBinding

// asyncReturnKey is the distinguished empty-string label representing an
// enclosing async's implicit return point.
func (t *Transformer) asyncReturnKey() source.StringID {
	return t.Types.Strings.Intern("")
}

func extendEnv(env labelEnv, label source.StringID, k cont) labelEnv {
	next := make(labelEnv, len(env)+1)
	for name, b := range env {
		next[name] = b
	}
	next[label] = labelBinding{isCont: true, k: k}
	return next
}

func shadowEnv(env labelEnv, label source.StringID) labelEnv {
	next := make(labelEnv, len(env)+1)
	for name, b := range env {
		next[name] = b
	}
	next[label] = labelBinding{isCont: false}
	return next
}

// Transform rewrites prog: every AsyncE/AwaitE is eliminated and the
// has_await flavor flag is cleared.
func (t *Transformer) Transform(prog *ir.Program) *ir.Program {
	env := labelEnv{}
	groups := make([][]ir.Decl, len(prog.DeclGroups))
	for gi, block := range prog.DeclGroups {
		decls := make([]ir.Decl, len(block))
		for i, d := range block {
			decls[i] = t.tDecl(d, env)
		}
		groups[gi] = decls
	}
	fields := make([]ir.ActorField, len(prog.ActorFields))
	for i, f := range prog.ActorFields {
		fields[i] = ir.ActorField{Label: f.Label, Value: t.T(f.Value, env)}
	}
	flavor := prog.Flavor
	flavor.HasAwait = false
	return &ir.Program{Arguments: prog.Arguments, DeclGroups: groups, ActorFields: fields, Flavor: flavor}
}

func (t *Transformer) tDecl(d ir.Decl, env labelEnv) ir.Decl {
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		return ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.LetDeclData{Pattern: data.Pattern, Init: t.T(data.Init, env)}}
	case ir.VarDeclData:
		return ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.VarDeclData{Name: data.Name, Type: data.Type, Init: t.T(data.Init, env)}}
	case ir.DefineDeclData:
		if data.Init == nil {
			return d
		}
		return ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.DefineDeclData{Name: data.Name, Mut: data.Mut, Init: t.T(data.Init, env)}}
	default:
		return d
	}
}

// T is the trivial translation, applied when eff(e) = Triv.
func (t *Transformer) T(e *ir.Expr, env labelEnv) *ir.Expr {
	if e == nil {
		return nil
	}
	switch data := e.Data.(type) {
	case ir.LitData, ir.VarData, ir.PrimData:
		return e

	case ir.UnData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.UnData{Op: data.Op, OperandType: data.OperandType, Operand: t.T(data.Operand, env)}}

	case ir.BinData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.BinData{Op: data.Op, OperandType: data.OperandType, Left: t.T(data.Left, env), Right: t.T(data.Right, env)}}

	case ir.RelData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.RelData{Op: data.Op, OperandType: data.OperandType, Left: t.T(data.Left, env), Right: t.T(data.Right, env)}}

	case ir.ShowData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.ShowData{OperandType: data.OperandType, Operand: t.T(data.Operand, env)}}

	case ir.TupData:
		elems := make([]*ir.Expr, len(data.Elems))
		for i, el := range data.Elems {
			elems[i] = t.T(el, env)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.TupData{Elems: elems}}

	case ir.ProjData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.ProjData{Tuple: t.T(data.Tuple, env), Index: data.Index}}

	case ir.OptData:
		var inner *ir.Expr
		if data.Inner != nil {
			inner = t.T(data.Inner, env)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.OptData{Inner: inner}}

	case ir.TagData:
		var inner *ir.Expr
		if data.Inner != nil {
			inner = t.T(data.Inner, env)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.TagData{Name: data.Name, Inner: inner}}

	case ir.DotData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.DotData{Object: t.T(data.Object, env), Label: data.Label}}

	case ir.ActorDotData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.ActorDotData{Object: t.T(data.Object, env), Label: data.Label}}

	case ir.ArrayData:
		elems := make([]*ir.Expr, len(data.Elems))
		for i, el := range data.Elems {
			elems[i] = t.T(el, env)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.ArrayData{Mut: data.Mut, ElemType: data.ElemType, Elems: elems}}

	case ir.IdxData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.IdxData{Array: t.T(data.Array, env), Index: t.T(data.Index, env)}}

	case ir.AssignData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.AssignData{Target: t.T(data.Target, env), Source: t.T(data.Source, env)}}

	case ir.CallData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.CallData{Conv: data.Conv, Func: t.T(data.Func, env), TypeArgs: data.TypeArgs, Arg: t.T(data.Arg, env)}}

	case ir.BlockData:
		decls := make([]ir.Decl, len(data.Decls))
		for i, d := range data.Decls {
			decls[i] = t.tDecl(d, env)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.BlockData{Decls: decls, Result: t.T(data.Result, env)}}

	case ir.IfData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.IfData{Cond: t.T(data.Cond, env), Then: t.T(data.Then, env), Else: t.T(data.Else, env)}}

	case ir.SwitchData:
		cases := make([]ir.Case, len(data.Cases))
		for i, c := range data.Cases {
			cases[i] = ir.Case{Pattern: c.Pattern, Body: t.T(c.Body, env)}
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.SwitchData{Scrutinee: t.T(data.Scrutinee, env), Cases: cases}}

	case ir.LoopData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.LoopData{Body: t.T(data.Body, env)}}

	case ir.LabelData:
		inner := shadowEnv(env, data.Label)
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect,
			Data: ir.LabelData{Label: data.Label, LabelType: data.LabelType, Body: t.T(data.Body, inner)}}

	case ir.BreakData:
		if lb, ok := env[data.Label]; ok && lb.isCont {
			return t.invoke(lb.k, t.T(data.Arg, env))
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.BreakData{Label: data.Label, Arg: t.T(data.Arg, env)}}

	case ir.RetData:
		if lb, ok := env[t.asyncReturnKey()]; ok && lb.isCont {
			return t.invoke(lb.k, t.T(data.Arg, env))
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.RetData{Arg: t.T(data.Arg, env)}}

	case ir.AsyncData:
		return t.translateAsync(e, data)

	case ir.AwaitData:
		// Unreachable under a well-typed program: AwaitE always carries
		// effect Await, so callers dispatch to C, never T, for this node.
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.AwaitData{Operand: t.T(data.Operand, env)}}

	case ir.AssertData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.AssertData{Cond: t.T(data.Cond, env)}}

	case ir.FuncData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.FuncData{
			Sort: data.Sort, Control: data.Control, Name: data.Name, Binds: data.Binds,
			Params: data.Params, ParamTypes: data.ParamTypes, ResultTypes: data.ResultTypes,
			Body: t.T(data.Body, labelEnv{}),
		}}

	case ir.ActorData:
		fields := make([]ir.ActorField, len(data.Fields))
		for i, f := range data.Fields {
			fields[i] = ir.ActorField{Label: f.Label, Value: t.T(f.Value, labelEnv{})}
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.ActorData{Fields: fields}}

	case ir.NewObjData:
		fields := make([]ir.ObjField, len(data.Fields))
		for i, f := range data.Fields {
			fields[i] = ir.ObjField{Label: f.Label, Value: t.T(f.Value, labelEnv{})}
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.NewObjData{Sort: data.Sort, Fields: fields}}

	default:
		return e
	}
}

// C is the CPS translation, applied when eff(e) = Await; it produces an
// expression that invokes k with e's value.
func (t *Transformer) C(e *ir.Expr, k cont, env labelEnv) *ir.Expr {
	switch data := e.Data.(type) {
	case ir.AwaitData:
		return t.translateAwait(e, data, k, env)

	case ir.UnData:
		return t.cSeq([]*ir.Expr{data.Operand}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.UnData{Op: data.Op, OperandType: data.OperandType, Operand: v[0]}}
		}, k, env)

	case ir.BinData:
		return t.cSeq([]*ir.Expr{data.Left, data.Right}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.BinData{Op: data.Op, OperandType: data.OperandType, Left: v[0], Right: v[1]}}
		}, k, env)

	case ir.RelData:
		return t.cSeq([]*ir.Expr{data.Left, data.Right}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.RelData{Op: data.Op, OperandType: data.OperandType, Left: v[0], Right: v[1]}}
		}, k, env)

	case ir.ShowData:
		return t.cSeq([]*ir.Expr{data.Operand}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.ShowData{OperandType: data.OperandType, Operand: v[0]}}
		}, k, env)

	case ir.TupData:
		return t.cSeq(data.Elems, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.TupData{Elems: v}}
		}, k, env)

	case ir.ProjData:
		return t.cSeq([]*ir.Expr{data.Tuple}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.ProjData{Tuple: v[0], Index: data.Index}}
		}, k, env)

	case ir.OptData:
		return t.cSeq([]*ir.Expr{data.Inner}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.OptData{Inner: v[0]}}
		}, k, env)

	case ir.TagData:
		return t.cSeq([]*ir.Expr{data.Inner}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.TagData{Name: data.Name, Inner: v[0]}}
		}, k, env)

	case ir.DotData:
		return t.cSeq([]*ir.Expr{data.Object}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.DotData{Object: v[0], Label: data.Label}}
		}, k, env)

	case ir.ActorDotData:
		return t.cSeq([]*ir.Expr{data.Object}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.ActorDotData{Object: v[0], Label: data.Label}}
		}, k, env)

	case ir.ArrayData:
		return t.cSeq(data.Elems, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.ArrayData{Mut: data.Mut, ElemType: data.ElemType, Elems: v}}
		}, k, env)

	case ir.IdxData:
		return t.cSeq([]*ir.Expr{data.Array, data.Index}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.IdxData{Array: v[0], Index: v[1]}}
		}, k, env)

	case ir.AssignData:
		return t.cSeq([]*ir.Expr{data.Target, data.Source}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.AssignData{Target: v[0], Source: v[1]}}
		}, k, env)

	case ir.CallData:
		return t.cSeq([]*ir.Expr{data.Func, data.Arg}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.CallData{Conv: data.Conv, Func: v[0], TypeArgs: data.TypeArgs, Arg: v[1]}}
		}, k, env)

	case ir.AssertData:
		return t.cSeq([]*ir.Expr{data.Cond}, nil, func(v []*ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.AssertData{Cond: v[0]}}
		}, k, env)

	case ir.BreakData:
		return t.cSeq([]*ir.Expr{data.Arg}, nil, func(v []*ir.Expr) *ir.Expr {
			if lb, ok := env[data.Label]; ok && lb.isCont {
				return t.invoke(lb.k, v[0])
			}
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.BreakData{Label: data.Label, Arg: v[0]}}
		}, k, env)

	case ir.RetData:
		return t.cSeq([]*ir.Expr{data.Arg}, nil, func(v []*ir.Expr) *ir.Expr {
			if lb, ok := env[t.asyncReturnKey()]; ok && lb.isCont {
				return t.invoke(lb.k, v[0])
			}
			return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv, Data: ir.RetData{Arg: v[0]}}
		}, k, env)

	case ir.BlockData:
		return t.cBlock(e, data, k, env)

	case ir.IfData:
		return t.cIf(e, data, k, env)

	case ir.SwitchData:
		return t.cSwitch(e, data, k, env)

	case ir.LoopData:
		return t.cLoop(e, data, k, env)

	case ir.LabelData:
		return t.cLabel(e, data, k, env)

	default:
		// FuncE, ActorE, NewObjE, AsyncE, literals, and vars are always
		// Triv; this path is unreachable under a well-typed program.
		return t.invoke(k, t.T(e, env))
	}
}

// cSeq implements the composition rule: operands are evaluated strictly
// left to right; a Triv operand recurses via T, an Await operand is
// CPS-converted and its value named with a fresh binding before
// continuing.
func (t *Transformer) cSeq(remaining []*ir.Expr, done []*ir.Expr, build func([]*ir.Expr) *ir.Expr, k cont, env labelEnv) *ir.Expr {
	if len(remaining) == 0 {
		return t.invoke(k, build(done))
	}
	op, rest := remaining[0], remaining[1:]
	if op.Effect == irtypes.Triv {
		next := append(append([]*ir.Expr{}, done...), t.T(op, env))
		return t.cSeq(rest, next, build, k, env)
	}
	return t.C(op, metaCont(func(v *ir.Expr) *ir.Expr {
		next := append(append([]*ir.Expr{}, done...), v)
		return t.cSeq(rest, next, build, k, env)
	}), env)
}

// translateAsync implements "Async e": alpha-rename e's bound variables,
// then wrap prim_async t ∘ (λk_ret. C[e] k_ret).
func (t *Transformer) translateAsync(e *ir.Expr, data ir.AsyncData) *ir.Expr {
	body := t.alphaRename(data.Body, map[source.StringID]source.StringID{})
	non := t.Types.Builtins().Non

	kRetName := t.fresh("kret")
	kRetType := t.Types.RegisterFunc(irtypes.FuncLocal, irtypes.CtlReturns, nil, []irtypes.TypeID{body.Type}, []irtypes.TypeID{non})
	kRetVar := &ir.Expr{Kind: ir.KVar, Type: kRetType, Effect: irtypes.Triv, Data: ir.VarData{Name: kRetName}}

	innerEnv := extendEnv(labelEnv{}, t.asyncReturnKey(), synCont(kRetVar))
	var lambdaBody *ir.Expr
	if body.Effect == irtypes.Triv {
		lambdaBody = t.invoke(synCont(kRetVar), t.T(body, innerEnv))
	} else {
		lambdaBody = t.C(body, synCont(kRetVar), innerEnv)
	}

	lambdaType := t.Types.RegisterFunc(irtypes.FuncLocal, irtypes.CtlReturns, nil, []irtypes.TypeID{kRetType}, []irtypes.TypeID{non})
	lambdaData := ir.FuncData{
		Sort: irtypes.FuncLocal, Control: irtypes.CtlReturns, Name: 0,
		Params:      []ir.Pattern{{Kind: ir.PVar, Type: kRetType, Data: ir.VarPatData{Name: kRetName}}},
		ParamTypes:  []irtypes.TypeID{kRetType},
		ResultTypes: []irtypes.TypeID{non},
		Body:        lambdaBody,
	}
	lambdaExpr := &ir.Expr{Kind: ir.KFunc, Type: lambdaType, Effect: irtypes.Triv, Data: lambdaData}

	primAsync := &ir.Expr{Kind: ir.KPrim, Type: irtypes.NoTypeID, Effect: irtypes.Triv, Data: ir.PrimData{Name: "@async"}}
	return &ir.Expr{Kind: ir.KCall, Pos: e.Pos, Type: e.Type, Effect: irtypes.Triv,
		Data: ir.CallData{Conv: irtypes.FuncLocal, Func: primAsync, TypeArgs: nil, Arg: lambdaExpr}}
}

// translateAwait implements "Await e": letcont k in
// λk'. prim_await t (T[e] or C[e], k').
func (t *Transformer) translateAwait(e *ir.Expr, data ir.AwaitData, k cont, env labelEnv) *ir.Expr {
	return t.letcont(e.Type, k, func(kk cont) *ir.Expr {
		buildCall := func(asyncVal *ir.Expr) *ir.Expr {
			non := t.Types.Builtins().Non
			primAwait := &ir.Expr{Kind: ir.KPrim, Type: irtypes.NoTypeID, Effect: irtypes.Triv, Data: ir.PrimData{Name: "@await"}}
			argTuple := &ir.Expr{Kind: ir.KTup, Pos: e.Pos, Type: t.Types.Seq([]irtypes.TypeID{asyncVal.Type, kk.syn.Type}), Effect: irtypes.Triv,
				Data: ir.TupData{Elems: []*ir.Expr{asyncVal, kk.syn}}}
			return &ir.Expr{Kind: ir.KCall, Pos: e.Pos, Type: non, Effect: irtypes.Triv, Data: ir.CallData{Conv: irtypes.FuncLocal, Func: primAwait, TypeArgs: nil, Arg: argTuple}}
		}
		if data.Operand.Effect == irtypes.Triv {
			return buildCall(t.T(data.Operand, env))
		}
		return t.C(data.Operand, metaCont(buildCall), env)
	})
}

func (t *Transformer) cIf(e *ir.Expr, data ir.IfData, k cont, env labelEnv) *ir.Expr {
	return t.letcont(e.Type, k, func(kk cont) *ir.Expr {
		branch := func(b *ir.Expr) *ir.Expr {
			if b.Effect == irtypes.Triv {
				return t.invoke(kk, t.T(b, env))
			}
			return t.C(b, kk, env)
		}
		finish := func(condVal *ir.Expr) *ir.Expr {
			return &ir.Expr{Kind: ir.KIf, Pos: e.Pos, Type: t.Types.Builtins().Non, Effect: irtypes.Triv,
				Data: ir.IfData{Cond: condVal, Then: branch(data.Then), Else: branch(data.Else)}}
		}
		if data.Cond.Effect == irtypes.Triv {
			return finish(t.T(data.Cond, env))
		}
		return t.C(data.Cond, metaCont(finish), env)
	})
}

func (t *Transformer) cSwitch(e *ir.Expr, data ir.SwitchData, k cont, env labelEnv) *ir.Expr {
	return t.letcont(e.Type, k, func(kk cont) *ir.Expr {
		finish := func(scrutVal *ir.Expr) *ir.Expr {
			cases := make([]ir.Case, len(data.Cases))
			for i, c := range data.Cases {
				var b *ir.Expr
				if c.Body.Effect == irtypes.Triv {
					b = t.invoke(kk, t.T(c.Body, env))
				} else {
					b = t.C(c.Body, kk, env)
				}
				cases[i] = ir.Case{Pattern: c.Pattern, Body: b}
			}
			return &ir.Expr{Kind: ir.KSwitch, Pos: e.Pos, Type: t.Types.Builtins().Non, Effect: irtypes.Triv, Data: ir.SwitchData{Scrutinee: scrutVal, Cases: cases}}
		}
		if data.Scrutinee.Effect == irtypes.Triv {
			return finish(t.T(data.Scrutinee, env))
		}
		return t.C(data.Scrutinee, metaCont(finish), env)
	})
}

// cLoop rewrites an awaiting loop body into a self-recursive local function,
// since the CPS form no longer has a native repeating construct that can
// suspend mid-iteration.
func (t *Transformer) cLoop(e *ir.Expr, data ir.LoopData, k cont, env labelEnv) *ir.Expr {
	unit := t.Types.Builtins().Unit
	non := t.Types.Builtins().Non
	recName := t.fresh("loop")
	recType := t.Types.RegisterFunc(irtypes.FuncLocal, irtypes.CtlReturns, nil, []irtypes.TypeID{unit}, []irtypes.TypeID{non})
	recVar := &ir.Expr{Kind: ir.KVar, Type: recType, Effect: irtypes.Triv, Data: ir.VarData{Name: recName}}

	unitLit := &ir.Expr{Kind: ir.KLit, Pos: e.Pos, Type: unit, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitNull()}}
	selfCall := &ir.Expr{Kind: ir.KCall, Pos: e.Pos, Type: non, Effect: irtypes.Triv, Data: ir.CallData{Conv: irtypes.FuncLocal, Func: recVar, TypeArgs: nil, Arg: unitLit}}

	var bodyTranslated *ir.Expr
	again := metaCont(func(*ir.Expr) *ir.Expr { return selfCall })
	if data.Body.Effect == irtypes.Triv {
		bodyTranslated = again.meta(t.T(data.Body, env))
	} else {
		bodyTranslated = t.C(data.Body, again, env)
	}

	recFuncData := ir.FuncData{
		Sort: irtypes.FuncLocal, Control: irtypes.CtlReturns, Name: recName,
		Params:      []ir.Pattern{{Kind: ir.PWild, Pos: e.Pos, Type: unit, Data: ir.WildData{}}},
		ParamTypes:  []irtypes.TypeID{unit},
		ResultTypes: []irtypes.TypeID{non},
		Body:        bodyTranslated,
	}
	recFuncExpr := &ir.Expr{Kind: ir.KFunc, Pos: e.Pos, Type: recType, Effect: irtypes.Triv, Data: recFuncData}
	decl := ir.Decl{Kind: ir.DLet, Data: ir.LetDeclData{Pattern: ir.Pattern{Kind: ir.PVar, Type: recType, Data: ir.VarPatData{Name: recName}}, Init: recFuncExpr}}

	start := &ir.Expr{Kind: ir.KCall, Pos: e.Pos, Type: non, Effect: irtypes.Triv, Data: ir.CallData{Conv: irtypes.FuncLocal, Func: recVar, TypeArgs: nil, Arg: unitLit}}
	afterStart := t.invoke(k, start)
	return &ir.Expr{Kind: ir.KBlock, Pos: e.Pos, Type: afterStart.Type, Effect: irtypes.MaxEffect(recFuncExpr.Effect, afterStart.Effect),
		Data: ir.BlockData{Decls: []ir.Decl{decl}, Result: afterStart}}
}

func (t *Transformer) cLabel(e *ir.Expr, data ir.LabelData, k cont, env labelEnv) *ir.Expr {
	return t.letcont(e.Type, k, func(kk cont) *ir.Expr {
		inner := extendEnv(env, data.Label, kk)
		if data.Body.Effect == irtypes.Triv {
			return t.invoke(kk, t.T(data.Body, inner))
		}
		return t.C(data.Body, kk, inner)
	})
}

// cBlock implements the block-specific case: type declarations stay in
// place; value declarations are declared first, their initializers are
// CPS-sequenced, and each binding is defined once its initializer
// resolves.
func (t *Transformer) cBlock(e *ir.Expr, data ir.BlockData, k cont, env labelEnv) *ir.Expr {
	var typeDecls, valueDecls []ir.Decl
	for _, d := range data.Decls {
		if _, ok := d.Data.(ir.TypeDeclData); ok {
			typeDecls = append(typeDecls, d)
		} else {
			valueDecls = append(valueDecls, d)
		}
	}

	var declares []ir.Decl
	for _, d := range valueDecls {
		declares = append(declares, t.declareNamesFor(d)...)
	}

	chain := t.sequenceValueDecls(valueDecls, 0, data.Result, k, env)

	allDecls := append(append([]ir.Decl{}, typeDecls...), declares...)
	return &ir.Expr{Kind: ir.KBlock, Pos: e.Pos, Type: chain.Type, Effect: irtypes.MaxEffect(e.Effect, chain.Effect), Data: ir.BlockData{Decls: allDecls, Result: chain}}
}

func (t *Transformer) declareNamesFor(d ir.Decl) []ir.Decl {
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		names := collectPatternNamesTyped(data.Pattern)
		out := make([]ir.Decl, len(names))
		for i, n := range names {
			out[i] = ir.Decl{Kind: ir.DDeclare, Pos: d.Pos, Data: ir.DeclareDeclData{Name: n.name, Type: n.typ}}
		}
		return out
	case ir.VarDeclData:
		return []ir.Decl{{Kind: ir.DDeclare, Pos: d.Pos, Data: ir.DeclareDeclData{Name: data.Name, Type: data.Type}}}
	default:
		return nil
	}
}

type renamedName struct {
	name source.StringID
	typ  irtypes.TypeID
}

func collectPatternNamesTyped(p ir.Pattern) []renamedName {
	switch data := p.Data.(type) {
	case ir.VarPatData:
		return []renamedName{{name: data.Name, typ: p.Type}}
	case ir.TupPatData:
		var out []renamedName
		for _, sub := range data.Elems {
			out = append(out, collectPatternNamesTyped(sub)...)
		}
		return out
	case ir.ObjPatData:
		var out []renamedName
		for _, fp := range data.Fields {
			out = append(out, collectPatternNamesTyped(fp.Pattern)...)
		}
		return out
	case ir.OptPatData:
		if data.Inner != nil {
			return collectPatternNamesTyped(*data.Inner)
		}
	case ir.VariantPatData:
		if data.Inner != nil {
			return collectPatternNamesTyped(*data.Inner)
		}
	}
	return nil
}

// renamePattern refreshes every variable name bound by p, per the "pure
// pattern renaming" rule.
func (t *Transformer) renamePattern(p ir.Pattern) (ir.Pattern, []struct {
	orig, fresh source.StringID
	typ         irtypes.TypeID
}) {
	type entry = struct {
		orig, fresh source.StringID
		typ         irtypes.TypeID
	}
	switch data := p.Data.(type) {
	case ir.VarPatData:
		fresh := t.fresh("pat")
		return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.VarPatData{Name: fresh}}, []entry{{orig: data.Name, fresh: fresh, typ: p.Type}}
	case ir.TupPatData:
		elems := make([]ir.Pattern, len(data.Elems))
		var all []entry
		for i, sub := range data.Elems {
			np, es := t.renamePattern(sub)
			elems[i] = np
			all = append(all, es...)
		}
		return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.TupPatData{Elems: elems}}, all
	case ir.ObjPatData:
		fields := make([]ir.FieldPattern, len(data.Fields))
		var all []entry
		for i, fp := range data.Fields {
			np, es := t.renamePattern(fp.Pattern)
			fields[i] = ir.FieldPattern{Label: fp.Label, Pattern: np}
			all = append(all, es...)
		}
		return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.ObjPatData{Fields: fields}}, all
	case ir.OptPatData:
		if data.Inner == nil {
			return p, nil
		}
		np, es := t.renamePattern(*data.Inner)
		return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.OptPatData{Inner: &np}}, es
	case ir.VariantPatData:
		if data.Inner == nil {
			return p, nil
		}
		np, es := t.renamePattern(*data.Inner)
		return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.VariantPatData{Name: data.Name, Inner: &np}}, es
	default:
		return p, nil
	}
}

func (t *Transformer) sequenceValueDecls(decls []ir.Decl, idx int, result *ir.Expr, k cont, env labelEnv) *ir.Expr {
	if idx == len(decls) {
		if result.Effect == irtypes.Triv {
			return t.invoke(k, t.T(result, env))
		}
		return t.C(result, k, env)
	}
	d := decls[idx]
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		finish := func(resolved *ir.Expr) *ir.Expr {
			freshPattern, names := t.renamePattern(data.Pattern)
			matchDecl := ir.Decl{Kind: ir.DLet, Pos: d.Pos, Data: ir.LetDeclData{Pattern: freshPattern, Init: resolved}}
			defines := make([]ir.Decl, len(names))
			for i, n := range names {
				defines[i] = ir.Decl{Kind: ir.DDefine, Pos: d.Pos, Data: ir.DefineDeclData{Name: n.orig, Mut: false,
					Init: &ir.Expr{Kind: ir.KVar, Pos: d.Pos, Type: n.typ, Effect: irtypes.Triv, Data: ir.VarData{Name: n.fresh}}}}
			}
			rest := t.sequenceValueDecls(decls, idx+1, result, k, env)
			inner := append([]ir.Decl{matchDecl}, defines...)
			return &ir.Expr{Kind: ir.KBlock, Type: rest.Type, Effect: irtypes.MaxEffect(resolved.Effect, rest.Effect), Data: ir.BlockData{Decls: inner, Result: rest}}
		}
		if data.Init.Effect == irtypes.Triv {
			return finish(t.T(data.Init, env))
		}
		return t.C(data.Init, metaCont(finish), env)

	case ir.VarDeclData:
		finish := func(resolved *ir.Expr) *ir.Expr {
			defineDecl := ir.Decl{Kind: ir.DDefine, Pos: d.Pos, Data: ir.DefineDeclData{Name: data.Name, Mut: true, Init: resolved}}
			rest := t.sequenceValueDecls(decls, idx+1, result, k, env)
			return &ir.Expr{Kind: ir.KBlock, Type: rest.Type, Effect: irtypes.MaxEffect(resolved.Effect, rest.Effect), Data: ir.BlockData{Decls: []ir.Decl{defineDecl}, Result: rest}}
		}
		if data.Init.Effect == irtypes.Triv {
			return finish(t.T(data.Init, env))
		}
		return t.C(data.Init, metaCont(finish), env)

	case ir.DefineDeclData:
		if data.Init == nil {
			return t.sequenceValueDecls(decls, idx+1, result, k, env)
		}
		finish := func(resolved *ir.Expr) *ir.Expr {
			defineDecl := ir.Decl{Kind: ir.DDefine, Pos: d.Pos, Data: ir.DefineDeclData{Name: data.Name, Mut: data.Mut, Init: resolved}}
			rest := t.sequenceValueDecls(decls, idx+1, result, k, env)
			return &ir.Expr{Kind: ir.KBlock, Type: rest.Type, Effect: irtypes.MaxEffect(resolved.Effect, rest.Effect), Data: ir.BlockData{Decls: []ir.Decl{defineDecl}, Result: rest}}
		}
		if data.Init.Effect == irtypes.Triv {
			return finish(t.T(data.Init, env))
		}
		return t.C(data.Init, metaCont(finish), env)

	default:
		return t.sequenceValueDecls(decls, idx+1, result, k, env)
	}
}

// alphaRename refreshes every variable and label bound within e, so that
// lifting e's body into a fresh closure (the Async case) cannot capture an
// outer binding of the same name.
func (t *Transformer) alphaRename(e *ir.Expr, subst map[source.StringID]source.StringID) *ir.Expr {
	if e == nil {
		return nil
	}
	rename := func(name source.StringID) source.StringID {
		if fresh, ok := subst[name]; ok {
			return fresh
		}
		return name
	}
	extend := func(name source.StringID) (map[source.StringID]source.StringID, source.StringID) {
		fresh := t.fresh("a")
		next := make(map[source.StringID]source.StringID, len(subst)+1)
		for k, v := range subst {
			next[k] = v
		}
		next[name] = fresh
		return next, fresh
	}
	renamePat := func(p ir.Pattern, sub map[source.StringID]source.StringID) (ir.Pattern, map[source.StringID]source.StringID) {
		var walk func(p ir.Pattern, sub map[source.StringID]source.StringID) (ir.Pattern, map[source.StringID]source.StringID)
		walk = func(p ir.Pattern, sub map[source.StringID]source.StringID) (ir.Pattern, map[source.StringID]source.StringID) {
			switch data := p.Data.(type) {
			case ir.VarPatData:
				fresh := t.fresh("a")
				next := make(map[source.StringID]source.StringID, len(sub)+1)
				for k, v := range sub {
					next[k] = v
				}
				next[data.Name] = fresh
				return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.VarPatData{Name: fresh}}, next
			case ir.TupPatData:
				elems := make([]ir.Pattern, len(data.Elems))
				cur := sub
				for i, s := range data.Elems {
					elems[i], cur = walk(s, cur)
				}
				return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.TupPatData{Elems: elems}}, cur
			case ir.ObjPatData:
				fields := make([]ir.FieldPattern, len(data.Fields))
				cur := sub
				for i, fp := range data.Fields {
					var np ir.Pattern
					np, cur = walk(fp.Pattern, cur)
					fields[i] = ir.FieldPattern{Label: fp.Label, Pattern: np}
				}
				return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.ObjPatData{Fields: fields}}, cur
			case ir.OptPatData:
				if data.Inner == nil {
					return p, sub
				}
				np, cur := walk(*data.Inner, sub)
				return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.OptPatData{Inner: &np}}, cur
			case ir.VariantPatData:
				if data.Inner == nil {
					return p, sub
				}
				np, cur := walk(*data.Inner, sub)
				return ir.Pattern{Kind: p.Kind, Pos: p.Pos, Type: p.Type, Data: ir.VariantPatData{Name: data.Name, Inner: &np}}, cur
			default:
				return p, sub
			}
		}
		return walk(p, sub)
	}

	switch data := e.Data.(type) {
	case ir.VarData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.VarData{Name: rename(data.Name)}}
	case ir.LitData, ir.PrimData:
		return e
	case ir.UnData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.UnData{Op: data.Op, OperandType: data.OperandType, Operand: t.alphaRename(data.Operand, subst)}}
	case ir.BinData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.BinData{Op: data.Op, OperandType: data.OperandType, Left: t.alphaRename(data.Left, subst), Right: t.alphaRename(data.Right, subst)}}
	case ir.RelData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.RelData{Op: data.Op, OperandType: data.OperandType, Left: t.alphaRename(data.Left, subst), Right: t.alphaRename(data.Right, subst)}}
	case ir.ShowData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.ShowData{OperandType: data.OperandType, Operand: t.alphaRename(data.Operand, subst)}}
	case ir.TupData:
		elems := make([]*ir.Expr, len(data.Elems))
		for i, el := range data.Elems {
			elems[i] = t.alphaRename(el, subst)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.TupData{Elems: elems}}
	case ir.ProjData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.ProjData{Tuple: t.alphaRename(data.Tuple, subst), Index: data.Index}}
	case ir.OptData:
		var inner *ir.Expr
		if data.Inner != nil {
			inner = t.alphaRename(data.Inner, subst)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.OptData{Inner: inner}}
	case ir.TagData:
		var inner *ir.Expr
		if data.Inner != nil {
			inner = t.alphaRename(data.Inner, subst)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.TagData{Name: data.Name, Inner: inner}}
	case ir.DotData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.DotData{Object: t.alphaRename(data.Object, subst), Label: data.Label}}
	case ir.ActorDotData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.ActorDotData{Object: t.alphaRename(data.Object, subst), Label: data.Label}}
	case ir.ArrayData:
		elems := make([]*ir.Expr, len(data.Elems))
		for i, el := range data.Elems {
			elems[i] = t.alphaRename(el, subst)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.ArrayData{Mut: data.Mut, ElemType: data.ElemType, Elems: elems}}
	case ir.IdxData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.IdxData{Array: t.alphaRename(data.Array, subst), Index: t.alphaRename(data.Index, subst)}}
	case ir.AssignData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.AssignData{Target: t.alphaRename(data.Target, subst), Source: t.alphaRename(data.Source, subst)}}
	case ir.CallData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.CallData{Conv: data.Conv, Func: t.alphaRename(data.Func, subst), TypeArgs: data.TypeArgs, Arg: t.alphaRename(data.Arg, subst)}}
	case ir.BlockData:
		cur := subst
		decls := make([]ir.Decl, len(data.Decls))
		for i, d := range data.Decls {
			switch dd := d.Data.(type) {
			case ir.LetDeclData:
				init := t.alphaRename(dd.Init, cur)
				var np ir.Pattern
				np, cur = renamePat(dd.Pattern, cur)
				decls[i] = ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.LetDeclData{Pattern: np, Init: init}}
			case ir.VarDeclData:
				init := t.alphaRename(dd.Init, cur)
				var fresh source.StringID
				cur, fresh = extend(dd.Name)
				decls[i] = ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.VarDeclData{Name: fresh, Type: dd.Type, Init: init}}
			case ir.DefineDeclData:
				var init *ir.Expr
				if dd.Init != nil {
					init = t.alphaRename(dd.Init, cur)
				}
				decls[i] = ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.DefineDeclData{Name: rename(dd.Name), Mut: dd.Mut, Init: init}}
			case ir.DeclareDeclData:
				var fresh source.StringID
				cur, fresh = extend(dd.Name)
				decls[i] = ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.DeclareDeclData{Name: fresh, Type: dd.Type}}
			default:
				decls[i] = d
			}
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.BlockData{Decls: decls, Result: t.alphaRename(data.Result, cur)}}
	case ir.IfData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.IfData{Cond: t.alphaRename(data.Cond, subst), Then: t.alphaRename(data.Then, subst), Else: t.alphaRename(data.Else, subst)}}
	case ir.SwitchData:
		cases := make([]ir.Case, len(data.Cases))
		for i, c := range data.Cases {
			np, cur := renamePat(c.Pattern, subst)
			cases[i] = ir.Case{Pattern: np, Body: t.alphaRename(c.Body, cur)}
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.SwitchData{Scrutinee: t.alphaRename(data.Scrutinee, subst), Cases: cases}}
	case ir.LoopData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.LoopData{Body: t.alphaRename(data.Body, subst)}}
	case ir.LabelData:
		next, fresh := extend(data.Label)
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.LabelData{Label: fresh, LabelType: data.LabelType, Body: t.alphaRename(data.Body, next)}}
	case ir.BreakData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.BreakData{Label: rename(data.Label), Arg: t.alphaRename(data.Arg, subst)}}
	case ir.RetData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.RetData{Arg: t.alphaRename(data.Arg, subst)}}
	case ir.AsyncData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.AsyncData{Body: t.alphaRename(data.Body, subst)}}
	case ir.AwaitData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.AwaitData{Operand: t.alphaRename(data.Operand, subst)}}
	case ir.AssertData:
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.AssertData{Cond: t.alphaRename(data.Cond, subst)}}
	case ir.FuncData:
		cur := subst
		params := make([]ir.Pattern, len(data.Params))
		for i, p := range data.Params {
			params[i], cur = renamePat(p, cur)
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.FuncData{
			Sort: data.Sort, Control: data.Control, Name: rename(data.Name), Binds: data.Binds,
			Params: params, ParamTypes: data.ParamTypes, ResultTypes: data.ResultTypes, Body: t.alphaRename(data.Body, cur),
		}}
	case ir.ActorData:
		fields := make([]ir.ActorField, len(data.Fields))
		for i, f := range data.Fields {
			fields[i] = ir.ActorField{Label: f.Label, Value: t.alphaRename(f.Value, subst)}
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.ActorData{Fields: fields}}
	case ir.NewObjData:
		fields := make([]ir.ObjField, len(data.Fields))
		for i, f := range data.Fields {
			fields[i] = ir.ObjField{Label: f.Label, Value: t.alphaRename(f.Value, subst)}
		}
		return &ir.Expr{Kind: e.Kind, Pos: e.Pos, Type: e.Type, Effect: e.Effect, Data: ir.NewObjData{Sort: data.Sort, Fields: fields}}
	default:
		return e
	}
}

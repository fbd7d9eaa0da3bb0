// Package tailcall rewrites self tail calls into a loop-and-reassign form so
// stack depth for a recursive function is bounded independent of its
// input.
package tailcall

import (
	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// Transformer carries the shared state the pass needs: an interner for
// building replacement types and a counter for fresh temporary/label names.
type Transformer struct {
	Types *irtypes.Interner
	Names *ir.Counter
}

// New returns a Transformer.
func New(types *irtypes.Interner, names *ir.Counter) *Transformer {
	return &Transformer{Types: types, Names: names}
}

// funcInfo describes the innermost enclosing optimizable function.
type funcInfo struct {
	Name       source.StringID
	Binds      []irtypes.TypeBind
	ParamTypes []irtypes.TypeID
	Temps      []source.StringID
	Label      source.StringID
	Detected   bool
}

// env is the traversal environment: whether the current position is a
// tail position, and the innermost optimizable function (if any) still in
// scope.
type env struct {
	tailPos bool
	info    *funcInfo
}

func (e env) notTail() env { return env{tailPos: false, info: e.info} }
func (e env) tail() env    { return env{tailPos: true, info: e.info} }
func (e env) reset() env   { return env{tailPos: true, info: nil} }

func (e env) shadow(name source.StringID) env {
	if e.info != nil && e.info.Name == name {
		return env{tailPos: e.tailPos, info: nil}
	}
	return e
}

// Transform rewrites every self-tail-recursive function reachable from prog,
// leaving its shape and every type/effect annotation elsewhere unchanged.
func (t *Transformer) Transform(prog *ir.Program) *ir.Program {
	top := env{tailPos: true, info: nil}
	groups := make([][]ir.Decl, len(prog.DeclGroups))
	for gi, block := range prog.DeclGroups {
		decls := make([]ir.Decl, len(block))
		for i, d := range block {
			decls[i] = t.rewriteDecl(top, d)
		}
		groups[gi] = decls
	}
	fields := make([]ir.ActorField, len(prog.ActorFields))
	for i, f := range prog.ActorFields {
		fields[i] = ir.ActorField{Label: f.Label, Value: t.rewriteExpr(top, f.Value)}
	}
	return &ir.Program{Arguments: prog.Arguments, DeclGroups: groups, ActorFields: fields, Flavor: prog.Flavor}
}

func (t *Transformer) rewriteDecl(e env, d ir.Decl) ir.Decl {
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		return ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.LetDeclData{Pattern: data.Pattern, Init: t.rewriteExpr(e.notTail(), data.Init)}}
	case ir.VarDeclData:
		return ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.VarDeclData{Name: data.Name, Type: data.Type, Init: t.rewriteExpr(e.notTail(), data.Init)}}
	case ir.DefineDeclData:
		if data.Init == nil {
			return d
		}
		return ir.Decl{Kind: d.Kind, Pos: d.Pos, Data: ir.DefineDeclData{Name: data.Name, Mut: data.Mut, Init: t.rewriteExpr(e.notTail(), data.Init)}}
	default:
		return d
	}
}

// declBoundNames returns every value name a declaration introduces, any of
// which could shadow an optimizable function's own name.
func declBoundNames(d ir.Decl) []source.StringID {
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		names := map[source.StringID]struct{}{}
		collectPatternNames(data.Pattern, names)
		out := make([]source.StringID, 0, len(names))
		for n := range names {
			out = append(out, n)
		}
		return out
	case ir.VarDeclData:
		return []source.StringID{data.Name}
	case ir.DeclareDeclData:
		return []source.StringID{data.Name}
	}
	return nil
}

func collectPatternNames(p ir.Pattern, into map[source.StringID]struct{}) {
	switch data := p.Data.(type) {
	case ir.VarPatData:
		into[data.Name] = struct{}{}
	case ir.TupPatData:
		for _, sub := range data.Elems {
			collectPatternNames(sub, into)
		}
	case ir.ObjPatData:
		for _, fp := range data.Fields {
			collectPatternNames(fp.Pattern, into)
		}
	case ir.OptPatData:
		if data.Inner != nil {
			collectPatternNames(*data.Inner, into)
		}
	case ir.VariantPatData:
		if data.Inner != nil {
			collectPatternNames(*data.Inner, into)
		}
	}
}

func (t *Transformer) rewriteExpr(e env, x *ir.Expr) *ir.Expr {
	if x == nil {
		return nil
	}
	switch data := x.Data.(type) {
	case ir.LitData, ir.VarData, ir.PrimData:
		return x

	case ir.UnData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.UnData{Op: data.Op, OperandType: data.OperandType, Operand: t.rewriteExpr(e.notTail(), data.Operand)}}

	case ir.BinData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.BinData{Op: data.Op, OperandType: data.OperandType, Left: t.rewriteExpr(e.notTail(), data.Left), Right: t.rewriteExpr(e.notTail(), data.Right)}}

	case ir.RelData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.RelData{Op: data.Op, OperandType: data.OperandType, Left: t.rewriteExpr(e.notTail(), data.Left), Right: t.rewriteExpr(e.notTail(), data.Right)}}

	case ir.ShowData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.ShowData{OperandType: data.OperandType, Operand: t.rewriteExpr(e.notTail(), data.Operand)}}

	case ir.TupData:
		elems := make([]*ir.Expr, len(data.Elems))
		for i, el := range data.Elems {
			elems[i] = t.rewriteExpr(e.notTail(), el)
		}
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.TupData{Elems: elems}}

	case ir.ProjData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.ProjData{Tuple: t.rewriteExpr(e.notTail(), data.Tuple), Index: data.Index}}

	case ir.OptData:
		var inner *ir.Expr
		if data.Inner != nil {
			inner = t.rewriteExpr(e.notTail(), data.Inner)
		}
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.OptData{Inner: inner}}

	case ir.TagData:
		var inner *ir.Expr
		if data.Inner != nil {
			inner = t.rewriteExpr(e.notTail(), data.Inner)
		}
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.TagData{Name: data.Name, Inner: inner}}

	case ir.DotData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.DotData{Object: t.rewriteExpr(e.notTail(), data.Object), Label: data.Label}}

	case ir.ActorDotData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.ActorDotData{Object: t.rewriteExpr(e.notTail(), data.Object), Label: data.Label}}

	case ir.ArrayData:
		elems := make([]*ir.Expr, len(data.Elems))
		for i, el := range data.Elems {
			elems[i] = t.rewriteExpr(e.notTail(), el)
		}
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.ArrayData{Mut: data.Mut, ElemType: data.ElemType, Elems: elems}}

	case ir.IdxData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.IdxData{Array: t.rewriteExpr(e.notTail(), data.Array), Index: t.rewriteExpr(e.notTail(), data.Index)}}

	case ir.AssignData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.AssignData{Target: t.rewriteExpr(e.notTail(), data.Target), Source: t.rewriteExpr(e.notTail(), data.Source)}}

	case ir.FuncData:
		return t.transformFunc(x, data)

	case ir.CallData:
		return t.rewriteCall(e, x, data)

	case ir.BlockData:
		return t.rewriteBlock(e, x, data)

	case ir.IfData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.IfData{
			Cond: t.rewriteExpr(e.notTail(), data.Cond),
			Then: t.rewriteExpr(e.tail(), data.Then),
			Else: t.rewriteExpr(e.tail(), data.Else),
		}}

	case ir.SwitchData:
		cases := make([]ir.Case, len(data.Cases))
		for i, c := range data.Cases {
			cases[i] = ir.Case{Pattern: c.Pattern, Body: t.rewriteExpr(e.tail(), c.Body)}
		}
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.SwitchData{Scrutinee: t.rewriteExpr(e.notTail(), data.Scrutinee), Cases: cases}}

	case ir.LoopData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.LoopData{Body: t.rewriteExpr(e.notTail(), data.Body)}}

	case ir.LabelData:
		bodyEnv := e.shadow(data.Label)
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.LabelData{Label: data.Label, LabelType: data.LabelType, Body: t.rewriteExpr(bodyEnv, data.Body)}}

	case ir.BreakData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.BreakData{Label: data.Label, Arg: t.rewriteExpr(e.notTail(), data.Arg)}}

	case ir.RetData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.RetData{Arg: t.rewriteExpr(e.tail(), data.Arg)}}

	case ir.AsyncData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.AsyncData{Body: t.rewriteExpr(e.reset(), data.Body)}}

	case ir.AwaitData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.AwaitData{Operand: t.rewriteExpr(e.notTail(), data.Operand)}}

	case ir.AssertData:
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect,
			Data: ir.AssertData{Cond: t.rewriteExpr(e.notTail(), data.Cond)}}

	case ir.ActorData:
		fields := make([]ir.ActorField, len(data.Fields))
		for i, f := range data.Fields {
			fields[i] = ir.ActorField{Label: f.Label, Value: t.rewriteExpr(e.reset(), f.Value)}
		}
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.ActorData{Fields: fields}}

	case ir.NewObjData:
		fields := make([]ir.ObjField, len(data.Fields))
		for i, f := range data.Fields {
			fields[i] = ir.ObjField{Label: f.Label, Value: t.rewriteExpr(e.reset(), f.Value)}
		}
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.NewObjData{Sort: data.Sort, Fields: fields}}

	default:
		return x
	}
}

func (t *Transformer) rewriteBlock(e env, x *ir.Expr, data ir.BlockData) *ir.Expr {
	cur := e
	decls := make([]ir.Decl, len(data.Decls))
	for i, d := range data.Decls {
		decls[i] = t.rewriteDecl(env{tailPos: false, info: cur.info}, d)
		for _, name := range declBoundNames(d) {
			cur = cur.shadow(name)
		}
	}
	result := t.rewriteExpr(env{tailPos: e.tailPos, info: cur.info}, data.Result)
	return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.BlockData{Decls: decls, Result: result}}
}

// rewriteCall checks whether x is a qualifying self tail call (the
// "identity generic instantiation" rule: the call passes back each type
// binder exactly as its own open bound-variable reference) and, if so,
// splices in the temp-assign-then-break form; otherwise it recurses
// normally.
func (t *Transformer) rewriteCall(e env, x *ir.Expr, data ir.CallData) *ir.Expr {
	if e.tailPos && e.info != nil && isSelfRef(data.Func, e.info.Name) && identityInstantiation(t.Types, data.TypeArgs, e.info.Binds) {
		e.info.Detected = true
		arg := t.rewriteExpr(e.notTail(), data.Arg)
		return t.buildBreakBlock(x.Pos, e.info, arg)
	}
	return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.CallData{
		Conv:     data.Conv,
		Func:     t.rewriteExpr(e.notTail(), data.Func),
		TypeArgs: data.TypeArgs,
		Arg:      t.rewriteExpr(e.notTail(), data.Arg),
	}}
}

func isSelfRef(f *ir.Expr, name source.StringID) bool {
	v, ok := f.Data.(ir.VarData)
	return ok && v.Name == name
}

func identityInstantiation(types *irtypes.Interner, args []irtypes.TypeID, binds []irtypes.TypeBind) bool {
	if len(args) != len(binds) {
		return false
	}
	for i, a := range args {
		if a != types.Intern(irtypes.MakeBound(uint32(i))) {
			return false
		}
	}
	return true
}

// buildBreakBlock implements assignEs: it evaluates arg into info's
// temporaries (directly, component-wise for a tuple literal, or via a fresh
// whole-value temporary otherwise) and then breaks to info.Label.
func (t *Transformer) buildBreakBlock(pos source.Span, info *funcInfo, arg *ir.Expr) *ir.Expr {
	assignTemp := func(i int, value *ir.Expr) *ir.Expr {
		target := &ir.Expr{Kind: ir.KVar, Pos: pos, Type: t.Types.AsMut(info.ParamTypes[i]), Effect: irtypes.Triv, Data: ir.VarData{Name: info.Temps[i]}}
		unit := t.Types.Builtins().Unit
		return &ir.Expr{Kind: ir.KAssign, Pos: pos, Type: unit, Effect: value.Effect, Data: ir.AssignData{Target: target, Source: value}}
	}

	var prefix []ir.Decl
	var assigns []*ir.Expr

	switch {
	case len(info.Temps) == 1:
		assigns = []*ir.Expr{assignTemp(0, arg)}
	default:
		if tup, ok := arg.Data.(ir.TupData); ok && len(tup.Elems) == len(info.Temps) {
			assigns = make([]*ir.Expr, len(info.Temps))
			for i, el := range tup.Elems {
				assigns[i] = assignTemp(i, el)
			}
		} else {
			tmpName := t.Types.Strings.Intern(t.Names.FreshName("newArgs"))
			tmpVar := &ir.Expr{Kind: ir.KVar, Pos: pos, Type: arg.Type, Effect: irtypes.Triv, Data: ir.VarData{Name: tmpName}}
			prefix = []ir.Decl{{Kind: ir.DLet, Pos: pos, Data: ir.LetDeclData{
				Pattern: ir.Pattern{Kind: ir.PVar, Pos: pos, Type: arg.Type, Data: ir.VarPatData{Name: tmpName}},
				Init:    arg,
			}}}
			assigns = make([]*ir.Expr, len(info.Temps))
			for i := range info.Temps {
				proj := &ir.Expr{Kind: ir.KProj, Pos: pos, Type: info.ParamTypes[i], Effect: irtypes.Triv, Data: ir.ProjData{Tuple: tmpVar, Index: i}}
				assigns[i] = assignTemp(i, proj)
			}
		}
	}

	non := t.Types.Builtins().Non
	unit := t.Types.Builtins().Unit
	wild := ir.Pattern{Kind: ir.PWild, Pos: pos, Type: unit, Data: ir.WildData{}}

	decls := append([]ir.Decl{}, prefix...)
	for _, a := range assigns[:len(assigns)-1] {
		decls = append(decls, ir.Decl{Kind: ir.DLet, Pos: pos, Data: ir.LetDeclData{Pattern: wild, Init: a}})
	}
	last := assigns[len(assigns)-1]
	brk := &ir.Expr{Kind: ir.KBreak, Pos: pos, Type: non, Effect: last.Effect, Data: ir.BreakData{Label: info.Label, Arg: last}}
	if len(decls) == 0 {
		return brk
	}
	eff := brk.Effect
	for _, d := range decls {
		if ld, ok := d.Data.(ir.LetDeclData); ok {
			eff = irtypes.MaxEffect(eff, ld.Init.Effect)
		}
	}
	return &ir.Expr{Kind: ir.KBlock, Pos: pos, Type: non, Effect: eff, Data: ir.BlockData{Decls: decls, Result: brk}}
}

// transformFunc walks data.Body in a fresh env (function bodies clear the
// enclosing info and reset tail_pos), and, if a qualifying self tail call
// was found, wraps the body in the loop-and-reassign form.
func (t *Transformer) transformFunc(x *ir.Expr, data ir.FuncData) *ir.Expr {
	info := &funcInfo{
		Name:       data.Name,
		Binds:      data.Binds,
		ParamTypes: append([]irtypes.TypeID{}, data.ParamTypes...),
	}
	if data.Name != 0 {
		info.Temps = make([]source.StringID, len(data.ParamTypes))
		for i := range info.Temps {
			info.Temps[i] = t.Types.Strings.Intern(t.Names.FreshName("temp"))
		}
		info.Label = t.Types.Strings.Intern(t.Names.FreshName("L"))
	}

	body := t.rewriteExpr(env{tailPos: true, info: info}, data.Body)

	if !info.Detected {
		return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.FuncData{
			Sort: data.Sort, Control: data.Control, Name: data.Name, Binds: data.Binds,
			Params: data.Params, ParamTypes: data.ParamTypes, ResultTypes: data.ResultTypes, Body: body,
		}}
	}

	newParams := make([]ir.Pattern, len(data.Params))
	varDecls := make([]ir.Decl, len(data.ParamTypes))
	rebindDecls := make([]ir.Decl, len(data.Params))
	for i := range data.ParamTypes {
		freshName := t.Types.Strings.Intern(t.Names.FreshName("arg"))
		newParams[i] = ir.Pattern{Kind: ir.PVar, Pos: data.Params[i].Pos, Type: data.ParamTypes[i], Data: ir.VarPatData{Name: freshName}}
		varDecls[i] = ir.Decl{Kind: ir.DVar, Pos: data.Params[i].Pos, Data: ir.VarDeclData{
			Name: info.Temps[i],
			Type: t.Types.AsMut(data.ParamTypes[i]),
			Init: &ir.Expr{Kind: ir.KVar, Pos: data.Params[i].Pos, Type: data.ParamTypes[i], Effect: irtypes.Triv, Data: ir.VarData{Name: freshName}},
		}}
		rebindDecls[i] = ir.Decl{Kind: ir.DLet, Pos: data.Params[i].Pos, Data: ir.LetDeclData{
			Pattern: data.Params[i],
			Init: &ir.Expr{
				Kind: ir.KVar, Pos: data.Params[i].Pos, Type: data.ParamTypes[i], Effect: irtypes.Triv,
				Data: ir.VarData{Name: info.Temps[i]},
			},
		}}
	}

	retExpr := &ir.Expr{Kind: ir.KRet, Pos: x.Pos, Type: t.Types.Builtins().Non, Effect: body.Effect, Data: ir.RetData{Arg: body}}
	labelBody := &ir.Expr{Kind: ir.KBlock, Pos: x.Pos, Type: t.Types.Builtins().Non, Effect: retExpr.Effect, Data: ir.BlockData{Decls: rebindDecls, Result: retExpr}}
	label := &ir.Expr{Kind: ir.KLabel, Pos: x.Pos, Type: t.Types.Builtins().Unit, Effect: labelBody.Effect,
		Data: ir.LabelData{Label: info.Label, LabelType: t.Types.Builtins().Unit, Body: labelBody}}
	loop := &ir.Expr{Kind: ir.KLoop, Pos: x.Pos, Type: t.Types.Builtins().Non, Effect: label.Effect, Data: ir.LoopData{Body: label}}
	newBody := &ir.Expr{Kind: ir.KBlock, Pos: x.Pos, Type: t.Types.Builtins().Non, Effect: loop.Effect, Data: ir.BlockData{Decls: varDecls, Result: loop}}

	return &ir.Expr{Kind: x.Kind, Pos: x.Pos, Type: x.Type, Effect: x.Effect, Data: ir.FuncData{
		Sort: data.Sort, Control: data.Control, Name: data.Name, Binds: data.Binds,
		Params: newParams, ParamTypes: data.ParamTypes, ResultTypes: data.ResultTypes, Body: newBody,
	}}
}

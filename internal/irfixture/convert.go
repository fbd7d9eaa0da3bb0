package irfixture

import "github.com/ZenVoich/motoko/internal/ir"

// exprToDTO / dtoToExpr, declToDTO / dtoToDecl and patternToDTO / dtoToPattern
// walk an IR tree and its DTO mirror in lockstep, one case per variant.

func exprToDTO(e *ir.Expr) *ExprDTO {
	if e == nil {
		return nil
	}
	dto := &ExprDTO{Kind: e.Kind, Type: e.Type, Effect: e.Effect}
	switch data := e.Data.(type) {
	case ir.LitData:
		lit := data.Value
		dto.Lit = &lit
	case ir.VarData:
		dto.Name = data.Name
	case ir.PrimData:
		dto.PrimName = data.Name
	case ir.UnData:
		dto.UnOp = data.Op
		dto.OperandType = data.OperandType
		dto.Operand = exprToDTO(data.Operand)
	case ir.BinData:
		dto.BinOp = data.Op
		dto.OperandType = data.OperandType
		dto.Left = exprToDTO(data.Left)
		dto.Right = exprToDTO(data.Right)
	case ir.RelData:
		dto.RelOp = data.Op
		dto.OperandType = data.OperandType
		dto.Left = exprToDTO(data.Left)
		dto.Right = exprToDTO(data.Right)
	case ir.ShowData:
		dto.OperandType = data.OperandType
		dto.Operand = exprToDTO(data.Operand)
	case ir.TupData:
		dto.Elems = exprsToDTO(data.Elems)
	case ir.ProjData:
		dto.Tuple = exprToDTO(data.Tuple)
		dto.ProjIndex = data.Index
	case ir.OptData:
		dto.Inner = exprToDTO(data.Inner)
	case ir.TagData:
		dto.Name = data.Name
		dto.Inner = exprToDTO(data.Inner)
	case ir.DotData:
		dto.Object = exprToDTO(data.Object)
		dto.Label = data.Label
	case ir.ActorDotData:
		dto.Object = exprToDTO(data.Object)
		dto.Label = data.Label
	case ir.ArrayData:
		dto.Mut = data.Mut
		dto.ElemType = data.ElemType
		dto.Elems = exprsToDTO(data.Elems)
	case ir.IdxData:
		dto.Array = exprToDTO(data.Array)
		dto.Index = exprToDTO(data.Index)
	case ir.AssignData:
		dto.Target = exprToDTO(data.Target)
		dto.Source = exprToDTO(data.Source)
	case ir.FuncData:
		dto.Sort = data.Sort
		dto.Control = data.Control
		dto.Name = data.Name
		dto.Binds = data.Binds
		dto.Params = patternsToDTO(data.Params)
		dto.ParamTypes = data.ParamTypes
		dto.ResultTypes = data.ResultTypes
		dto.Body = exprToDTO(data.Body)
	case ir.CallData:
		dto.Conv = data.Conv
		dto.Func = exprToDTO(data.Func)
		dto.TypeArgs = data.TypeArgs
		dto.Arg = exprToDTO(data.Arg)
	case ir.BlockData:
		dto.Decls = declsToDTO(data.Decls)
		dto.Result = exprToDTO(data.Result)
	case ir.IfData:
		dto.Cond = exprToDTO(data.Cond)
		dto.Then = exprToDTO(data.Then)
		dto.Else = exprToDTO(data.Else)
	case ir.SwitchData:
		dto.Scrutinee = exprToDTO(data.Scrutinee)
		dto.Cases = make([]CaseDTO, len(data.Cases))
		for i, c := range data.Cases {
			dto.Cases[i] = CaseDTO{Pattern: patternToDTO(c.Pattern), Body: exprToDTO(c.Body)}
		}
	case ir.LoopData:
		dto.Body = exprToDTO(data.Body)
	case ir.LabelData:
		dto.Label = data.Label
		dto.LabelType = data.LabelType
		dto.Body = exprToDTO(data.Body)
	case ir.BreakData:
		dto.Label = data.Label
		dto.Arg = exprToDTO(data.Arg)
	case ir.RetData:
		dto.Arg = exprToDTO(data.Arg)
	case ir.AsyncData:
		dto.Body = exprToDTO(data.Body)
	case ir.AwaitData:
		dto.Operand = exprToDTO(data.Operand)
	case ir.AssertData:
		dto.Cond = exprToDTO(data.Cond)
	case ir.ActorData:
		dto.Fields = fieldsToDTO(data.Fields)
	case ir.NewObjData:
		dto.ObjSort = data.Sort
		dto.Fields = objFieldsToDTO(data.Fields)
	}
	return dto
}

func exprsToDTO(es []*ir.Expr) []*ExprDTO {
	if es == nil {
		return nil
	}
	out := make([]*ExprDTO, len(es))
	for i, e := range es {
		out[i] = exprToDTO(e)
	}
	return out
}

func fieldsToDTO(fs []ir.ActorField) []FieldDTO {
	out := make([]FieldDTO, len(fs))
	for i, f := range fs {
		out[i] = FieldDTO{Label: f.Label, Value: exprToDTO(f.Value)}
	}
	return out
}

func objFieldsToDTO(fs []ir.ObjField) []FieldDTO {
	out := make([]FieldDTO, len(fs))
	for i, f := range fs {
		out[i] = FieldDTO{Label: f.Label, Value: exprToDTO(f.Value)}
	}
	return out
}

func dtoToExpr(dto *ExprDTO) *ir.Expr {
	if dto == nil {
		return nil
	}
	e := &ir.Expr{Kind: dto.Kind, Type: dto.Type, Effect: dto.Effect}
	switch dto.Kind {
	case ir.KLit:
		e.Data = ir.LitData{Value: *dto.Lit}
	case ir.KVar:
		e.Data = ir.VarData{Name: dto.Name}
	case ir.KPrim:
		e.Data = ir.PrimData{Name: dto.PrimName}
	case ir.KUn:
		e.Data = ir.UnData{Op: dto.UnOp, OperandType: dto.OperandType, Operand: dtoToExpr(dto.Operand)}
	case ir.KBin:
		e.Data = ir.BinData{Op: dto.BinOp, OperandType: dto.OperandType, Left: dtoToExpr(dto.Left), Right: dtoToExpr(dto.Right)}
	case ir.KRel:
		e.Data = ir.RelData{Op: dto.RelOp, OperandType: dto.OperandType, Left: dtoToExpr(dto.Left), Right: dtoToExpr(dto.Right)}
	case ir.KShow:
		e.Data = ir.ShowData{OperandType: dto.OperandType, Operand: dtoToExpr(dto.Operand)}
	case ir.KTup:
		e.Data = ir.TupData{Elems: dtoToExprs(dto.Elems)}
	case ir.KProj:
		e.Data = ir.ProjData{Tuple: dtoToExpr(dto.Tuple), Index: dto.ProjIndex}
	case ir.KOpt:
		e.Data = ir.OptData{Inner: dtoToExpr(dto.Inner)}
	case ir.KTag:
		e.Data = ir.TagData{Name: dto.Name, Inner: dtoToExpr(dto.Inner)}
	case ir.KDot:
		e.Data = ir.DotData{Object: dtoToExpr(dto.Object), Label: dto.Label}
	case ir.KActorDot:
		e.Data = ir.ActorDotData{Object: dtoToExpr(dto.Object), Label: dto.Label}
	case ir.KArray:
		e.Data = ir.ArrayData{Mut: dto.Mut, ElemType: dto.ElemType, Elems: dtoToExprs(dto.Elems)}
	case ir.KIdx:
		e.Data = ir.IdxData{Array: dtoToExpr(dto.Array), Index: dtoToExpr(dto.Index)}
	case ir.KAssign:
		e.Data = ir.AssignData{Target: dtoToExpr(dto.Target), Source: dtoToExpr(dto.Source)}
	case ir.KFunc:
		e.Data = ir.FuncData{
			Sort: dto.Sort, Control: dto.Control, Name: dto.Name,
			Binds: dto.Binds, Params: dtoToPatterns(dto.Params),
			ParamTypes: dto.ParamTypes, ResultTypes: dto.ResultTypes,
			Body: dtoToExpr(dto.Body),
		}
	case ir.KCall:
		e.Data = ir.CallData{Conv: dto.Conv, Func: dtoToExpr(dto.Func), TypeArgs: dto.TypeArgs, Arg: dtoToExpr(dto.Arg)}
	case ir.KBlock:
		e.Data = ir.BlockData{Decls: dtoToDecls(dto.Decls), Result: dtoToExpr(dto.Result)}
	case ir.KIf:
		e.Data = ir.IfData{Cond: dtoToExpr(dto.Cond), Then: dtoToExpr(dto.Then), Else: dtoToExpr(dto.Else)}
	case ir.KSwitch:
		cases := make([]ir.Case, len(dto.Cases))
		for i, c := range dto.Cases {
			cases[i] = ir.Case{Pattern: dtoToPattern(c.Pattern), Body: dtoToExpr(c.Body)}
		}
		e.Data = ir.SwitchData{Scrutinee: dtoToExpr(dto.Scrutinee), Cases: cases}
	case ir.KLoop:
		e.Data = ir.LoopData{Body: dtoToExpr(dto.Body)}
	case ir.KLabel:
		e.Data = ir.LabelData{Label: dto.Label, LabelType: dto.LabelType, Body: dtoToExpr(dto.Body)}
	case ir.KBreak:
		e.Data = ir.BreakData{Label: dto.Label, Arg: dtoToExpr(dto.Arg)}
	case ir.KRet:
		e.Data = ir.RetData{Arg: dtoToExpr(dto.Arg)}
	case ir.KAsync:
		e.Data = ir.AsyncData{Body: dtoToExpr(dto.Body)}
	case ir.KAwait:
		e.Data = ir.AwaitData{Operand: dtoToExpr(dto.Operand)}
	case ir.KAssert:
		e.Data = ir.AssertData{Cond: dtoToExpr(dto.Cond)}
	case ir.KActor:
		e.Data = ir.ActorData{Fields: dtoToActorFields(dto.Fields)}
	case ir.KNewObj:
		e.Data = ir.NewObjData{Sort: dto.ObjSort, Fields: dtoToObjFields(dto.Fields)}
	}
	return e
}

func dtoToExprs(dtos []*ExprDTO) []*ir.Expr {
	if dtos == nil {
		return nil
	}
	out := make([]*ir.Expr, len(dtos))
	for i, d := range dtos {
		out[i] = dtoToExpr(d)
	}
	return out
}

func dtoToActorFields(fs []FieldDTO) []ir.ActorField {
	out := make([]ir.ActorField, len(fs))
	for i, f := range fs {
		out[i] = ir.ActorField{Label: f.Label, Value: dtoToExpr(f.Value)}
	}
	return out
}

func dtoToObjFields(fs []FieldDTO) []ir.ObjField {
	out := make([]ir.ObjField, len(fs))
	for i, f := range fs {
		out[i] = ir.ObjField{Label: f.Label, Value: dtoToExpr(f.Value)}
	}
	return out
}

func patternToDTO(p ir.Pattern) PatternDTO {
	dto := PatternDTO{Kind: p.Kind, Type: p.Type}
	switch data := p.Data.(type) {
	case ir.WildData:
	case ir.LitPatData:
		lit := data.Value
		dto.Lit = &lit
	case ir.VarPatData:
		dto.Name = data.Name
	case ir.TupPatData:
		dto.Elems = patternsToDTOSlice(data.Elems)
	case ir.ObjPatData:
		dto.Fields = make([]FieldPatternDTO, len(data.Fields))
		for i, f := range data.Fields {
			dto.Fields[i] = FieldPatternDTO{Label: f.Label, Pattern: patternToDTO(f.Pattern)}
		}
	case ir.OptPatData:
		if data.Inner != nil {
			inner := patternToDTO(*data.Inner)
			dto.Inner = &inner
		}
	case ir.VariantPatData:
		dto.Name = data.Name
		if data.Inner != nil {
			inner := patternToDTO(*data.Inner)
			dto.Inner = &inner
		}
	case ir.AltPatData:
		dto.Alts = patternsToDTOSlice(data.Alts)
	}
	return dto
}

func patternsToDTO(ps []ir.Pattern) []PatternDTO {
	return patternsToDTOSlice(ps)
}

func patternsToDTOSlice(ps []ir.Pattern) []PatternDTO {
	if ps == nil {
		return nil
	}
	out := make([]PatternDTO, len(ps))
	for i, p := range ps {
		out[i] = patternToDTO(p)
	}
	return out
}

func dtoToPattern(dto PatternDTO) ir.Pattern {
	p := ir.Pattern{Kind: dto.Kind, Type: dto.Type}
	switch dto.Kind {
	case ir.PWild:
		p.Data = ir.WildData{}
	case ir.PLit:
		p.Data = ir.LitPatData{Value: *dto.Lit}
	case ir.PVar:
		p.Data = ir.VarPatData{Name: dto.Name}
	case ir.PTup:
		p.Data = ir.TupPatData{Elems: dtoToPatterns(dto.Elems)}
	case ir.PObj:
		fields := make([]ir.FieldPattern, len(dto.Fields))
		for i, f := range dto.Fields {
			fields[i] = ir.FieldPattern{Label: f.Label, Pattern: dtoToPattern(f.Pattern)}
		}
		p.Data = ir.ObjPatData{Fields: fields}
	case ir.POpt:
		var inner *ir.Pattern
		if dto.Inner != nil {
			v := dtoToPattern(*dto.Inner)
			inner = &v
		}
		p.Data = ir.OptPatData{Inner: inner}
	case ir.PVariant:
		var inner *ir.Pattern
		if dto.Inner != nil {
			v := dtoToPattern(*dto.Inner)
			inner = &v
		}
		p.Data = ir.VariantPatData{Name: dto.Name, Inner: inner}
	case ir.PAlt:
		p.Data = ir.AltPatData{Alts: dtoToPatterns(dto.Alts)}
	}
	return p
}

func dtoToPatterns(dtos []PatternDTO) []ir.Pattern {
	if dtos == nil {
		return nil
	}
	out := make([]ir.Pattern, len(dtos))
	for i, d := range dtos {
		out[i] = dtoToPattern(d)
	}
	return out
}

func declToDTO(d ir.Decl) DeclDTO {
	dto := DeclDTO{Kind: d.Kind}
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		pat := patternToDTO(data.Pattern)
		dto.Pattern = &pat
		dto.Init = exprToDTO(data.Init)
	case ir.VarDeclData:
		dto.Name = data.Name
		dto.Type = data.Type
		dto.Init = exprToDTO(data.Init)
	case ir.TypeDeclData:
		dto.Con = data.Con
	case ir.DeclareDeclData:
		dto.Name = data.Name
		dto.Type = data.Type
	case ir.DefineDeclData:
		dto.Name = data.Name
		dto.Mut = data.Mut
		dto.Init = exprToDTO(data.Init)
	}
	return dto
}

func declsToDTO(ds []ir.Decl) []DeclDTO {
	if ds == nil {
		return nil
	}
	out := make([]DeclDTO, len(ds))
	for i, d := range ds {
		out[i] = declToDTO(d)
	}
	return out
}

func dtoToDecl(dto DeclDTO) ir.Decl {
	d := ir.Decl{Kind: dto.Kind}
	switch dto.Kind {
	case ir.DLet:
		d.Data = ir.LetDeclData{Pattern: dtoToPattern(*dto.Pattern), Init: dtoToExpr(dto.Init)}
	case ir.DVar:
		d.Data = ir.VarDeclData{Name: dto.Name, Type: dto.Type, Init: dtoToExpr(dto.Init)}
	case ir.DType:
		d.Data = ir.TypeDeclData{Con: dto.Con}
	case ir.DDeclare:
		d.Data = ir.DeclareDeclData{Name: dto.Name, Type: dto.Type}
	case ir.DDefine:
		d.Data = ir.DefineDeclData{Name: dto.Name, Mut: dto.Mut, Init: dtoToExpr(dto.Init)}
	}
	return d
}

func dtoToDecls(dtos []DeclDTO) []ir.Decl {
	if dtos == nil {
		return nil
	}
	out := make([]ir.Decl, len(dtos))
	for i, d := range dtos {
		out[i] = dtoToDecl(d)
	}
	return out
}

func programToDTO(p *ir.Program) *ProgramDTO {
	return &ProgramDTO{
		Schema:      fixtureSchemaVersion,
		Arguments:   patternsToDTOSlice(p.Arguments),
		DeclGroups:  declGroupsToDTO(p.DeclGroups),
		ActorFields: fieldsToDTO(p.ActorFields),
		Flavor:      p.Flavor,
	}
}

func declGroupsToDTO(groups [][]ir.Decl) [][]DeclDTO {
	out := make([][]DeclDTO, len(groups))
	for i, g := range groups {
		out[i] = declsToDTO(g)
	}
	return out
}

func dtoToProgram(dto *ProgramDTO) *ir.Program {
	groups := make([][]ir.Decl, len(dto.DeclGroups))
	for i, g := range dto.DeclGroups {
		groups[i] = dtoToDecls(g)
	}
	return &ir.Program{
		Arguments:   dtoToPatterns(dto.Arguments),
		DeclGroups:  groups,
		ActorFields: dtoToActorFields(dto.ActorFields),
		Flavor:      dto.Flavor,
	}
}

package irfixture

import (
	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// ir.Expr, ir.Decl and ir.Pattern carry their variant payload behind an
// unexported marker interface (exprData/declData/patternData), so
// msgpack has no concrete type to decode into. The *DTO types below give
// every variant its own optional field on one flat struct, msgpack's usual
// answer to a Go tagged union, generalized from a single flat record to a
// recursive tree of them.

// ExprDTO is the wire shape of ir.Expr. Only the fields relevant to Kind
// are populated; the rest are left zero.
type ExprDTO struct {
	Kind   ir.ExprKind
	Type   irtypes.TypeID
	Effect irtypes.Effect

	Lit *ir.Literal // KLit

	Name     source.StringID // KVar, KTag, KFunc name
	PrimName string          // KPrim

	UnOp        ir.UnOp  // KUn
	BinOp       ir.BinOp // KBin
	RelOp       ir.RelOp // KRel
	OperandType irtypes.TypeID
	Operand     *ExprDTO // KUn, KShow, KAwait
	Left, Right *ExprDTO // KBin, KRel

	Elems []*ExprDTO // KTup, KArray

	Tuple     *ExprDTO // KProj
	ProjIndex int      // KProj

	Inner *ExprDTO // KOpt, KTag

	Object *ExprDTO        // KDot, KActorDot
	Label  source.StringID // KDot, KActorDot, KLabel, KBreak

	Mut      bool           // KArray
	ElemType irtypes.TypeID // KArray

	Array *ExprDTO // KIdx
	Index *ExprDTO // KIdx

	Target, Source *ExprDTO // KAssign

	Sort        irtypes.FuncSort    // KFunc
	Control     irtypes.FuncControl // KFunc
	Binds       []irtypes.TypeBind  // KFunc
	Params      []PatternDTO        // KFunc
	ParamTypes  []irtypes.TypeID    // KFunc
	ResultTypes []irtypes.TypeID    // KFunc
	Body        *ExprDTO            // KFunc, KLoop, KLabel, KAsync

	Conv     irtypes.FuncSort // KCall
	Func     *ExprDTO         // KCall
	TypeArgs []irtypes.TypeID // KCall
	Arg      *ExprDTO         // KCall, KBreak, KRet

	Decls  []DeclDTO // KBlock
	Result *ExprDTO  // KBlock

	Cond, Then, Else *ExprDTO // KIf; Cond reused by KAssert

	Scrutinee *ExprDTO   // KSwitch
	Cases     []CaseDTO  // KSwitch
	LabelType irtypes.TypeID // KLabel

	ObjSort irtypes.ObjSort // KNewObj
	Fields  []FieldDTO      // KActor, KNewObj
}

// CaseDTO is the wire shape of ir.Case.
type CaseDTO struct {
	Pattern PatternDTO
	Body    *ExprDTO
}

// FieldDTO is the wire shape of ir.ActorField / ir.ObjField (identical
// shapes in the source tree, so they share one wire representation).
type FieldDTO struct {
	Label source.StringID
	Value *ExprDTO
}

// PatternDTO is the wire shape of ir.Pattern.
type PatternDTO struct {
	Kind ir.PatternKind
	Type irtypes.TypeID

	Lit    *ir.Literal       // PLit
	Name   source.StringID   // PVar, PVariant
	Elems  []PatternDTO      // PTup
	Fields []FieldPatternDTO // PObj
	Inner  *PatternDTO       // POpt, PVariant
	Alts   []PatternDTO      // PAlt
}

// FieldPatternDTO is the wire shape of ir.FieldPattern.
type FieldPatternDTO struct {
	Label   source.StringID
	Pattern PatternDTO
}

// DeclDTO is the wire shape of ir.Decl.
type DeclDTO struct {
	Kind ir.DeclKind

	Pattern *PatternDTO     // DLet
	Init    *ExprDTO        // DLet, DVar, DDefine
	Name    source.StringID // DVar, DDeclare, DDefine
	Type    irtypes.TypeID  // DVar, DDeclare
	Con     irtypes.ConID   // DType
	Mut     bool            // DDefine
}

// ProgramDTO is the wire shape of ir.Program, plus a schema tag so a future
// format change can be detected instead of silently misdecoded.
type ProgramDTO struct {
	Schema      uint16
	Arguments   []PatternDTO
	DeclGroups  [][]DeclDTO
	ActorFields []FieldDTO
	Flavor      ir.Flavor
}

// Package ir defines the algebraic IR node shapes shared by the checker and
// the two transform passes, plus smart constructors that assemble nodes
// while computing their type and effect annotations locally.
package ir

import (
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// ExprKind tags the variant of an Expr node.
type ExprKind uint8

const (
	KindInvalid ExprKind = iota
	KLit
	KVar
	KPrim
	KUn
	KBin
	KRel
	KShow
	KTup
	KProj
	KOpt
	KTag
	KDot
	KActorDot
	KArray
	KIdx
	KAssign
	KFunc
	KCall
	KBlock
	KIf
	KSwitch
	KLoop
	KLabel
	KBreak
	KRet
	KAsync
	KAwait
	KAssert
	KActor
	KNewObj
)

func (k ExprKind) String() string {
	switch k {
	case KLit:
		return "Lit"
	case KVar:
		return "Var"
	case KPrim:
		return "Prim"
	case KUn:
		return "Un"
	case KBin:
		return "Bin"
	case KRel:
		return "Rel"
	case KShow:
		return "Show"
	case KTup:
		return "Tup"
	case KProj:
		return "Proj"
	case KOpt:
		return "Opt"
	case KTag:
		return "Tag"
	case KDot:
		return "Dot"
	case KActorDot:
		return "ActorDot"
	case KArray:
		return "Array"
	case KIdx:
		return "Idx"
	case KAssign:
		return "Assign"
	case KFunc:
		return "Func"
	case KCall:
		return "Call"
	case KBlock:
		return "Block"
	case KIf:
		return "If"
	case KSwitch:
		return "Switch"
	case KLoop:
		return "Loop"
	case KLabel:
		return "Label"
	case KBreak:
		return "Break"
	case KRet:
		return "Ret"
	case KAsync:
		return "Async"
	case KAwait:
		return "Await"
	case KAssert:
		return "Assert"
	case KActor:
		return "Actor"
	case KNewObj:
		return "NewObj"
	default:
		return "Invalid"
	}
}

// exprData marks the per-variant payload types; it carries no methods
// besides the marker so unrelated structs cannot be substituted by mistake.
type exprData interface{ exprData() }

// Expr is a single IR expression node: variant, source position, type and
// effect annotation, and variant-specific payload.
type Expr struct {
	Kind   ExprKind
	Pos    source.Span
	Type   irtypes.TypeID
	Effect irtypes.Effect
	Data   exprData
}

type LitData struct{ Value Literal }

func (LitData) exprData() {}

type VarData struct{ Name source.StringID }

func (VarData) exprData() {}

// PrimData references a primitive operator by name, e.g. "Nat.add".
type PrimData struct{ Name string }

func (PrimData) exprData() {}

type UnData struct {
	Op          UnOp
	OperandType irtypes.TypeID
	Operand     *Expr
}

func (UnData) exprData() {}

type BinData struct {
	Op          BinOp
	OperandType irtypes.TypeID
	Left, Right *Expr
}

func (BinData) exprData() {}

type RelData struct {
	Op          RelOp
	OperandType irtypes.TypeID
	Left, Right *Expr
}

func (RelData) exprData() {}

type ShowData struct {
	OperandType irtypes.TypeID
	Operand     *Expr
}

func (ShowData) exprData() {}

type TupData struct{ Elems []*Expr }

func (TupData) exprData() {}

type ProjData struct {
	Tuple *Expr
	Index int
}

func (ProjData) exprData() {}

// OptData injects into an option type. Inner == nil represents None.
type OptData struct{ Inner *Expr }

func (OptData) exprData() {}

// TagData injects into a variant type under the arm named Name.
type TagData struct {
	Name  source.StringID
	Inner *Expr
}

func (TagData) exprData() {}

// DotData is field access on a non-actor object.
type DotData struct {
	Object *Expr
	Label  source.StringID
}

func (DotData) exprData() {}

// ActorDotData is field access on an actor, distinguished because the
// result carries send-capability semantics.
type ActorDotData struct {
	Object *Expr
	Label  source.StringID
}

func (ActorDotData) exprData() {}

type ArrayData struct {
	Mut      bool
	ElemType irtypes.TypeID
	Elems    []*Expr
}

func (ArrayData) exprData() {}

type IdxData struct{ Array, Index *Expr }

func (IdxData) exprData() {}

type AssignData struct{ Target, Source *Expr }

func (AssignData) exprData() {}

type FuncData struct {
	Sort        irtypes.FuncSort
	Control     irtypes.FuncControl
	Name        source.StringID
	Binds       []irtypes.TypeBind
	Params      []Pattern
	ParamTypes  []irtypes.TypeID
	ResultTypes []irtypes.TypeID
	Body        *Expr
}

func (FuncData) exprData() {}

type CallData struct {
	Conv     irtypes.FuncSort
	Func     *Expr
	TypeArgs []irtypes.TypeID
	Arg      *Expr
}

func (CallData) exprData() {}

type BlockData struct {
	Decls  []Decl
	Result *Expr
}

func (BlockData) exprData() {}

type IfData struct{ Cond, Then, Else *Expr }

func (IfData) exprData() {}

type Case struct {
	Pattern Pattern
	Body    *Expr
}

type SwitchData struct {
	Scrutinee *Expr
	Cases     []Case
}

func (SwitchData) exprData() {}

type LoopData struct{ Body *Expr }

func (LoopData) exprData() {}

type LabelData struct {
	Label     source.StringID
	LabelType irtypes.TypeID
	Body      *Expr
}

func (LabelData) exprData() {}

type BreakData struct {
	Label source.StringID
	Arg   *Expr
}

func (BreakData) exprData() {}

type RetData struct{ Arg *Expr }

func (RetData) exprData() {}

type AsyncData struct{ Body *Expr }

func (AsyncData) exprData() {}

type AwaitData struct{ Operand *Expr }

func (AwaitData) exprData() {}

type AssertData struct{ Cond *Expr }

func (AssertData) exprData() {}

// ActorField is one exposed method of an actor body, or one field of an
// object construction.
type ActorField struct {
	Label source.StringID
	Value *Expr
}

type ActorData struct{ Fields []ActorField }

func (ActorData) exprData() {}

type ObjField struct {
	Label source.StringID
	Value *Expr
}

type NewObjData struct {
	Sort   irtypes.ObjSort
	Fields []ObjField
}

func (NewObjData) exprData() {}

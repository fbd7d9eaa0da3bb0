package ir

import (
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// DeclKind tags the variant of a block declaration.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DLet
	DVar
	DType
	// DDeclare and DDefine are the two halves the async/await CPS transform
	// splits a value declaration into: DDeclare announces the name and type
	// with no initializer; DDefine later supplies the value.
	DDeclare
	DDefine
)

func (k DeclKind) String() string {
	switch k {
	case DLet:
		return "Let"
	case DVar:
		return "Var"
	case DType:
		return "Type"
	case DDeclare:
		return "Declare"
	case DDefine:
		return "Define"
	default:
		return "Invalid"
	}
}

type declData interface{ declData() }

// Decl is one declaration inside a declaration block.
type Decl struct {
	Kind DeclKind
	Pos  source.Span
	Data declData
}

// LetDeclData is `let pattern = init`.
type LetDeclData struct {
	Pattern Pattern
	Init    *Expr
}

func (LetDeclData) declData() {}

// VarDeclData is `var id = init`, introducing a mutable cell of Type.
type VarDeclData struct {
	Name source.StringID
	Type irtypes.TypeID
	Init *Expr
}

func (VarDeclData) declData() {}

// TypeDeclData is `type C = ...`, introducing Con into the constructor
// environment.
type TypeDeclData struct{ Con irtypes.ConID }

func (TypeDeclData) declData() {}

// DeclareDeclData announces Name : Type with no initializer.
type DeclareDeclData struct {
	Name source.StringID
	Type irtypes.TypeID
}

func (DeclareDeclData) declData() {}

// DefineDeclData supplies the value for a name previously announced with
// DDeclare. Mut selects whether the name denotes a mutable cell.
type DefineDeclData struct {
	Name source.StringID
	Mut  bool
	Init *Expr
}

func (DefineDeclData) declData() {}

package ir

import (
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// PatternKind tags the variant of a Pattern node.
type PatternKind uint8

const (
	PatInvalid PatternKind = iota
	PWild
	PLit
	PVar
	PTup
	PObj
	POpt
	PVariant
	PAlt
)

func (k PatternKind) String() string {
	switch k {
	case PWild:
		return "Wild"
	case PLit:
		return "Lit"
	case PVar:
		return "Var"
	case PTup:
		return "Tup"
	case PObj:
		return "Obj"
	case POpt:
		return "Opt"
	case PVariant:
		return "Variant"
	case PAlt:
		return "Alt"
	default:
		return "Invalid"
	}
}

type patternData interface{ patternData() }

// Pattern is a single pattern node: variant, source position, the type it
// is checked against, and variant-specific payload.
type Pattern struct {
	Kind PatternKind
	Pos  source.Span
	Type irtypes.TypeID
	Data patternData
}

type WildData struct{}

func (WildData) patternData() {}

type LitPatData struct{ Value Literal }

func (LitPatData) patternData() {}

type VarPatData struct{ Name source.StringID }

func (VarPatData) patternData() {}

type TupPatData struct{ Elems []Pattern }

func (TupPatData) patternData() {}

type FieldPattern struct {
	Label   source.StringID
	Pattern Pattern
}

type ObjPatData struct{ Fields []FieldPattern }

func (ObjPatData) patternData() {}

// OptPatData matches an option value. Inner == nil matches None.
type OptPatData struct{ Inner *Pattern }

func (OptPatData) patternData() {}

type VariantPatData struct {
	Name  source.StringID
	Inner *Pattern
}

func (VariantPatData) patternData() {}

// AltPatData is p1 | p2 | ...; alternatives must bind no variables.
type AltPatData struct{ Alts []Pattern }

func (AltPatData) patternData() {}

package ir

import "github.com/ZenVoich/motoko/internal/irtypes"

// Literal is a constant value tagged with the primitive kind it inhabits.
// Exactly one payload field is meaningful per Prim.
type Literal struct {
	Prim  irtypes.PrimKind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Char  rune
	Text  string
}

func LitNull() Literal           { return Literal{Prim: irtypes.PrimNull} }
func LitBool(b bool) Literal     { return Literal{Prim: irtypes.PrimBool, Bool: b} }
func LitNat(n uint64) Literal    { return Literal{Prim: irtypes.PrimNat, Uint: n} }
func LitInt(n int64) Literal     { return Literal{Prim: irtypes.PrimInt, Int: n} }
func LitFloat(f float64) Literal { return Literal{Prim: irtypes.PrimFloat, Float: f} }
func LitChar(c rune) Literal     { return Literal{Prim: irtypes.PrimChar, Char: c} }
func LitText(s string) Literal   { return Literal{Prim: irtypes.PrimText, Text: s} }

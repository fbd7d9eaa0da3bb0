// Package irtypes implements the IR type model: type variants, kinds,
// structural subtyping, promotion, and the effect lattice.
package irtypes

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates every type variant the interner can register.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrim         // primitive scalar; Prim field selects which one
	KindAny          // top
	KindNon          // bottom
	KindShared       // marker supertype of cross-actor-transmissible types
	KindTuple        // Payload -> tupleInfo
	KindOption       // Elem
	KindArray        // Elem (may itself be Mut for a mutable array)
	KindMut          // Elem; second-class, restricted by checker invariant
	KindAsync        // Elem: result type of the suspended computation
	KindObject       // Payload -> objectInfo
	KindVariant      // Payload -> variantInfo
	KindFunc         // Payload -> funcInfo
	KindCon          // named type-constructor application; Payload -> conAppInfo
	KindBound        // de Bruijn bound type-variable reference; Count = index
	KindSerialized   // Elem; only legal when flavor.serialized is set
	KindPre          // sentinel meaning "unresolved"; illegal in checked IR
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindPrim:
		return "prim"
	case KindAny:
		return "Any"
	case KindNon:
		return "Non"
	case KindShared:
		return "Shared"
	case KindTuple:
		return "tuple"
	case KindOption:
		return "option"
	case KindArray:
		return "array"
	case KindMut:
		return "mut"
	case KindAsync:
		return "async"
	case KindObject:
		return "object"
	case KindVariant:
		return "variant"
	case KindFunc:
		return "func"
	case KindCon:
		return "con"
	case KindBound:
		return "bound"
	case KindSerialized:
		return "serialized"
	case KindPre:
		return "Pre"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// PrimKind enumerates the fixed set of primitive types.
type PrimKind uint8

const (
	PrimNull PrimKind = iota
	PrimBool
	PrimNat
	PrimInt
	PrimNat8
	PrimNat16
	PrimNat32
	PrimNat64
	PrimInt8
	PrimInt16
	PrimInt32
	PrimInt64
	PrimFloat
	PrimChar
	PrimText
)

func (p PrimKind) String() string {
	switch p {
	case PrimNull:
		return "Null"
	case PrimBool:
		return "Bool"
	case PrimNat:
		return "Nat"
	case PrimInt:
		return "Int"
	case PrimNat8:
		return "Nat8"
	case PrimNat16:
		return "Nat16"
	case PrimNat32:
		return "Nat32"
	case PrimNat64:
		return "Nat64"
	case PrimInt8:
		return "Int8"
	case PrimInt16:
		return "Int16"
	case PrimInt32:
		return "Int32"
	case PrimInt64:
		return "Int64"
	case PrimFloat:
		return "Float"
	case PrimChar:
		return "Char"
	case PrimText:
		return "Text"
	default:
		return fmt.Sprintf("PrimKind(%d)", p)
	}
}

// Type is a compact descriptor for any supported type variant. Exactly one
// of Elem/Payload/Count/Prim is meaningful per Kind; see the Kind doc
// comments above.
type Type struct {
	Kind    Kind
	Elem    TypeID   // Option/Array/Mut/Async/Serialized element
	Payload uint32   // slot into the interner's per-kind info table
	Count   uint32   // KindBound: de Bruijn index
	Prim    PrimKind // KindPrim: which primitive
}

// MakePrim describes a primitive type.
func MakePrim(p PrimKind) Type {
	return Type{Kind: KindPrim, Prim: p}
}

// MakeOption describes Option<T>.
func MakeOption(elem TypeID) Type {
	return Type{Kind: KindOption, Elem: elem}
}

// MakeArray describes Array<T> (T may be Mut U for a mutable array).
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// MakeMut describes the second-class Mut T wrapper.
func MakeMut(elem TypeID) Type {
	return Type{Kind: KindMut, Elem: elem}
}

// MakeAsync describes Async<T>, the type of a suspended computation.
func MakeAsync(elem TypeID) Type {
	return Type{Kind: KindAsync, Elem: elem}
}

// MakeSerialized describes Serialized<T> (only legal when flavor.serialized).
func MakeSerialized(elem TypeID) Type {
	return Type{Kind: KindSerialized, Elem: elem}
}

// MakeBound describes a de Bruijn bound type-variable reference.
func MakeBound(index uint32) Type {
	return Type{Kind: KindBound, Count: index}
}

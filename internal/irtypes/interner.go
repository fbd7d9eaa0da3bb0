package irtypes

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/ZenVoich/motoko/internal/source"
)

// Builtins stores TypeIDs for the fixed primitive types plus Any/Non/Shared.
type Builtins struct {
	Invalid TypeID
	Null    TypeID
	Bool    TypeID
	Nat     TypeID
	Int     TypeID
	Float   TypeID
	Char    TypeID
	Text    TypeID
	Any     TypeID
	Non     TypeID
	Shared  TypeID
	Unit    TypeID // seq([]) result
}

// Interner provides stable TypeIDs by structural hashing of descriptors,
// plus per-kind side tables for the variants that carry more than a single
// element type (tuples, objects, variants, functions, constructor
// applications).
type Interner struct {
	// Strings resolves the source.StringID labels/names embedded in field,
	// variant, and constructor descriptors to their text, for diagnostics.
	Strings *source.Interner

	types []Type
	index map[typeKey]TypeID

	builtins Builtins

	tuples   []tupleInfo
	objects  []objectInfo
	variants []variantInfo
	funcs    []funcInfo
	conApps  []conAppInfo

	tupleIndex   map[string]TypeID
	objectIndex  map[string]TypeID
	variantIndex map[string]TypeID
	funcIndex    map[string]TypeID
	conAppIndex  map[string]TypeID

	// cons is the registry of type-constructor identities. Equality between
	// ConIDs is by identity (slice index), never by Name.
	cons []conInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		Strings: strings,
		index:   make(map[typeKey]TypeID, 64),
	}
	// Reserve slot 0 in every side table so Payload==0 can mean "absent".
	in.tuples = append(in.tuples, tupleInfo{})
	in.objects = append(in.objects, objectInfo{})
	in.variants = append(in.variants, variantInfo{})
	in.funcs = append(in.funcs, funcInfo{})
	in.conApps = append(in.conApps, conAppInfo{})
	in.cons = append(in.cons, conInfo{}) // ConID 0 is invalid

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Null = in.Intern(MakePrim(PrimNull))
	in.builtins.Bool = in.Intern(MakePrim(PrimBool))
	in.builtins.Nat = in.Intern(MakePrim(PrimNat))
	in.builtins.Int = in.Intern(MakePrim(PrimInt))
	in.builtins.Float = in.Intern(MakePrim(PrimFloat))
	in.builtins.Char = in.Intern(MakePrim(PrimChar))
	in.builtins.Text = in.Intern(MakePrim(PrimText))
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Non = in.Intern(Type{Kind: KindNon})
	in.builtins.Shared = in.Intern(Type{Kind: KindShared})
	in.builtins.Unit = in.RegisterTuple(nil)
	return in
}

// Builtins returns TypeIDs for primitive and top/bottom types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID. Descriptors
// that own a side-table payload (tuple/object/variant/func/con) must be
// interned through their Register* constructor instead, since only those
// know how to place the payload; passing such a Kind here without a
// pre-populated Payload risks aliasing unrelated payload slot 0.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("irtypes: len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid; used where the caller has already
// established id came from this interner.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("irtypes: invalid TypeID")
	}
	return tt
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
	Count   uint32
	Prim    PrimKind
}

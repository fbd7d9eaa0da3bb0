package irtypes

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/ZenVoich/motoko/internal/source"
)

// ConID identifies a type constructor by identity, not by name: two
// constructors with the same Name are still distinct ConIDs unless they are
// literally the same registration.
type ConID uint32

// NoConID marks the absence of a constructor.
const NoConID ConID = 0

// ConKind distinguishes a fully-defined constructor (Def) from an abstract
// one introduced by a generic binder (Abs).
type ConKind uint8

const (
	ConDef ConKind = iota
	ConAbs
)

// conInfo describes a registered type constructor: its bound parameter
// count and, for Def, the body under those parameters (referencing them via
// KindBound), or for Abs, the parameter's upper bound.
type conInfo struct {
	Name    source.StringID
	Kind    ConKind
	Binders int
	Body    TypeID
}

// RegisterCon mints a fresh constructor identity. Constructors are never
// deduplicated by structure: each call, even with identical arguments,
// yields a new ConID, matching the "identities are globally unique tokens"
// rule.
func (in *Interner) RegisterCon(name source.StringID, kind ConKind, binders int, body TypeID) ConID {
	in.cons = append(in.cons, conInfo{Name: name, Kind: kind, Binders: binders, Body: body})
	slot, err := safecast.Conv[uint32](len(in.cons) - 1)
	if err != nil {
		panic(fmt.Errorf("irtypes: constructor overflow: %w", err))
	}
	return ConID(slot)
}

// ConInfo describes a constructor's declared shape.
type ConInfo struct {
	Name    source.StringID
	Kind    ConKind
	Binders int
	Body    TypeID
}

// LookupCon returns the declared shape of a constructor.
func (in *Interner) LookupCon(id ConID) (ConInfo, bool) {
	if id == NoConID || int(id) >= len(in.cons) {
		return ConInfo{}, false
	}
	c := in.cons[id]
	return ConInfo(c), true
}

// conAppInfo stores a type-constructor application's constructor and args.
type conAppInfo struct {
	Con  ConID
	Args []TypeID
}

// RegisterConApp creates or finds C<args>.
func (in *Interner) RegisterConApp(con ConID, args []TypeID) TypeID {
	key := fmt.Sprintf("%d|%s", con, idsKey(args))
	if in.conAppIndex != nil {
		if id, ok := in.conAppIndex[key]; ok {
			return id
		}
	}
	slot := in.appendConAppInfo(conAppInfo{Con: con, Args: cloneTypeArgs(args)})
	id := in.internRaw(Type{Kind: KindCon, Payload: slot})
	if in.conAppIndex == nil {
		in.conAppIndex = make(map[string]TypeID)
	}
	in.conAppIndex[key] = id
	return id
}

// ConApp returns the destructured constructor application.
func (in *Interner) ConApp(id TypeID) (ConID, []TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindCon || int(tt.Payload) >= len(in.conApps) {
		return NoConID, nil, false
	}
	a := in.conApps[tt.Payload]
	return a.Con, cloneTypeArgs(a.Args), true
}

func (in *Interner) appendConAppInfo(info conAppInfo) uint32 {
	in.conApps = append(in.conApps, conAppInfo{Con: info.Con, Args: cloneTypeArgs(info.Args)})
	slot, err := safecast.Conv[uint32](len(in.conApps) - 1)
	if err != nil {
		panic(fmt.Errorf("irtypes: con-app overflow: %w", err))
	}
	return slot
}

// ConSet is the type-constructor environment: a set of in-scope constructor
// identities.
type ConSet map[ConID]struct{}

// NewConSet builds a ConSet from the given identities.
func NewConSet(ids ...ConID) ConSet {
	s := make(ConSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member.
func (s ConSet) Has(id ConID) bool {
	_, ok := s[id]
	return ok
}

// DisjointAdd merges other into s in place, failing if any identity is
// already present in s. This is how the checker catches duplicate type
// definitions within one block.
func (s ConSet) DisjointAdd(other ConSet) error {
	for id := range other {
		if s.Has(id) {
			return fmt.Errorf("irtypes: duplicate type constructor definition (con id %d)", id)
		}
	}
	for id := range other {
		s[id] = struct{}{}
	}
	return nil
}

// Clone returns an independent copy of s.
func (s ConSet) Clone() ConSet {
	out := make(ConSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

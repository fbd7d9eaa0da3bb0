package irtypes //nolint:revive

import (
	"fmt"

	"fortio.org/safecast"
)

// FuncSort distinguishes ordinary local closures from shared (inter-actor)
// functions.
type FuncSort uint8

const (
	FuncLocal FuncSort = iota
	FuncShared
)

func (s FuncSort) String() string {
	if s == FuncShared {
		return "shared"
	}
	return "local"
}

// FuncControl distinguishes ordinary return from an asynchronous-caller
// promise contract.
type FuncControl uint8

const (
	CtlReturns FuncControl = iota
	CtlPromises
)

func (c FuncControl) String() string {
	if c == CtlPromises {
		return "promises"
	}
	return "returns"
}

// TypeBind is one bound type parameter of a generic function, carrying its
// upper bound (Builtins.Any if unbounded).
type TypeBind struct {
	Bound TypeID
}

// funcInfo stores metadata for function types.
type funcInfo struct {
	Sort     FuncSort
	Control  FuncControl
	Binds    []TypeBind
	Domain   []TypeID // parameter types, open under Binds
	Codomain []TypeID // result types, open under Binds
}

// FuncInfo is the caller-facing, destructured view of a function type.
type FuncInfo struct {
	Sort     FuncSort
	Control  FuncControl
	Binds    []TypeBind
	Domain   []TypeID
	Codomain []TypeID
}

// RegisterFunc creates or finds a function type.
func (in *Interner) RegisterFunc(sort FuncSort, control FuncControl, binds []TypeBind, domain, codomain []TypeID) TypeID {
	key := funcKey(sort, control, binds, domain, codomain)
	if in.funcIndex != nil {
		if id, ok := in.funcIndex[key]; ok {
			return id
		}
	}
	slot := in.appendFuncInfo(funcInfo{
		Sort: sort, Control: control,
		Binds: cloneBinds(binds), Domain: cloneTypeArgs(domain), Codomain: cloneTypeArgs(codomain),
	})
	id := in.internRaw(Type{Kind: KindFunc, Payload: slot})
	if in.funcIndex == nil {
		in.funcIndex = make(map[string]TypeID)
	}
	in.funcIndex[key] = id
	return id
}

// FuncParts returns the destructured components of a function TypeID.
func (in *Interner) FuncParts(id TypeID) (FuncInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunc || int(tt.Payload) >= len(in.funcs) {
		return FuncInfo{}, false
	}
	f := in.funcs[tt.Payload]
	return FuncInfo{
		Sort: f.Sort, Control: f.Control,
		Binds: cloneBinds(f.Binds), Domain: cloneTypeArgs(f.Domain), Codomain: cloneTypeArgs(f.Codomain),
	}, true
}

func (in *Interner) appendFuncInfo(info funcInfo) uint32 {
	in.funcs = append(in.funcs, funcInfo{
		Sort: info.Sort, Control: info.Control,
		Binds: cloneBinds(info.Binds), Domain: cloneTypeArgs(info.Domain), Codomain: cloneTypeArgs(info.Codomain),
	})
	slot, err := safecast.Conv[uint32](len(in.funcs) - 1)
	if err != nil {
		panic(fmt.Errorf("irtypes: func info overflow: %w", err))
	}
	return slot
}

func cloneBinds(binds []TypeBind) []TypeBind {
	if len(binds) == 0 {
		return nil
	}
	out := make([]TypeBind, len(binds))
	copy(out, binds)
	return out
}

func funcKey(sort FuncSort, control FuncControl, binds []TypeBind, domain, codomain []TypeID) string {
	s := fmt.Sprintf("%d|%d|", sort, control)
	for _, b := range binds {
		s += fmt.Sprintf("%d,", b.Bound)
	}
	s += "|" + idsKey(domain) + "|" + idsKey(codomain)
	return s
}

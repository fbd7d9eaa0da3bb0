package irtypes

import (
	"fmt"

	"fortio.org/safecast"
)

// tupleInfo stores the element types for a tuple type, in order.
type tupleInfo struct {
	Elems []TypeID
}

// RegisterTuple creates or finds a tuple type with the given elements. A
// zero-element tuple is the unit type; RegisterTuple(nil) is how Builtins.Unit
// is produced.
func (in *Interner) RegisterTuple(elems []TypeID) TypeID {
	key := idsKey(elems)
	if in.tupleIndex != nil {
		if id, ok := in.tupleIndex[key]; ok {
			return id
		}
	}
	slot := in.appendTupleInfo(tupleInfo{Elems: cloneTypeArgs(elems)})
	id := in.internRaw(Type{Kind: KindTuple, Payload: slot})
	if in.tupleIndex == nil {
		in.tupleIndex = make(map[string]TypeID)
	}
	in.tupleIndex[key] = id
	return id
}

// TupleElems returns the element types for a tuple TypeID.
func (in *Interner) TupleElems(id TypeID) ([]TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	if int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return cloneTypeArgs(in.tuples[tt.Payload].Elems), true
}

func (in *Interner) appendTupleInfo(info tupleInfo) uint32 {
	in.tuples = append(in.tuples, tupleInfo{Elems: cloneTypeArgs(info.Elems)})
	slot, err := safecast.Conv[uint32](len(in.tuples) - 1)
	if err != nil {
		panic(fmt.Errorf("irtypes: tuple info overflow: %w", err))
	}
	return slot
}

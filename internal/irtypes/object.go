package irtypes

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/ZenVoich/motoko/internal/source"
)

// ObjSort tags an object type by the kind of thing it describes.
type ObjSort uint8

const (
	ObjLocal ObjSort = iota
	ObjModule
	ObjActor
)

func (s ObjSort) String() string {
	switch s {
	case ObjLocal:
		return "object"
	case ObjModule:
		return "module"
	case ObjActor:
		return "actor"
	default:
		return fmt.Sprintf("ObjSort(%d)", s)
	}
}

// Field is one label/type pair of an object type. Objects store Fields in
// strict ascending label order with unique labels.
type Field struct {
	Label source.StringID
	Type  TypeID
}

type objectInfo struct {
	Sort   ObjSort
	Fields []Field
}

// RegisterObject creates or finds an object type. Fields must already be
// sorted ascending by Label with no duplicates; use FieldsSortedDistinct to check.
func (in *Interner) RegisterObject(sort ObjSort, fields []Field) TypeID {
	key := objectKey(sort, fields)
	if in.objectIndex != nil {
		if id, ok := in.objectIndex[key]; ok {
			return id
		}
	}
	slot := in.appendObjectInfo(objectInfo{Sort: sort, Fields: cloneFields(fields)})
	id := in.internRaw(Type{Kind: KindObject, Payload: slot})
	if in.objectIndex == nil {
		in.objectIndex = make(map[string]TypeID)
	}
	in.objectIndex[key] = id
	return id
}

// ObjectSort and ObjectFields return the metadata for an object TypeID.
func (in *Interner) ObjectSort(id TypeID) (ObjSort, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObject || int(tt.Payload) >= len(in.objects) {
		return 0, false
	}
	return in.objects[tt.Payload].Sort, true
}

func (in *Interner) ObjectFields(id TypeID) ([]Field, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObject || int(tt.Payload) >= len(in.objects) {
		return nil, false
	}
	return cloneFields(in.objects[tt.Payload].Fields), true
}

// LookupField returns the type of the field with the given label.
func LookupField(fields []Field, label source.StringID) (TypeID, bool) {
	for _, f := range fields {
		if f.Label == label {
			return f.Type, true
		}
	}
	return NoTypeID, false
}

// FieldsSortedDistinct reports whether fields are in strict ascending label
// order with no duplicate labels.
func FieldsSortedDistinct(fields []Field) bool {
	for i := 1; i < len(fields); i++ {
		if fields[i-1].Label >= fields[i].Label {
			return false
		}
	}
	return true
}

func (in *Interner) appendObjectInfo(info objectInfo) uint32 {
	in.objects = append(in.objects, objectInfo{Sort: info.Sort, Fields: cloneFields(info.Fields)})
	slot, err := safecast.Conv[uint32](len(in.objects) - 1)
	if err != nil {
		panic(fmt.Errorf("irtypes: object info overflow: %w", err))
	}
	return slot
}

func cloneFields(fields []Field) []Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func objectKey(sort ObjSort, fields []Field) string {
	s := fmt.Sprintf("%d|", sort)
	for _, f := range fields {
		s += fmt.Sprintf("%d:%d,", f.Label, f.Type)
	}
	return s
}

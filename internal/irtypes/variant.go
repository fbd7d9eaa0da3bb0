package irtypes

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/ZenVoich/motoko/internal/source"
)

// VariantArm is one (constructor-name, type) pair of a variant type.
// Variants store Arms in strict ascending name order with unique names,
// mirroring Object's Fields discipline.
type VariantArm struct {
	Name source.StringID
	Type TypeID
}

type variantInfo struct {
	Arms []VariantArm
}

// RegisterVariant creates or finds a variant type. Arms must already be
// sorted ascending by Name with no duplicates.
func (in *Interner) RegisterVariant(arms []VariantArm) TypeID {
	key := variantKey(arms)
	if in.variantIndex != nil {
		if id, ok := in.variantIndex[key]; ok {
			return id
		}
	}
	slot := in.appendVariantInfo(variantInfo{Arms: cloneArms(arms)})
	id := in.internRaw(Type{Kind: KindVariant, Payload: slot})
	if in.variantIndex == nil {
		in.variantIndex = make(map[string]TypeID)
	}
	in.variantIndex[key] = id
	return id
}

// VariantArms returns the arms of a variant TypeID.
func (in *Interner) VariantArms(id TypeID) ([]VariantArm, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindVariant || int(tt.Payload) >= len(in.variants) {
		return nil, false
	}
	return cloneArms(in.variants[tt.Payload].Arms), true
}

// LookupArm returns the type of the arm with the given constructor name.
func LookupArm(arms []VariantArm, name source.StringID) (TypeID, bool) {
	for _, a := range arms {
		if a.Name == name {
			return a.Type, true
		}
	}
	return NoTypeID, false
}

// ArmsSortedDistinct reports whether arms are in strict ascending name
// order with no duplicate names.
func ArmsSortedDistinct(arms []VariantArm) bool {
	for i := 1; i < len(arms); i++ {
		if arms[i-1].Name >= arms[i].Name {
			return false
		}
	}
	return true
}

func (in *Interner) appendVariantInfo(info variantInfo) uint32 {
	in.variants = append(in.variants, variantInfo{Arms: cloneArms(info.Arms)})
	slot, err := safecast.Conv[uint32](len(in.variants) - 1)
	if err != nil {
		panic(fmt.Errorf("irtypes: variant info overflow: %w", err))
	}
	return slot
}

func cloneArms(arms []VariantArm) []VariantArm {
	if len(arms) == 0 {
		return nil
	}
	out := make([]VariantArm, len(arms))
	copy(out, arms)
	return out
}

func variantKey(arms []VariantArm) string {
	s := ""
	for _, a := range arms {
		s += fmt.Sprintf("%d:%d,", a.Name, a.Type)
	}
	return s
}

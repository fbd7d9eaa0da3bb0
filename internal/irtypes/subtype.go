package irtypes

// pairKey identifies an (sub, sup) pair for the coinductive subtype check.
type pairKey struct{ sub, sup TypeID }

// Subtype reports whether sub is a structural subtype of sup: Non is
// bottom, Any is top, Shared collects every type that IsShared reports true
// for, tuples and functions are pointwise and contravariant/covariant
// respectively, objects admit width and depth subtyping, variants admit
// width subtyping in the arm-narrowing direction, and Mut is invariant.
func (in *Interner) Subtype(sub, sup TypeID) bool {
	return in.subtype(sub, sup, make(map[pairKey]bool))
}

func (in *Interner) subtype(sub, sup TypeID, assumed map[pairKey]bool) bool {
	if sub == sup {
		return true
	}
	key := pairKey{sub, sup}
	if assumed[key] {
		return true
	}
	assumed[key] = true

	subT, subOK := in.Lookup(sub)
	supT, supOK := in.Lookup(sup)
	if !subOK || !supOK {
		return false
	}

	if subT.Kind == KindNon {
		return true
	}
	if supT.Kind == KindAny {
		return true
	}
	if supT.Kind == KindShared {
		return in.isShared(sub, make(map[TypeID]bool))
	}

	if subT.Kind == KindCon {
		return in.subtype(in.Promote(sub), sup, assumed)
	}
	if supT.Kind == KindCon {
		return in.subtype(sub, in.Promote(sup), assumed)
	}

	if subT.Kind != supT.Kind {
		return in.subtypeOption(sub, subT, sup, supT, assumed)
	}

	switch subT.Kind {
	case KindPrim:
		return subT.Prim == supT.Prim
	case KindOption:
		return in.subtype(subT.Elem, supT.Elem, assumed) || in.subtype(subT.Elem, sup, assumed)
	case KindArray:
		return in.subtype(subT.Elem, supT.Elem, assumed)
	case KindMut:
		return subT.Elem == supT.Elem
	case KindAsync:
		return in.subtype(subT.Elem, supT.Elem, assumed)
	case KindSerialized:
		return in.subtype(subT.Elem, supT.Elem, assumed)
	case KindTuple:
		subElems, _ := in.TupleElems(sub)
		supElems, _ := in.TupleElems(sup)
		if len(subElems) != len(supElems) {
			return false
		}
		for i := range subElems {
			if !in.subtype(subElems[i], supElems[i], assumed) {
				return false
			}
		}
		return true
	case KindObject:
		subSort, _ := in.ObjectSort(sub)
		supSort, _ := in.ObjectSort(sup)
		if subSort != supSort {
			return false
		}
		subFields, _ := in.ObjectFields(sub)
		supFields, _ := in.ObjectFields(sup)
		for _, sf := range supFields {
			ft, ok := LookupField(subFields, sf.Label)
			if !ok || !in.subtype(ft, sf.Type, assumed) {
				return false
			}
		}
		return true
	case KindVariant:
		subArms, _ := in.VariantArms(sub)
		supArms, _ := in.VariantArms(sup)
		for _, sa := range subArms {
			at, ok := LookupArm(supArms, sa.Name)
			if !ok || !in.subtype(sa.Type, at, assumed) {
				return false
			}
		}
		return true
	case KindFunc:
		subF, _ := in.FuncParts(sub)
		supF, _ := in.FuncParts(sup)
		if subF.Sort != supF.Sort || subF.Control != supF.Control {
			return false
		}
		if len(subF.Binds) != len(supF.Binds) {
			return false
		}
		if len(subF.Domain) != len(supF.Domain) || len(subF.Codomain) != len(supF.Codomain) {
			return false
		}
		for i := range subF.Domain {
			if !in.subtype(supF.Domain[i], subF.Domain[i], assumed) {
				return false
			}
		}
		for i := range subF.Codomain {
			if !in.subtype(subF.Codomain[i], supF.Codomain[i], assumed) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// subtypeOption handles the one cross-Kind coercion the lattice allows: a
// bare value is a subtype of an Option wrapping a supertype of it.
func (in *Interner) subtypeOption(sub TypeID, subT Type, sup TypeID, supT Type, assumed map[pairKey]bool) bool {
	if supT.Kind == KindOption {
		return in.subtype(sub, supT.Elem, assumed)
	}
	_ = subT
	return false
}

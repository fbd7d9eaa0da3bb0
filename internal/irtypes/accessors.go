package irtypes

// Seq interns the tuple type of ts, used as the result type of sequencing
// (e.g. the argument list of a call, or a block's unit result).
func (in *Interner) Seq(ts []TypeID) TypeID {
	return in.RegisterTuple(ts)
}

// IsMut reports whether id is a Mut cell.
func (in *Interner) IsMut(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindMut
}

// AsMut wraps id in Mut unless it already is one.
func (in *Interner) AsMut(id TypeID) TypeID {
	if in.IsMut(id) {
		return id
	}
	return in.Intern(MakeMut(id))
}

// AsImmut strips a Mut wrapper, if present.
func (in *Interner) AsImmut(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if ok && tt.Kind == KindMut {
		return tt.Elem
	}
	return id
}

// IsConcrete reports whether id contains no Pre (placeholder) type anywhere
// in its structure: a checked program must carry no unresolved placeholders.
func (in *Interner) IsConcrete(id TypeID) bool {
	return in.isConcrete(id, make(map[TypeID]bool))
}

func (in *Interner) isConcrete(id TypeID, seen map[TypeID]bool) bool {
	if seen[id] {
		return true
	}
	seen[id] = true
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindPre:
		return false
	case KindOption, KindArray, KindMut, KindAsync, KindSerialized:
		return in.isConcrete(tt.Elem, seen)
	case KindTuple:
		elems, _ := in.TupleElems(id)
		for _, e := range elems {
			if !in.isConcrete(e, seen) {
				return false
			}
		}
		return true
	case KindObject:
		fields, _ := in.ObjectFields(id)
		for _, f := range fields {
			if !in.isConcrete(f.Type, seen) {
				return false
			}
		}
		return true
	case KindVariant:
		arms, _ := in.VariantArms(id)
		for _, a := range arms {
			if !in.isConcrete(a.Type, seen) {
				return false
			}
		}
		return true
	case KindFunc:
		f, _ := in.FuncParts(id)
		for _, b := range f.Binds {
			if !in.isConcrete(b.Bound, seen) {
				return false
			}
		}
		for _, d := range f.Domain {
			if !in.isConcrete(d, seen) {
				return false
			}
		}
		for _, c := range f.Codomain {
			if !in.isConcrete(c, seen) {
				return false
			}
		}
		return true
	case KindCon:
		con, args, _ := in.ConApp(id)
		for _, a := range args {
			if !in.isConcrete(a, seen) {
				return false
			}
		}
		_ = con
		return true
	default:
		return true
	}
}

// IsShared reports whether id belongs to the shared types: types that may
// cross an actor message boundary.
func (in *Interner) IsShared(id TypeID) bool {
	return in.isShared(id, make(map[TypeID]bool))
}

func (in *Interner) isShared(id TypeID, seen map[TypeID]bool) bool {
	if seen[id] {
		return true
	}
	seen[id] = true
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindPrim, KindAny, KindNon, KindShared:
		return true
	case KindOption, KindArray:
		return in.isShared(tt.Elem, seen)
	case KindMut, KindAsync:
		return false
	case KindTuple:
		elems, _ := in.TupleElems(id)
		for _, e := range elems {
			if !in.isShared(e, seen) {
				return false
			}
		}
		return true
	case KindObject:
		sort, _ := in.ObjectSort(id)
		if sort == ObjActor {
			return true
		}
		fields, _ := in.ObjectFields(id)
		for _, f := range fields {
			if !in.isShared(f.Type, seen) {
				return false
			}
		}
		return true
	case KindVariant:
		arms, _ := in.VariantArms(id)
		for _, a := range arms {
			if !in.isShared(a.Type, seen) {
				return false
			}
		}
		return true
	case KindFunc:
		f, _ := in.FuncParts(id)
		return f.Sort == FuncShared
	case KindCon:
		return in.isShared(in.Promote(id), seen)
	default:
		return false
	}
}

// AsTupSub promotes id through its constructor chain until it exposes a
// Tuple shape, returning its elements.
func (in *Interner) AsTupSub(id TypeID) ([]TypeID, bool) {
	cur := id
	for i := 0; i < maxPromoteSteps; i++ {
		tt, ok := in.Lookup(cur)
		if !ok {
			return nil, false
		}
		if tt.Kind == KindTuple {
			return in.TupleElems(cur)
		}
		if tt.Kind != KindCon {
			return nil, false
		}
		cur = in.Promote(cur)
	}
	return nil, false
}

// AsObjSub promotes id until it exposes an Object shape.
func (in *Interner) AsObjSub(id TypeID) (ObjSort, []Field, bool) {
	cur := id
	for i := 0; i < maxPromoteSteps; i++ {
		tt, ok := in.Lookup(cur)
		if !ok {
			return 0, nil, false
		}
		if tt.Kind == KindObject {
			sort, _ := in.ObjectSort(cur)
			fields, _ := in.ObjectFields(cur)
			return sort, fields, true
		}
		if tt.Kind != KindCon {
			return 0, nil, false
		}
		cur = in.Promote(cur)
	}
	return 0, nil, false
}

// AsVariantSub promotes id until it exposes a Variant shape, returning its
// arms.
func (in *Interner) AsVariantSub(id TypeID) ([]VariantArm, bool) {
	cur := id
	for i := 0; i < maxPromoteSteps; i++ {
		tt, ok := in.Lookup(cur)
		if !ok {
			return nil, false
		}
		if tt.Kind == KindVariant {
			return in.VariantArms(cur)
		}
		if tt.Kind != KindCon {
			return nil, false
		}
		cur = in.Promote(cur)
	}
	return nil, false
}

// AsArraySub promotes id until it exposes an Array shape, returning the
// element type.
func (in *Interner) AsArraySub(id TypeID) (TypeID, bool) {
	cur := id
	for i := 0; i < maxPromoteSteps; i++ {
		tt, ok := in.Lookup(cur)
		if !ok {
			return NoTypeID, false
		}
		if tt.Kind == KindArray {
			return tt.Elem, true
		}
		if tt.Kind != KindCon {
			return NoTypeID, false
		}
		cur = in.Promote(cur)
	}
	return NoTypeID, false
}

// AsFuncSub promotes id until it exposes a Func shape.
func (in *Interner) AsFuncSub(id TypeID) (FuncInfo, bool) {
	cur := id
	for i := 0; i < maxPromoteSteps; i++ {
		tt, ok := in.Lookup(cur)
		if !ok {
			return FuncInfo{}, false
		}
		if tt.Kind == KindFunc {
			return in.FuncParts(cur)
		}
		if tt.Kind != KindCon {
			return FuncInfo{}, false
		}
		cur = in.Promote(cur)
	}
	return FuncInfo{}, false
}

// AsAsyncSub promotes id until it exposes an Async shape, returning the
// promised type.
func (in *Interner) AsAsyncSub(id TypeID) (TypeID, bool) {
	cur := id
	for i := 0; i < maxPromoteSteps; i++ {
		tt, ok := in.Lookup(cur)
		if !ok {
			return NoTypeID, false
		}
		if tt.Kind == KindAsync {
			return tt.Elem, true
		}
		if tt.Kind != KindCon {
			return NoTypeID, false
		}
		cur = in.Promote(cur)
	}
	return NoTypeID, false
}

// maxPromoteSteps bounds constructor unfolding so a cyclic Def (which a
// well-formed program never produces) cannot hang the checker.
const maxPromoteSteps = 1024

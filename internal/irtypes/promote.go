package irtypes

// Promote unfolds a type constructor application one step to its body
// (Def) or to its declared upper bound (Abs), leaving every other type
// unchanged.
func (in *Interner) Promote(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindCon {
		return id
	}
	con, args, ok := in.ConApp(id)
	if !ok {
		return id
	}
	info, ok := in.LookupCon(con)
	if !ok {
		return id
	}
	switch info.Kind {
	case ConAbs:
		return info.Body
	default:
		return in.Open(args, info.Body)
	}
}

// Open substitutes de Bruijn bound-variable references 0..len(ts)-1 inside
// t's structure with the corresponding concrete type.
func (in *Interner) Open(ts []TypeID, t TypeID) TypeID {
	return in.substBound(t, ts)
}

// Close abstracts concrete constructor applications matching one of cs back
// into de Bruijn bound-variable references, the inverse of Open.
func (in *Interner) Close(cs []ConID, t TypeID) TypeID {
	return in.substCon(t, cs)
}

func (in *Interner) substBound(t TypeID, ts []TypeID) TypeID {
	tt, ok := in.Lookup(t)
	if !ok {
		return t
	}
	switch tt.Kind {
	case KindBound:
		if int(tt.Count) < len(ts) {
			return ts[tt.Count]
		}
		return t
	case KindOption:
		return in.Intern(MakeOption(in.substBound(tt.Elem, ts)))
	case KindArray:
		return in.Intern(MakeArray(in.substBound(tt.Elem, ts)))
	case KindMut:
		return in.Intern(MakeMut(in.substBound(tt.Elem, ts)))
	case KindAsync:
		return in.Intern(MakeAsync(in.substBound(tt.Elem, ts)))
	case KindSerialized:
		return in.Intern(MakeSerialized(in.substBound(tt.Elem, ts)))
	case KindTuple:
		elems, _ := in.TupleElems(t)
		return in.RegisterTuple(in.substBoundAll(elems, ts))
	case KindObject:
		sort, _ := in.ObjectSort(t)
		fields, _ := in.ObjectFields(t)
		out := make([]Field, len(fields))
		for i, f := range fields {
			out[i] = Field{Label: f.Label, Type: in.substBound(f.Type, ts)}
		}
		return in.RegisterObject(sort, out)
	case KindVariant:
		arms, _ := in.VariantArms(t)
		out := make([]VariantArm, len(arms))
		for i, a := range arms {
			out[i] = VariantArm{Name: a.Name, Type: in.substBound(a.Type, ts)}
		}
		return in.RegisterVariant(out)
	case KindFunc:
		f, _ := in.FuncParts(t)
		return in.RegisterFunc(f.Sort, f.Control, f.Binds, in.substBoundAll(f.Domain, ts), in.substBoundAll(f.Codomain, ts))
	case KindCon:
		con, args, _ := in.ConApp(t)
		return in.RegisterConApp(con, in.substBoundAll(args, ts))
	default:
		return t
	}
}

func (in *Interner) substBoundAll(ids []TypeID, ts []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	for i, id := range ids {
		out[i] = in.substBound(id, ts)
	}
	return out
}

func (in *Interner) substCon(t TypeID, cs []ConID) TypeID {
	tt, ok := in.Lookup(t)
	if !ok {
		return t
	}
	if tt.Kind == KindCon {
		con, args, _ := in.ConApp(t)
		if len(args) == 0 {
			for i, c := range cs {
				if c == con {
					return in.Intern(MakeBound(uint32(i)))
				}
			}
		}
		return in.RegisterConApp(con, in.substConAll(args, cs))
	}
	switch tt.Kind {
	case KindOption:
		return in.Intern(MakeOption(in.substCon(tt.Elem, cs)))
	case KindArray:
		return in.Intern(MakeArray(in.substCon(tt.Elem, cs)))
	case KindMut:
		return in.Intern(MakeMut(in.substCon(tt.Elem, cs)))
	case KindAsync:
		return in.Intern(MakeAsync(in.substCon(tt.Elem, cs)))
	case KindSerialized:
		return in.Intern(MakeSerialized(in.substCon(tt.Elem, cs)))
	case KindTuple:
		elems, _ := in.TupleElems(t)
		return in.RegisterTuple(in.substConAll(elems, cs))
	case KindObject:
		sort, _ := in.ObjectSort(t)
		fields, _ := in.ObjectFields(t)
		out := make([]Field, len(fields))
		for i, f := range fields {
			out[i] = Field{Label: f.Label, Type: in.substCon(f.Type, cs)}
		}
		return in.RegisterObject(sort, out)
	case KindVariant:
		arms, _ := in.VariantArms(t)
		out := make([]VariantArm, len(arms))
		for i, a := range arms {
			out[i] = VariantArm{Name: a.Name, Type: in.substCon(a.Type, cs)}
		}
		return in.RegisterVariant(out)
	case KindFunc:
		f, _ := in.FuncParts(t)
		return in.RegisterFunc(f.Sort, f.Control, f.Binds, in.substConAll(f.Domain, cs), in.substConAll(f.Codomain, cs))
	default:
		return t
	}
}

func (in *Interner) substConAll(ids []TypeID, cs []ConID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	for i, id := range ids {
		out[i] = in.substCon(id, cs)
	}
	return out
}

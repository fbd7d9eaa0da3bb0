package irtypes

import "testing"

func newTestInterner() (*Interner, *Builtins) {
	in := NewInterner(nil)
	b := in.Builtins()
	return in, &b
}

func TestBuiltinsAreDistinctAndStable(t *testing.T) {
	in, b := newTestInterner()
	ids := []TypeID{b.Null, b.Bool, b.Nat, b.Int, b.Float, b.Char, b.Text, b.Any, b.Non, b.Shared}
	seen := make(map[TypeID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("builtin TypeID %d reused across distinct builtins", id)
		}
		seen[id] = true
	}
	again := in.Intern(MakePrim(PrimNat))
	if again != b.Nat {
		t.Fatalf("re-interning Nat produced a new TypeID: %d != %d", again, b.Nat)
	}
}

func TestUnitIsEmptyTuple(t *testing.T) {
	in, b := newTestInterner()
	elems, ok := in.TupleElems(b.Unit)
	if !ok {
		t.Fatal("Unit is not a tuple")
	}
	if len(elems) != 0 {
		t.Fatalf("Unit has %d elements, want 0", len(elems))
	}
}

func TestRegisterTupleDedups(t *testing.T) {
	in, b := newTestInterner()
	t1 := in.RegisterTuple([]TypeID{b.Nat, b.Bool})
	t2 := in.RegisterTuple([]TypeID{b.Nat, b.Bool})
	if t1 != t2 {
		t.Fatalf("identical tuples got distinct TypeIDs: %d != %d", t1, t2)
	}
	t3 := in.RegisterTuple([]TypeID{b.Bool, b.Nat})
	if t1 == t3 {
		t.Fatal("tuples with swapped element order should not dedup")
	}
}

func TestRegisterObjectDedupsAndExposesFields(t *testing.T) {
	in, b := newTestInterner()
	strs := in.Strings
	la := strs.Intern("a")
	lb := strs.Intern("b")
	fields := []Field{{Label: la, Type: b.Nat}, {Label: lb, Type: b.Bool}}
	if !FieldsSortedDistinct(fields) {
		t.Fatalf("test fixture fields must already be sorted: got label ids %d, %d", la, lb)
	}
	o1 := in.RegisterObject(ObjLocal, fields)
	o2 := in.RegisterObject(ObjLocal, fields)
	if o1 != o2 {
		t.Fatalf("identical objects got distinct TypeIDs: %d != %d", o1, o2)
	}
	got, ok := in.ObjectFields(o1)
	if !ok || len(got) != 2 {
		t.Fatalf("ObjectFields returned %v, ok=%v", got, ok)
	}
	if ft, ok := LookupField(got, lb); !ok || ft != b.Bool {
		t.Fatalf("LookupField(b) = %d, %v, want %d, true", ft, ok, b.Bool)
	}
}

func TestRegisterVariantDedups(t *testing.T) {
	in, b := newTestInterner()
	strs := in.Strings
	okLbl := strs.Intern("ok")
	errLbl := strs.Intern("err")
	unsorted := []VariantArm{{Name: errLbl, Type: b.Text}, {Name: okLbl, Type: b.Nat}}
	sorted := []VariantArm{unsorted[1], unsorted[0]}
	if !ArmsSortedDistinct(sorted) {
		t.Fatal("sorted fixture should satisfy ArmsSortedDistinct")
	}
	v1 := in.RegisterVariant(sorted)
	v2 := in.RegisterVariant(sorted)
	if v1 != v2 {
		t.Fatalf("identical variants got distinct TypeIDs: %d != %d", v1, v2)
	}
}

func TestRegisterConNeverDedups(t *testing.T) {
	in, _ := newTestInterner()
	name := in.Strings.Intern("Counter")
	c1 := in.RegisterCon(name, ConDef, 0, NoTypeID)
	c2 := in.RegisterCon(name, ConDef, 0, NoTypeID)
	if c1 == c2 {
		t.Fatal("RegisterCon must mint a fresh identity on every call, even with identical arguments")
	}
}

func TestRegisterConAppDedupsByConAndArgs(t *testing.T) {
	in, b := newTestInterner()
	name := in.Strings.Intern("List")
	con := in.RegisterCon(name, ConDef, 1, in.Intern(MakeOption(in.Intern(MakeBound(0)))))
	a1 := in.RegisterConApp(con, []TypeID{b.Nat})
	a2 := in.RegisterConApp(con, []TypeID{b.Nat})
	if a1 != a2 {
		t.Fatalf("identical constructor applications got distinct TypeIDs: %d != %d", a1, a2)
	}
	a3 := in.RegisterConApp(con, []TypeID{b.Bool})
	if a1 == a3 {
		t.Fatal("constructor applications with different args must not dedup")
	}
}

func TestConSetDisjointAddFailsOnDuplicate(t *testing.T) {
	in, _ := newTestInterner()
	name := in.Strings.Intern("T")
	c1 := in.RegisterCon(name, ConDef, 0, NoTypeID)
	a := NewConSet(c1)
	b2 := NewConSet(c1)
	if err := a.DisjointAdd(b2); err == nil {
		t.Fatal("DisjointAdd should fail when both sets share a constructor identity")
	}
}

func TestConSetDisjointAddMergesDistinct(t *testing.T) {
	in, _ := newTestInterner()
	c1 := in.RegisterCon(in.Strings.Intern("A"), ConDef, 0, NoTypeID)
	c2 := in.RegisterCon(in.Strings.Intern("B"), ConDef, 0, NoTypeID)
	a := NewConSet(c1)
	b2 := NewConSet(c2)
	if err := a.DisjointAdd(b2); err != nil {
		t.Fatalf("DisjointAdd on distinct identities should succeed: %v", err)
	}
	if !a.Has(c1) || !a.Has(c2) {
		t.Fatal("merged set should contain both identities")
	}
}

func TestPromoteUnfoldsDefOneStep(t *testing.T) {
	in, b := newTestInterner()
	body := in.Intern(MakeOption(in.Intern(MakeBound(0))))
	con := in.RegisterCon(in.Strings.Intern("Opt"), ConDef, 1, body)
	app := in.RegisterConApp(con, []TypeID{b.Nat})
	got := in.Promote(app)
	want := in.Intern(MakeOption(b.Nat))
	if got != want {
		t.Fatalf("Promote(Opt<Nat>) = %s, want %s", Label(in, got), Label(in, want))
	}
}

func TestPromoteAbsReturnsBound(t *testing.T) {
	in, b := newTestInterner()
	con := in.RegisterCon(in.Strings.Intern("T"), ConAbs, 0, b.Any)
	app := in.RegisterConApp(con, nil)
	if got := in.Promote(app); got != b.Any {
		t.Fatalf("Promote(abstract con) = %s, want Any", Label(in, got))
	}
}

func TestSubtypeNonAndAny(t *testing.T) {
	in, b := newTestInterner()
	if !in.Subtype(b.Non, b.Nat) {
		t.Fatal("Non must be a subtype of everything")
	}
	if !in.Subtype(b.Nat, b.Any) {
		t.Fatal("everything must be a subtype of Any")
	}
	if in.Subtype(b.Any, b.Nat) {
		t.Fatal("Any must not be a subtype of Nat")
	}
}

func TestSubtypeObjectWidthAndDepth(t *testing.T) {
	in, b := newTestInterner()
	la := in.Strings.Intern("a")
	lb := in.Strings.Intern("b")
	wide := in.RegisterObject(ObjLocal, []Field{{Label: la, Type: b.Nat}, {Label: lb, Type: b.Bool}})
	narrow := in.RegisterObject(ObjLocal, []Field{{Label: la, Type: b.Nat}})
	if !in.Subtype(wide, narrow) {
		t.Fatal("an object with more fields must be a subtype of one with fewer (width subtyping)")
	}
	if in.Subtype(narrow, wide) {
		t.Fatal("an object missing a field must not be a subtype of a wider one")
	}
}

func TestSubtypeVariantWidthIsNarrowing(t *testing.T) {
	in, b := newTestInterner()
	okLbl := in.Strings.Intern("ok")
	errLbl := in.Strings.Intern("err")
	narrow := in.RegisterVariant([]VariantArm{{Name: okLbl, Type: b.Nat}})
	wide := in.RegisterVariant([]VariantArm{{Name: errLbl, Type: b.Text}, {Name: okLbl, Type: b.Nat}})
	if !in.Subtype(narrow, wide) {
		t.Fatal("a variant with fewer arms must be a subtype of one with more arms")
	}
	if in.Subtype(wide, narrow) {
		t.Fatal("a variant with an extra arm must not be a subtype of a narrower one")
	}
}

func TestSubtypeFuncIsContravariantInDomain(t *testing.T) {
	in, b := newTestInterner()
	la := in.Strings.Intern("a")
	wideObj := in.RegisterObject(ObjLocal, []Field{{Label: la, Type: b.Nat}})
	narrowObj := in.RegisterObject(ObjLocal, []Field{})
	fWide := in.RegisterFunc(FuncLocal, CtlReturns, nil, []TypeID{wideObj}, []TypeID{b.Nat})
	fNarrow := in.RegisterFunc(FuncLocal, CtlReturns, nil, []TypeID{narrowObj}, []TypeID{b.Nat})
	if !in.Subtype(fNarrow, fWide) {
		t.Fatal("a func accepting the wider (fewer-field) object must be a subtype of one accepting the narrower object")
	}
}

func TestIsSharedRejectsMutAndLocalFunc(t *testing.T) {
	in, b := newTestInterner()
	if !in.IsShared(b.Nat) {
		t.Fatal("primitives must be shared")
	}
	mutNat := in.AsMut(b.Nat)
	if in.IsShared(mutNat) {
		t.Fatal("Mut types must not be shared")
	}
	localFn := in.RegisterFunc(FuncLocal, CtlReturns, nil, nil, nil)
	if in.IsShared(localFn) {
		t.Fatal("local functions must not be shared")
	}
	sharedFn := in.RegisterFunc(FuncShared, CtlPromises, nil, nil, nil)
	if !in.IsShared(sharedFn) {
		t.Fatal("shared functions must be shared")
	}
}

func TestEffectLattice(t *testing.T) {
	if MaxEffect(Triv, Triv) != Triv {
		t.Fatal("Triv lub Triv must be Triv")
	}
	if MaxEffect(Triv, Await) != Await {
		t.Fatal("Triv lub Await must be Await")
	}
	if MaxEffect(Await, Await) != Await {
		t.Fatal("Await lub Await must be Await")
	}
}

package irchecker

import (
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// checkTyp validates a type annotation in isolation: closed (no Pre
// anywhere), and, for object/variant shapes, strictly sorted with distinct
// labels/arm names.
func (c *Checker) checkTyp(pos source.Span, t irtypes.TypeID) error {
	if !c.Types.IsConcrete(t) {
		return fail(c.Phase, pos, "type annotation is not closed (contains an unresolved Pre)")
	}
	return c.checkTypShape(pos, t, map[irtypes.TypeID]bool{})
}

func (c *Checker) checkTypShape(pos source.Span, t irtypes.TypeID, seen map[irtypes.TypeID]bool) error {
	if seen[t] {
		return nil
	}
	seen[t] = true
	tt, ok := c.Types.Lookup(t)
	if !ok {
		return fail(c.Phase, pos, "type annotation references an unknown TypeID")
	}
	switch tt.Kind {
	case irtypes.KindObject:
		fields, _ := c.Types.ObjectFields(t)
		if !irtypes.FieldsSortedDistinct(fields) {
			return fail(c.Phase, pos, "object type's fields are not distinct and sorted")
		}
		for _, f := range fields {
			if err := c.checkTypShape(pos, f.Type, seen); err != nil {
				return err
			}
		}
	case irtypes.KindVariant:
		arms, _ := c.Types.VariantArms(t)
		if !irtypes.ArmsSortedDistinct(arms) {
			return fail(c.Phase, pos, "variant type's arms are not distinct and sorted")
		}
		for _, a := range arms {
			if err := c.checkTypShape(pos, a.Type, seen); err != nil {
				return err
			}
		}
	case irtypes.KindTuple:
		elems, _ := c.Types.TupleElems(t)
		for _, e := range elems {
			if err := c.checkTypShape(pos, e, seen); err != nil {
				return err
			}
		}
	case irtypes.KindOption, irtypes.KindArray, irtypes.KindMut, irtypes.KindAsync, irtypes.KindSerialized:
		if err := c.checkTypShape(pos, tt.Elem, seen); err != nil {
			return err
		}
	case irtypes.KindFunc:
		f, _ := c.Types.FuncParts(t)
		for _, d := range f.Domain {
			if err := c.checkTypShape(pos, d, seen); err != nil {
				return err
			}
		}
		for _, r := range f.Codomain {
			if err := c.checkTypShape(pos, r, seen); err != nil {
				return err
			}
		}
	case irtypes.KindCon:
		con, args, _ := c.Types.ConApp(t)
		info, ok := c.Types.LookupCon(con)
		if !ok {
			return fail(c.Phase, pos, "type constructor application references an unknown constructor")
		}
		if len(args) != info.Binders {
			return fail(c.Phase, pos, "type constructor application has %d arguments, want %d", len(args), info.Binders)
		}
		for _, a := range args {
			if err := c.checkTypShape(pos, a, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

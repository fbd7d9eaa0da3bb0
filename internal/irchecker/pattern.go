package irchecker

import (
	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// checkPattern validates p against its own annotation and returns the
// variable bindings it introduces. It fails when a
// sub-pattern's annotation is not a subtype of the position it occupies, or
// when an alternative pattern binds a variable, or when the same name is
// bound twice within one pattern.
func (c *Checker) checkPattern(p ir.Pattern) (map[source.StringID]irtypes.TypeID, error) {
	if err := c.checkTyp(p.Pos, p.Type); err != nil {
		return nil, err
	}
	switch data := p.Data.(type) {
	case ir.WildData:
		return map[source.StringID]irtypes.TypeID{}, nil

	case ir.LitPatData:
		if !c.Types.Subtype(c.Types.Intern(irtypes.MakePrim(data.Value.Prim)), p.Type) {
			return nil, fail(c.Phase, p.Pos, "literal pattern's type does not match its annotation")
		}
		return map[source.StringID]irtypes.TypeID{}, nil

	case ir.VarPatData:
		return map[source.StringID]irtypes.TypeID{data.Name: p.Type}, nil

	case ir.TupPatData:
		elemTypes, ok := c.Types.AsTupSub(p.Type)
		if !ok || len(elemTypes) != len(data.Elems) {
			return nil, fail(c.Phase, p.Pos, "tuple pattern arity does not match its annotation")
		}
		bound := map[source.StringID]irtypes.TypeID{}
		for i, sub := range data.Elems {
			if !c.Types.Subtype(sub.Type, elemTypes[i]) {
				return nil, fail(c.Phase, sub.Pos, "tuple element pattern's type is not a subtype of the tuple's component type")
			}
			subBound, err := c.checkPattern(sub)
			if err != nil {
				return nil, err
			}
			if err := mergeDistinct(bound, subBound, c.Phase, p.Pos); err != nil {
				return nil, err
			}
		}
		return bound, nil

	case ir.ObjPatData:
		_, fields, ok := c.Types.AsObjSub(p.Type)
		if !ok {
			return nil, fail(c.Phase, p.Pos, "object pattern's annotation does not destructure as an object")
		}
		bound := map[source.StringID]irtypes.TypeID{}
		for _, fp := range data.Fields {
			ft, ok := irtypes.LookupField(fields, fp.Label)
			if !ok {
				return nil, fail(c.Phase, p.Pos, "object pattern names a field absent from its annotation")
			}
			if !c.Types.Subtype(fp.Pattern.Type, ft) {
				return nil, fail(c.Phase, fp.Pattern.Pos, "object field pattern's type is not a subtype of the field's declared type")
			}
			subBound, err := c.checkPattern(fp.Pattern)
			if err != nil {
				return nil, err
			}
			if err := mergeDistinct(bound, subBound, c.Phase, p.Pos); err != nil {
				return nil, err
			}
		}
		return bound, nil

	case ir.OptPatData:
		tt, ok := c.Types.Lookup(p.Type)
		if !ok || tt.Kind != irtypes.KindOption {
			return nil, fail(c.Phase, p.Pos, "option pattern's annotation is not an option type")
		}
		if data.Inner == nil {
			return map[source.StringID]irtypes.TypeID{}, nil
		}
		if !c.Types.Subtype(data.Inner.Type, tt.Elem) {
			return nil, fail(c.Phase, data.Inner.Pos, "option pattern's inner type is not a subtype of the option's element type")
		}
		return c.checkPattern(*data.Inner)

	case ir.VariantPatData:
		arms, ok := c.Types.AsVariantSub(p.Type)
		if !ok {
			return nil, fail(c.Phase, p.Pos, "variant pattern's annotation does not destructure as a variant")
		}
		armType, ok := irtypes.LookupArm(arms, data.Name)
		if !ok {
			return nil, fail(c.Phase, p.Pos, "variant pattern names an arm absent from its annotation")
		}
		if data.Inner == nil {
			return map[source.StringID]irtypes.TypeID{}, nil
		}
		if !c.Types.Subtype(data.Inner.Type, armType) {
			return nil, fail(c.Phase, data.Inner.Pos, "variant pattern's inner type is not a subtype of the arm's declared type")
		}
		return c.checkPattern(*data.Inner)

	case ir.AltPatData:
		for _, alt := range data.Alts {
			bound, err := c.checkPattern(alt)
			if err != nil {
				return nil, err
			}
			if len(bound) != 0 {
				return nil, fail(c.Phase, alt.Pos, "alternative pattern binds a variable, which is not permitted")
			}
		}
		return map[source.StringID]irtypes.TypeID{}, nil

	default:
		return nil, fail(c.Phase, p.Pos, "unrecognized pattern payload")
	}
}

func mergeDistinct(dst, src map[source.StringID]irtypes.TypeID, phase string, pos source.Span) error {
	for k, v := range src {
		if _, dup := dst[k]; dup {
			return fail(phase, pos, "pattern binds the same variable more than once")
		}
		dst[k] = v
	}
	return nil
}

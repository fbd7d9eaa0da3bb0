package irchecker

import (
	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// patternVars collects every variable a pattern binds, together with its
// recorded type, without validating subtyping — that happens later, in the
// check phase.
func patternVars(p ir.Pattern, into map[source.StringID]irtypes.TypeID) {
	switch data := p.Data.(type) {
	case ir.VarPatData:
		into[data.Name] = p.Type
	case ir.TupPatData:
		for _, sub := range data.Elems {
			patternVars(sub, into)
		}
	case ir.ObjPatData:
		for _, fp := range data.Fields {
			patternVars(fp.Pattern, into)
		}
	case ir.OptPatData:
		if data.Inner != nil {
			patternVars(*data.Inner, into)
		}
	case ir.VariantPatData:
		if data.Inner != nil {
			patternVars(*data.Inner, into)
		}
		// ir.AltPatData and ir.WildData/ir.LitPatData bind nothing.
	}
}

// gather performs the first phase: collect every type constructor and
// variable binding a block's declarations introduce into a fresh scope,
// raising on duplicate names or duplicate constructor identities.
func (c *Checker) gather(base ir.Scope, decls []ir.Decl) (ir.Scope, error) {
	vals := map[source.StringID]irtypes.TypeID{}
	cons := irtypes.NewConSet()
	for _, d := range decls {
		switch data := d.Data.(type) {
		case ir.LetDeclData:
			bound := map[source.StringID]irtypes.TypeID{}
			patternVars(data.Pattern, bound)
			if err := mergeDistinctVals(vals, bound, c.Phase, d.Pos); err != nil {
				return ir.Scope{}, err
			}
		case ir.VarDeclData:
			if err := mergeDistinctVals(vals, map[source.StringID]irtypes.TypeID{data.Name: data.Type}, c.Phase, d.Pos); err != nil {
				return ir.Scope{}, err
			}
		case ir.TypeDeclData:
			if err := cons.DisjointAdd(irtypes.NewConSet(data.Con)); err != nil {
				return ir.Scope{}, fail(c.Phase, d.Pos, "duplicate type constructor definition within one block")
			}
		case ir.DeclareDeclData:
			if err := mergeDistinctVals(vals, map[source.StringID]irtypes.TypeID{data.Name: data.Type}, c.Phase, d.Pos); err != nil {
				return ir.Scope{}, err
			}
		case ir.DefineDeclData:
			// Defines a name already announced by a prior DDeclare; it
			// introduces no new binding of its own.
		}
	}
	extended, err := base.ExtendCons(cons)
	if err != nil {
		return ir.Scope{}, fail(c.Phase, source.Span{}, "%v", err)
	}
	return extended.ExtendVals(vals), nil
}

func mergeDistinctVals(dst, src map[source.StringID]irtypes.TypeID, phase string, pos source.Span) error {
	for k, v := range src {
		if _, dup := dst[k]; dup {
			return fail(phase, pos, "duplicate variable binding within one block")
		}
		dst[k] = v
	}
	return nil
}

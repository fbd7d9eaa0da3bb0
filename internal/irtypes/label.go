package irtypes

import (
	"fmt"
	"strings"

	"github.com/ZenVoich/motoko/internal/source"
)

// Label renders a TypeID as a human-readable string, used by trace output
// and the fixture harness, never by the checker or transform passes
// themselves.
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if id == NoTypeID || in == nil {
		return "?"
	}
	if depth > 8 {
		return "..."
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindAny:
		return "Any"
	case KindNon:
		return "None"
	case KindShared:
		return "Shared"
	case KindPrim:
		return tt.Prim.String()
	case KindBound:
		return fmt.Sprintf("$%d", tt.Count)
	case KindOption:
		return "?" + labelDepth(in, tt.Elem, depth+1)
	case KindArray:
		return "[" + labelDepth(in, tt.Elem, depth+1) + "]"
	case KindMut:
		return "var " + labelDepth(in, tt.Elem, depth+1)
	case KindAsync:
		return "async " + labelDepth(in, tt.Elem, depth+1)
	case KindSerialized:
		return "serialized " + labelDepth(in, tt.Elem, depth+1)
	case KindTuple:
		elems, _ := in.TupleElems(id)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = labelDepth(in, e, depth+1)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindObject:
		sort, _ := in.ObjectSort(id)
		fields, _ := in.ObjectFields(id)
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = fieldLabel(in, f.Label) + " : " + labelDepth(in, f.Type, depth+1)
		}
		return sort.String() + " {" + strings.Join(parts, "; ") + "}"
	case KindVariant:
		arms, _ := in.VariantArms(id)
		parts := make([]string, len(arms))
		for i, a := range arms {
			parts[i] = "#" + fieldLabel(in, a.Name) + " : " + labelDepth(in, a.Type, depth+1)
		}
		return "{" + strings.Join(parts, "; ") + "}"
	case KindFunc:
		f, _ := in.FuncParts(id)
		domain := make([]string, len(f.Domain))
		for i, d := range f.Domain {
			domain[i] = labelDepth(in, d, depth+1)
		}
		codomain := make([]string, len(f.Codomain))
		for i, c := range f.Codomain {
			codomain[i] = labelDepth(in, c, depth+1)
		}
		prefix := ""
		if f.Sort == FuncShared {
			prefix = "shared "
		}
		arrow := "->"
		if f.Control == CtlPromises {
			arrow = "-> async"
		}
		return fmt.Sprintf("%s(%s) %s (%s)", prefix, strings.Join(domain, ", "), arrow, strings.Join(codomain, ", "))
	case KindCon:
		con, args, _ := in.ConApp(id)
		info, ok := in.LookupCon(con)
		name := fmt.Sprintf("con#%d", con)
		if ok {
			if n, ok := in.Strings.Lookup(info.Name); ok {
				name = n
			}
		}
		if len(args) == 0 {
			return name
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = labelDepth(in, a, depth+1)
		}
		return name + "<" + strings.Join(parts, ", ") + ">"
	case KindPre:
		return "Pre"
	default:
		return "?"
	}
}

func fieldLabel(in *Interner, id source.StringID) string {
	if in.Strings == nil {
		return "?"
	}
	if name, ok := in.Strings.Lookup(id); ok {
		return name
	}
	return "?"
}

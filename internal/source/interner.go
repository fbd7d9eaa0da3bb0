package source

// StringID is an interned name: a variable, field label, variant arm, or
// type constructor name referenced by an IR node.
type StringID uint32

// NoStringID is the reserved ID for "no name", e.g. a wildcard pattern.
const NoStringID StringID = 0

// Interner deduplicates the names one compilation unit's IR refers to, so
// nodes can compare names by ID instead of by string.
type Interner struct {
	byID  []string // byID[0] == "" for NoStringID
	index map[string]StringID
}

// NewInterner returns an Interner seeded with the reserved empty string.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns s's StringID, assigning it a fresh one on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	id := StringID(len(i.byID))
	i.byID = append(i.byID, s)
	i.index[s] = id
	return id
}

// Lookup returns the string behind id, or ("", false) if id was never
// interned by this Interner.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) < 0 || int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

package ir

import (
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// Scope is the pair (value environment, constructor environment) the
// checker threads through a program. Both maps are treated as immutable
// overlays: Extend* returns a new Scope sharing the receiver's entries,
// never mutating them, so sibling branches may share structure safely.
type Scope struct {
	Vals map[source.StringID]irtypes.TypeID
	Cons irtypes.ConSet
}

// NewScope returns an empty scope.
func NewScope() Scope {
	return Scope{Vals: map[source.StringID]irtypes.TypeID{}, Cons: irtypes.NewConSet()}
}

// ExtendVal returns a new Scope with name bound to t, leaving the receiver
// untouched.
func (s Scope) ExtendVal(name source.StringID, t irtypes.TypeID) Scope {
	next := make(map[source.StringID]irtypes.TypeID, len(s.Vals)+1)
	for k, v := range s.Vals {
		next[k] = v
	}
	next[name] = t
	return Scope{Vals: next, Cons: s.Cons}
}

// ExtendVals is ExtendVal for a batch of bindings, as produced by gathering
// a block's declarations.
func (s Scope) ExtendVals(bindings map[source.StringID]irtypes.TypeID) Scope {
	next := make(map[source.StringID]irtypes.TypeID, len(s.Vals)+len(bindings))
	for k, v := range s.Vals {
		next[k] = v
	}
	for k, v := range bindings {
		next[k] = v
	}
	return Scope{Vals: next, Cons: s.Cons}
}

// ExtendCons merges other into the receiver's constructor set, failing if
// any identity collides.
func (s Scope) ExtendCons(other irtypes.ConSet) (Scope, error) {
	merged := s.Cons.Clone()
	if err := merged.DisjointAdd(other); err != nil {
		return Scope{}, err
	}
	return Scope{Vals: s.Vals, Cons: merged}, nil
}

// LabelInfo describes an in-scope break target's result type.
type LabelInfo struct{ Type irtypes.TypeID }

// Flavor toggles feature availability in the current pass.
type Flavor struct {
	HasAwait    bool
	HasShow     bool
	Serialized  bool
	HasAsyncTyp bool
}

// DefaultFlavor is the flavor of a freshly desugared program: every feature
// still available.
func DefaultFlavor() Flavor {
	return Flavor{HasAwait: true, HasShow: true, Serialized: false, HasAsyncTyp: true}
}

// Context extends a Scope with labels, the return slot, the async flag, and
// the current flavor.
type Context struct {
	Scope  Scope
	Labels map[source.StringID]LabelInfo
	Return *irtypes.TypeID // nil == None
	Async  bool
	Flavor Flavor
}

// NewContext builds a top-level context: no labels, no return slot, not
// async.
func NewContext(scope Scope, flavor Flavor) Context {
	return Context{Scope: scope, Labels: map[source.StringID]LabelInfo{}, Flavor: flavor}
}

// WithLabel returns a Context with label bound to t, added to the existing
// label environment.
func (c Context) WithLabel(label source.StringID, t irtypes.TypeID) Context {
	next := make(map[source.StringID]LabelInfo, len(c.Labels)+1)
	for k, v := range c.Labels {
		next[k] = v
	}
	next[label] = LabelInfo{Type: t}
	return Context{Scope: c.Scope, Labels: next, Return: c.Return, Async: c.Async, Flavor: c.Flavor}
}

// ClearLabels drops the entire label environment, used when entering a
// function, class, or actor body (labels do not cross those boundaries).
func (c Context) ClearLabels() Context {
	return Context{Scope: c.Scope, Labels: map[source.StringID]LabelInfo{}, Return: c.Return, Async: c.Async, Flavor: c.Flavor}
}

// WithReturn sets the return slot to Some(t).
func (c Context) WithReturn(t irtypes.TypeID) Context {
	tt := t
	return Context{Scope: c.Scope, Labels: c.Labels, Return: &tt, Async: c.Async, Flavor: c.Flavor}
}

// WithNoReturn clears the return slot to None.
func (c Context) WithNoReturn() Context {
	return Context{Scope: c.Scope, Labels: c.Labels, Return: nil, Async: c.Async, Flavor: c.Flavor}
}

// WithAsync sets the async flag.
func (c Context) WithAsync(async bool) Context {
	return Context{Scope: c.Scope, Labels: c.Labels, Return: c.Return, Async: async, Flavor: c.Flavor}
}

// WithScope replaces the scope, leaving labels/return/async/flavor as-is.
func (c Context) WithScope(scope Scope) Context {
	return Context{Scope: scope, Labels: c.Labels, Return: c.Return, Async: c.Async, Flavor: c.Flavor}
}

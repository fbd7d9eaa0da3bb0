package ir

// Program is the pipeline's top-level input/output shape: a quadruple of
// the top-level actor constructor's parameters, ordered declaration groups
// each holding ordered declaration blocks, the actor's exposed methods, and
// the current flavor.
type Program struct {
	Arguments   []Pattern
	DeclGroups  [][]Decl
	ActorFields []ActorField
	Flavor      Flavor
}

package typespec

import (
	"github.com/funvibe/typespec/internal/token"
)

// TypeKind distinguishes transparent and opaque type definitions.
type TypeKind int

const (
	KindType TypeKind = iota
	KindOpaque
)

func (k TypeKind) String() string {
	if k == KindOpaque {
		return "opaque"
	}
	return "type"
}

// TypeDef is one compiled @type/@opaque definition.
type TypeDef struct {
	Name   string
	Arity  int
	Params []string // parameter variable names, declaration order
	Body   Type     // nil while the definition shell is registered
	Kind   TypeKind
	P      token.Pos
}

func (d *TypeDef) FA() FA { return FA{d.Name, d.Arity} }

// Constraint binds a type variable of a guarded clause.
type Constraint struct {
	Var   string
	Bound Type
}

// Clause is one declared spec or callback clause. Params is always
// arity-many; the entry's arity and every clause's parameter count
// agree by construction.
type Clause struct {
	Params      []Type
	Return      Type
	Constraints []Constraint
	P           token.Pos
}

// Bounded reports whether the clause carries type variable constraints
// and therefore uses the bounded surface form when reconstructed.
func (c *Clause) Bounded() bool { return len(c.Constraints) > 0 }

// SpecEntry groups the clauses of one function's @spec declarations.
// Clauses accumulate in declaration order and are never merged.
type SpecEntry struct {
	Name    string
	Arity   int
	Clauses []*Clause
	P       token.Pos

	// private marks a spec for a non-exported function: still built and
	// validated, but dropped from the retrievable set.
	private bool
}

func (e *SpecEntry) FA() FA { return FA{e.Name, e.Arity} }

// Bounded reports whether the entry uses the bounded variant: two or
// more clauses, or any clause carrying constraints.
func (e *SpecEntry) Bounded() bool {
	if len(e.Clauses) >= 2 {
		return true
	}
	for _, c := range e.Clauses {
		if c.Bounded() {
			return true
		}
	}
	return false
}

// CallbackEntry is a SpecEntry for a behaviour callback. Macro
// callbacks are stored under their marked name with the shifted arity
// (see macroFA).
type CallbackEntry struct {
	SpecEntry
	Macro bool
}

// defKind partitions the registry key space.
type defKind int

const (
	defType defKind = iota
	defSpec
	defCallback
)

// Registry is the per-compilation-unit definition arena. It is
// populated incrementally in declaration order, so a definition can
// reference itself and anything registered earlier; lookups for
// not-yet-registered names fail deterministically.
type Registry struct {
	types     map[FA]*TypeDef
	typeOrder []FA

	specs     map[FA]*SpecEntry
	specOrder []FA

	callbacks     map[FA]*CallbackEntry
	callbackOrder []FA
}

func NewRegistry() *Registry {
	return &Registry{
		types:     make(map[FA]*TypeDef),
		specs:     make(map[FA]*SpecEntry),
		callbacks: make(map[FA]*CallbackEntry),
	}
}

// registerType inserts a definition shell. Inserting a duplicate
// (name, arity) fails; the caller turns that into an error.
func (r *Registry) registerType(def *TypeDef) bool {
	fa := def.FA()
	if _, exists := r.types[fa]; exists {
		return false
	}
	r.types[fa] = def
	r.typeOrder = append(r.typeOrder, fa)
	return true
}

// lookupType resolves a local type reference.
func (r *Registry) lookupType(name string, arity int) (*TypeDef, bool) {
	def, ok := r.types[FA{name, arity}]
	return def, ok
}

// spec returns the (possibly new) entry for name/arity, preserving
// first-declaration order.
func (r *Registry) spec(name string, arity int, pos token.Pos) *SpecEntry {
	fa := FA{name, arity}
	if e, ok := r.specs[fa]; ok {
		return e
	}
	e := &SpecEntry{Name: name, Arity: arity, P: pos}
	r.specs[fa] = e
	r.specOrder = append(r.specOrder, fa)
	return e
}

// callback returns the (possibly new) callback entry for name/arity.
func (r *Registry) callback(name string, arity int, macro bool, pos token.Pos) *CallbackEntry {
	fa := FA{name, arity}
	if e, ok := r.callbacks[fa]; ok {
		return e
	}
	e := &CallbackEntry{
		SpecEntry: SpecEntry{Name: name, Arity: arity, P: pos},
		Macro:     macro,
	}
	r.callbacks[fa] = e
	r.callbackOrder = append(r.callbackOrder, fa)
	return e
}

func (r *Registry) hasCallback(fa FA) bool {
	_, ok := r.callbacks[fa]
	return ok
}

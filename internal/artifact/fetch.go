package artifact

import (
	"sort"

	"github.com/funvibe/typespec/internal/typespec"
)

// FetchTypes returns the type definitions carried by the artifact,
// sorted by name then arity. ok is false when the artifact has no
// typespec chunk at all; an empty chunk returns an empty, ok slice.
func (a *Artifact) FetchTypes() ([]*typespec.TypeDef, bool) {
	if a.chunk == nil {
		return nil, false
	}
	out := make([]*typespec.TypeDef, 0, len(a.chunk.Types))
	for _, t := range a.chunk.Types {
		body, _ := decodeType(t.Body) // validated in Decode
		kind := typespec.KindType
		if t.Opaque {
			kind = typespec.KindOpaque
		}
		out = append(out, &typespec.TypeDef{
			Name:   t.Name,
			Arity:  t.Arity,
			Params: t.Params,
			Body:   body,
			Kind:   kind,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Arity < out[j].Arity
	})
	return out, true
}

// FetchSpecs returns the artifact's function specs, sorted by name
// then arity.
func (a *Artifact) FetchSpecs() ([]*typespec.SpecEntry, bool) {
	if a.chunk == nil {
		return nil, false
	}
	out := make([]*typespec.SpecEntry, 0, len(a.chunk.Specs))
	for _, s := range a.chunk.Specs {
		out = append(out, decodeSpec(s))
	}
	sortEntries(out)
	return out, true
}

// FetchCallbacks returns the artifact's callbacks, sorted by stored
// name then arity (macro callbacks sort under their marked names).
func (a *Artifact) FetchCallbacks() ([]*typespec.CallbackEntry, bool) {
	if a.chunk == nil {
		return nil, false
	}
	out := make([]*typespec.CallbackEntry, 0, len(a.chunk.Callbacks))
	for _, cb := range a.chunk.Callbacks {
		out = append(out, &typespec.CallbackEntry{
			SpecEntry: *decodeSpec(cb.chunkSpec),
			Macro:     cb.Macro,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Arity < out[j].Arity
	})
	return out, true
}

// FetchOptionalCallbacks returns the optional callback set in its
// stored (internal) form, sorted by name then arity.
func (a *Artifact) FetchOptionalCallbacks() ([]typespec.FA, bool) {
	if a.chunk == nil {
		return nil, false
	}
	out := make([]typespec.FA, 0, len(a.chunk.Optional))
	for _, fa := range a.chunk.Optional {
		out = append(out, typespec.FA{Name: fa.Name, Arity: fa.Arity})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Arity < out[j].Arity
	})
	return out, true
}

func decodeSpec(s chunkSpec) *typespec.SpecEntry {
	entry := &typespec.SpecEntry{Name: s.Name, Arity: s.Arity}
	for _, c := range s.Clauses {
		params, _ := decodeTypes(c.Params)
		ret, _ := decodeType(c.Return)
		clause := &typespec.Clause{Params: params, Return: ret}
		for _, constraint := range c.Constraints {
			bound, _ := decodeType(constraint.Bound)
			clause.Constraints = append(clause.Constraints, typespec.Constraint{
				Var:   constraint.Var,
				Bound: bound,
			})
		}
		entry.Clauses = append(entry.Clauses, clause)
	}
	return entry
}

func sortEntries(entries []*typespec.SpecEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Arity < entries[j].Arity
	})
}

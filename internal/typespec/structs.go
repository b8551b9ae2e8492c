package typespec

import (
	"strings"

	"github.com/funvibe/typespec/internal/ast"
)

// resolveStruct expands %Mod{field: type} against the struct metadata
// registered for Mod. Every field of the struct appears in the result:
// the given ones with their declared types, the rest as any(). The
// synthetic __struct__ key pins the struct's module atom and comes
// first.
func (b *builder) resolveStruct(e *ast.Struct) (Type, error) {
	alias, ok := e.Module.(*ast.Alias)
	if !ok {
		return nil, newError(CodeUnresolvedModuleRef, e.P,
			"%s does not resolve to a struct module", e.Module.String())
	}
	module := strings.Join(alias.Segments, ".")

	declared, ok := b.ctx.Structs[module]
	if !ok {
		return nil, newError(CodeStructNotDefined, e.P,
			"struct %s is not defined (the struct must be defined before the type that references it)", module)
	}

	given := make(map[string]Type, len(e.Pairs))
	for _, pair := range e.Pairs {
		key, ok := pair.Key.(*ast.Atom)
		if !ok || !pair.Shorthand {
			return nil, newError(CodeInvalidSpecification, e.P,
				"invalid struct specification %s", e.String())
		}
		if !fieldDeclared(declared, key.Value) {
			return nil, newError(CodeUndefinedStructField, pair.Key.Pos(),
				"undefined field %s on struct %s", key.Value, module)
		}
		value, err := b.build(pair.Value)
		if err != nil {
			return nil, err
		}
		given[key.Value] = value
	}

	fields := make([]MapField, 0, len(declared)+1)
	fields = append(fields, MapField{
		Key:      &TAtom{P: e.P, Value: "__struct__"},
		Value:    &TAtom{P: e.P, Value: module, Alias: true},
		Required: true,
	})
	for _, name := range declared {
		value, ok := given[name]
		if !ok {
			value = &TAny{P: e.P}
		}
		fields = append(fields, MapField{
			Key:      &TAtom{P: e.P, Value: name},
			Value:    value,
			Required: true,
		})
	}
	return &TMap{P: e.P, Fields: fields}, nil
}

// resolveRecord expands record(:tag, field: type) against the record
// table registered for the tag: a fixed-arity tuple of the tag atom
// followed by every declared field in order, unspecified ones as any().
func (b *builder) resolveRecord(e *ast.Call) (Type, error) {
	if len(e.Args) == 0 {
		return nil, newError(CodeInvalidSpecification, e.P,
			"invalid record specification %s, a record tag is required", e.String())
	}
	tag, ok := e.Args[0].(*ast.Atom)
	if !ok {
		return nil, newError(CodeInvalidSpecification, e.P,
			"invalid record specification %s, the record tag must be an atom", e.String())
	}

	declared, ok := b.ctx.Records[tag.Value]
	if !ok {
		return nil, newError(CodeUnknownRecord, e.P,
			"unknown record %s", tag.Value)
	}

	given := make(map[string]Type, len(e.Args)-1)
	for _, arg := range e.Args[1:] {
		pair, ok := arg.(*ast.Pair)
		if !ok {
			return nil, newError(CodeInvalidSpecification, e.P,
				"invalid record specification %s, fields must be keyword pairs", e.String())
		}
		key, ok := pair.Key.(*ast.Atom)
		if !ok {
			return nil, newError(CodeInvalidSpecification, e.P,
				"invalid record specification %s, fields must be keyword pairs", e.String())
		}
		if !fieldDeclared(declared, key.Value) {
			return nil, newError(CodeUndefinedRecordField, pair.P,
				"undefined field %s on record %s", key.Value, tag.Value)
		}
		value, err := b.build(pair.Value)
		if err != nil {
			return nil, err
		}
		given[key.Value] = value
	}

	elems := make([]Type, 0, len(declared)+1)
	elems = append(elems, &TAtom{P: tag.P, Value: tag.Value})
	for _, name := range declared {
		value, ok := given[name]
		if !ok {
			value = &TAny{P: e.P}
		}
		elems = append(elems, value)
	}
	return &TTuple{P: e.P, Elems: elems}, nil
}

func fieldDeclared(declared []string, name string) bool {
	for _, d := range declared {
		if d == name {
			return true
		}
	}
	return false
}

package typespec

import (
	"github.com/funvibe/typespec/internal/ast"
)

// maxCallbackArity bounds a declared arity to something a function head
// could actually have.
const maxCallbackArity = 255

// validateOptionalCallbacks checks the collected @optional_callbacks
// declarations against the callbacks registered by the time the module
// closes. The result lists the stored (internal) signatures in
// declaration order; macro callbacks therefore appear marked and
// shifted, while every error message reports the arity as declared.
func validateOptionalCallbacks(decls []Declaration, reg *Registry) ([]FA, error) {
	seen := make(map[FA]bool)
	var out []FA

	for _, decl := range decls {
		pairs, err := optionalPairs(decl)
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			name, arity, err := optionalSignature(decl, pair)
			if err != nil {
				return nil, err
			}

			stored := FA{name, arity}
			if !reg.hasCallback(stored) {
				if macro := macroFA(name, arity); reg.hasCallback(macro) {
					stored = macro
				} else {
					return nil, &Error{
						Code:    CodeUnknownOptionalCallback,
						Message: FA{name, arity}.String() + " is not a callback of this module and cannot be optional",
						Name:    name,
						Arity:   arity,
						Pos:     pair.P,
					}
				}
			}

			if seen[stored] {
				return nil, &Error{
					Code:    CodeDuplicateOptionalCallback,
					Message: FA{name, arity}.String() + " has already been declared as an optional callback",
					Name:    name,
					Arity:   arity,
					Pos:     pair.P,
				}
			}
			seen[stored] = true
			out = append(out, stored)
		}
	}
	return out, nil
}

// optionalPairs accepts a keyword list of name: arity entries or a
// single bare pair.
func optionalPairs(decl Declaration) ([]*ast.Pair, error) {
	switch e := decl.Expr.(type) {
	case *ast.List:
		pairs := make([]*ast.Pair, 0, len(e.Elems))
		for _, elem := range e.Elems {
			pair, ok := elem.(*ast.Pair)
			if !ok {
				return nil, invalidOptional(decl)
			}
			pairs = append(pairs, pair)
		}
		return pairs, nil
	case *ast.Pair:
		return []*ast.Pair{e}, nil
	default:
		return nil, invalidOptional(decl)
	}
}

func optionalSignature(decl Declaration, pair *ast.Pair) (string, int, error) {
	name, ok := pair.Key.(*ast.Atom)
	if !ok {
		return "", 0, invalidOptional(decl)
	}
	arity, ok := pair.Value.(*ast.Integer)
	if !ok || arity.Value < 0 || arity.Value > maxCallbackArity {
		return "", 0, invalidOptional(decl)
	}
	return name.Value, int(arity.Value), nil
}

func invalidOptional(decl Declaration) error {
	return newError(CodeInvalidOptionalCallback, decl.P,
		"invalid optional callback declaration %s, expected a keyword list of callback: arity pairs", decl.Expr.String())
}

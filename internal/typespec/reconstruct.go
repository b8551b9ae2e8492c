package typespec

import (
	"strings"

	"github.com/funvibe/typespec/internal/ast"
)

// TypeToAST reconstructs the surface expression tree for an IR node.
// It is total over every node the builder produces, and it prefers the
// idiomatic shorthand where one exists: single-element lists print as
// [t], keyword-shaped lists resugar to [key: t], struct-shaped maps
// resugar to %Mod{...}, and required atom map keys use the key: value
// spelling.
func TypeToAST(t Type) ast.Expr {
	switch n := t.(type) {
	case *TAny:
		return &ast.Call{P: n.P, Name: "any"}

	case *TNone:
		return &ast.Call{P: n.P, Name: "none"}

	case *TAtom:
		return atomToAST(n)

	case *TInteger:
		return &ast.Integer{P: n.P, Value: n.Value}

	case *TNegInteger:
		return &ast.Neg{P: n.P, Operand: &ast.Integer{P: n.P, Value: -n.Value}}

	case *TRange:
		return &ast.Range{P: n.P, Low: intToAST(n.Low), High: intToAST(n.High)}

	case *TBinary:
		return binaryToAST(n)

	case *TTuple:
		if n.AnyArity {
			return &ast.Call{P: n.P, Name: "tuple"}
		}
		return &ast.Tuple{P: n.P, Elems: typesToAST(n.Elems)}

	case *TEmptyList:
		return &ast.List{P: n.P}

	case *TList:
		return listToAST(n)

	case *TMap:
		return mapToAST(n)

	case *TFun:
		params := typesToAST(n.Params)
		if n.AnyArity {
			params = []ast.Expr{&ast.Ellipsis{P: n.P}}
		}
		return &ast.Fun{P: n.P, Params: params, Return: TypeToAST(n.Return)}

	case *TUnion:
		return &ast.Union{P: n.P, Members: typesToAST(n.Members)}

	case *TVar:
		return &ast.Var{P: n.P, Name: n.Name}

	case *TNamed:
		return &ast.Call{P: n.P, Name: n.Name, Args: typesToAST(n.Args)}

	case *TRemote:
		return &ast.Remote{P: n.P, Module: TypeToAST(n.Module), Name: n.Name, Args: typesToAST(n.Args)}

	case *TAnnotated:
		return &ast.Ann{P: n.P, Name: &ast.Var{P: n.P, Name: n.Name}, Type: TypeToAST(n.Inner)}

	case *TParen:
		return &ast.Paren{P: n.P, Inner: TypeToAST(n.Inner)}

	default:
		// Unreachable for builder-produced IR.
		return &ast.Call{Name: "any"}
	}
}

// SpecToAST reconstructs one clause of a spec or callback as a
// name(params) :: return expression, wrapped in a when clause only
// when the clause carries constraints.
func SpecToAST(name string, clause *Clause) ast.Expr {
	head := &ast.Call{P: clause.P, Name: name, Args: typesToAST(clause.Params)}
	var expr ast.Expr = &ast.Ann{P: clause.P, Name: head, Type: TypeToAST(clause.Return)}
	if clause.Bounded() {
		guards := make([]ast.Pair, len(clause.Constraints))
		for i, c := range clause.Constraints {
			guards[i] = ast.Pair{
				P:     clause.P,
				Key:   &ast.Atom{P: clause.P, Value: c.Var},
				Value: TypeToAST(c.Bound),
			}
		}
		expr = &ast.When{P: clause.P, Expr: expr, Guards: guards}
	}
	return expr
}

// CallbackToAST reconstructs one callback clause in its declared form:
// the macro marker and the implicit environment parameter never show.
func CallbackToAST(cb *CallbackEntry, clause *Clause) ast.Expr {
	name := cb.Name
	if cb.Macro {
		name = strings.TrimPrefix(name, MacroPrefix)
		declared := *clause
		declared.Params = clause.Params[1:]
		clause = &declared
	}
	return SpecToAST(name, clause)
}

// TypeDefToAST reconstructs a definition as name(params) :: body.
func TypeDefToAST(def *TypeDef) ast.Expr {
	params := make([]ast.Expr, len(def.Params))
	for i, p := range def.Params {
		params[i] = &ast.Var{P: def.P, Name: p}
	}
	return &ast.Ann{
		P:    def.P,
		Name: &ast.Call{P: def.P, Name: def.Name, Args: params},
		Type: TypeToAST(def.Body),
	}
}

func typesToAST(types []Type) []ast.Expr {
	out := make([]ast.Expr, len(types))
	for i, t := range types {
		out[i] = TypeToAST(t)
	}
	return out
}

func atomToAST(n *TAtom) ast.Expr {
	if n.Alias {
		return &ast.Alias{P: n.P, Segments: strings.Split(n.Value, ".")}
	}
	return &ast.Atom{P: n.P, Value: n.Value}
}

func intToAST(v int64) ast.Expr {
	if v < 0 {
		return &ast.Neg{Operand: &ast.Integer{Value: -v}}
	}
	return &ast.Integer{Value: v}
}

func binaryToAST(n *TBinary) ast.Expr {
	wildcard := func() ast.Expr { return &ast.Var{P: n.P, Name: "_"} }
	var segments []ast.BinSegment
	if n.SizeBits > 0 {
		segments = append(segments, ast.BinSegment{
			Value: wildcard(),
			Size:  &ast.Integer{P: n.P, Value: n.SizeBits},
		})
	}
	if n.UnitBits > 0 {
		segments = append(segments, ast.BinSegment{
			Value: wildcard(),
			Size:  wildcard(),
			Unit:  &ast.Integer{P: n.P, Value: n.UnitBits},
		})
	}
	return &ast.Binary{P: n.P, Segments: segments}
}

func listToAST(n *TList) ast.Expr {
	if n.Elem == nil {
		return &ast.List{P: n.P, Elems: []ast.Expr{&ast.Ellipsis{P: n.P}}}
	}
	if !n.NonEmpty {
		if pairs, ok := keywordElems(n.Elem); ok {
			return &ast.List{P: n.P, Elems: pairs}
		}
	}
	elems := []ast.Expr{TypeToAST(n.Elem)}
	if n.NonEmpty {
		elems = append(elems, &ast.Ellipsis{P: n.P})
	}
	return &ast.List{P: n.P, Elems: elems}
}

// keywordElems recognizes the desugared form of a keyword list: a
// two-tuple with a plain atom key, or a union of such tuples.
func keywordElems(elem Type) ([]ast.Expr, bool) {
	var tuples []*TTuple
	switch e := elem.(type) {
	case *TTuple:
		tuples = []*TTuple{e}
	case *TUnion:
		for _, m := range e.Members {
			t, ok := m.(*TTuple)
			if !ok {
				return nil, false
			}
			tuples = append(tuples, t)
		}
	default:
		return nil, false
	}

	pairs := make([]ast.Expr, len(tuples))
	for i, t := range tuples {
		if t.AnyArity || len(t.Elems) != 2 {
			return nil, false
		}
		key, ok := t.Elems[0].(*TAtom)
		if !ok || key.Alias {
			return nil, false
		}
		pairs[i] = &ast.Pair{
			P:     t.P,
			Key:   &ast.Atom{P: key.P, Value: key.Value},
			Value: TypeToAST(t.Elems[1]),
		}
	}
	return pairs, true
}

func mapToAST(n *TMap) ast.Expr {
	if mod, rest, ok := structFields(n); ok {
		pairs := make([]ast.MapPair, len(rest))
		for i, f := range rest {
			key := f.Key.(*TAtom)
			pairs[i] = ast.MapPair{
				Key:       &ast.Atom{P: key.P, Value: key.Value},
				Value:     TypeToAST(f.Value),
				Shorthand: true,
			}
		}
		return &ast.Struct{P: n.P, Module: atomToAST(mod), Pairs: pairs}
	}

	pairs := make([]ast.MapPair, len(n.Fields))
	for i, f := range n.Fields {
		if key, ok := f.Key.(*TAtom); ok && !key.Alias && f.Required {
			pairs[i] = ast.MapPair{
				Key:       &ast.Atom{P: key.P, Value: key.Value},
				Value:     TypeToAST(f.Value),
				Shorthand: true,
			}
			continue
		}
		wrapper := "optional"
		if f.Required {
			wrapper = "required"
		}
		pairs[i] = ast.MapPair{
			Key:   &ast.Call{P: n.P, Name: wrapper, Args: []ast.Expr{TypeToAST(f.Key)}},
			Value: TypeToAST(f.Value),
		}
	}
	return &ast.MapExpr{P: n.P, Pairs: pairs}
}

// structFields matches a map whose first field is the synthetic
// __struct__ key with a module atom value and whose remaining keys are
// all plain required atoms.
func structFields(n *TMap) (*TAtom, []MapField, bool) {
	if len(n.Fields) == 0 {
		return nil, nil, false
	}
	first := n.Fields[0]
	key, ok := first.Key.(*TAtom)
	if !ok || key.Alias || key.Value != "__struct__" || !first.Required {
		return nil, nil, false
	}
	mod, ok := first.Value.(*TAtom)
	if !ok || !mod.Alias {
		return nil, nil, false
	}
	rest := n.Fields[1:]
	for _, f := range rest {
		k, ok := f.Key.(*TAtom)
		if !ok || k.Alias || !f.Required {
			return nil, nil, false
		}
	}
	return mod, rest, true
}

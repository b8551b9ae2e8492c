package typespec

import (
	"strings"

	"github.com/funvibe/typespec/internal/ast"
	"github.com/funvibe/typespec/internal/diagnostics"
	"github.com/funvibe/typespec/internal/token"
)

// buildMode selects how bare lowercase names resolve.
//
// In a type body a bare name is a type variable only when it is one of
// the definition's parameters; anything else must resolve to a builtin
// or an already-registered local type. In spec and callback clauses
// bare names are always type variables, including guard variables that
// were never declared in a when clause (the reference behavior is
// permissive here and we preserve it).
type buildMode int

const (
	typeBody buildMode = iota
	specBody
)

// builder translates one surface expression into the canonical IR.
// It is pure apart from warnings reported through the context's sink.
type builder struct {
	ctx  *Context
	reg  *Registry
	mode buildMode
	vars map[string]bool // declared type parameters, typeBody only
}

// build is an exhaustive match over the closed surface shape set.
func (b *builder) build(expr ast.Expr) (Type, error) {
	switch e := expr.(type) {
	case *ast.Atom:
		return &TAtom{P: e.P, Value: e.Value}, nil

	case *ast.Alias:
		return &TAtom{P: e.P, Value: strings.Join(e.Segments, "."), Alias: true}, nil

	case *ast.Integer:
		return &TInteger{P: e.P, Value: e.Value}, nil

	case *ast.Neg:
		lit, ok := e.Operand.(*ast.Integer)
		if !ok {
			return nil, newError(CodeUnexpectedExpression, e.P,
				"unexpected expression %s in typespec", e.String())
		}
		return &TNegInteger{P: e.P, Value: -lit.Value}, nil

	case *ast.Str:
		return nil, newError(CodeUnexpectedExpression, e.P,
			"strings are not allowed in typespecs, use binary() or charlist() instead")

	case *ast.Var:
		return b.buildVar(e)

	case *ast.Call:
		return b.buildCall(e)

	case *ast.Remote:
		return b.buildRemote(e)

	case *ast.Union:
		return b.buildUnion(e)

	case *ast.Range:
		return b.buildRange(e)

	case *ast.Binary:
		return b.buildBinary(e)

	case *ast.List:
		return b.buildList(e)

	case *ast.Tuple:
		elems, err := b.buildAll(e.Elems)
		if err != nil {
			return nil, err
		}
		return &TTuple{P: e.P, Elems: elems}, nil

	case *ast.MapExpr:
		return b.buildMap(e)

	case *ast.Struct:
		return b.resolveStruct(e)

	case *ast.Fun:
		return b.buildFun(e)

	case *ast.Ann:
		name, ok := e.Name.(*ast.Var)
		if !ok {
			return nil, newError(CodeInvalidSpecification, e.P,
				"invalid annotation %s, the annotated name must be a variable", e.String())
		}
		inner, err := b.build(e.Type)
		if err != nil {
			return nil, err
		}
		return &TAnnotated{P: e.P, Name: name.Name, Inner: inner}, nil

	case *ast.Paren:
		inner, err := b.build(e.Inner)
		if err != nil {
			return nil, err
		}
		return &TParen{P: e.P, Inner: inner}, nil

	case *ast.Default:
		return nil, newError(CodeDefaultArgument, e.P,
			"default arguments %s are not supported in typespecs", e.String())

	case *ast.When:
		return nil, newError(CodeUnexpectedExpression, e.P,
			"unexpected when clause inside a type expression")

	case *ast.Ellipsis:
		return nil, newError(CodeUnexpectedExpression, e.P,
			"unexpected ... outside of a list or fun type")

	case *ast.Pair:
		return nil, newError(CodeUnexpectedExpression, e.P,
			"unexpected keyword pair %s outside of a list or map", e.String())

	default:
		return nil, newError(CodeUnexpectedExpression, expr.Pos(),
			"unexpected expression %s in typespec", expr.String())
	}
}

func (b *builder) buildAll(exprs []ast.Expr) ([]Type, error) {
	out := make([]Type, len(exprs))
	for i, e := range exprs {
		t, err := b.build(e)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (b *builder) buildVar(e *ast.Var) (Type, error) {
	if b.mode == specBody {
		return &TVar{P: e.P, Name: e.Name}, nil
	}
	if b.vars[e.Name] {
		return &TVar{P: e.P, Name: e.Name}, nil
	}
	// Not a parameter: a bare name written without parentheses is a
	// zero-arity type reference.
	return b.resolveNamed(e.Name, nil, e.P)
}

func (b *builder) buildCall(e *ast.Call) (Type, error) {
	switch e.Name {
	case "record":
		return b.resolveRecord(e)
	case "any":
		if len(e.Args) == 0 {
			return &TAny{P: e.P}, nil
		}
	case "none":
		if len(e.Args) == 0 {
			return &TNone{P: e.P}, nil
		}
	}
	args, err := b.buildAll(e.Args)
	if err != nil {
		return nil, err
	}
	return b.resolveNamed(e.Name, args, e.P)
}

// resolveNamed resolves a local name/arity against the Builtin Catalog
// first, then the registry. Order matters: the registry can never
// contain a builtin name, registration rejects the shadowing.
func (b *builder) resolveNamed(name string, args []Type, pos token.Pos) (Type, error) {
	arity := len(args)
	fa := FA{name, arity}
	if builtinTypes[fa] {
		if hint, discouraged := discouragedTypes[fa]; discouraged {
			b.ctx.sink().Report(diagnostics.Diagnostic{
				Severity: diagnostics.Warning,
				Code:     "discouraged_type",
				Message:  name + "() type use is discouraged, " + hint,
				Pos:      pos,
			})
		}
		return &TNamed{P: pos, Name: name, Args: args}, nil
	}
	if _, ok := b.reg.lookupType(name, arity); ok {
		return &TNamed{P: pos, Name: name, Args: args}, nil
	}
	return nil, newError(CodeUndefinedType, pos,
		"type %s/%d undefined (no such type defined at this point of the module)", name, arity)
}

func (b *builder) buildRemote(e *ast.Remote) (Type, error) {
	var module *TAtom
	switch m := e.Module.(type) {
	case *ast.Alias:
		module = &TAtom{P: m.P, Value: strings.Join(m.Segments, "."), Alias: true}
	case *ast.Atom:
		module = &TAtom{P: m.P, Value: m.Value}
	default:
		return nil, newError(CodeUnresolvedModuleRef, e.P,
			"%s does not resolve to a module for remote type %s.%s", m.String(), m.String(), e.Name)
	}
	args, err := b.buildAll(e.Args)
	if err != nil {
		return nil, err
	}
	return &TRemote{P: e.P, Module: module, Name: e.Name, Args: args}, nil
}

func (b *builder) buildUnion(e *ast.Union) (Type, error) {
	members := make([]Type, 0, len(e.Members))
	for _, m := range e.Members {
		t, err := b.build(m)
		if err != nil {
			return nil, err
		}
		// The operator is left-associative and flattens to one node.
		// Parenthesized unions stay nested behind TParen.
		if u, ok := t.(*TUnion); ok {
			members = append(members, u.Members...)
			continue
		}
		members = append(members, t)
	}
	if len(members) < 2 {
		return nil, newError(CodeInvalidSpecification, e.P,
			"invalid union %s, at least two members are required", e.String())
	}
	return &TUnion{P: e.P, Members: members}, nil
}

func (b *builder) buildRange(e *ast.Range) (Type, error) {
	low, okLow := intLiteral(e.Low)
	high, okHigh := intLiteral(e.High)
	if !okLow || !okHigh {
		return nil, newError(CodeUnexpectedExpression, e.P,
			"invalid range %s, bounds must be integer literals", e.String())
	}
	return &TRange{P: e.P, Low: low, High: high}, nil
}

func intLiteral(e ast.Expr) (int64, bool) {
	switch v := e.(type) {
	case *ast.Integer:
		return v.Value, true
	case *ast.Neg:
		if lit, ok := v.Operand.(*ast.Integer); ok {
			return -lit.Value, true
		}
	}
	return 0, false
}

// buildBinary computes (size_bits, unit_bits). The accepted forms are
// <<>>, <<_::n>>, <<_::_*u>> and <<_::n, _::_*u>>; everything else,
// including the n*u multiplication spelling, is rejected.
func (b *builder) buildBinary(e *ast.Binary) (Type, error) {
	invalid := func() (Type, error) {
		return nil, newError(CodeInvalidBinarySpec, e.P,
			"invalid binary specification %s", e.String())
	}
	switch len(e.Segments) {
	case 0:
		return &TBinary{P: e.P}, nil
	case 1:
		if size, ok := sizeSegment(e.Segments[0]); ok {
			return &TBinary{P: e.P, SizeBits: size}, nil
		}
		if unit, ok := unitSegment(e.Segments[0]); ok {
			return &TBinary{P: e.P, UnitBits: unit}, nil
		}
		return invalid()
	case 2:
		size, okSize := sizeSegment(e.Segments[0])
		unit, okUnit := unitSegment(e.Segments[1])
		if !okSize || !okUnit {
			return invalid()
		}
		return &TBinary{P: e.P, SizeBits: size, UnitBits: unit}, nil
	default:
		return invalid()
	}
}

// sizeSegment matches _::n.
func sizeSegment(s ast.BinSegment) (int64, bool) {
	if !isWildcard(s.Value) || s.Unit != nil {
		return 0, false
	}
	lit, ok := s.Size.(*ast.Integer)
	if !ok || lit.Value < 0 {
		return 0, false
	}
	return lit.Value, true
}

// unitSegment matches _::_*u with u in 1..256.
func unitSegment(s ast.BinSegment) (int64, bool) {
	if !isWildcard(s.Value) || !isWildcard(s.Size) || s.Unit == nil {
		return 0, false
	}
	lit, ok := s.Unit.(*ast.Integer)
	if !ok || lit.Value < 1 || lit.Value > 256 {
		return 0, false
	}
	return lit.Value, true
}

func isWildcard(e ast.Expr) bool {
	v, ok := e.(*ast.Var)
	return ok && v.Name == "_"
}

func (b *builder) buildList(e *ast.List) (Type, error) {
	if len(e.Elems) == 0 {
		return &TEmptyList{P: e.P}, nil
	}
	if _, ok := e.Elems[0].(*ast.Pair); ok {
		return b.buildKeywordList(e)
	}
	switch len(e.Elems) {
	case 1:
		if _, ok := e.Elems[0].(*ast.Ellipsis); ok {
			return &TList{P: e.P, NonEmpty: true}, nil
		}
		elem, err := b.build(e.Elems[0])
		if err != nil {
			return nil, err
		}
		return &TList{P: e.P, Elem: elem}, nil
	case 2:
		if _, ok := e.Elems[1].(*ast.Ellipsis); ok {
			elem, err := b.build(e.Elems[0])
			if err != nil {
				return nil, err
			}
			return &TList{P: e.P, Elem: elem, NonEmpty: true}, nil
		}
	}
	return nil, newError(CodeUnexpectedExpression, e.P,
		"invalid list %s, a list type holds a single element type", e.String())
}

// buildKeywordList desugars [key: t, ...] into a proper list of
// two-tuples, union-joined in declaration order.
func (b *builder) buildKeywordList(e *ast.List) (Type, error) {
	members := make([]Type, 0, len(e.Elems))
	for _, elem := range e.Elems {
		pair, ok := elem.(*ast.Pair)
		if !ok {
			return nil, newError(CodeUnexpectedExpression, e.P,
				"invalid list %s, cannot mix keyword pairs and other elements", e.String())
		}
		key, ok := pair.Key.(*ast.Atom)
		if !ok {
			return nil, newError(CodeUnexpectedExpression, pair.P,
				"invalid keyword key %s, an atom is required", pair.Key.String())
		}
		value, err := b.build(pair.Value)
		if err != nil {
			return nil, err
		}
		members = append(members, &TTuple{
			P:     pair.P,
			Elems: []Type{&TAtom{P: key.P, Value: key.Value}, value},
		})
	}
	elem := members[0]
	if len(members) > 1 {
		elem = &TUnion{P: e.P, Members: members}
	}
	return &TList{P: e.P, Elem: elem}, nil
}

func (b *builder) buildMap(e *ast.MapExpr) (Type, error) {
	fields := make([]MapField, 0, len(e.Pairs))
	for _, pair := range e.Pairs {
		field, err := b.buildMapField(e, pair)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return &TMap{P: e.P, Fields: fields}, nil
}

func (b *builder) buildMapField(e *ast.MapExpr, pair ast.MapPair) (MapField, error) {
	value, err := b.build(pair.Value)
	if err != nil {
		return MapField{}, err
	}
	if pair.Shorthand {
		key, ok := pair.Key.(*ast.Atom)
		if !ok {
			return MapField{}, newError(CodeInvalidMapSpec, e.P,
				"invalid map specification %s", e.String())
		}
		return MapField{Key: &TAtom{P: key.P, Value: key.Value}, Value: value, Required: true}, nil
	}
	call, ok := pair.Key.(*ast.Call)
	if !ok || len(call.Args) != 1 || (call.Name != "required" && call.Name != "optional") {
		return MapField{}, newError(CodeInvalidMapSpec, e.P,
			"invalid map specification %s, keys must use the key: value shorthand, required(key) or optional(key)", e.String())
	}
	key, err := b.build(call.Args[0])
	if err != nil {
		return MapField{}, err
	}
	return MapField{Key: key, Value: value, Required: call.Name == "required"}, nil
}

func (b *builder) buildFun(e *ast.Fun) (Type, error) {
	if e.Return == nil {
		return nil, newError(CodeMissingReturnType, e.P,
			"fun type %s is missing a return type", e.String())
	}
	ret, err := b.build(e.Return)
	if err != nil {
		return nil, err
	}
	if len(e.Params) == 1 {
		if _, ok := e.Params[0].(*ast.Ellipsis); ok {
			return &TFun{P: e.P, AnyArity: true, Return: ret}, nil
		}
	}
	params, err := b.buildAll(e.Params)
	if err != nil {
		return nil, err
	}
	return &TFun{P: e.P, Params: params, Return: ret}, nil
}

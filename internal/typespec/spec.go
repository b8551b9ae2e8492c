package typespec

import (
	"github.com/funvibe/typespec/internal/ast"
	"github.com/funvibe/typespec/internal/token"
)

// MacroPrefix marks macro callbacks in their stored and introspected
// names. Macro callbacks receive the caller environment as an implicit
// first parameter, so their stored arity is one higher than declared.
const MacroPrefix = "MACRO-"

// macroFA converts a declared macro callback signature to its stored
// form. This is the only place the shift happens; every consumer goes
// through it (or through externalFA for the reverse direction).
func macroFA(name string, arity int) FA {
	return FA{MacroPrefix + name, arity + 1}
}

// externalFA undoes the arity shift for user-facing reporting. The
// marker stays on the name.
func externalFA(fa FA, macro bool) FA {
	if !macro {
		return fa
	}
	return FA{fa.Name, fa.Arity - 1}
}

// clauseHead is the parsed shape of one @spec/@callback declaration:
// name(params) :: return [when guards].
type clauseHead struct {
	name   string
	params []ast.Expr
	ret    ast.Expr
	guards []ast.Pair
	pos    token.Pos
}

func parseClauseHead(expr ast.Expr) (clauseHead, error) {
	var head clauseHead
	head.pos = expr.Pos()

	if w, ok := expr.(*ast.When); ok {
		head.guards = w.Guards
		expr = w.Expr
	}

	ann, ok := expr.(*ast.Ann)
	if !ok {
		// A bare call is a spec that forgot its return type; anything
		// else is not a recognizable declaration.
		if call, ok := expr.(*ast.Call); ok {
			return head, &Error{
				Code:    CodeMissingReturnType,
				Message: "specification is missing a return type, use " + call.String() + " :: type",
				Name:    call.Name,
				Arity:   len(call.Args),
				Pos:     call.P,
			}
		}
		return head, newError(CodeInvalidSpecification, expr.Pos(),
			"invalid specification %s", expr.String())
	}

	switch n := ann.Name.(type) {
	case *ast.Call:
		head.name = n.Name
		head.params = n.Args
	case *ast.Var:
		head.name = n.Name
	default:
		return head, newError(CodeInvalidSpecification, ann.P,
			"invalid specification %s, the head must be a function signature", ann.String())
	}
	head.ret = ann.Type
	return head, nil
}

// buildClause compiles a parsed head into a Clause. Parameters and the
// return type are built in spec mode, where any lowercase name is a
// type variable; guard bounds attach as constraints in guard order.
func (b *builder) buildClause(head clauseHead) (*Clause, error) {
	clause := &Clause{P: head.pos}

	clause.Params = make([]Type, len(head.params))
	for i, p := range head.params {
		if d, ok := p.(*ast.Default); ok {
			return nil, newError(CodeDefaultArgument, d.P,
				"default arguments %s are not supported in typespecs", d.String())
		}
		t, err := b.build(p)
		if err != nil {
			return nil, err
		}
		clause.Params[i] = t
	}

	ret, err := b.build(head.ret)
	if err != nil {
		return nil, err
	}
	clause.Return = ret

	for _, guard := range head.guards {
		name, ok := guard.Key.(*ast.Atom)
		if !ok {
			return nil, newError(CodeInvalidSpecification, guard.P,
				"invalid when guard %s, the guard name must be a variable", guard.String())
		}
		bound, err := b.build(guard.Value)
		if err != nil {
			return nil, err
		}
		clause.Constraints = append(clause.Constraints, Constraint{Var: name.Value, Bound: bound})
	}
	return clause, nil
}

func clauseArity(head clauseHead) int {
	return len(head.params)
}

// addSpec consolidates one @spec declaration. The named function must
// exist in the compiling module; specs for non-exported functions are
// built and validated but marked for dropping from the retrievable set.
func (c *compilation) addSpec(decl Declaration) error {
	head, err := parseClauseHead(decl.Expr)
	if err != nil {
		return err
	}
	arity := clauseArity(head)

	fn, defined := c.ctx.function(head.name, arity)
	if !defined {
		return &Error{
			Code:    CodeUndefinedFunctionSpec,
			Message: "spec for undefined function " + FA{head.name, arity}.String(),
			Name:    head.name,
			Arity:   arity,
			Pos:     head.pos,
		}
	}

	clause, err := c.specBuilder().buildClause(head)
	if err != nil {
		return decorate(err, head.name, arity)
	}

	entry := c.reg.spec(head.name, arity, head.pos)
	entry.private = !fn.Exported
	entry.Clauses = append(entry.Clauses, clause)
	return nil
}

// addCallback consolidates one @callback or @macrocallback declaration.
// Callbacks describe an interface for implementing modules, so no local
// function is required to exist.
func (c *compilation) addCallback(decl Declaration) error {
	head, err := parseClauseHead(decl.Expr)
	if err != nil {
		return err
	}
	arity := clauseArity(head)

	name := head.name
	stored := FA{name, arity}
	macro := decl.Kind == DeclMacroCallback
	if macro {
		stored = macroFA(name, arity)
	}

	clause, err := c.specBuilder().buildClause(head)
	if err != nil {
		return decorate(err, name, arity)
	}
	if macro {
		// The implicit environment parameter keeps the stored arity
		// equal to the clause's parameter count.
		clause.Params = append([]Type{&TNamed{P: head.pos, Name: "term"}}, clause.Params...)
	}

	entry := c.reg.callback(stored.Name, stored.Arity, macro, head.pos)
	entry.Clauses = append(entry.Clauses, clause)
	return nil
}

package typespec

import (
	"errors"

	"github.com/funvibe/typespec/internal/ast"
	"github.com/funvibe/typespec/internal/token"
)

// DeclKind identifies which attribute produced a declaration.
type DeclKind int

const (
	DeclType DeclKind = iota
	DeclOpaque
	DeclSpec
	DeclCallback
	DeclMacroCallback
	DeclOptionalCallbacks
)

// Declaration is one collected attribute: the expression written after
// @type, @opaque, @spec, @callback, @macrocallback or
// @optional_callbacks.
type Declaration struct {
	Kind DeclKind
	Expr ast.Expr
	P    token.Pos
}

// ModuleSpecs is the immutable result of compiling one module's
// typespec declarations. All slices are in declaration order; the
// artifact layer sorts on retrieval.
type ModuleSpecs struct {
	Module            string
	Types             []*TypeDef
	Specs             []*SpecEntry
	Callbacks         []*CallbackEntry
	OptionalCallbacks []FA
}

// compilation is the mutable state of one CompileModule run.
type compilation struct {
	ctx *Context
	reg *Registry
}

func (c *compilation) specBuilder() *builder {
	return &builder{ctx: c.ctx, reg: c.reg, mode: specBody}
}

// CompileModule runs the pass over one module's declarations in source
// order. Declarations may reference any type registered earlier in the
// same run (or themselves); any error aborts the whole module and no
// partial result is returned.
func CompileModule(ctx *Context, decls []Declaration) (*ModuleSpecs, error) {
	c := &compilation{ctx: ctx, reg: NewRegistry()}

	var optional []Declaration
	for _, decl := range decls {
		var err error
		switch decl.Kind {
		case DeclType, DeclOpaque:
			err = c.addTypeDef(decl)
		case DeclSpec:
			err = c.addSpec(decl)
		case DeclCallback, DeclMacroCallback:
			err = c.addCallback(decl)
		case DeclOptionalCallbacks:
			// Validated once every callback is known, at module close.
			optional = append(optional, decl)
		default:
			err = newError(CodeInvalidSpecification, decl.P,
				"unknown declaration kind %d", decl.Kind)
		}
		if err != nil {
			return nil, err
		}
	}

	optionalSet, err := validateOptionalCallbacks(optional, c.reg)
	if err != nil {
		return nil, err
	}

	specs := &ModuleSpecs{
		Module:            ctx.Module,
		OptionalCallbacks: optionalSet,
	}
	for _, fa := range c.reg.typeOrder {
		specs.Types = append(specs.Types, c.reg.types[fa])
	}
	for _, fa := range c.reg.specOrder {
		entry := c.reg.specs[fa]
		if entry.private {
			continue
		}
		specs.Specs = append(specs.Specs, entry)
	}
	for _, fa := range c.reg.callbackOrder {
		specs.Callbacks = append(specs.Callbacks, c.reg.callbacks[fa])
	}
	return specs, nil
}

// addTypeDef compiles one @type/@opaque declaration. The definition
// shell registers before its body builds so the body may reference the
// type being defined.
func (c *compilation) addTypeDef(decl Declaration) error {
	ann, ok := decl.Expr.(*ast.Ann)
	if !ok {
		return newError(CodeInvalidSpecification, decl.P,
			"invalid type specification %s, expected name :: type", decl.Expr.String())
	}

	var name string
	var paramExprs []ast.Expr
	switch head := ann.Name.(type) {
	case *ast.Var:
		name = head.Name
	case *ast.Call:
		name = head.Name
		paramExprs = head.Args
	default:
		return newError(CodeInvalidSpecification, ann.P,
			"invalid type specification %s, the head must be a name with variable parameters", ann.String())
	}

	params := make([]string, len(paramExprs))
	for i, p := range paramExprs {
		v, ok := p.(*ast.Var)
		if !ok {
			return &Error{
				Code:    CodeInvalidSpecification,
				Message: "invalid type specification, parameter " + p.String() + " must be a variable",
				Name:    name,
				Arity:   len(paramExprs),
				Pos:     p.Pos(),
			}
		}
		params[i] = v.Name
	}
	arity := len(params)

	if IsBuiltinType(name, arity) {
		return &Error{
			Code:    CodeBuiltinOverride,
			Message: "type " + FA{name, arity}.String() + " is a builtin type and it cannot be redefined",
			Name:    name,
			Arity:   arity,
			Pos:     decl.P,
		}
	}

	kind := KindType
	if decl.Kind == DeclOpaque {
		kind = KindOpaque
	}
	def := &TypeDef{Name: name, Arity: arity, Params: params, Kind: kind, P: decl.P}
	if !c.reg.registerType(def) {
		return &Error{
			Code:    CodeDuplicateTypeDefinition,
			Message: "type " + def.FA().String() + " is already defined",
			Name:    name,
			Arity:   arity,
			Pos:     decl.P,
		}
	}

	vars := make(map[string]bool, len(params))
	for _, p := range params {
		vars[p] = true
	}
	b := &builder{ctx: c.ctx, reg: c.reg, mode: typeBody, vars: vars}
	body, err := b.build(ann.Type)
	if err != nil {
		return decorate(err, name, arity)
	}
	def.Body = body
	return nil
}

// decorate fills in the owning declaration's name/arity on an error
// that was produced below the declaration level.
func decorate(err error, name string, arity int) error {
	var e *Error
	if errors.As(err, &e) && e.Name == "" {
		e.Name = name
		e.Arity = arity
	}
	return err
}

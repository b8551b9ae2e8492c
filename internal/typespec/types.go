package typespec

import (
	"github.com/funvibe/typespec/internal/token"
)

// Type is the interface for all canonical IR nodes.
//
// Positions are diagnostic-only: Equal ignores them, and so does the
// artifact encoding. String renders the canonical surface form by
// reconstructing the node (see reconstruct.go), which keeps the printed
// form and the reconstructed form identical by construction.
type Type interface {
	typeNode()
	Pos() token.Pos
	String() string
}

// TAny represents any().
type TAny struct {
	P token.Pos
}

// TNone represents none().
type TNone struct {
	P token.Pos
}

// TAtom represents an atom literal. Alias marks module atoms written
// in alias form, which print bare (String) instead of as atoms.
type TAtom struct {
	P     token.Pos
	Value string
	Alias bool
}

// TInteger represents a non-negative integer literal.
type TInteger struct {
	P     token.Pos
	Value int64
}

// TNegInteger represents a negative integer literal. Value is stored
// negative.
type TNegInteger struct {
	P     token.Pos
	Value int64
}

// TRange represents low..high with literal integer bounds.
type TRange struct {
	P    token.Pos
	Low  int64
	High int64
}

// TBinary represents a binary type reduced to its size and unit bit
// counts: <<>> is (0,0), <<_::n>> is (n,0), <<_::_*u>> is (0,u) and
// <<_::n, _::_*u>> is (n,u).
type TBinary struct {
	P        token.Pos
	SizeBits int64
	UnitBits int64
}

// TTuple represents a fixed-arity tuple, or the any-arity tuple when
// AnyArity is set (in which case Elems is nil).
type TTuple struct {
	P        token.Pos
	Elems    []Type
	AnyArity bool
}

// TEmptyList is the [] sentinel.
type TEmptyList struct {
	P token.Pos
}

// TList represents [elem] and [elem, ...]. A nonempty list written
// [...] carries a nil Elem.
type TList struct {
	P        token.Pos
	Elem     Type
	NonEmpty bool
}

// MapField is one entry of a map type.
type MapField struct {
	Key      Type
	Value    Type
	Required bool
}

// TMap represents a map type as an ordered field list. Struct types
// are maps whose first field is the synthetic required __struct__ key.
type TMap struct {
	P      token.Pos
	Fields []MapField
}

// TFun represents a fun type. AnyArity marks (... -> r); otherwise
// Params holds the parameter types in order.
type TFun struct {
	P        token.Pos
	Params   []Type
	AnyArity bool
	Return   Type
}

// TUnion represents a | b | c with at least two members.
type TUnion struct {
	P       token.Pos
	Members []Type
}

// TVar represents a type variable.
type TVar struct {
	P    token.Pos
	Name string
}

// TNamed represents an application of a builtin or locally declared
// type, e.g. integer() or my_type(t).
type TNamed struct {
	P    token.Pos
	Name string
	Args []Type
}

// TRemote represents Module.name(args). Module is always a TAtom.
type TRemote struct {
	P      token.Pos
	Module Type
	Name   string
	Args   []Type
}

// TAnnotated represents a named parameter, name :: inner.
type TAnnotated struct {
	P     token.Pos
	Name  string
	Inner Type
}

// TParen preserves explicit grouping for round-trip fidelity.
type TParen struct {
	P     token.Pos
	Inner Type
}

func (*TAny) typeNode()        {}
func (*TNone) typeNode()       {}
func (*TAtom) typeNode()       {}
func (*TInteger) typeNode()    {}
func (*TNegInteger) typeNode() {}
func (*TRange) typeNode()      {}
func (*TBinary) typeNode()     {}
func (*TTuple) typeNode()      {}
func (*TEmptyList) typeNode()  {}
func (*TList) typeNode()       {}
func (*TMap) typeNode()        {}
func (*TFun) typeNode()        {}
func (*TUnion) typeNode()      {}
func (*TVar) typeNode()        {}
func (*TNamed) typeNode()      {}
func (*TRemote) typeNode()     {}
func (*TAnnotated) typeNode()  {}
func (*TParen) typeNode()      {}

func (t *TAny) Pos() token.Pos        { return t.P }
func (t *TNone) Pos() token.Pos       { return t.P }
func (t *TAtom) Pos() token.Pos       { return t.P }
func (t *TInteger) Pos() token.Pos    { return t.P }
func (t *TNegInteger) Pos() token.Pos { return t.P }
func (t *TRange) Pos() token.Pos      { return t.P }
func (t *TBinary) Pos() token.Pos     { return t.P }
func (t *TTuple) Pos() token.Pos      { return t.P }
func (t *TEmptyList) Pos() token.Pos  { return t.P }
func (t *TList) Pos() token.Pos       { return t.P }
func (t *TMap) Pos() token.Pos        { return t.P }
func (t *TFun) Pos() token.Pos        { return t.P }
func (t *TUnion) Pos() token.Pos      { return t.P }
func (t *TVar) Pos() token.Pos        { return t.P }
func (t *TNamed) Pos() token.Pos      { return t.P }
func (t *TRemote) Pos() token.Pos     { return t.P }
func (t *TAnnotated) Pos() token.Pos  { return t.P }
func (t *TParen) Pos() token.Pos      { return t.P }

func (t *TAny) String() string        { return TypeToAST(t).String() }
func (t *TNone) String() string       { return TypeToAST(t).String() }
func (t *TAtom) String() string       { return TypeToAST(t).String() }
func (t *TInteger) String() string    { return TypeToAST(t).String() }
func (t *TNegInteger) String() string { return TypeToAST(t).String() }
func (t *TRange) String() string      { return TypeToAST(t).String() }
func (t *TBinary) String() string     { return TypeToAST(t).String() }
func (t *TTuple) String() string      { return TypeToAST(t).String() }
func (t *TEmptyList) String() string  { return TypeToAST(t).String() }
func (t *TList) String() string       { return TypeToAST(t).String() }
func (t *TMap) String() string        { return TypeToAST(t).String() }
func (t *TFun) String() string        { return TypeToAST(t).String() }
func (t *TUnion) String() string      { return TypeToAST(t).String() }
func (t *TVar) String() string        { return TypeToAST(t).String() }
func (t *TNamed) String() string      { return TypeToAST(t).String() }
func (t *TRemote) String() string     { return TypeToAST(t).String() }
func (t *TAnnotated) String() string  { return TypeToAST(t).String() }
func (t *TParen) String() string      { return TypeToAST(t).String() }

// Equal reports structural equality of two IR nodes, ignoring
// positions. Canonical printing is injective over the IR, so comparing
// the printed forms is exact.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

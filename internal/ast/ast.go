package ast

import (
	"github.com/funvibe/typespec/internal/token"
)

// Expr is the base interface for all surface type-expression nodes.
//
// The set of shapes is closed: the builder dispatches over it with an
// exhaustive type switch, so adding a shape here forces every consumer
// to handle it.
type Expr interface {
	exprNode()
	Pos() token.Pos
	String() string
}

// Atom represents an atom literal, e.g. :ok.
type Atom struct {
	P     token.Pos
	Value string
}

// Alias represents a module alias, e.g. String or The.Mod.
type Alias struct {
	P        token.Pos
	Segments []string
}

// Integer represents a non-negative integer literal.
type Integer struct {
	P     token.Pos
	Value int64
}

// Str represents a string literal. Strings are never valid in type
// expressions; the node exists so the builder can reject them with a
// useful message instead of failing upstream.
type Str struct {
	P     token.Pos
	Value string
}

// Var represents a lowercase identifier with no arguments, e.g. x or _.
// Depending on context it denotes a type variable or a zero-arity type
// reference written without parentheses.
type Var struct {
	P    token.Pos
	Name string
}

// Call represents a local application, e.g. integer() or list(t).
type Call struct {
	P    token.Pos
	Name string
	Args []Expr
}

// Remote represents a remote type reference, e.g. String.t() or
// :erlang.iolist(). Module is an arbitrary expression; the builder
// requires it to resolve to a module atom.
type Remote struct {
	P      token.Pos
	Module Expr
	Name   string
	Args   []Expr
}

// Union represents A | B | C. The parser flattens the left-associative
// operator chain, so Members always has at least two entries.
type Union struct {
	P       token.Pos
	Members []Expr
}

// Range represents low..high.
type Range struct {
	P    token.Pos
	Low  Expr
	High Expr
}

// Neg represents unary minus, e.g. -1.
type Neg struct {
	P       token.Pos
	Operand Expr
}

// Ann represents an annotation, e.g. value :: integer(). At the top of
// a declaration it separates the head from the body; inside a type it
// names a parameter.
type Ann struct {
	P    token.Pos
	Name Expr
	Type Expr
}

// When represents a guarded spec clause: expr when var: bound, ...
type When struct {
	P      token.Pos
	Expr   Expr
	Guards []Pair
}

// BinSegment is one segment of a binary type. Value is the segment
// value (always _ in a well-formed type), Size its size expression and
// Unit the optional unit multiplier of a _*unit size.
type BinSegment struct {
	Value Expr
	Size  Expr
	Unit  Expr
}

// Binary represents <<>>, <<_::size>>, <<_::_*unit>> and the combined
// two-segment form.
type Binary struct {
	P        token.Pos
	Segments []BinSegment
}

// List represents a list literal: [], [t], [t, ...] or a keyword list
// [key: t, ...]. Keyword entries appear as Pair elements.
type List struct {
	P     token.Pos
	Elems []Expr
}

// Ellipsis represents the literal ... inside lists and fun parameters.
type Ellipsis struct {
	P token.Pos
}

// Tuple represents {a, b, c}.
type Tuple struct {
	P     token.Pos
	Elems []Expr
}

// MapPair is one entry of a map type. Shorthand marks the key: value
// spelling (key must be an Atom); otherwise the entry was written with
// => and Key may be a required(...)/optional(...) wrapper.
type MapPair struct {
	Key       Expr
	Value     Expr
	Shorthand bool
}

// MapExpr represents %{} and %{...} map types.
type MapExpr struct {
	P     token.Pos
	Pairs []MapPair
}

// Struct represents %Mod{field: type, ...}.
type Struct struct {
	P      token.Pos
	Module Expr
	Pairs  []MapPair
}

// Fun represents a fun type: (-> r), (a, b -> r), (... -> r).
// An any-arity fun carries a single Ellipsis parameter. Return is nil
// when the arrow had no right-hand side; the builder rejects that.
type Fun struct {
	P      token.Pos
	Params []Expr
	Return Expr
}

// Paren represents explicit grouping. It is preserved through the IR so
// reconstruction reproduces the written form.
type Paren struct {
	P     token.Pos
	Inner Expr
}

// Default represents a default argument, e.g. opts \\ []. Typespecs do
// not support defaults; the builder rejects the node.
type Default struct {
	P     token.Pos
	Name  Expr
	Value Expr
}

// Pair represents a keyword pair key: value outside of maps: keyword
// lists, when guards and record field lists.
type Pair struct {
	P     token.Pos
	Key   Expr
	Value Expr
}

func (*Atom) exprNode()     {}
func (*Alias) exprNode()    {}
func (*Integer) exprNode()  {}
func (*Str) exprNode()      {}
func (*Var) exprNode()      {}
func (*Call) exprNode()     {}
func (*Remote) exprNode()   {}
func (*Union) exprNode()    {}
func (*Range) exprNode()    {}
func (*Neg) exprNode()      {}
func (*Ann) exprNode()      {}
func (*When) exprNode()     {}
func (*Binary) exprNode()   {}
func (*List) exprNode()     {}
func (*Ellipsis) exprNode() {}
func (*Tuple) exprNode()    {}
func (*MapExpr) exprNode()  {}
func (*Struct) exprNode()   {}
func (*Fun) exprNode()      {}
func (*Paren) exprNode()    {}
func (*Default) exprNode()  {}
func (*Pair) exprNode()     {}

func (e *Atom) Pos() token.Pos     { return e.P }
func (e *Alias) Pos() token.Pos    { return e.P }
func (e *Integer) Pos() token.Pos  { return e.P }
func (e *Str) Pos() token.Pos      { return e.P }
func (e *Var) Pos() token.Pos      { return e.P }
func (e *Call) Pos() token.Pos     { return e.P }
func (e *Remote) Pos() token.Pos   { return e.P }
func (e *Union) Pos() token.Pos    { return e.P }
func (e *Range) Pos() token.Pos    { return e.P }
func (e *Neg) Pos() token.Pos      { return e.P }
func (e *Ann) Pos() token.Pos      { return e.P }
func (e *When) Pos() token.Pos     { return e.P }
func (e *Binary) Pos() token.Pos   { return e.P }
func (e *List) Pos() token.Pos     { return e.P }
func (e *Ellipsis) Pos() token.Pos { return e.P }
func (e *Tuple) Pos() token.Pos    { return e.P }
func (e *MapExpr) Pos() token.Pos  { return e.P }
func (e *Struct) Pos() token.Pos   { return e.P }
func (e *Fun) Pos() token.Pos      { return e.P }
func (e *Paren) Pos() token.Pos    { return e.P }
func (e *Default) Pos() token.Pos  { return e.P }
func (e *Pair) Pos() token.Pos     { return e.P }

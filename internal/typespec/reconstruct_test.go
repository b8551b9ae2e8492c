package typespec

import (
	"testing"

	"github.com/funvibe/typespec/internal/ast"
)

// TestRoundTrip feeds surface expressions through the builder and back
// through TypeToAST, checking the canonical spelling. Inputs written in
// a non-canonical form land on their canonical equivalent.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{
			name: "atom",
			expr: &ast.Atom{Value: "ok"},
			want: ":ok",
		},
		{
			name: "alias",
			expr: &ast.Alias{Segments: []string{"GenServer"}},
			want: "GenServer",
		},
		{
			name: "builtin call",
			expr: &ast.Call{Name: "integer"},
			want: "integer()",
		},
		{
			name: "bare builtin gains parentheses",
			expr: &ast.Var{Name: "integer"},
			want: "integer()",
		},
		{
			name: "any collapses",
			expr: &ast.Call{Name: "any"},
			want: "any()",
		},
		{
			name: "term stays named",
			expr: &ast.Call{Name: "term"},
			want: "term()",
		},
		{
			name: "negative integer",
			expr: &ast.Neg{Operand: &ast.Integer{Value: 5}},
			want: "-5",
		},
		{
			name: "range",
			expr: &ast.Range{Low: &ast.Neg{Operand: &ast.Integer{Value: 1}}, High: &ast.Integer{Value: 10}},
			want: "-1..10",
		},
		{
			name: "empty binary",
			expr: &ast.Binary{},
			want: "<<>>",
		},
		{
			name: "sized binary",
			expr: &ast.Binary{Segments: []ast.BinSegment{
				{Value: wildcard(), Size: &ast.Integer{Value: 3}},
				{Value: wildcard(), Size: wildcard(), Unit: &ast.Integer{Value: 8}},
			}},
			want: "<<_::3, _::_*8>>",
		},
		{
			name: "unit binary",
			expr: &ast.Binary{Segments: []ast.BinSegment{
				{Value: wildcard(), Size: wildcard(), Unit: &ast.Integer{Value: 8}},
			}},
			want: "<<_::_*8>>",
		},
		{
			name: "empty list",
			expr: &ast.List{},
			want: "[]",
		},
		{
			name: "proper list",
			expr: &ast.List{Elems: []ast.Expr{&ast.Call{Name: "integer"}}},
			want: "[integer()]",
		},
		{
			name: "nonempty list",
			expr: &ast.List{Elems: []ast.Expr{&ast.Var{Name: "integer"}, &ast.Ellipsis{}}},
			want: "[integer(), ...]",
		},
		{
			name: "nonempty any list",
			expr: &ast.List{Elems: []ast.Expr{&ast.Ellipsis{}}},
			want: "[...]",
		},
		{
			name: "keyword list resugars",
			expr: &ast.List{Elems: []ast.Expr{
				&ast.Pair{Key: &ast.Atom{Value: "timeout"}, Value: &ast.Call{Name: "integer"}},
				&ast.Pair{Key: &ast.Atom{Value: "name"}, Value: &ast.Call{Name: "atom"}},
			}},
			want: "[timeout: integer(), name: atom()]",
		},
		{
			name: "tuple",
			expr: &ast.Tuple{Elems: []ast.Expr{&ast.Atom{Value: "ok"}, &ast.Call{Name: "term"}}},
			want: "{:ok, term()}",
		},
		{
			name: "map shorthand keys",
			expr: &ast.MapExpr{Pairs: []ast.MapPair{
				{Key: &ast.Atom{Value: "a"}, Value: &ast.Call{Name: "integer"}, Shorthand: true},
			}},
			want: "%{a: integer()}",
		},
		{
			name: "required atom key resugars to shorthand",
			expr: &ast.MapExpr{Pairs: []ast.MapPair{
				{
					Key:   &ast.Call{Name: "required", Args: []ast.Expr{&ast.Atom{Value: "a"}}},
					Value: &ast.Call{Name: "integer"},
				},
			}},
			want: "%{a: integer()}",
		},
		{
			name: "optional key keeps wrapper",
			expr: &ast.MapExpr{Pairs: []ast.MapPair{
				{
					Key:   &ast.Call{Name: "optional", Args: []ast.Expr{&ast.Atom{Value: "a"}}},
					Value: &ast.Call{Name: "integer"},
				},
			}},
			want: "%{optional(:a) => integer()}",
		},
		{
			name: "required non-atom key keeps wrapper",
			expr: &ast.MapExpr{Pairs: []ast.MapPair{
				{
					Key:   &ast.Call{Name: "required", Args: []ast.Expr{&ast.Call{Name: "integer"}}},
					Value: &ast.Call{Name: "atom"},
				},
			}},
			want: "%{required(integer()) => atom()}",
		},
		{
			name: "fun",
			expr: &ast.Fun{
				Params: []ast.Expr{&ast.Call{Name: "integer"}},
				Return: &ast.Call{Name: "atom"},
			},
			want: "(integer() -> atom())",
		},
		{
			name: "any arity fun",
			expr: &ast.Fun{
				Params: []ast.Expr{&ast.Ellipsis{}},
				Return: &ast.Call{Name: "atom"},
			},
			want: "(... -> atom())",
		},
		{
			name: "union",
			expr: &ast.Union{Members: []ast.Expr{&ast.Atom{Value: "ok"}, &ast.Atom{Value: "error"}}},
			want: ":ok | :error",
		},
		{
			name: "annotated",
			expr: &ast.Ann{Name: &ast.Var{Name: "key"}, Type: &ast.Call{Name: "atom"}},
			want: "key :: atom()",
		},
		{
			name: "remote",
			expr: &ast.Remote{
				Module: &ast.Alias{Segments: []string{"String"}},
				Name:   "t",
			},
			want: "String.t()",
		},
		{
			name: "erlang remote",
			expr: &ast.Remote{
				Module: &ast.Atom{Value: "inet"},
				Name:   "port_number",
			},
			want: ":inet.port_number()",
		},
		{
			name: "paren",
			expr: &ast.Paren{Inner: &ast.Union{Members: []ast.Expr{
				&ast.Atom{Value: "a"}, &ast.Atom{Value: "b"},
			}}},
			want: "(:a | :b)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := testBuilder(typeBody).build(tt.expr)
			if err != nil {
				t.Fatalf("build() error: %v", err)
			}
			if got := built.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
			// The printed form is itself canonical: rebuilding the
			// reconstructed expression must not change it.
			if got := TypeToAST(built).String(); got != tt.want {
				t.Errorf("TypeToAST().String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRoundTripStruct(t *testing.T) {
	b := testBuilder(typeBody)
	b.ctx = structContext()
	built, err := b.build(&ast.Struct{
		Module: &ast.Alias{Segments: []string{"User"}},
		Pairs: []ast.MapPair{
			{Key: &ast.Atom{Value: "age"}, Value: &ast.Call{Name: "integer"}, Shorthand: true},
		},
	})
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	want := "%User{name: any(), age: integer()}"
	if got := built.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestEqual(t *testing.T) {
	a, err := testBuilder(typeBody).build(&ast.Var{Name: "integer"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := testBuilder(typeBody).build(&ast.Call{Name: "integer"})
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Errorf("Equal(%s, %s) = false, want true", a, b)
	}
	c, err := testBuilder(typeBody).build(&ast.Call{Name: "float"})
	if err != nil {
		t.Fatal(err)
	}
	if Equal(a, c) {
		t.Errorf("Equal(%s, %s) = true, want false", a, c)
	}
}

func TestSpecToAST(t *testing.T) {
	ctx := compileCtx(FuncInfo{Name: "get", Arity: 1, Exported: true})
	specs, err := CompileModule(ctx, []Declaration{
		{Kind: DeclSpec, Expr: &ast.When{
			Expr: &ast.Ann{
				Name: &ast.Call{Name: "get", Args: []ast.Expr{&ast.Var{Name: "key"}}},
				Type: &ast.Var{Name: "value"},
			},
			Guards: []ast.Pair{
				{Key: &ast.Atom{Value: "key"}, Value: &ast.Call{Name: "atom"}},
				{Key: &ast.Atom{Value: "value"}, Value: &ast.Call{Name: "term"}},
			},
		}},
	})
	if err != nil {
		t.Fatalf("CompileModule() error: %v", err)
	}
	entry := specs.Specs[0]
	got := SpecToAST(entry.Name, entry.Clauses[0]).String()
	want := "get(key) :: value when key: atom(), value: term()"
	if got != want {
		t.Errorf("SpecToAST() = %s, want %s", got, want)
	}
}

func TestCallbackToAST(t *testing.T) {
	specs, err := CompileModule(compileCtx(), []Declaration{
		callbackDecl(DeclMacroCallback, "expand",
			[]ast.Expr{&ast.Call{Name: "term"}}, &ast.Call{Name: "term"}),
	})
	if err != nil {
		t.Fatalf("CompileModule() error: %v", err)
	}
	cb := specs.Callbacks[0]
	got := CallbackToAST(cb, cb.Clauses[0]).String()
	// Declared form: no marker, no implicit environment parameter.
	want := "expand(term()) :: term()"
	if got != want {
		t.Errorf("CallbackToAST() = %s, want %s", got, want)
	}
}

func TestTypeDefToAST(t *testing.T) {
	specs, err := CompileModule(compileCtx(), []Declaration{
		typeDecl("pair", []string{"a", "b"}, &ast.Tuple{Elems: []ast.Expr{
			&ast.Var{Name: "a"}, &ast.Var{Name: "b"},
		}}),
	})
	if err != nil {
		t.Fatalf("CompileModule() error: %v", err)
	}
	got := TypeDefToAST(specs.Types[0]).String()
	want := "pair(a, b) :: {a, b}"
	if got != want {
		t.Errorf("TypeDefToAST() = %s, want %s", got, want)
	}
}

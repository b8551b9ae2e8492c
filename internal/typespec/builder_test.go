package typespec

import (
	"testing"

	"github.com/funvibe/typespec/internal/ast"
	"github.com/funvibe/typespec/internal/diagnostics"
)

func testBuilder(mode buildMode) *builder {
	return &builder{
		ctx:  &Context{Module: "Test"},
		reg:  NewRegistry(),
		mode: mode,
		vars: map[string]bool{},
	}
}

func wildcard() ast.Expr { return &ast.Var{Name: "_"} }

func TestBuildBinary(t *testing.T) {
	tests := []struct {
		name     string
		segments []ast.BinSegment
		wantSize int64
		wantUnit int64
	}{
		{
			name: "empty",
		},
		{
			name: "size only",
			segments: []ast.BinSegment{
				{Value: wildcard(), Size: &ast.Integer{Value: 4}},
			},
			wantSize: 4,
		},
		{
			name: "unit only",
			segments: []ast.BinSegment{
				{Value: wildcard(), Size: wildcard(), Unit: &ast.Integer{Value: 8}},
			},
			wantUnit: 8,
		},
		{
			name: "size and unit",
			segments: []ast.BinSegment{
				{Value: wildcard(), Size: &ast.Integer{Value: 3}},
				{Value: wildcard(), Size: wildcard(), Unit: &ast.Integer{Value: 8}},
			},
			wantSize: 3,
			wantUnit: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testBuilder(typeBody).build(&ast.Binary{Segments: tt.segments})
			if err != nil {
				t.Fatalf("build() error: %v", err)
			}
			bin, ok := got.(*TBinary)
			if !ok {
				t.Fatalf("build() = %T, want *TBinary", got)
			}
			if bin.SizeBits != tt.wantSize || bin.UnitBits != tt.wantUnit {
				t.Errorf("binary = (%d, %d), want (%d, %d)",
					bin.SizeBits, bin.UnitBits, tt.wantSize, tt.wantUnit)
			}
		})
	}
}

func TestBuildBinaryInvalid(t *testing.T) {
	tests := []struct {
		name     string
		segments []ast.BinSegment
	}{
		{
			name: "multiplication spelling",
			segments: []ast.BinSegment{
				{Value: wildcard(), Size: &ast.Integer{Value: 3}, Unit: &ast.Integer{Value: 8}},
			},
		},
		{
			name: "segments swapped",
			segments: []ast.BinSegment{
				{Value: wildcard(), Size: wildcard(), Unit: &ast.Integer{Value: 8}},
				{Value: wildcard(), Size: &ast.Integer{Value: 3}},
			},
		},
		{
			name: "named segment value",
			segments: []ast.BinSegment{
				{Value: &ast.Var{Name: "x"}, Size: &ast.Integer{Value: 3}},
			},
		},
		{
			name: "unit out of range",
			segments: []ast.BinSegment{
				{Value: wildcard(), Size: wildcard(), Unit: &ast.Integer{Value: 300}},
			},
		},
		{
			name: "three segments",
			segments: []ast.BinSegment{
				{Value: wildcard(), Size: &ast.Integer{Value: 1}},
				{Value: wildcard(), Size: &ast.Integer{Value: 2}},
				{Value: wildcard(), Size: &ast.Integer{Value: 3}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testBuilder(typeBody).build(&ast.Binary{Segments: tt.segments})
			if CodeOf(err) != CodeInvalidBinarySpec {
				t.Errorf("build() error = %v, want %s", err, CodeInvalidBinarySpec)
			}
		})
	}
}

func TestBuildMap(t *testing.T) {
	// %{required(:a) => :b, optional(:c) => :d}
	expr := &ast.MapExpr{Pairs: []ast.MapPair{
		{
			Key:   &ast.Call{Name: "required", Args: []ast.Expr{&ast.Atom{Value: "a"}}},
			Value: &ast.Atom{Value: "b"},
		},
		{
			Key:   &ast.Call{Name: "optional", Args: []ast.Expr{&ast.Atom{Value: "c"}}},
			Value: &ast.Atom{Value: "d"},
		},
	}}

	got, err := testBuilder(typeBody).build(expr)
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	m, ok := got.(*TMap)
	if !ok {
		t.Fatalf("build() = %T, want *TMap", got)
	}
	if len(m.Fields) != 2 {
		t.Fatalf("map has %d fields, want 2", len(m.Fields))
	}
	if !m.Fields[0].Required || m.Fields[1].Required {
		t.Errorf("required flags = (%v, %v), want (true, false)",
			m.Fields[0].Required, m.Fields[1].Required)
	}
	if m.Fields[0].Key.String() != ":a" || m.Fields[0].Value.String() != ":b" {
		t.Errorf("first field = %s => %s, want :a => :b",
			m.Fields[0].Key.String(), m.Fields[0].Value.String())
	}
}

func TestBuildMapInvalidKey(t *testing.T) {
	// A bare K => V entry without a required/optional wrapper.
	expr := &ast.MapExpr{Pairs: []ast.MapPair{
		{Key: &ast.Call{Name: "integer"}, Value: &ast.Atom{Value: "b"}},
	}}
	_, err := testBuilder(typeBody).build(expr)
	if CodeOf(err) != CodeInvalidMapSpec {
		t.Errorf("build() error = %v, want %s", err, CodeInvalidMapSpec)
	}
}

func TestBuildList(t *testing.T) {
	integer := func() ast.Expr { return &ast.Call{Name: "integer"} }

	tests := []struct {
		name string
		expr *ast.List
		want string
	}{
		{
			name: "empty",
			expr: &ast.List{},
			want: "[]",
		},
		{
			name: "proper",
			expr: &ast.List{Elems: []ast.Expr{integer()}},
			want: "[integer()]",
		},
		{
			name: "nonempty",
			expr: &ast.List{Elems: []ast.Expr{integer(), &ast.Ellipsis{}}},
			want: "[integer(), ...]",
		},
		{
			name: "nonempty any",
			expr: &ast.List{Elems: []ast.Expr{&ast.Ellipsis{}}},
			want: "[...]",
		},
		{
			name: "keyword single",
			expr: &ast.List{Elems: []ast.Expr{
				&ast.Pair{Key: &ast.Atom{Value: "a"}, Value: integer()},
			}},
			want: "[a: integer()]",
		},
		{
			name: "keyword union keeps declaration order",
			expr: &ast.List{Elems: []ast.Expr{
				&ast.Pair{Key: &ast.Atom{Value: "b"}, Value: integer()},
				&ast.Pair{Key: &ast.Atom{Value: "a"}, Value: integer()},
			}},
			want: "[b: integer(), a: integer()]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testBuilder(typeBody).build(tt.expr)
			if err != nil {
				t.Fatalf("build() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("built %s, want %s", got.String(), tt.want)
			}
		})
	}
}

func TestKeywordListDesugar(t *testing.T) {
	expr := &ast.List{Elems: []ast.Expr{
		&ast.Pair{Key: &ast.Atom{Value: "a"}, Value: &ast.Call{Name: "integer"}},
		&ast.Pair{Key: &ast.Atom{Value: "b"}, Value: &ast.Call{Name: "float"}},
	}}
	got, err := testBuilder(typeBody).build(expr)
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	list, ok := got.(*TList)
	if !ok || list.NonEmpty {
		t.Fatalf("build() = %T (nonempty=%v), want proper *TList", got, list.NonEmpty)
	}
	union, ok := list.Elem.(*TUnion)
	if !ok {
		t.Fatalf("list element = %T, want *TUnion", list.Elem)
	}
	if len(union.Members) != 2 {
		t.Fatalf("union has %d members, want 2", len(union.Members))
	}
	if union.Members[0].String() != "{:a, integer()}" {
		t.Errorf("first member = %s, want {:a, integer()}", union.Members[0].String())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		mode buildMode
		expr ast.Expr
		want ErrorCode
	}{
		{
			name: "string literal",
			mode: typeBody,
			expr: &ast.Str{Value: "hello"},
			want: CodeUnexpectedExpression,
		},
		{
			name: "undefined type",
			mode: typeBody,
			expr: &ast.Call{Name: "does_not_exist"},
			want: CodeUndefinedType,
		},
		{
			name: "undefined bare name",
			mode: typeBody,
			expr: &ast.Var{Name: "missing"},
			want: CodeUndefinedType,
		},
		{
			name: "builtin with wrong arity",
			mode: typeBody,
			expr: &ast.Call{Name: "integer", Args: []ast.Expr{&ast.Var{Name: "t"}}},
			want: CodeUndefinedType,
		},
		{
			name: "range with atom bound",
			mode: typeBody,
			expr: &ast.Range{Low: &ast.Atom{Value: "a"}, High: &ast.Integer{Value: 3}},
			want: CodeUnexpectedExpression,
		},
		{
			name: "negated atom",
			mode: typeBody,
			expr: &ast.Neg{Operand: &ast.Atom{Value: "a"}},
			want: CodeUnexpectedExpression,
		},
		{
			name: "stray ellipsis",
			mode: typeBody,
			expr: &ast.Ellipsis{},
			want: CodeUnexpectedExpression,
		},
		{
			name: "two element list",
			mode: typeBody,
			expr: &ast.List{Elems: []ast.Expr{&ast.Atom{Value: "a"}, &ast.Atom{Value: "b"}}},
			want: CodeUnexpectedExpression,
		},
		{
			name: "fun without return",
			mode: typeBody,
			expr: &ast.Fun{Params: []ast.Expr{&ast.Call{Name: "integer"}}},
			want: CodeMissingReturnType,
		},
		{
			name: "default argument",
			mode: specBody,
			expr: &ast.Default{Name: &ast.Var{Name: "opts"}, Value: &ast.List{}},
			want: CodeDefaultArgument,
		},
		{
			name: "unresolved remote module",
			mode: specBody,
			expr: &ast.Remote{Module: &ast.Var{Name: "mod"}, Name: "t"},
			want: CodeUnresolvedModuleRef,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testBuilder(tt.mode).build(tt.expr)
			if CodeOf(err) != tt.want {
				t.Errorf("build() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestBuildVarModes(t *testing.T) {
	// In a spec clause any lowercase name is a type variable.
	got, err := testBuilder(specBody).build(&ast.Var{Name: "anything"})
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	if _, ok := got.(*TVar); !ok {
		t.Errorf("spec mode build = %T, want *TVar", got)
	}

	// In a type body only declared parameters are variables; other
	// names resolve as zero-arity type references.
	b := testBuilder(typeBody)
	b.vars["t"] = true
	got, err = b.build(&ast.Var{Name: "t"})
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	if _, ok := got.(*TVar); !ok {
		t.Errorf("parameter build = %T, want *TVar", got)
	}
	got, err = b.build(&ast.Var{Name: "integer"})
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	named, ok := got.(*TNamed)
	if !ok || named.Name != "integer" {
		t.Errorf("bare builtin build = %s (%T), want integer()", got.String(), got)
	}
}

func TestBuildUnionFlattens(t *testing.T) {
	expr := &ast.Union{Members: []ast.Expr{
		&ast.Atom{Value: "a"},
		&ast.Union{Members: []ast.Expr{&ast.Atom{Value: "b"}, &ast.Atom{Value: "c"}}},
	}}
	got, err := testBuilder(typeBody).build(expr)
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	union, ok := got.(*TUnion)
	if !ok {
		t.Fatalf("build() = %T, want *TUnion", got)
	}
	if len(union.Members) != 3 {
		t.Errorf("union has %d members, want 3 (flattened)", len(union.Members))
	}

	// A parenthesized union stays nested.
	expr = &ast.Union{Members: []ast.Expr{
		&ast.Atom{Value: "a"},
		&ast.Paren{Inner: &ast.Union{Members: []ast.Expr{&ast.Atom{Value: "b"}, &ast.Atom{Value: "c"}}}},
	}}
	got, err = testBuilder(typeBody).build(expr)
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	union = got.(*TUnion)
	if len(union.Members) != 2 {
		t.Errorf("union has %d members, want 2 (paren preserved)", len(union.Members))
	}
	if _, ok := union.Members[1].(*TParen); !ok {
		t.Errorf("second member = %T, want *TParen", union.Members[1])
	}
}

func TestDiscouragedTypeWarning(t *testing.T) {
	collector := &diagnostics.Collector{}
	b := testBuilder(typeBody)
	b.ctx.Sink = collector

	_, err := b.build(&ast.Call{Name: "string"})
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	warnings := collector.All()
	if len(warnings) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(warnings))
	}
	if warnings[0].Code != "discouraged_type" || warnings[0].Severity != diagnostics.Warning {
		t.Errorf("diagnostic = %+v, want discouraged_type warning", warnings[0])
	}
}

package ast

import (
	"strconv"
	"strings"
)

// Canonical printing. The output of String is the canonical surface
// form of an expression: single spaces around :: | and when, no
// redundant parentheses beyond explicit Paren nodes, keyword shorthand
// wherever the shape allows it.

func (e *Atom) String() string {
	return ":" + atomText(e.Value)
}

func (e *Alias) String() string {
	return strings.Join(e.Segments, ".")
}

func (e *Integer) String() string {
	return strconv.FormatInt(e.Value, 10)
}

func (e *Str) String() string {
	return strconv.Quote(e.Value)
}

func (e *Var) String() string {
	return e.Name
}

func (e *Call) String() string {
	return e.Name + "(" + joinExprs(e.Args) + ")"
}

func (e *Remote) String() string {
	return e.Module.String() + "." + e.Name + "(" + joinExprs(e.Args) + ")"
}

func (e *Union) String() string {
	parts := make([]string, len(e.Members))
	for i, m := range e.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (e *Range) String() string {
	return e.Low.String() + ".." + e.High.String()
}

func (e *Neg) String() string {
	return "-" + e.Operand.String()
}

func (e *Ann) String() string {
	return e.Name.String() + " :: " + e.Type.String()
}

func (e *When) String() string {
	guards := make([]string, len(e.Guards))
	for i, g := range e.Guards {
		guards[i] = g.String()
	}
	return e.Expr.String() + " when " + strings.Join(guards, ", ")
}

func (e *Binary) String() string {
	segs := make([]string, len(e.Segments))
	for i, s := range e.Segments {
		segs[i] = s.String()
	}
	return "<<" + strings.Join(segs, ", ") + ">>"
}

func (s BinSegment) String() string {
	out := s.Value.String()
	if s.Size != nil {
		out += "::" + s.Size.String()
		if s.Unit != nil {
			out += "*" + s.Unit.String()
		}
	}
	return out
}

func (e *List) String() string {
	return "[" + joinExprs(e.Elems) + "]"
}

func (e *Ellipsis) String() string {
	return "..."
}

func (e *Tuple) String() string {
	return "{" + joinExprs(e.Elems) + "}"
}

func (e *MapExpr) String() string {
	pairs := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		pairs[i] = p.String()
	}
	return "%{" + strings.Join(pairs, ", ") + "}"
}

func (p MapPair) String() string {
	if p.Shorthand {
		if a, ok := p.Key.(*Atom); ok {
			return atomText(a.Value) + ": " + p.Value.String()
		}
	}
	return p.Key.String() + " => " + p.Value.String()
}

func (e *Struct) String() string {
	pairs := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		pairs[i] = p.String()
	}
	return "%" + e.Module.String() + "{" + strings.Join(pairs, ", ") + "}"
}

func (e *Fun) String() string {
	if e.Return == nil {
		return "(" + joinExprs(e.Params) + " ->)"
	}
	if len(e.Params) == 0 {
		return "(-> " + e.Return.String() + ")"
	}
	return "(" + joinExprs(e.Params) + " -> " + e.Return.String() + ")"
}

func (e *Paren) String() string {
	return "(" + e.Inner.String() + ")"
}

func (e *Default) String() string {
	return e.Name.String() + " \\\\ " + e.Value.String()
}

func (e *Pair) String() string {
	if a, ok := e.Key.(*Atom); ok {
		return atomText(a.Value) + ": " + e.Value.String()
	}
	return e.Key.String() + ": " + e.Value.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// atomText renders an atom's characters, quoting when the value is not
// a plain identifier.
func atomText(value string) string {
	if isPlainAtom(value) {
		return value
	}
	return strconv.Quote(value)
}

func isPlainAtom(value string) bool {
	if value == "" {
		return false
	}
	for i, r := range value {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
			if i == 0 {
				return false
			}
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case (r == '?' || r == '!') && i == len(value)-1:
		default:
			return false
		}
	}
	first := value[0]
	return first == '_' || (first >= 'a' && first <= 'z')
}

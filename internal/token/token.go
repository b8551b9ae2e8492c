package token

import "fmt"

// Pos is a source position carried by every surface node and IR node.
// It exists solely for diagnostics: two nodes that differ only in
// position are considered equal everywhere else.
type Pos struct {
	Line   int
	Column int
}

// NoPos is the zero position, used for synthesized nodes.
var NoPos = Pos{}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

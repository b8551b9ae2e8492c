package typespec

import (
	"github.com/funvibe/typespec/internal/diagnostics"
)

// FuncInfo describes one function defined in the compiling module.
type FuncInfo struct {
	Name     string
	Arity    int
	Exported bool
}

// Context carries everything the pass needs from the rest of the
// compiler: the module's own name, its defined functions, and the
// struct/record metadata registered by earlier compilation stages.
//
// A Context is immutable once handed to CompileModule; the pass keeps
// its incremental state in the Registry instead. Concurrent module
// compilations may therefore share the maps read-only.
type Context struct {
	// Module is the compiling module's alias form, e.g. "My.Mod".
	Module string

	// Functions lists the functions defined in the unit. Specs must
	// reference one of these; callbacks need not.
	Functions []FuncInfo

	// Structs maps a struct module alias to its ordered field names.
	Structs map[string][]string

	// Records maps a record tag to its ordered field names.
	Records map[string][]string

	// Sink receives non-fatal diagnostics. Nil means discard.
	Sink diagnostics.Sink
}

func (c *Context) sink() diagnostics.Sink {
	if c.Sink == nil {
		return diagnostics.Discard
	}
	return c.Sink
}

func (c *Context) function(name string, arity int) (FuncInfo, bool) {
	for _, f := range c.Functions {
		if f.Name == name && f.Arity == arity {
			return f, true
		}
	}
	return FuncInfo{}, false
}

package diagnostics

import (
	"fmt"
	"io"
	"sync"

	"github.com/funvibe/typespec/internal/token"
)

// Severity of a diagnostic. Compilation only ever continues past
// warnings; anything fatal is reported as an error value instead.
type Severity int

const (
	Warning Severity = iota
	Note
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is a single non-fatal message produced during a pass.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Pos      token.Pos
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Sink receives diagnostics. Implementations must be safe for use from
// a single compilation goroutine; they are never shared across modules.
type Sink interface {
	Report(d Diagnostic)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Collector accumulates diagnostics in order. Used by tests and by
// callers that render diagnostics after the pass finishes.
type Collector struct {
	mu   sync.Mutex
	list []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append(c.list, d)
}

// All returns the reported diagnostics in report order.
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.list))
	copy(out, c.list)
	return out
}

// Writer forwards each diagnostic to w, one per line.
type Writer struct {
	W io.Writer
}

func (w Writer) Report(d Diagnostic) {
	fmt.Fprintln(w.W, d.String())
}

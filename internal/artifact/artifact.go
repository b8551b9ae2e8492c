// Package artifact gives compiled typespec metadata a durable form:
// one YAML-encoded chunk per module, carried inside a compiled-module
// artifact and retrievable by later tooling without recompiling.
package artifact

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/typespec/internal/typespec"
)

// chunkVersion is bumped on any incompatible chunk layout change.
const chunkVersion = 1

// Artifact is one compiled module's metadata. A module compiled with
// no typespec declarations still produces an artifact; its chunk is
// simply absent and the fetch API reports that as ok=false.
type Artifact struct {
	Module    string
	UnitID    string
	CreatedAt time.Time

	chunk *chunk
}

type document struct {
	Module    string `yaml:"module"`
	UnitID    string `yaml:"unit_id"`
	CreatedAt string `yaml:"created_at"`
	Typespecs *chunk `yaml:"typespecs,omitempty"`
}

type chunk struct {
	Version   int             `yaml:"version"`
	Types     []chunkType     `yaml:"types,omitempty"`
	Specs     []chunkSpec     `yaml:"specs,omitempty"`
	Callbacks []chunkCallback `yaml:"callbacks,omitempty"`
	Optional  []chunkFA       `yaml:"optional_callbacks,omitempty"`
}

type chunkType struct {
	Name   string   `yaml:"name"`
	Arity  int      `yaml:"arity"`
	Params []string `yaml:"params,omitempty"`
	Opaque bool     `yaml:"opaque,omitempty"`
	Body   *irNode  `yaml:"body"`
}

type chunkClause struct {
	Params      []*irNode         `yaml:"params,omitempty"`
	Return      *irNode           `yaml:"return"`
	Constraints []chunkConstraint `yaml:"constraints,omitempty"`
}

type chunkConstraint struct {
	Var   string  `yaml:"var"`
	Bound *irNode `yaml:"bound"`
}

type chunkSpec struct {
	Name    string        `yaml:"name"`
	Arity   int           `yaml:"arity"`
	Clauses []chunkClause `yaml:"clauses"`
}

type chunkCallback struct {
	chunkSpec `yaml:",inline"`
	Macro     bool `yaml:"macro,omitempty"`
}

type chunkFA struct {
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity"`
}

// New creates an empty artifact for a module that carries no typespec
// metadata.
func New(module string) *Artifact {
	return &Artifact{
		Module:    module,
		UnitID:    uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// Build creates an artifact carrying the compiled metadata of specs.
func Build(specs *typespec.ModuleSpecs) *Artifact {
	a := New(specs.Module)
	c := &chunk{Version: chunkVersion}

	for _, def := range specs.Types {
		c.Types = append(c.Types, chunkType{
			Name:   def.Name,
			Arity:  def.Arity,
			Params: def.Params,
			Opaque: def.Kind == typespec.KindOpaque,
			Body:   encodeType(def.Body),
		})
	}
	for _, entry := range specs.Specs {
		c.Specs = append(c.Specs, encodeSpec(entry))
	}
	for _, cb := range specs.Callbacks {
		c.Callbacks = append(c.Callbacks, chunkCallback{
			chunkSpec: encodeSpec(&cb.SpecEntry),
			Macro:     cb.Macro,
		})
	}
	for _, fa := range specs.OptionalCallbacks {
		c.Optional = append(c.Optional, chunkFA{Name: fa.Name, Arity: fa.Arity})
	}

	a.chunk = c
	return a
}

func encodeSpec(entry *typespec.SpecEntry) chunkSpec {
	out := chunkSpec{Name: entry.Name, Arity: entry.Arity}
	for _, clause := range entry.Clauses {
		cc := chunkClause{
			Params: encodeTypes(clause.Params),
			Return: encodeType(clause.Return),
		}
		for _, constraint := range clause.Constraints {
			cc.Constraints = append(cc.Constraints, chunkConstraint{
				Var:   constraint.Var,
				Bound: encodeType(constraint.Bound),
			})
		}
		out.Clauses = append(out.Clauses, cc)
	}
	return out
}

// Encode serializes the artifact to its on-disk YAML form.
func (a *Artifact) Encode() ([]byte, error) {
	doc := document{
		Module:    a.Module,
		UnitID:    a.UnitID,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		Typespecs: a.chunk,
	}
	return yaml.Marshal(doc)
}

// Decode parses an encoded artifact. The chunk is validated eagerly so
// the fetch accessors cannot fail afterwards.
func Decode(data []byte) (*Artifact, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed artifact: %w", err)
	}
	if doc.Module == "" {
		return nil, fmt.Errorf("malformed artifact: missing module name")
	}
	createdAt, err := time.Parse(time.RFC3339, doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed artifact for %s: bad created_at: %w", doc.Module, err)
	}
	a := &Artifact{
		Module:    doc.Module,
		UnitID:    doc.UnitID,
		CreatedAt: createdAt,
		chunk:     doc.Typespecs,
	}
	if a.chunk != nil {
		if a.chunk.Version != chunkVersion {
			return nil, fmt.Errorf("artifact for %s: unsupported chunk version %d", doc.Module, a.chunk.Version)
		}
		if err := a.chunk.validate(); err != nil {
			return nil, fmt.Errorf("artifact for %s: %w", doc.Module, err)
		}
	}
	return a, nil
}

// HasTypespecs reports whether the artifact carries a typespec chunk.
func (a *Artifact) HasTypespecs() bool {
	return a.chunk != nil
}

// validate decodes every embedded IR node once, rejecting unknown node
// kinds up front.
func (c *chunk) validate() error {
	for _, t := range c.Types {
		if _, err := decodeType(t.Body); err != nil {
			return err
		}
	}
	specs := make([]chunkSpec, 0, len(c.Specs)+len(c.Callbacks))
	specs = append(specs, c.Specs...)
	for _, cb := range c.Callbacks {
		specs = append(specs, cb.chunkSpec)
	}
	for _, s := range specs {
		for _, clause := range s.Clauses {
			if _, err := decodeTypes(clause.Params); err != nil {
				return err
			}
			if _, err := decodeType(clause.Return); err != nil {
				return err
			}
			for _, constraint := range clause.Constraints {
				if _, err := decodeType(constraint.Bound); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

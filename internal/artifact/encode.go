package artifact

import (
	"fmt"

	"github.com/funvibe/typespec/internal/typespec"
)

// irNode is the serialized form of one IR node. A single struct with a
// kind discriminator keeps the YAML flat and the decoder a plain
// switch; omitempty keeps each node down to the fields its kind uses.
type irNode struct {
	Kind     string     `yaml:"kind"`
	Value    string     `yaml:"value,omitempty"`
	Alias    bool       `yaml:"alias,omitempty"`
	Int      int64      `yaml:"int,omitempty"`
	Low      int64      `yaml:"low,omitempty"`
	High     int64      `yaml:"high,omitempty"`
	Size     int64      `yaml:"size,omitempty"`
	Unit     int64      `yaml:"unit,omitempty"`
	AnyArity bool       `yaml:"any_arity,omitempty"`
	NonEmpty bool       `yaml:"nonempty,omitempty"`
	Name     string     `yaml:"name,omitempty"`
	Elem     *irNode    `yaml:"elem,omitempty"`
	Module   *irNode    `yaml:"module,omitempty"`
	Inner    *irNode    `yaml:"inner,omitempty"`
	Return   *irNode    `yaml:"return,omitempty"`
	Elems    []*irNode  `yaml:"elems,omitempty"`
	Params   []*irNode  `yaml:"params,omitempty"`
	Members  []*irNode  `yaml:"members,omitempty"`
	Args     []*irNode  `yaml:"args,omitempty"`
	Fields   []*irField `yaml:"fields,omitempty"`
}

type irField struct {
	Key      *irNode `yaml:"key"`
	Value    *irNode `yaml:"value"`
	Required bool    `yaml:"required,omitempty"`
}

func encodeType(t typespec.Type) *irNode {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *typespec.TAny:
		return &irNode{Kind: "any"}
	case *typespec.TNone:
		return &irNode{Kind: "none"}
	case *typespec.TAtom:
		return &irNode{Kind: "atom", Value: n.Value, Alias: n.Alias}
	case *typespec.TInteger:
		return &irNode{Kind: "integer", Int: n.Value}
	case *typespec.TNegInteger:
		return &irNode{Kind: "neg_integer", Int: n.Value}
	case *typespec.TRange:
		return &irNode{Kind: "range", Low: n.Low, High: n.High}
	case *typespec.TBinary:
		return &irNode{Kind: "binary", Size: n.SizeBits, Unit: n.UnitBits}
	case *typespec.TTuple:
		return &irNode{Kind: "tuple", AnyArity: n.AnyArity, Elems: encodeTypes(n.Elems)}
	case *typespec.TEmptyList:
		return &irNode{Kind: "empty_list"}
	case *typespec.TList:
		return &irNode{Kind: "list", Elem: encodeType(n.Elem), NonEmpty: n.NonEmpty}
	case *typespec.TMap:
		fields := make([]*irField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = &irField{
				Key:      encodeType(f.Key),
				Value:    encodeType(f.Value),
				Required: f.Required,
			}
		}
		return &irNode{Kind: "map", Fields: fields}
	case *typespec.TFun:
		return &irNode{
			Kind:     "fun",
			AnyArity: n.AnyArity,
			Params:   encodeTypes(n.Params),
			Return:   encodeType(n.Return),
		}
	case *typespec.TUnion:
		return &irNode{Kind: "union", Members: encodeTypes(n.Members)}
	case *typespec.TVar:
		return &irNode{Kind: "var", Name: n.Name}
	case *typespec.TNamed:
		return &irNode{Kind: "named", Name: n.Name, Args: encodeTypes(n.Args)}
	case *typespec.TRemote:
		return &irNode{Kind: "remote", Module: encodeType(n.Module), Name: n.Name, Args: encodeTypes(n.Args)}
	case *typespec.TAnnotated:
		return &irNode{Kind: "annotated", Name: n.Name, Inner: encodeType(n.Inner)}
	case *typespec.TParen:
		return &irNode{Kind: "paren", Inner: encodeType(n.Inner)}
	default:
		// The IR is closed; this is unreachable for pass output.
		return &irNode{Kind: "any"}
	}
}

func encodeTypes(types []typespec.Type) []*irNode {
	if len(types) == 0 {
		return nil
	}
	out := make([]*irNode, len(types))
	for i, t := range types {
		out[i] = encodeType(t)
	}
	return out
}

func decodeType(n *irNode) (typespec.Type, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case "any":
		return &typespec.TAny{}, nil
	case "none":
		return &typespec.TNone{}, nil
	case "atom":
		return &typespec.TAtom{Value: n.Value, Alias: n.Alias}, nil
	case "integer":
		return &typespec.TInteger{Value: n.Int}, nil
	case "neg_integer":
		return &typespec.TNegInteger{Value: n.Int}, nil
	case "range":
		return &typespec.TRange{Low: n.Low, High: n.High}, nil
	case "binary":
		return &typespec.TBinary{SizeBits: n.Size, UnitBits: n.Unit}, nil
	case "tuple":
		elems, err := decodeTypes(n.Elems)
		if err != nil {
			return nil, err
		}
		return &typespec.TTuple{Elems: elems, AnyArity: n.AnyArity}, nil
	case "empty_list":
		return &typespec.TEmptyList{}, nil
	case "list":
		elem, err := decodeType(n.Elem)
		if err != nil {
			return nil, err
		}
		return &typespec.TList{Elem: elem, NonEmpty: n.NonEmpty}, nil
	case "map":
		fields := make([]typespec.MapField, len(n.Fields))
		for i, f := range n.Fields {
			key, err := decodeType(f.Key)
			if err != nil {
				return nil, err
			}
			value, err := decodeType(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = typespec.MapField{Key: key, Value: value, Required: f.Required}
		}
		return &typespec.TMap{Fields: fields}, nil
	case "fun":
		params, err := decodeTypes(n.Params)
		if err != nil {
			return nil, err
		}
		ret, err := decodeType(n.Return)
		if err != nil {
			return nil, err
		}
		return &typespec.TFun{Params: params, AnyArity: n.AnyArity, Return: ret}, nil
	case "union":
		members, err := decodeTypes(n.Members)
		if err != nil {
			return nil, err
		}
		return &typespec.TUnion{Members: members}, nil
	case "var":
		return &typespec.TVar{Name: n.Name}, nil
	case "named":
		args, err := decodeTypes(n.Args)
		if err != nil {
			return nil, err
		}
		return &typespec.TNamed{Name: n.Name, Args: args}, nil
	case "remote":
		module, err := decodeType(n.Module)
		if err != nil {
			return nil, err
		}
		args, err := decodeTypes(n.Args)
		if err != nil {
			return nil, err
		}
		return &typespec.TRemote{Module: module, Name: n.Name, Args: args}, nil
	case "annotated":
		inner, err := decodeType(n.Inner)
		if err != nil {
			return nil, err
		}
		return &typespec.TAnnotated{Name: n.Name, Inner: inner}, nil
	case "paren":
		inner, err := decodeType(n.Inner)
		if err != nil {
			return nil, err
		}
		return &typespec.TParen{Inner: inner}, nil
	default:
		return nil, fmt.Errorf("unknown IR node kind %q", n.Kind)
	}
}

func decodeTypes(nodes []*irNode) ([]typespec.Type, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]typespec.Type, len(nodes))
	for i, n := range nodes {
		t, err := decodeType(n)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Package structconv provides conversion between entity graphs and
// protobuf well-known Struct/ListValue messages. This lets gRPC services
// carry arbitrarily shaped linked-data graphs in their payloads without
// defining a bespoke message schema per entity type.
package structconv

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/hyperweb-io/jsonld/graph"
)

// EntityToProto converts an entity to a structpb.Struct. Nested Entity
// values and integer scalars are normalized to the JSON value model first,
// since structpb accepts only JSON-shaped input.
func EntityToProto(e graph.Entity) (*structpb.Struct, error) {
	norm, err := normalizeMap(e)
	if err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(norm)
	if err != nil {
		return nil, fmt.Errorf("failed to convert entity %q: %w", e.ID(), err)
	}
	return s, nil
}

// GraphToProto converts a graph to a structpb.ListValue of entity structs.
func GraphToProto(g graph.Graph) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, len(g))
	for i, e := range g {
		s, err := EntityToProto(e)
		if err != nil {
			return nil, err
		}
		values[i] = structpb.NewStructValue(s)
	}
	return &structpb.ListValue{Values: values}, nil
}

// EntityFromProto converts a structpb.Struct back to an entity.
func EntityFromProto(s *structpb.Struct) (graph.Entity, error) {
	if s == nil {
		return nil, fmt.Errorf("struct is nil")
	}
	return graph.Entity(s.AsMap()), nil
}

// GraphFromProto converts a structpb.ListValue back to a graph. Every
// element must be a struct value.
func GraphFromProto(list *structpb.ListValue) (graph.Graph, error) {
	if list == nil {
		return nil, fmt.Errorf("list value is nil")
	}
	g := make(graph.Graph, 0, len(list.Values))
	for i, v := range list.Values {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("element %d is not a struct value", i)
		}
		g = append(g, graph.Entity(s.AsMap()))
	}
	return g, nil
}

// normalizeValue rewrites a value into the shapes structpb accepts:
// map[string]any objects, []any arrays, and JSON scalars.
func normalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string, float64, float32, int, int32, int64, uint, uint32, uint64:
		return val, nil
	case graph.Entity:
		return normalizeMap(val)
	case map[string]any:
		return normalizeMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			norm, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	case []graph.Entity:
		out := make([]any, len(val))
		for i, item := range val {
			norm, err := normalizeMap(item)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func normalizeMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		norm, err := normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		out[k] = norm
	}
	return out, nil
}

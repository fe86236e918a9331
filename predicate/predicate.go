package predicate

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/hyperweb-io/jsonld/graph"
)

// Predicate decides whether an entity survives filtering.
type Predicate func(graph.Entity) bool

// Compile compiles a CEL expression into an entity predicate. The entity
// under test is bound as the variable "entity", a map of property names to
// dynamic values, so expressions address properties directly:
//
//	entity["@type"] == "Person"
//	"name" in entity && entity["age"] >= 18.0
//
// The expression must produce a bool. Compilation errors are returned
// eagerly; evaluation errors at filter time (missing properties, type
// mismatches) drop the entity rather than failing the filter run, matching
// the narrow-never-fail filtering policy.
func Compile(expr string) (Predicate, error) {
	env, err := cel.NewEnv(
		cel.Variable("entity", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expression %q must produce bool, produces %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("plan expression %q: %w", expr, err)
	}

	return func(e graph.Entity) bool {
		out, _, err := prg.Eval(map[string]any{
			"entity": map[string]any(e),
		})
		if err != nil {
			return false
		}
		keep, ok := out.Value().(bool)
		return ok && keep
	}, nil
}

// MustCompile is like Compile but panics on error. It simplifies
// package-level predicate variables and tests.
func MustCompile(expr string) Predicate {
	pred, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return pred
}

package validate

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CompileParams compiles a tool's declared parameter block (a JSON-schema
// fragment built by the tool layer) for argument validation. The fragment is
// round-tripped through encoding/json so schema values built in Go code
// normalize to the forms the compiler expects.
func CompileParams(params map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("parameter schema not serializable: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parameter schema round-trip: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("params.json", doc); err != nil {
		return nil, fmt.Errorf("parameter schema compile: %w", err)
	}
	sch, err := c.Compile("params.json")
	if err != nil {
		return nil, fmt.Errorf("parameter schema compile: %w", err)
	}
	return sch, nil
}

// ValidateArgs validates a decoded argument object against a compiled
// parameter schema. The instance is round-tripped through encoding/json for
// the same normalization reason as CompileParams.
func ValidateArgs(sch *jsonschema.Schema, args map[string]any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("arguments not serializable: %w", err)
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("argument round-trip: %w", err)
	}
	return sch.Validate(instance)
}

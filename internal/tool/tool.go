// Package tool defines the uniform tool contract: a named unit with a
// self-describing schema and an invoke operation returning a JSON result
// envelope. The invocation pipeline applies the structural checks every tool
// shares before the domain handler runs.
package tool

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// Tool is a self-describing unit an agent can invoke against the world
// state. Invoke always returns a JSON envelope; it never raises.
type Tool interface {
	Name() string
	Describe() Schema
	Invoke(w world.World, args map[string]any) string
}

// Handler is a domain tool body. It runs after the shared structural checks
// and must validate before mutating.
type Handler func(w world.World, args map[string]any) string

// Unit is the concrete tool implementation.
type Unit struct {
	name        string
	description string
	params      []Param
	handler     Handler
	compiled    *jsonschema.Schema
	logger      *zap.Logger
}

// New builds a tool from its declaration. The parameter block is compiled
// once; a declaration that fails to compile is a programmer error and
// panics at construction.
func New(name, description string, params []Param, handler Handler) *Unit {
	compiled, err := validate.CompileParams(parametersSchema(params))
	if err != nil {
		panic(fmt.Sprintf("tool %s: %v", name, err))
	}
	return &Unit{
		name:        name,
		description: description,
		params:      params,
		handler:     handler,
		compiled:    compiled,
		logger:      zap.NewNop(),
	}
}

// WithLogger returns a copy of the unit that logs invocations through the
// given logger.
func (u *Unit) WithLogger(logger *zap.Logger) *Unit {
	out := *u
	out.logger = logger
	return &out
}

// Name returns the tool's canonical name within its interface version.
func (u *Unit) Name() string { return u.name }

// Describe returns the function-calling schema for the tool.
func (u *Unit) Describe() Schema {
	return Schema{
		Type: "function",
		Function: FunctionSchema{
			Name:        u.name,
			Description: u.description,
			Parameters:  parametersSchema(u.params),
		},
	}
}

// Invoke runs the shared pipeline: required set, unknown fields, enum and
// discriminator checks, schema validation, then the domain handler. Any
// panic below is folded into a failure envelope; the tool boundary never
// raises, and a failure means the world was not touched.
func (u *Unit) Invoke(w world.World, args map[string]any) (out string) {
	invocationID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("tool panic recovered",
				zap.String("tool", u.name),
				zap.String("invocation_id", invocationID),
				zap.Any("panic", r),
			)
			out = envelope.FailureMsg(fmt.Sprintf("internal error in %s", u.name))
		}
	}()

	if args == nil {
		args = map[string]any{}
	}

	// 1. Required parameters (the runtime guarantees these; re-check anyway)
	var required []string
	for _, p := range u.params {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	if missing := validate.MissingFields(args, required); len(missing) > 0 {
		return envelope.Failure(envelope.MissingField(missing[0]))
	}

	// 2. Unknown parameters
	allowed := make([]string, len(u.params))
	for i, p := range u.params {
		allowed[i] = p.Name
	}
	if extra := validate.ExtraFields(args, allowed); len(extra) > 0 {
		return envelope.Failure(envelope.UnknownFields(extra))
	}

	// 3. Enumerated parameters; the discriminator halts on a bad value
	for _, p := range u.params {
		if len(p.Enum) == 0 {
			continue
		}
		v, ok := args[p.Name]
		if !ok || v == nil {
			continue
		}
		s, isStr := v.(string)
		if isStr && validate.InEnum(s, p.Enum) {
			continue
		}
		if p.Discriminator {
			return envelope.Failure(envelope.InvalidAction(p.Name, fmt.Sprintf("%v", v), p.Enum))
		}
		return envelope.Failure(envelope.InvalidEnum(p.Name, fmt.Sprintf("%v", v), p.Enum))
	}

	// 4. Schema validation as the type-level net
	if err := validate.ValidateArgs(u.compiled, args); err != nil {
		return envelope.FailureMsg(fmt.Sprintf("invalid arguments: %v", err))
	}

	u.logger.Debug("tool invoked",
		zap.String("tool", u.name),
		zap.String("invocation_id", invocationID),
		zap.Int("argument_count", len(args)),
	)

	return u.handler(w, args)
}

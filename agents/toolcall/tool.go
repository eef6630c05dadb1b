/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/geminicli/issueagent/agents/agenttrace"
	"github.com/geminicli/issueagent/agents/schema"
	"github.com/geminicli/issueagent/agents/toolcall/params"
)

// ToolCall is a provider-independent representation of a tool call.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Definition describes a tool to the model.
type Definition struct {
	Name        Name
	Description string
	// Parameters is the object schema of the tool's arguments.
	Parameters *jsonschema.Schema
}

// Define builds a Definition whose parameters are reflected from Args.
func Define[Args any](name Name, description string) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Parameters:  schema.ReflectType[Args](),
	}
}

// Handler runs a tool call and describes the outcome in the returned map.
type Handler func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any

// Tool pairs a definition with the handler that serves it.
type Tool struct {
	Def     Definition
	Handler Handler
}

// Param extracts a required argument.
// On failure the call is recorded on the trace as a bad tool call and an error result is returned.
func Param[T any](call ToolCall, trace *agenttrace.Trace, name string) (T, map[string]any) {
	v, err := params.Extract[T](call.Args, name)
	if err != nil {
		trace.BadToolCall(call.ID, call.Name, call.Args, fmt.Errorf("invalid %s parameter: %w", name, err))
		return v, params.Error("%s", err)
	}
	return v, nil
}

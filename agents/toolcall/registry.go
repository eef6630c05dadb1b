/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"

	"github.com/geminicli/issueagent/agents/agenttrace"
	"github.com/geminicli/issueagent/agents/toolcall/params"
)

// Registry maps tool names to tools, keeping registration order.
type Registry struct {
	order []Name
	tools map[Name]Tool
}

// NewRegistry registers tools. Names must be known and unique, and every tool needs a handler.
func NewRegistry(tools ...Tool) (Registry, error) {
	r := Registry{tools: make(map[Name]Tool, len(tools))}
	for _, t := range tools {
		if !t.Def.Name.Valid() {
			return Registry{}, &UnknownToolError{Name: string(t.Def.Name)}
		}
		if t.Handler == nil {
			return Registry{}, fmt.Errorf("tool %s has no handler", t.Def.Name)
		}
		if _, dup := r.tools[t.Def.Name]; dup {
			return Registry{}, fmt.Errorf("tool %s registered twice", t.Def.Name)
		}
		r.order = append(r.order, t.Def.Name)
		r.tools[t.Def.Name] = t
	}
	return r, nil
}

// Definitions returns the registered definitions in registration order.
func (r Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, n := range r.order {
		defs = append(defs, r.tools[n].Def)
	}
	return defs
}

// Len returns the number of registered tools.
func (r Registry) Len() int {
	return len(r.order)
}

// Lookup returns the tool registered under name, or an *UnknownToolError.
func (r Registry) Lookup(name string) (Tool, error) {
	n, err := ParseName(name)
	if err != nil {
		return Tool{}, err
	}
	t, ok := r.tools[n]
	if !ok {
		return Tool{}, &UnknownToolError{Name: name}
	}
	return t, nil
}

// Dispatch runs call against the registered handler.
// Unknown names are recorded as bad tool calls and answered with an error result.
func (r Registry) Dispatch(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any {
	tool, err := r.Lookup(call.Name)
	if err != nil {
		trace.BadToolCall(call.ID, call.Name, call.Args, err)
		return params.Error("%v", err)
	}
	return tool.Handler(ctx, call, trace)
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudetool

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/geminicli/issueagent/agents/schema"
	"github.com/geminicli/issueagent/agents/toolcall"
	"github.com/geminicli/issueagent/agents/toolcall/params"
)

// ToolParam converts one tool definition.
func ToolParam(def toolcall.Definition) (anthropic.ToolParam, error) {
	props, err := schema.PropertiesMap(def.Parameters)
	if err != nil {
		return anthropic.ToolParam{}, fmt.Errorf("converting %s parameters: %w", def.Name, err)
	}
	var required []string
	if def.Parameters != nil {
		required = def.Parameters.Required
	}
	return anthropic.ToolParam{
		Name:        string(def.Name),
		Description: anthropic.String(def.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}, nil
}

// ToolParams converts every registered tool, in registration order.
func ToolParams(reg toolcall.Registry) ([]anthropic.ToolUnionParam, error) {
	defs := reg.Definitions()
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		tp, err := ToolParam(def)
		if err != nil {
			return nil, err
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &tp})
	}
	return out, nil
}

// ToToolCall decodes a tool_use block.
// Undecodable input yields an error result to send back instead.
func ToToolCall(block anthropic.ToolUseBlock) (toolcall.ToolCall, map[string]any) {
	call := toolcall.ToolCall{ID: block.ID, Name: block.Name, Args: map[string]any{}}
	if len(block.Input) == 0 {
		return call, nil
	}
	if err := json.Unmarshal(block.Input, &call.Args); err != nil {
		return call, params.Error("Failed to parse tool input: %v", err)
	}
	return call, nil
}

// ResultBlock wraps a tool result as the reply to the tool_use with id.
func ResultBlock(id string, result map[string]any) (anthropic.ContentBlockParamUnion, error) {
	b, err := json.Marshal(result)
	if err != nil {
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return anthropic.ContentBlockParamUnion{
		OfToolResult: &anthropic.ToolResultBlockParam{
			ToolUseID: id,
			IsError:   anthropic.Bool(params.IsError(result)),
			Content: []anthropic.ToolResultBlockParamContentUnion{{
				OfText: &anthropic.TextBlockParam{Text: string(b)},
			}},
		},
	}, nil
}

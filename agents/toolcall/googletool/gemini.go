/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googletool

import (
	"fmt"
	"maps"

	"google.golang.org/genai"

	"github.com/geminicli/issueagent/agents/schema"
	"github.com/geminicli/issueagent/agents/toolcall"
)

// Declaration converts one tool definition.
func Declaration(def toolcall.Definition) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        string(def.Name),
		Description: def.Description,
		Parameters:  schema.Genai(def.Parameters),
	}
}

// Declarations converts every registered tool, in registration order.
func Declarations(reg toolcall.Registry) []*genai.FunctionDeclaration {
	defs := reg.Definitions()
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		decls = append(decls, Declaration(def))
	}
	return decls
}

// Tools wraps the declarations for GenerateContentConfig.Tools.
func Tools(reg toolcall.Registry) []*genai.Tool {
	if reg.Len() == 0 {
		return nil
	}
	return []*genai.Tool{{FunctionDeclarations: Declarations(reg)}}
}

// ToToolCall converts a Gemini function call.
func ToToolCall(fc *genai.FunctionCall) toolcall.ToolCall {
	return toolcall.ToolCall{
		ID:   fc.ID,
		Name: fc.Name,
		Args: maps.Clone(fc.Args),
	}
}

// Response wraps a tool result as the reply to fc.
func Response(fc *genai.FunctionCall, result map[string]any) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       fc.ID,
		Name:     fc.Name,
		Response: result,
	}
}

// Describe renders fc for logs.
func Describe(fc *genai.FunctionCall) string {
	return fmt.Sprintf("%s(id=%s, %d args)", fc.Name, fc.ID, len(fc.Args))
}

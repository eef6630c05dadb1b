/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudetool_test

import (
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/go-cmp/cmp"

	"github.com/geminicli/issueagent/agents/toolcall"
	"github.com/geminicli/issueagent/agents/toolcall/callbacks"
	"github.com/geminicli/issueagent/agents/toolcall/claudetool"
	"github.com/geminicli/issueagent/agents/toolcall/params"
)

func TestToolParams(t *testing.T) {
	reg, err := toolcall.NewWorkspaceRegistry(callbacks.WorkspaceCallbacks{})
	if err != nil {
		t.Fatalf("NewWorkspaceRegistry() = %v", err)
	}

	tools, err := claudetool.ToolParams(reg)
	if err != nil {
		t.Fatalf("ToolParams() = %v", err)
	}
	if len(tools) != 4 {
		t.Fatalf("tools: got = %d, wanted = 4", len(tools))
	}

	shell := tools[3].OfTool
	if shell.Name != "runShellCommand" {
		t.Errorf("name: got = %q, wanted = %q", shell.Name, "runShellCommand")
	}
	if diff := cmp.Diff([]string{"command"}, shell.InputSchema.Required); diff != "" {
		t.Errorf("required (-want +got):\n%s", diff)
	}
	props, ok := shell.InputSchema.Properties.(map[string]any)
	if !ok {
		t.Fatalf("properties: got = %T, wanted = map[string]any", shell.InputSchema.Properties)
	}
	cmd, _ := props["command"].(map[string]any)
	if cmd["type"] != "string" {
		t.Errorf("command type: got = %v, wanted = string", cmd["type"])
	}
}

func TestToToolCall(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]any
		wantErr bool
	}{{
		name:  "object input",
		input: `{"path":"src/Main.java"}`,
		want:  map[string]any{"path": "src/Main.java"},
	}, {
		name:  "empty input",
		input: "",
		want:  map[string]any{},
	}, {
		name:    "malformed input",
		input:   `{"path":`,
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, errResp := claudetool.ToToolCall(anthropic.ToolUseBlock{
				ID:    "tu_1",
				Name:  "readFile",
				Input: json.RawMessage(tt.input),
			})
			if (errResp != nil) != tt.wantErr {
				t.Fatalf("ToToolCall() error = %v, wantErr %v", errResp, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if call.ID != "tu_1" || call.Name != "readFile" {
				t.Errorf("call: got = %s/%s, wanted = tu_1/readFile", call.ID, call.Name)
			}
			if diff := cmp.Diff(tt.want, call.Args); diff != "" {
				t.Errorf("args (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResultBlock(t *testing.T) {
	block, err := claudetool.ResultBlock("tu_2", params.Error("boom"))
	if err != nil {
		t.Fatalf("ResultBlock() = %v", err)
	}
	tr := block.OfToolResult
	if tr == nil {
		t.Fatal("tool result: got = nil, wanted = block")
	}
	if tr.ToolUseID != "tu_2" {
		t.Errorf("tool use id: got = %q, wanted = %q", tr.ToolUseID, "tu_2")
	}
	if !tr.IsError.Value {
		t.Error("is error: got = false, wanted = true")
	}
	if got := tr.Content[0].OfText.Text; got != `{"error":"boom"}` {
		t.Errorf("content: got = %s, wanted = %s", got, `{"error":"boom"}`)
	}
}

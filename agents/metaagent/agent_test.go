/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/agents/toolcall"
	"github.com/geminicli/issueagent/agents/toolcall/callbacks"
)

type testRequest struct{}

func (r *testRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p, nil
}

func testConfig() Config[callbacks.WorkspaceCallbacks] {
	return Config[callbacks.WorkspaceCallbacks]{
		UserPrompt: promptbuilder.MustNewPrompt("Fix the issue."),
		Tools:      toolcall.WorkspaceProvider{},
		MaxTurns:   5,
	}
}

func TestProviderFor(t *testing.T) {
	tests := []struct {
		model   string
		want    Provider
		wantErr bool
	}{
		{model: "gemini-2.5-pro", want: Gemini},
		{model: "Gemini-2.5-Flash", want: Gemini},
		{model: "claude-sonnet-4-5", want: Claude},
		{model: "gpt-4o", wantErr: true},
		{model: "", wantErr: true},
		{model: "gem", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, err := ProviderFor(tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ProviderFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ProviderFor() = %q, wanted %q", got, tt.want)
			}
		})
	}
}

func thinkingConfig(budget int32) Config[callbacks.WorkspaceCallbacks] {
	c := testConfig()
	c.ThinkingBudget = budget
	return c
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		model   string
		creds   Credentials
		config  Config[callbacks.WorkspaceCallbacks]
		wantErr string
	}{{
		name:   "gemini",
		model:  "gemini-2.5-pro",
		creds:  Credentials{GeminiAPIKey: "test-key"},
		config: testConfig(),
	}, {
		name:   "claude",
		model:  "claude-sonnet-4-5",
		creds:  Credentials{AnthropicAPIKey: "test-key"},
		config: testConfig(),
	}, {
		name:   "gemini thinking",
		model:  "gemini-2.5-pro",
		creds:  Credentials{GeminiAPIKey: "test-key"},
		config: thinkingConfig(4096),
	}, {
		name:   "gemini dynamic thinking",
		model:  "gemini-2.5-pro",
		creds:  Credentials{GeminiAPIKey: "test-key"},
		config: thinkingConfig(-1),
	}, {
		name:    "gemini thinking over cap",
		model:   "gemini-2.5-pro",
		creds:   Credentials{GeminiAPIKey: "test-key"},
		config:  thinkingConfig(40000),
		wantErr: "max_output_tokens",
	}, {
		name:   "claude thinking",
		model:  "claude-sonnet-4-5",
		creds:  Credentials{AnthropicAPIKey: "test-key"},
		config: thinkingConfig(2048),
	}, {
		name:    "claude thinking too small",
		model:   "claude-sonnet-4-5",
		creds:   Credentials{AnthropicAPIKey: "test-key"},
		config:  thinkingConfig(512),
		wantErr: "at least 1024",
	}, {
		name:    "gemini without key",
		model:   "gemini-2.5-pro",
		creds:   Credentials{AnthropicAPIKey: "test-key"},
		config:  testConfig(),
		wantErr: "GEMINI_API_KEY",
	}, {
		name:    "claude without key",
		model:   "claude-sonnet-4-5",
		config:  testConfig(),
		wantErr: "ANTHROPIC_API_KEY",
	}, {
		name:    "unsupported",
		model:   "llama-3",
		creds:   Credentials{GeminiAPIKey: "k"},
		config:  testConfig(),
		wantErr: "unsupported model",
	}, {
		name:    "no prompt",
		model:   "gemini-2.5-pro",
		creds:   Credentials{GeminiAPIKey: "k"},
		config:  Config[callbacks.WorkspaceCallbacks]{Tools: toolcall.WorkspaceProvider{}},
		wantErr: "user prompt",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := New[*testRequest](ctx, tt.model, tt.creds, tt.config)
			if tt.wantErr == "" {
				if err != nil || agent == nil {
					t.Fatalf("New() = %v, %v; wanted agent", agent, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error: got = %v, wanted containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMissingKeyIsSentinel(t *testing.T) {
	_, err := New[*testRequest](context.Background(), "gemini-2.5-pro", Credentials{}, testConfig())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New() error: got = %v, wanted = ErrMissingAPIKey", err)
	}
}

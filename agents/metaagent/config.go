/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"github.com/geminicli/issueagent/agents/executor/retry"
	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/agents/toolcall"
)

// Config defines an agent. CB is the callback set its tools are built from.
type Config[CB any] struct {
	// SystemInstructions defines the agent's role.
	SystemInstructions *promptbuilder.Prompt

	// UserPrompt is the template the request is bound into.
	UserPrompt *promptbuilder.Prompt

	// Tools builds the tool set from the callbacks passed to Execute.
	Tools toolcall.Provider[CB]

	// MaxTurns bounds model round-trips. Zero means the executor default.
	MaxTurns int

	// ThinkingBudget enables model thinking with this many tokens. Zero disables it.
	// Gemini also accepts -1 to let the model pick the budget.
	ThinkingBudget int32

	// Retry overrides the transient error retry policy when non-nil.
	Retry *retry.Config
}

// Credentials holds provider API keys. Only the key for the selected provider is required.
type Credentials struct {
	GeminiAPIKey    string
	AnthropicAPIKey string
}

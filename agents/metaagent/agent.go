/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/agents/result"
	"github.com/geminicli/issueagent/agents/toolcall"
)

// Agent is a configured agent.
type Agent[Req promptbuilder.Bindable, CB any] interface {
	// Execute runs the agent with tools built over callbacks.
	Execute(ctx context.Context, request Req, callbacks CB) (*result.Result, error)
}

// Provider names a model backend.
type Provider string

const (
	Gemini Provider = "gemini"
	Claude Provider = "claude"
)

// ProviderFor returns the backend serving model.
func ProviderFor(model string) (Provider, error) {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "gemini-"):
		return Gemini, nil
	case strings.HasPrefix(m, "claude-"):
		return Claude, nil
	default:
		return "", fmt.Errorf("unsupported model: %s (expected gemini-* or claude-*)", model)
	}
}

// ErrMissingAPIKey is returned when the selected provider has no key.
var ErrMissingAPIKey = errors.New("missing API key")

// New creates an agent for model.
func New[Req promptbuilder.Bindable, CB any](ctx context.Context, model string, creds Credentials, config Config[CB]) (Agent[Req, CB], error) {
	if config.UserPrompt == nil {
		return nil, errors.New("user prompt is required")
	}
	if config.Tools == nil {
		return nil, errors.New("tool provider is required")
	}
	provider, err := ProviderFor(model)
	if err != nil {
		return nil, err
	}

	switch provider {
	case Gemini:
		if creds.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is required for model %s", ErrMissingAPIKey, model)
		}
		return newGoogleAgent[Req](ctx, model, creds.GeminiAPIKey, config)
	default:
		if creds.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is required for model %s", ErrMissingAPIKey, model)
		}
		return newClaudeAgent[Req](model, creds.AnthropicAPIKey, config)
	}
}

// registry builds and validates the tool set for one run.
func registry[CB any](p toolcall.Provider[CB], cb CB) (toolcall.Registry, error) {
	reg, err := toolcall.NewRegistry(p.Tools(cb)...)
	if err != nil {
		return toolcall.Registry{}, fmt.Errorf("building tool registry: %w", err)
	}
	return reg, nil
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/geminicli/issueagent/agents/executor/googleexecutor"
	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/agents/result"
)

type googleAgent[Req promptbuilder.Bindable, CB any] struct {
	executor googleexecutor.Interface[Req]
	config   Config[CB]
}

func newGoogleAgent[Req promptbuilder.Bindable, CB any](ctx context.Context, model, apiKey string, config Config[CB]) (Agent[Req, CB], error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	opts := []googleexecutor.Option[Req]{
		googleexecutor.WithModel[Req](model),
		googleexecutor.WithTemperature[Req](0.2),
		googleexecutor.WithMaxOutputTokens[Req](32768),
	}
	if config.SystemInstructions != nil {
		opts = append(opts, googleexecutor.WithSystemInstructions[Req](config.SystemInstructions))
	}
	if config.MaxTurns > 0 {
		opts = append(opts, googleexecutor.WithMaxTurns[Req](config.MaxTurns))
	}
	if config.ThinkingBudget != 0 {
		opts = append(opts, googleexecutor.WithThinking[Req](config.ThinkingBudget))
	}
	if config.Retry != nil {
		opts = append(opts, googleexecutor.WithRetryConfig[Req](*config.Retry))
	}

	exec, err := googleexecutor.New(googleexecutor.ClientChats(client), config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini executor: %w", err)
	}
	return &googleAgent[Req, CB]{executor: exec, config: config}, nil
}

func (a *googleAgent[Req, CB]) Execute(ctx context.Context, request Req, callbacks CB) (*result.Result, error) {
	reg, err := registry(a.config.Tools, callbacks)
	if err != nil {
		return nil, err
	}
	return a.executor.Execute(ctx, request, reg)
}

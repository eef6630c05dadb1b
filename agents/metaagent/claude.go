/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/geminicli/issueagent/agents/executor/claudeexecutor"
	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/agents/result"
)

type claudeAgent[Req promptbuilder.Bindable, CB any] struct {
	executor claudeexecutor.Interface[Req]
	config   Config[CB]
}

func newClaudeAgent[Req promptbuilder.Bindable, CB any](model, apiKey string, config Config[CB]) (Agent[Req, CB], error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	opts := []claudeexecutor.Option[Req]{
		claudeexecutor.WithModel[Req](model),
		claudeexecutor.WithTemperature[Req](0.2),
		claudeexecutor.WithMaxTokens[Req](32000),
	}
	if config.SystemInstructions != nil {
		opts = append(opts, claudeexecutor.WithSystemInstructions[Req](config.SystemInstructions))
	}
	if config.MaxTurns > 0 {
		opts = append(opts, claudeexecutor.WithMaxTurns[Req](config.MaxTurns))
	}
	if config.ThinkingBudget != 0 {
		opts = append(opts, claudeexecutor.WithThinking[Req](int64(config.ThinkingBudget)))
	}
	if config.Retry != nil {
		opts = append(opts, claudeexecutor.WithRetryConfig[Req](*config.Retry))
	}

	exec, err := claudeexecutor.New(claudeexecutor.ClientMessages(client), config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Claude executor: %w", err)
	}
	return &claudeAgent[Req, CB]{executor: exec, config: config}, nil
}

func (a *claudeAgent[Req, CB]) Execute(ctx context.Context, request Req, callbacks CB) (*result.Result, error) {
	reg, err := registry(a.config.Tools, callbacks)
	if err != nil {
		return nil, err
	}
	return a.executor.Execute(ctx, request, reg)
}

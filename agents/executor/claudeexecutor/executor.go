/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"

	"github.com/geminicli/issueagent/agents/agenttrace"
	"github.com/geminicli/issueagent/agents/executor/retry"
	"github.com/geminicli/issueagent/agents/metrics"
	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/agents/result"
	"github.com/geminicli/issueagent/agents/toolcall"
	"github.com/geminicli/issueagent/agents/toolcall/claudetool"
	"github.com/geminicli/issueagent/agents/toolcall/params"
)

// ErrTurnBudgetExhausted is returned when the model keeps calling tools past the turn budget.
var ErrTurnBudgetExhausted = result.ErrTurnBudgetExhausted

const (
	// DefaultModel is used when WithModel is not given.
	DefaultModel = "claude-sonnet-4-5"
	// DefaultMaxTurns bounds model round-trips when WithMaxTurns is not given.
	DefaultMaxTurns = 50
)

// Interface runs an agent conversation over a tool registry.
type Interface[Request promptbuilder.Bindable] interface {
	Execute(ctx context.Context, request Request, tools toolcall.Registry) (*result.Result, error)
}

type executor[Request promptbuilder.Bindable] struct {
	messages             Messages
	modelName            string
	systemInstructions   *promptbuilder.Prompt
	prompt               *promptbuilder.Prompt
	maxTokens            int64
	temperature          float64
	maxTurns             int
	thinkingBudgetTokens *int64 // nil = disabled
	genaiMetrics         *metrics.GenAI
	retryConfig          retry.Config
}

// New creates a Claude executor.
func New[Request promptbuilder.Bindable](messages Messages, prompt *promptbuilder.Prompt, opts ...Option[Request]) (Interface[Request], error) {
	if messages == nil {
		return nil, errors.New("messages cannot be nil")
	}
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request]{
		messages:     messages,
		modelName:    DefaultModel,
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0.1,
		maxTurns:     DefaultMaxTurns,
		genaiMetrics: metrics.NewGenAI(metrics.MeterName),
		retryConfig:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// Execute implements Interface.
func (e *executor[Request]) Execute(ctx context.Context, request Request, tools toolcall.Registry) (res *result.Result, err error) {
	log := clog.FromContext(ctx).With("model", e.modelName)

	bound, err := request.Bind(e.prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := bound.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	trace := agenttrace.StartTrace(ctx, prompt)
	defer func() {
		summary := ""
		if res != nil {
			summary = res.Summary
		}
		trace.Complete(summary, err)
	}()

	req, err := e.request(prompt, tools)
	if err != nil {
		return nil, err
	}
	log.With("prompt_length", len(prompt)).Info("Starting Claude agent execution")

	toolCalls := 0
	for {
		message, err := retry.Do(ctx, e.retryConfig, "stream_message", isRetryableClaudeError, func() (*anthropic.Message, error) {
			return e.messages.New(ctx, req)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to stream Claude response: %w", err)
		}
		trace.RecordTurn(e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
		e.genaiMetrics.RecordTurn(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)

		var (
			uses      []anthropic.ToolUseBlock
			text      strings.Builder
			assistant []anthropic.ContentBlockParamUnion
		)
		for _, content := range message.Content {
			switch content.Type {
			case "text":
				text.WriteString(content.Text)
				assistant = append(assistant, anthropic.NewTextBlock(content.Text))
			case "tool_use":
				uses = append(uses, anthropic.ToolUseBlock{ID: content.ID, Name: content.Name, Input: content.Input})
				assistant = append(assistant, anthropic.NewToolUseBlock(content.ID, content.Input, content.Name))
			case "thinking":
				trace.AddReasoning(content.Thinking)
				assistant = append(assistant, anthropic.NewThinkingBlock(content.Signature, content.Thinking))
			case "redacted_thinking":
				assistant = append(assistant, anthropic.NewRedactedThinkingBlock(content.Data))
			}
		}

		if len(uses) == 0 {
			if text.Len() == 0 {
				return nil, errors.New("no content in Claude's response")
			}
			log.With("turns", trace.Turns).With("tool_calls", toolCalls).
				Info("Model produced final answer")
			return result.New(text.String(), trace.Turns, toolCalls), nil
		}

		if trace.Turns >= e.maxTurns {
			return nil, fmt.Errorf("%w (%d turns)", ErrTurnBudgetExhausted, e.maxTurns)
		}

		req.Messages = append(req.Messages, anthropic.MessageParam{
			Role:    anthropic.MessageParamRoleAssistant,
			Content: assistant,
		})

		results := make([]anthropic.ContentBlockParamUnion, 0, len(uses))
		for _, use := range uses {
			toolCalls++
			block, err := e.dispatch(ctx, tools, trace, use)
			if err != nil {
				return nil, err
			}
			results = append(results, block)
		}
		req.Messages = append(req.Messages, anthropic.MessageParam{
			Role:    anthropic.MessageParamRoleUser,
			Content: results,
		})
	}
}

func (e *executor[Request]) request(prompt string, tools toolcall.Registry) (anthropic.MessageNewParams, error) {
	toolDefs, err := claudetool.ToolParams(tools)
	if err != nil {
		return anthropic.MessageNewParams{}, err
	}
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{{
			Role:    anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)},
		}},
		Tools:       toolDefs,
		Temperature: anthropic.Float(e.temperature),
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return anthropic.MessageNewParams{}, fmt.Errorf("building system prompt: %w", err)
		}
		req.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if e.thinkingBudgetTokens != nil {
		// Extended thinking requires temperature 1.
		req.Temperature = anthropic.Float(1.0)
		req.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{BudgetTokens: *e.thinkingBudgetTokens},
		}
	}
	return req, nil
}

func (e *executor[Request]) dispatch(ctx context.Context, tools toolcall.Registry, trace *agenttrace.Trace, use anthropic.ToolUseBlock) (anthropic.ContentBlockParamUnion, error) {
	clog.FromContext(ctx).With("tool", use.Name).With("id", use.ID).Info("Executing tool call")

	call, out := claudetool.ToToolCall(use)
	if out != nil {
		trace.BadToolCall(call.ID, call.Name, map[string]any{"input": string(use.Input)}, errors.New(params.Text(out)))
	} else {
		out = tools.Dispatch(ctx, call, trace)
	}
	e.genaiMetrics.RecordToolCall(ctx, e.modelName, use.Name, params.IsError(out))
	return claudetool.ResultBlock(use.ID, out)
}

// isRetryableClaudeError reports rate limits, overload and gateway failures.
func isRetryableClaudeError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return retry.IsTransientStatus(apiErr.StatusCode)
	}
	return retry.IsTransientMessage(err)
}

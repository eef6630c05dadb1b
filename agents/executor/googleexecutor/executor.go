/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"

	"github.com/geminicli/issueagent/agents/agenttrace"
	"github.com/geminicli/issueagent/agents/executor/retry"
	"github.com/geminicli/issueagent/agents/metrics"
	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/agents/result"
	"github.com/geminicli/issueagent/agents/toolcall"
	"github.com/geminicli/issueagent/agents/toolcall/googletool"
	"github.com/geminicli/issueagent/agents/toolcall/params"
)

// ErrTurnBudgetExhausted is returned when the model keeps calling tools past the turn budget.
var ErrTurnBudgetExhausted = result.ErrTurnBudgetExhausted

const (
	// DefaultModel is used when WithModel is not given.
	DefaultModel = "gemini-2.5-pro"
	// DefaultMaxTurns bounds model round-trips when WithMaxTurns is not given.
	DefaultMaxTurns = 50
)

// Interface runs an agent conversation over a tool registry.
type Interface[Request promptbuilder.Bindable] interface {
	Execute(ctx context.Context, request Request, tools toolcall.Registry) (*result.Result, error)
}

type executor[Request promptbuilder.Bindable] struct {
	chats              Chats
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	maxTurns           int
	systemInstructions *promptbuilder.Prompt
	thinkingBudget     *int32 // nil = disabled
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates a Gemini executor.
func New[Request promptbuilder.Bindable](chats Chats, prompt *promptbuilder.Prompt, options ...Option[Request]) (Interface[Request], error) {
	if chats == nil {
		return nil, errors.New("chats is required")
	}
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	exec := &executor[Request]{
		chats:           chats,
		prompt:          prompt,
		model:           DefaultModel,
		temperature:     0.1,
		maxOutputTokens: 8192,
		maxTurns:        DefaultMaxTurns,
		genaiMetrics:    metrics.NewGenAI(metrics.MeterName),
		retryConfig:     retry.DefaultConfig(),
	}
	for _, opt := range options {
		if err := opt(exec); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return exec, nil
}

// conversation is the state of one Execute call.
type conversation struct {
	chat      Chat
	trace     *agenttrace.Trace
	tools     toolcall.Registry
	toolCalls int
}

// Execute implements Interface.
func (e *executor[Request]) Execute(ctx context.Context, request Request, tools toolcall.Registry) (res *result.Result, err error) {
	log := clog.FromContext(ctx).With("model", e.model)

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

	config, err := e.config(tools)
	if err != nil {
		return nil, err
	}

	log.With("tools", tools.Len()).Info("Creating Gemini chat session")
	chat, err := e.chats.Create(ctx, e.model, config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat with model %q: %w", e.model, err)
	}
	conv := &conversation{chat: chat, trace: trace, tools: tools}

	response, err := e.send(ctx, conv, "send_prompt", &genai.Part{Text: prompt})
	if err != nil {
		return nil, err
	}

	for {
		if len(response.Candidates) == 0 {
			return nil, errors.New("no content generated - no candidates")
		}
		candidate := response.Candidates[0]

		if candidate.FinishReason == genai.FinishReasonMalformedFunctionCall {
			log.With("finish_message", candidate.FinishMessage).
				Warn("Model attempted a malformed function call, asking it to retry")
			if err := e.checkBudget(trace); err != nil {
				return nil, err
			}
			msg := fmt.Sprintf("The function call was malformed. Please try again using the available functions: %v", registeredNames(tools))
			if response, err = e.send(ctx, conv, "send_malformed_retry", &genai.Part{Text: msg}); err != nil {
				return nil, err
			}
			continue
		}

		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			return nil, fmt.Errorf("no content generated (finish reason %q)", candidate.FinishReason)
		}

		var (
			calls []*genai.FunctionCall
			text  strings.Builder
		)
		for _, part := range candidate.Content.Parts {
			switch {
			case part.Thought:
				trace.AddReasoning(part.Text)
			case part.FunctionCall != nil:
				calls = append(calls, part.FunctionCall)
			case part.Text != "":
				text.WriteString(part.Text)
			}
		}

		if len(calls) == 0 {
			if text.Len() == 0 {
				return nil, errors.New("unexpected response format from model: no text and no function calls")
			}
			log.With("turns", trace.Turns).With("tool_calls", conv.toolCalls).
				Info("Model produced final answer")
			return result.New(text.String(), trace.Turns, conv.toolCalls), nil
		}

		if err := e.checkBudget(trace); err != nil {
			return nil, err
		}

		parts := make([]*genai.Part, 0, len(calls))
		for _, fc := range calls {
			parts = append(parts, &genai.Part{FunctionResponse: e.dispatch(ctx, conv, fc)})
		}
		if response, err = e.send(ctx, conv, "send_tool_responses", parts...); err != nil {
			return nil, err
		}
	}
}

func (e *executor[Request]) config(tools toolcall.Registry) (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
		Tools:           googletool.Tools(tools),
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return nil, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if e.thinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  e.thinkingBudget,
		}
	}
	return config, nil
}

// checkBudget fails once the model has used every allowed round-trip.
func (e *executor[Request]) checkBudget(trace *agenttrace.Trace) error {
	if trace.Turns >= e.maxTurns {
		return fmt.Errorf("%w (%d turns)", ErrTurnBudgetExhausted, e.maxTurns)
	}
	return nil
}

// send makes one model round-trip.
func (e *executor[Request]) send(ctx context.Context, conv *conversation, operation string, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	resp, err := retry.Do(ctx, e.retryConfig, operation, isRetryableGeminiError, func() (*genai.GenerateContentResponse, error) {
		return conv.chat.Send(ctx, parts...)
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%s: empty response", operation)
	}

	var in, out int64
	if u := resp.UsageMetadata; u != nil {
		in, out = int64(u.PromptTokenCount), int64(u.CandidatesTokenCount)
	}
	conv.trace.RecordTurn(e.model, in, out)
	e.genaiMetrics.RecordTurn(ctx, e.model, in, out)
	return resp, nil
}

func (e *executor[Request]) dispatch(ctx context.Context, conv *conversation, fc *genai.FunctionCall) *genai.FunctionResponse {
	clog.FromContext(ctx).With("call", googletool.Describe(fc)).Info("Executing tool call")
	conv.toolCalls++

	out := conv.tools.Dispatch(ctx, googletool.ToToolCall(fc), conv.trace)
	e.genaiMetrics.RecordToolCall(ctx, e.model, fc.Name, params.IsError(out))
	return googletool.Response(fc, out)
}

func registeredNames(tools toolcall.Registry) []string {
	defs := tools.Definitions()
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, string(d.Name))
	}
	return names
}

// isRetryableGeminiError reports rate limits and temporary server failures.
func isRetryableGeminiError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retry.IsTransientStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return retry.IsTransientStatus(apiErrPtr.Code)
	}
	return retry.IsTransientMessage(err)
}

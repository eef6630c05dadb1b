/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/geminicli/issueagent/agents/agenttrace"

// ReasoningContent is thinking text a model exposed during a turn.
type ReasoningContent struct {
	Thinking string `json:"thinking"`
}

// ToolCall is a single tool invocation within a trace.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Params    map[string]any `json:"params"`
	Result    any            `json:"result"`
	Error     error          `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`

	trace *Trace
	mu    sync.Mutex
	span  oteltrace.Span
}

// Trace is one agent run, from the initial prompt to the final answer.
type Trace struct {
	ID           string             `json:"id"`
	InputPrompt  string             `json:"input_prompt"`
	RunContext   RunContext         `json:"run_context,omitempty"`
	ToolCalls    []*ToolCall        `json:"tool_calls"`
	Reasoning    []ReasoningContent `json:"reasoning,omitempty"`
	Turns        int                `json:"turns"`
	InputTokens  int64              `json:"input_tokens"`
	OutputTokens int64              `json:"output_tokens"`
	Result       string             `json:"result"`
	Error        error              `json:"error,omitempty"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time"`

	tracer Tracer
	mu     sync.Mutex
	ctx    context.Context
	span   oteltrace.Span
}

func tracer() oteltrace.Tracer {
	return otel.Tracer(instrumentationName, oteltrace.WithInstrumentationVersion("1.0.0"))
}

func newTrace(ctx context.Context, t Tracer, prompt string) *Trace {
	rc := GetRunContext(ctx)

	attrs := append([]attribute.KeyValue{attribute.String("agent.prompt", prompt)}, rc.Attributes()...)
	ctx, span := tracer().Start(ctx, "agent.run", oteltrace.WithAttributes(attrs...))

	return &Trace{
		ID:          newTraceID(),
		InputPrompt: prompt,
		RunContext:  rc,
		ToolCalls:   []*ToolCall{},
		StartTime:   time.Now(),
		tracer:      t,
		ctx:         ctx,
		span:        span,
	}
}

// StartToolCall opens a tool call; it joins the trace when completed.
func (t *Trace) StartToolCall(id, name string, params map[string]any) *ToolCall {
	_, span := tracer().Start(t.ctx, "agent.tool_call", oteltrace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.id", id),
	))
	return &ToolCall{
		ID:        id,
		Name:      name,
		Params:    params,
		StartTime: time.Now(),
		trace:     t,
		span:      span,
	}
}

// BadToolCall records a call that never reached a tool: an unknown name or bad arguments.
func (t *Trace) BadToolCall(id, name string, params map[string]any, err error) {
	_, span := tracer().Start(t.ctx, "agent.tool_call", oteltrace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.id", id),
	))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()

	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ToolCalls = append(t.ToolCalls, &ToolCall{
		ID:        id,
		Name:      name,
		Params:    params,
		Error:     err,
		StartTime: now,
		EndTime:   now,
		trace:     t,
	})
}

// RecordTurn counts one model round-trip and its token usage.
func (t *Trace) RecordTurn(model string, inputTokens, outputTokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Turns++
	t.InputTokens += inputTokens
	t.OutputTokens += outputTokens
	if t.span != nil {
		t.span.SetAttributes(
			attribute.String("model", model),
			attribute.Int("turns", t.Turns),
			attribute.Int64("tokens.input", t.InputTokens),
			attribute.Int64("tokens.output", t.OutputTokens),
		)
	}
}

// AddReasoning appends thinking text exposed by the model.
func (t *Trace) AddReasoning(thinking string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Reasoning = append(t.Reasoning, ReasoningContent{Thinking: thinking})
}

// Complete closes the tool call and attaches it to its trace.
func (tc *ToolCall) Complete(result any, err error) {
	tc.mu.Lock()
	tc.Result = result
	tc.Error = err
	tc.EndTime = time.Now()
	span := tc.span
	tc.mu.Unlock()

	endSpan(span, err)

	tc.trace.mu.Lock()
	defer tc.trace.mu.Unlock()
	tc.trace.ToolCalls = append(tc.trace.ToolCalls, tc)
}

// Duration is the tool call's elapsed time, or time so far when still open.
func (tc *ToolCall) Duration() time.Duration {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return elapsed(tc.StartTime, tc.EndTime)
}

// Complete closes the trace and hands it to its tracer.
func (t *Trace) Complete(result string, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	tr := t.tracer
	span := t.span
	t.mu.Unlock()

	endSpan(span, err)
	tr.RecordTrace(t)
}

// Duration is the run's elapsed time, or time so far when still open.
func (t *Trace) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return elapsed(t.StartTime, t.EndTime)
}

// String renders the trace for logs. Long values are truncated.
func (t *Trace) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Trace %s ===\n", t.ID)
	fmt.Fprintf(&sb, "Prompt: %q\n", truncate(t.InputPrompt, 200))
	fmt.Fprintf(&sb, "Duration: %v\n", elapsed(t.StartTime, t.EndTime))
	fmt.Fprintf(&sb, "Turns: %d (tokens in=%d out=%d)\n", t.Turns, t.InputTokens, t.OutputTokens)

	if len(t.Reasoning) > 0 {
		fmt.Fprintf(&sb, "\nReasoning (%d blocks):\n", len(t.Reasoning))
		for i, r := range t.Reasoning {
			fmt.Fprintf(&sb, "  [%d] %s\n", i+1, truncate(r.Thinking, 200))
		}
	}

	if len(t.ToolCalls) == 0 {
		sb.WriteString("\nNo tool calls\n")
	} else {
		fmt.Fprintf(&sb, "\nTool Calls (%d):\n", len(t.ToolCalls))
		for i, tc := range t.ToolCalls {
			fmt.Fprintf(&sb, "  [%d] %s (ID: %s) %v\n", i+1, tc.Name, tc.ID, elapsed(tc.StartTime, tc.EndTime))
			for k, v := range tc.Params {
				fmt.Fprintf(&sb, "      %s: %s\n", k, truncate(fmt.Sprint(v), 120))
			}
			if tc.Error != nil {
				fmt.Fprintf(&sb, "      Error: %v\n", tc.Error)
			}
		}
	}

	sb.WriteString("\nCompletion:\n")
	if t.Error != nil {
		fmt.Fprintf(&sb, "  Error: %v\n", t.Error)
	} else {
		fmt.Fprintf(&sb, "  Result: %s\n", truncate(t.Result, 500))
	}
	return sb.String()
}

func endSpan(span oteltrace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func elapsed(start, end time.Time) time.Duration {
	if end.IsZero() {
		return time.Since(start)
	}
	return end.Sub(start)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// newTraceID returns YYYYMMDD-HHMMSS-<8 hex chars>.
func newTraceID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return time.Now().Format("20060102-150405.000000")
	}
	return time.Now().Format("20060102-150405") + "-" + hex.EncodeToString(b)
}

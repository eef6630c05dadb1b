/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"errors"
	"strings"
)

// Result is the outcome of a run that ended with final text from the model.
type Result struct {
	// Summary is the model's final answer with any wrapping code fence removed.
	Summary string `json:"summary"`
	// Turns is the number of model round-trips.
	Turns int `json:"turns"`
	// ToolCalls is the number of tool calls the model requested.
	ToolCalls int `json:"tool_calls"`
}

// New builds a Result from the model's final text.
func New(text string, turns, toolCalls int) *Result {
	return &Result{
		Summary:   Clean(text),
		Turns:     turns,
		ToolCalls: toolCalls,
	}
}

// Clean trims whitespace and strips a code fence that wraps the whole text.
// Fenced blocks inside a longer answer are left alone.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	body := strings.TrimSuffix(text[3:], "```")
	if strings.Contains(body, "```") {
		return text
	}
	// Drop an info string such as ```markdown.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], " \t") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}

// ErrTurnBudgetExhausted is returned when the model is still calling tools
// after the configured number of round-trips.
var ErrTurnBudgetExhausted = errors.New("turn budget exhausted before the model produced a final answer")

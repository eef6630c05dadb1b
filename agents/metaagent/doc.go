/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metaagent picks a model provider from the model name and wires the
// matching executor to a tool provider.
//
//   - Models starting with "gemini-" run on the Gemini API (google.golang.org/genai).
//   - Models starting with "claude-" run on the Anthropic API.
//
// Usage:
//
//	agent, err := metaagent.New[*Request](ctx, "gemini-2.5-pro", metaagent.Credentials{
//		GeminiAPIKey: cfg.GeminiAPIKey,
//	}, metaagent.Config[callbacks.WorkspaceCallbacks]{
//		SystemInstructions: system,
//		UserPrompt:         prompt,
//		Tools:              toolcall.WorkspaceProvider{},
//		MaxTurns:           50,
//	})
//	res, err := agent.Execute(ctx, req, ws.Callbacks())
package metaagent

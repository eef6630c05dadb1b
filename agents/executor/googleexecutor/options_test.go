/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor_test

import (
	"testing"

	"github.com/geminicli/issueagent/agents/executor/googleexecutor"
	"github.com/geminicli/issueagent/agents/executor/retry"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     googleexecutor.Option[*request]
		wantErr bool
	}{
		{name: "gemini model", opt: googleexecutor.WithModel[*request]("gemini-2.5-flash")},
		{name: "claude model", opt: googleexecutor.WithModel[*request]("claude-sonnet-4"), wantErr: true},
		{name: "temperature", opt: googleexecutor.WithTemperature[*request](1.5)},
		{name: "temperature too high", opt: googleexecutor.WithTemperature[*request](2.5), wantErr: true},
		{name: "max tokens", opt: googleexecutor.WithMaxOutputTokens[*request](4096)},
		{name: "max tokens zero", opt: googleexecutor.WithMaxOutputTokens[*request](0), wantErr: true},
		{name: "max turns", opt: googleexecutor.WithMaxTurns[*request](10)},
		{name: "max turns zero", opt: googleexecutor.WithMaxTurns[*request](0), wantErr: true},
		{name: "nil system instructions", opt: googleexecutor.WithSystemInstructions[*request](nil), wantErr: true},
		{name: "dynamic thinking", opt: googleexecutor.WithThinking[*request](-1)},
		{name: "thinking over cap", opt: googleexecutor.WithThinking[*request](8192), wantErr: true},
		{name: "bad retry config", opt: googleexecutor.WithRetryConfig[*request](retry.Config{MaxRetries: -1}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := googleexecutor.New(&fakeChats{}, testPrompt, tt.opt)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRequiresInputs(t *testing.T) {
	if _, err := googleexecutor.New[*request](nil, testPrompt); err == nil {
		t.Error("New(nil chats): got = nil error, wanted = error")
	}
	if _, err := googleexecutor.New[*request](&fakeChats{}, nil); err == nil {
		t.Error("New(nil prompt): got = nil error, wanted = error")
	}
}

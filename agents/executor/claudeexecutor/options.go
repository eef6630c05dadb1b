/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geminicli/issueagent/agents/executor/retry"
	"github.com/geminicli/issueagent/agents/promptbuilder"
)

// Option configures an executor.
type Option[Request promptbuilder.Bindable] func(*executor[Request]) error

// WithModel sets the Claude model.
func WithModel[Request promptbuilder.Bindable](model string) Option[Request] {
	return func(e *executor[Request]) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		e.modelName = model
		return nil
	}
}

// WithMaxTokens caps the tokens generated per turn.
func WithMaxTokens[Request promptbuilder.Bindable](tokens int64) Option[Request] {
	return func(e *executor[Request]) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		if tokens > 64000 {
			return fmt.Errorf("max tokens %d exceeds maximum of 64000", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature, 0.0 to 1.0.
func WithTemperature[Request promptbuilder.Bindable](temp float64) Option[Request] {
	return func(e *executor[Request]) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithMaxTurns bounds the number of model round-trips in one Execute call.
func WithMaxTurns[Request promptbuilder.Bindable](turns int) Option[Request] {
	return func(e *executor[Request]) error {
		if turns <= 0 {
			return fmt.Errorf("max turns must be positive, got %d", turns)
		}
		e.maxTurns = turns
		return nil
	}
}

// WithSystemInstructions sets the system prompt.
func WithSystemInstructions[Request promptbuilder.Bindable](prompt *promptbuilder.Prompt) Option[Request] {
	return func(e *executor[Request]) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithThinking enables extended thinking. The budget must be at least 1024 and below the token cap.
func WithThinking[Request promptbuilder.Bindable](budgetTokens int64) Option[Request] {
	return func(e *executor[Request]) error {
		if budgetTokens < 1024 {
			return fmt.Errorf("thinking budget must be at least 1024 tokens, got %d", budgetTokens)
		}
		if budgetTokens >= e.maxTokens {
			return fmt.Errorf("thinking budget (%d) must be less than max_tokens (%d)", budgetTokens, e.maxTokens)
		}
		e.thinkingBudgetTokens = &budgetTokens
		return nil
	}
}

// WithRetryConfig sets how transient API errors are retried.
func WithRetryConfig[Request promptbuilder.Bindable](cfg retry.Config) Option[Request] {
	return func(e *executor[Request]) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.retryConfig = cfg
		return nil
	}
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geminicli/issueagent/agents/executor/retry"
	"github.com/geminicli/issueagent/agents/promptbuilder"
)

// Option configures an executor.
type Option[Request promptbuilder.Bindable] func(*executor[Request]) error

// WithModel sets the Gemini model.
func WithModel[Request promptbuilder.Bindable](model string) Option[Request] {
	return func(e *executor[Request]) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		e.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature, 0.0 to 2.0.
func WithTemperature[Request promptbuilder.Bindable](temperature float32) Option[Request] {
	return func(e *executor[Request]) error {
		if temperature < 0.0 || temperature > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temperature)
		}
		e.temperature = temperature
		return nil
	}
}

// WithMaxOutputTokens caps the tokens generated per turn.
func WithMaxOutputTokens[Request promptbuilder.Bindable](tokens int32) Option[Request] {
	return func(e *executor[Request]) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		if tokens > 65536 {
			return fmt.Errorf("max output tokens %d exceeds maximum of 65536", tokens)
		}
		e.maxOutputTokens = tokens
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

// WithSystemInstructions sets the system instructions.
func WithSystemInstructions[Request promptbuilder.Bindable](prompt *promptbuilder.Prompt) Option[Request] {
	return func(e *executor[Request]) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithThinking enables thinking with a token budget; -1 lets the model decide.
// The budget must stay below the output token cap.
func WithThinking[Request promptbuilder.Bindable](budgetTokens int32) Option[Request] {
	return func(e *executor[Request]) error {
		if budgetTokens == -1 {
			e.thinkingBudget = &budgetTokens
			return nil
		}
		if budgetTokens <= 0 {
			return fmt.Errorf("thinking budget must be positive (or -1 for dynamic), got %d", budgetTokens)
		}
		if budgetTokens >= e.maxOutputTokens {
			return fmt.Errorf("thinking budget (%d) must be less than max_output_tokens (%d)", budgetTokens, e.maxOutputTokens)
		}
		e.thinkingBudget = &budgetTokens
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

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Command issueagent solves a GitHub issue in the current checkout with an
// LLM agent that can read and write files and run shell commands.
//
// It is meant to run as a GitHub Actions step. The issue arrives through
// ISSUE_NUMBER, ISSUE_TITLE and ISSUE_BODY; the model is chosen with
// AGENT_MODEL and needs GEMINI_API_KEY or ANTHROPIC_API_KEY.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/geminicli/issueagent/agents/agenttrace"
	"github.com/geminicli/issueagent/agents/metaagent"
	"github.com/geminicli/issueagent/agents/result"
	"github.com/geminicli/issueagent/agents/toolcall"
	"github.com/geminicli/issueagent/agents/toolcall/callbacks"
	"github.com/geminicli/issueagent/issue"
	"github.com/geminicli/issueagent/project"
	"github.com/geminicli/issueagent/workspace"
)

type config struct {
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	IssueNumber string `env:"ISSUE_NUMBER"`
	IssueTitle  string `env:"ISSUE_TITLE"`
	IssueBody   string `env:"ISSUE_BODY"`

	Model            string        `env:"AGENT_MODEL,default=gemini-2.5-pro"`
	MaxTurns         int           `env:"AGENT_MAX_TURNS,default=50"`
	ThinkingBudget   int32         `env:"AGENT_THINKING_BUDGET,default=0"`
	CommandTimeout   time.Duration `env:"AGENT_COMMAND_TIMEOUT,default=10m"`
	CommandAllowlist []string      `env:"AGENT_COMMAND_ALLOWLIST"`
	Workdir          string        `env:"AGENT_WORKDIR,default=."`
	ProjectConfig    string        `env:"AGENT_PROJECT_CONFIG"`

	GitHubToken string `env:"GITHUB_TOKEN"`
	Repository  string `env:"GITHUB_REPOSITORY"`
	RunID       string `env:"GITHUB_RUN_ID"`
	PostComment bool   `env:"AGENT_POST_COMMENT,default=false"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func (c config) validate() error {
	var errs []error
	provider, err := metaagent.ProviderFor(c.Model)
	switch {
	case err != nil:
		errs = append(errs, err)
	case provider == metaagent.Gemini && c.GeminiAPIKey == "":
		errs = append(errs, errors.New("GEMINI_API_KEY environment variable not set"))
	case provider == metaagent.Claude && c.AnthropicAPIKey == "":
		errs = append(errs, errors.New("ANTHROPIC_API_KEY environment variable not set"))
	}
	switch {
	case provider == metaagent.Claude && c.ThinkingBudget != 0 && c.ThinkingBudget < 1024:
		errs = append(errs, fmt.Errorf("AGENT_THINKING_BUDGET must be 0 or at least 1024 for Claude, got %d", c.ThinkingBudget))
	case c.ThinkingBudget < -1:
		errs = append(errs, fmt.Errorf("AGENT_THINKING_BUDGET must be -1, 0 or positive, got %d", c.ThinkingBudget))
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("AGENT_MAX_TURNS must be positive, got %d", c.MaxTurns))
	}
	if c.CommandTimeout <= 0 {
		errs = append(errs, fmt.Errorf("AGENT_COMMAND_TIMEOUT must be positive, got %v", c.CommandTimeout))
	}
	if c.PostComment && (c.GitHubToken == "" || c.Repository == "") {
		errs = append(errs, errors.New("AGENT_POST_COMMENT requires GITHUB_TOKEN and GITHUB_REPOSITORY"))
	}
	return errors.Join(errs...)
}

func (c config) policy() workspace.Policy {
	if len(c.CommandAllowlist) == 0 {
		return workspace.NewPolicy(workspace.DefaultAllowlist...)
	}
	return workspace.NewPolicy(c.CommandAllowlist...)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = clog.WithLogger(ctx, clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "failed to process config: %v", err)
	}
	if err := cfg.validate(); err != nil {
		clog.FatalContextf(ctx, "invalid config: %v", err)
	}

	shutdown, err := setupTelemetry(ctx, cfg.OTLPEndpoint)
	if err != nil {
		clog.FatalContextf(ctx, "failed to set up telemetry: %v", err)
	}

	runErr := run(ctx, cfg)

	flushCtx, flushCancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer flushCancel()
	if err := shutdown(flushCtx); err != nil {
		clog.FromContext(ctx).With("error", err).Warn("Failed to flush telemetry")
	}

	if runErr != nil {
		clog.FatalContextf(ctx, "agent run failed: %v", runErr)
	}
}

func run(ctx context.Context, cfg config) error {
	log := clog.FromContext(ctx)

	proj, err := project.Load(cfg.ProjectConfig)
	if err != nil {
		return err
	}

	ws, err := workspace.New(cfg.Workdir,
		workspace.WithPolicy(cfg.policy()),
		workspace.WithCommandTimeout(cfg.CommandTimeout))
	if err != nil {
		return err
	}

	is := issue.Issue{Number: cfg.IssueNumber, Title: cfg.IssueTitle, Body: cfg.IssueBody}
	var gh *issue.Client
	if cfg.GitHubToken != "" && cfg.Repository != "" {
		if gh, err = issue.NewClient(ctx, cfg.GitHubToken, cfg.Repository); err != nil {
			return err
		}
		if is, err = gh.Complete(ctx, is); err != nil {
			log.With("error", err).Warn("Could not load issue from GitHub, using workflow inputs")
		}
	}

	ctx = agenttrace.WithRunContext(ctx, agenttrace.RunContext{
		Repository:  cfg.Repository,
		IssueNumber: is.Number,
		RunID:       cfg.RunID,
	})
	var trace *agenttrace.Trace
	ctx = agenttrace.WithTracer(ctx, agenttrace.ByCode(
		agenttrace.LogTrace(ctx),
		func(t *agenttrace.Trace) { trace = t },
	))

	log.With("model", cfg.Model, "issue", is.Number, "workdir", ws.Root()).Info("Starting agent")
	agent, err := metaagent.New[*Request](ctx, cfg.Model, metaagent.Credentials{
		GeminiAPIKey:    cfg.GeminiAPIKey,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
	}, metaagent.Config[callbacks.WorkspaceCallbacks]{
		SystemInstructions: systemInstructions,
		UserPrompt:         userPrompt,
		Tools:              toolcall.WorkspaceProvider{},
		MaxTurns:           cfg.MaxTurns,
		ThinkingBudget:     cfg.ThinkingBudget,
	})
	if err != nil {
		return err
	}

	res, runErr := agent.Execute(ctx, &Request{Issue: is, Project: proj}, ws.Callbacks())
	if runErr == nil {
		log.With("turns", res.Turns, "tool_calls", res.ToolCalls).Info("Agent finished")
		fmt.Fprintln(os.Stdout, res.Summary)
	}

	if cfg.PostComment && gh != nil {
		if err := postReport(ctx, gh, cfg.Model, is, ws.Root(), res, runErr, trace); err != nil {
			log.With("error", err).Warn("Failed to post report")
		}
	}
	return runErr
}

func postReport(ctx context.Context, gh *issue.Client, model string, is issue.Issue, root string, res *result.Result, runErr error, trace *agenttrace.Trace) error {
	report := issue.Report{Issue: is, Model: model, Result: res, Err: runErr}
	if trace != nil {
		report.ToolCalls = trace.ToolCalls
	}
	changed, err := issue.ChangedFiles(root)
	if err != nil {
		clog.FromContext(ctx).With("error", err).Warn("Could not list changed files")
	}
	report.ChangedFiles = changed
	return gh.Comment(ctx, is.Number, strings.TrimSpace(report.Markdown()))
}

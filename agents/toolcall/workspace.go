/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"

	"github.com/geminicli/issueagent/agents/agenttrace"
	"github.com/geminicli/issueagent/agents/toolcall/callbacks"
	"github.com/geminicli/issueagent/agents/toolcall/params"
)

// ReadFileArgs are the arguments of readFile.
type ReadFileArgs struct {
	Reasoning string `json:"reasoning,omitempty" jsonschema:"description=Why you are reading this file"`
	Path      string `json:"path" jsonschema:"required,description=The path to the file relative to the repository root"`
}

// WriteFileArgs are the arguments of writeFile.
type WriteFileArgs struct {
	Reasoning string `json:"reasoning,omitempty" jsonschema:"description=Why you are writing this file"`
	Path      string `json:"path" jsonschema:"required,description=The path to the file relative to the repository root"`
	Content   string `json:"content" jsonschema:"required,description=The complete new content of the file"`
}

// ListFilesArgs are the arguments of listFiles.
type ListFilesArgs struct {
	Reasoning string `json:"reasoning,omitempty" jsonschema:"description=Why you are listing this directory"`
	Directory string `json:"directory" jsonschema:"required,description=The path to the directory. Use . for the repository root"`
}

// RunShellCommandArgs are the arguments of runShellCommand.
type RunShellCommandArgs struct {
	Reasoning string `json:"reasoning,omitempty" jsonschema:"description=Why you are running this command"`
	Command   string `json:"command" jsonschema:"required,description=The command to execute"`
}

// WorkspaceTools returns the readFile, writeFile, listFiles and runShellCommand tools over cb.
func WorkspaceTools(cb callbacks.WorkspaceCallbacks) []Tool {
	return []Tool{{
		Def:     Define[ReadFileArgs](ReadFile, "Read the content of a file at a given path."),
		Handler: readFileHandler(cb.ReadFile),
	}, {
		Def:     Define[WriteFileArgs](WriteFile, "Write content to a file at a given path. Creates directories if they don't exist."),
		Handler: writeFileHandler(cb.WriteFile),
	}, {
		Def:     Define[ListFilesArgs](ListFiles, "List all files recursively in a given directory path."),
		Handler: listFilesHandler(cb.ListFiles),
	}, {
		Def:     Define[RunShellCommandArgs](RunShellCommand, "Execute a shell command. Important for testing (./gradlew test), building (./gradlew build), etc."),
		Handler: runShellCommandHandler(cb.RunCommand),
	}}
}

// logReasoning logs the model's stated reason for a call, when it gave one.
func logReasoning(ctx context.Context, call ToolCall) {
	if r, ok := call.Args["reasoning"].(string); ok && r != "" {
		clog.FromContext(ctx).With("tool", call.Name).Info("Tool call reasoning", "reasoning", r)
	}
}

func readFileHandler(readFile func(context.Context, string) (string, error)) Handler {
	return func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any {
		path, errResp := Param[string](call, trace, "path")
		if errResp != nil {
			return errResp
		}
		logReasoning(ctx, call)
		clog.InfoContextf(ctx, "Tool: Reading file from %s", path)

		tc := trace.StartToolCall(call.ID, call.Name, call.Args)
		content, err := readFile(ctx, path)
		if err != nil {
			result := params.ErrorWithContext(fmt.Errorf("Error reading file: %w", err), map[string]any{"path": path})
			tc.Complete(result, err)
			return result
		}
		result := params.Output(content, map[string]any{"path": path})
		tc.Complete(result, nil)
		return result
	}
}

func writeFileHandler(writeFile func(context.Context, string, string) error) Handler {
	return func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any {
		path, errResp := Param[string](call, trace, "path")
		if errResp != nil {
			return errResp
		}
		content, errResp := Param[string](call, trace, "content")
		if errResp != nil {
			return errResp
		}
		logReasoning(ctx, call)
		clog.InfoContextf(ctx, "Tool: Writing to file %s", path)

		tc := trace.StartToolCall(call.ID, call.Name, call.Args)
		if err := writeFile(ctx, path, content); err != nil {
			result := params.ErrorWithContext(fmt.Errorf("Error writing file: %w", err), map[string]any{"path": path})
			tc.Complete(result, err)
			return result
		}
		result := params.Output(fmt.Sprintf("Successfully wrote %d bytes to %s", len(content), path), map[string]any{"path": path})
		tc.Complete(result, nil)
		return result
	}
}

func listFilesHandler(listFiles func(context.Context, string) ([]string, error)) Handler {
	return func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any {
		dir, errResp := Param[string](call, trace, "directory")
		if errResp != nil {
			return errResp
		}
		logReasoning(ctx, call)
		clog.InfoContextf(ctx, "Tool: Listing files in %s", dir)

		tc := trace.StartToolCall(call.ID, call.Name, call.Args)
		files, err := listFiles(ctx, dir)
		if err != nil {
			result := params.ErrorWithContext(fmt.Errorf("Error listing files: %w", err), map[string]any{"directory": dir})
			tc.Complete(result, err)
			return result
		}
		result := params.Output(strings.Join(files, "\n"), map[string]any{"directory": dir, "count": len(files)})
		tc.Complete(result, nil)
		return result
	}
}

func runShellCommandHandler(run func(context.Context, string) (string, error)) Handler {
	return func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any {
		command, errResp := Param[string](call, trace, "command")
		if errResp != nil {
			return errResp
		}
		logReasoning(ctx, call)
		clog.InfoContextf(ctx, "Tool: Running shell command: %s", command)

		tc := trace.StartToolCall(call.ID, call.Name, call.Args)
		out, err := run(ctx, command)
		if err != nil {
			result := params.ErrorWithContext(fmt.Errorf("Error executing command: %w", err), map[string]any{"command": command})
			tc.Complete(result, err)
			return result
		}
		result := params.Output(out, map[string]any{"command": command})
		tc.Complete(result, nil)
		return result
	}
}

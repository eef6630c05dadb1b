/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace records what happened during one agent run.

A Trace spans a single issue-resolution run: the prompt that started it, each
model turn, every tool call (including calls the model got wrong), and the
final answer. Traces and tool calls are mirrored as OpenTelemetry spans, and a
completed trace is handed to the Tracer found on the context.

	ctx = agenttrace.WithRunContext(ctx, agenttrace.RunContext{
		Repository:  "geminicli/export-android-strings",
		IssueNumber: "42",
	})
	ctx = agenttrace.WithTracer(ctx, agenttrace.ByCode(func(tr *agenttrace.Trace) {
		log.Printf("run %s used %d turns", tr.ID, tr.Turns)
	}))

	trace := agenttrace.StartTrace(ctx, prompt)
	tc := trace.StartToolCall("call-1", "readFile", map[string]any{"path": "build.gradle"})
	tc.Complete(map[string]any{"output": "..."}, nil)
	trace.Complete("All tests pass.", nil)

Without an explicit tracer the default tracer logs the trace through clog.
*/
package agenttrace

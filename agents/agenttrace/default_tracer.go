/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// NewDefaultTracer returns a tracer that logs completed traces through clog.
func NewDefaultTracer(ctx context.Context) Tracer {
	return ByCode(LogTrace(ctx))
}

// LogTrace returns a callback that logs a completed trace with the logger on ctx.
func LogTrace(ctx context.Context) TraceCallback {
	log := clog.FromContext(ctx)
	return func(trace *Trace) {
		log.With(
			"trace_id", trace.ID,
			"duration_ms", trace.Duration().Milliseconds(),
			"turns", trace.Turns,
			"tool_calls", len(trace.ToolCalls),
		).Info("Agent run completed", "trace", trace.String())
	}
}

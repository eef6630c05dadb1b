/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// RunContext identifies the issue a run is working on.
// It labels spans and enriches metrics.
type RunContext struct {
	Repository  string `json:"repository,omitempty"`   // owner/repo, when known
	IssueNumber string `json:"issue_number,omitempty"` // as delivered by the workflow
	RunID       string `json:"run_id,omitempty"`       // GitHub Actions run id, when known
}

// Attributes returns span attributes for the non-empty fields.
func (r RunContext) Attributes() []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if r.Repository != "" {
		attrs = append(attrs, attribute.String("repository", r.Repository))
	}
	if r.IssueNumber != "" {
		attrs = append(attrs, attribute.String("issue_number", r.IssueNumber))
	}
	if r.RunID != "" {
		attrs = append(attrs, attribute.String("run_id", r.RunID))
	}
	return attrs
}

// EnrichAttributes appends bounded run labels to metric attributes.
// Issue numbers and run ids are left to traces; they would explode metric cardinality.
func (r RunContext) EnrichAttributes(base []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(base), len(base)+1)
	copy(attrs, base)
	if r.Repository != "" {
		attrs = append(attrs, attribute.String("repository", r.Repository))
	}
	return attrs
}

type runContextKey struct{}

// WithRunContext attaches run identification to ctx.
func WithRunContext(ctx context.Context, rc RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// GetRunContext returns the run identification on ctx, or the zero value.
func GetRunContext(ctx context.Context) RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(RunContext); ok {
		return rc
	}
	return RunContext{}
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/geminicli/issueagent/agents/agenttrace"
)

// AttributeEnricher adds contextual attributes to the base set (model, tool).
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue

// RunContextEnricher labels metrics with the run context found on ctx.
func RunContextEnricher(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	return agenttrace.GetRunContext(ctx).EnrichAttributes(baseAttrs)
}

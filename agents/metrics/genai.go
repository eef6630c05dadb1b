/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is shared by every executor; the model is a dimension.
const MeterName = "geminicli.issueagent"

// GenAI counts token usage, turns and tool calls for an agent run.
// A counter that cannot be created degrades to a no-op.
type GenAI struct {
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	turns            metric.Int64Counter
	toolCalls        metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates the counters on the named meter of the global provider.
func NewGenAI(meterName string) *GenAI {
	return newGenAI(otel.GetMeterProvider(), meterName)
}

func newGenAI(mp metric.MeterProvider, meterName string) *GenAI {
	meter := mp.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))
	return &GenAI{
		promptTokens:     counter(meter, meterName, "genai.token.prompt", "The number of prompt tokens used", "{tokens}"),
		completionTokens: counter(meter, meterName, "genai.token.completion", "The number of completion tokens used", "{tokens}"),
		turns:            counter(meter, meterName, "genai.turns", "The number of model round-trips", "{turns}"),
		toolCalls:        counter(meter, meterName, "genai.tool.calls", "The number of tool calls made during execution", "{calls}"),
		attrEnricher:     RunContextEnricher,
	}
}

func counter(meter metric.Meter, meterName, name, desc, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		slog.Warn("Failed to create counter, metric will be disabled", "error", err, "meter", meterName, "counter", name)
		return noop.Int64Counter{}
	}
	return c
}

func (m *GenAI) attributes(ctx context.Context, base []attribute.KeyValue, extra []attribute.KeyValue) metric.MeasurementOption {
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return metric.WithAttributes(append(base, extra...)...)
}

// RecordTurn counts one model round-trip and its token usage.
func (m *GenAI) RecordTurn(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	opt := m.attributes(ctx, []attribute.KeyValue{attribute.String("model", model)}, attrs)
	m.turns.Add(ctx, 1, opt)
	m.promptTokens.Add(ctx, promptTokens, opt)
	m.completionTokens.Add(ctx, completionTokens, opt)
}

// RecordToolCall counts a tool invocation and whether it produced an error result.
func (m *GenAI) RecordToolCall(ctx context.Context, model, toolName string, failed bool, attrs ...attribute.KeyValue) {
	m.toolCalls.Add(ctx, 1, m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("tool", toolName),
		attribute.Bool("error", failed),
	}, attrs))
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/geminicli/issueagent/agents/agenttrace"
)

func TestRunContextEnricher(t *testing.T) {
	ctx := agenttrace.WithRunContext(context.Background(), agenttrace.RunContext{
		Repository:  "octo/repo",
		IssueNumber: "9",
	})
	base := []attribute.KeyValue{attribute.String("model", "gemini-2.5-pro")}

	got := RunContextEnricher(ctx, base)

	if len(got) != 2 {
		t.Fatalf("attributes: got = %d, wanted = 2", len(got))
	}
	if got[1].Key != "repository" || got[1].Value.AsString() != "octo/repo" {
		t.Errorf("enriched attribute: got = %v, wanted = repository=octo/repo", got[1])
	}
	if len(base) != 1 {
		t.Errorf("base attributes mutated: got = %d, wanted = 1", len(base))
	}
}

func TestGenAIRecording(t *testing.T) {
	m := NewGenAI(MeterName)
	called := 0
	m.attrEnricher = func(_ context.Context, base []attribute.KeyValue) []attribute.KeyValue {
		called++
		return base
	}

	ctx := context.Background()
	m.RecordTurn(ctx, "gemini-2.5-pro", 10, 2)
	m.RecordToolCall(ctx, "gemini-2.5-pro", "readFile", false)

	if called != 2 {
		t.Errorf("enricher calls: got = %d, wanted = 2", called)
	}
}

func TestGenAIExport(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m := newGenAI(mp, MeterName)
	ctx := agenttrace.WithRunContext(context.Background(), agenttrace.RunContext{Repository: "octo/repo"})
	m.RecordTurn(ctx, "gemini-2.5-pro", 120, 30)
	m.RecordTurn(ctx, "gemini-2.5-pro", 80, 10)
	m.RecordToolCall(ctx, "gemini-2.5-pro", "readFile", false)
	m.RecordToolCall(ctx, "gemini-2.5-pro", "runShellCommand", true)
	m.RecordToolCall(ctx, "gemini-2.5-pro", "readFile", false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() = %v", err)
	}

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != MeterName {
			continue
		}
		for _, md := range sm.Metrics {
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: got = %T, wanted = metricdata.Sum[int64]", md.Name, md.Data)
			}
			for _, dp := range sum.DataPoints {
				got[md.Name] += dp.Value
				if repo, _ := dp.Attributes.Value("repository"); repo.AsString() != "octo/repo" {
					t.Errorf("%s repository attribute: got = %q, wanted = %q", md.Name, repo.AsString(), "octo/repo")
				}
			}
		}
	}

	want := map[string]int64{
		"genai.turns":            2,
		"genai.token.prompt":     200,
		"genai.token.completion": 40,
		"genai.tool.calls":       3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported sums (-want +got):\n%s", diff)
	}
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/geminicli/issueagent/agents/metrics"
)

type collector struct {
	mu    sync.Mutex
	posts map[string]int
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.posts[r.Method+" "+r.URL.Path]++
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) count(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.posts[key]
}

func TestSetupTelemetryExports(t *testing.T) {
	col := &collector{posts: map[string]int{}}
	srv := httptest.NewServer(col)
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
	})
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", srv.URL)

	ctx := context.Background()
	shutdown, err := setupTelemetry(ctx, srv.URL)
	if err != nil {
		t.Fatalf("setupTelemetry() = %v", err)
	}

	_, span := otel.Tracer("issueagent.test").Start(ctx, "agent.run")
	span.End()
	metrics.NewGenAI(metrics.MeterName).RecordTurn(ctx, "gemini-2.5-pro", 10, 2)

	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown() = %v", err)
	}

	for _, key := range []string{"POST /v1/traces", "POST /v1/metrics"} {
		if got := col.count(key); got == 0 {
			t.Errorf("%s: got = %d requests, wanted at least 1", key, got)
		}
	}
}

func TestSetupTelemetryDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := setupTelemetry(context.Background(), "")
	if err != nil {
		t.Fatalf("setupTelemetry() = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() = %v, wanted nil", err)
	}
	if got := otel.GetTracerProvider(); got != before {
		t.Errorf("tracer provider: got = %T, wanted unchanged %T", got, before)
	}
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Tracer creates traces and receives them once complete.
type Tracer interface {
	// NewTrace creates a new trace for the given prompt.
	NewTrace(ctx context.Context, prompt string) *Trace
	// RecordTrace receives a completed trace.
	RecordTrace(trace *Trace)
}

type tracerKey struct{}

// WithTracer returns a context carrying tracer.
func WithTracer(ctx context.Context, tracer Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, tracer)
}

// TracerFromContext returns the tracer on ctx, or a default clog tracer.
func TracerFromContext(ctx context.Context) Tracer {
	if tracer, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return tracer
	}
	return NewDefaultTracer(ctx)
}

// StartTrace starts a trace with the tracer on ctx.
func StartTrace(ctx context.Context, prompt string) *Trace {
	return TracerFromContext(ctx).NewTrace(ctx, prompt)
}

// TraceCallback receives completed traces.
type TraceCallback func(*Trace)

type byCodeTracer struct {
	callbacks []TraceCallback
}

// ByCode returns a Tracer that hands each completed trace to every callback.
func ByCode(callbacks ...TraceCallback) Tracer {
	return &byCodeTracer{callbacks: callbacks}
}

func (t *byCodeTracer) NewTrace(ctx context.Context, prompt string) *Trace {
	return newTrace(ctx, t, prompt)
}

// RecordTrace runs the callbacks concurrently and waits for all of them.
func (t *byCodeTracer) RecordTrace(trace *Trace) {
	var g errgroup.Group
	for _, cb := range t.callbacks {
		if cb == nil {
			continue
		}
		g.Go(func() error {
			cb(trace)
			return nil
		})
	}
	_ = g.Wait()
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retry_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/geminicli/issueagent/agents/executor/retry"
)

func testConfig() retry.Config {
	return retry.Config{
		MaxRetries:  3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
	}
}

func alwaysRetryable(err error) bool { return err != nil }

func TestDoSuccess(t *testing.T) {
	var attempts atomic.Int32
	got, err := retry.Do(context.Background(), testConfig(), "op", alwaysRetryable, func() (string, error) {
		attempts.Add(1)
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("Do() = %q, %v; wanted ok, nil", got, err)
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("attempts: got = %d, wanted = 1", n)
	}
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	got, err := retry.Do(context.Background(), testConfig(), "op", alwaysRetryable, func() (int, error) {
		if attempts.Add(1) < 3 {
			return 0, errors.New("429 Too Many Requests")
		}
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("Do() = %d, %v; wanted 42, nil", got, err)
	}
	if n := attempts.Load(); n != 3 {
		t.Errorf("attempts: got = %d, wanted = 3", n)
	}
}

func TestDoExhausted(t *testing.T) {
	var attempts atomic.Int32
	transient := errors.New("503 unavailable")
	_, err := retry.Do(context.Background(), testConfig(), "send", alwaysRetryable, func() (int, error) {
		attempts.Add(1)
		return 0, transient
	})
	if !errors.Is(err, transient) {
		t.Errorf("error: got = %v, wanted wrapping %v", err, transient)
	}
	if err == nil || !strings.Contains(err.Error(), "send failed after 3 retries") {
		t.Errorf("error text: got = %v", err)
	}
	if n := attempts.Load(); n != 4 {
		t.Errorf("attempts: got = %d, wanted = 4", n)
	}
}

func TestDoPermanent(t *testing.T) {
	var attempts atomic.Int32
	permanent := errors.New("400 bad request")
	_, err := retry.Do(context.Background(), testConfig(), "op", retry.IsTransientMessage, func() (int, error) {
		attempts.Add(1)
		return 0, permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("error: got = %v, wanted wrapping %v", err, permanent)
	}
	if got, want := err.Error(), "op: 400 bad request"; got != want {
		t.Errorf("error text: got = %q, wanted = %q", got, want)
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("attempts: got = %d, wanted = 1", n)
	}
}

func TestDoNoRetries(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRetries = 0
	var attempts atomic.Int32
	_, err := retry.Do(context.Background(), cfg, "op", alwaysRetryable, func() (int, error) {
		attempts.Add(1)
		return 0, errors.New("429")
	})
	if err == nil {
		t.Error("error: got = nil, wanted = failure")
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("attempts: got = %d, wanted = 1", n)
	}
}

func TestDoCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := testConfig()
	cfg.BaseBackoff = time.Hour
	cfg.MaxBackoff = time.Hour

	_, err := retry.Do(ctx, cfg, "op", alwaysRetryable, func() (int, error) {
		cancel()
		return 0, errors.New("429")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got = %v, wanted = context.Canceled", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     retry.Config
		wantErr bool
	}{
		{name: "default", cfg: retry.DefaultConfig()},
		{name: "negative retries", cfg: retry.Config{MaxRetries: -1}, wantErr: true},
		{name: "negative base", cfg: retry.Config{BaseBackoff: -time.Second}, wantErr: true},
		{name: "negative max", cfg: retry.Config{MaxBackoff: -time.Second}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsTransientStatus(t *testing.T) {
	for code, want := range map[int]bool{200: false, 400: false, 404: false, 429: true, 500: true, 503: true, 529: true} {
		if got := retry.IsTransientStatus(code); got != want {
			t.Errorf("IsTransientStatus(%d) = %v, wanted %v", code, got, want)
		}
	}
}

func TestIsTransientMessage(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: errors.New("Error 429, Message: Resource exhausted"), want: true},
		{err: errors.New("RESOURCE_EXHAUSTED: quota"), want: true},
		{err: errors.New("503 Service Unavailable"), want: true},
		{err: errors.New("model is overloaded"), want: true},
		{err: errors.New("400 INVALID_ARGUMENT"), want: false},
		{err: errors.New("HTTP 502 Bad Gateway"), want: true},
		{err: errors.New("unexpected status code: 504"), want: true},
		{err: errors.New("prompt is 5030 tokens over the limit"), want: false},
		{err: errors.New("open /tmp/429/build.gradle: permission denied"), want: false},
		{err: errors.New("invalid argument: max tokens 4290 exceeds 429"), want: false},
	}
	for _, tt := range tests {
		if got := retry.IsTransientMessage(tt.err); got != tt.want {
			t.Errorf("IsTransientMessage(%v) = %v, wanted %v", tt.err, got, tt.want)
		}
	}
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), "test-token", "octo/widgets")
	if err != nil {
		t.Fatalf("NewClient() = %v", err)
	}
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	c.gh.BaseURL = base
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		repository string
		wantErr    bool
	}{
		{name: "valid", token: "t", repository: "octo/widgets"},
		{name: "no token", repository: "octo/widgets", wantErr: true},
		{name: "no slash", token: "t", repository: "widgets", wantErr: true},
		{name: "empty owner", token: "t", repository: "/widgets", wantErr: true},
		{name: "too deep", token: "t", repository: "a/b/c", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(context.Background(), tt.token, tt.repository)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.Repository() != tt.repository {
				t.Errorf("Repository(): got = %q, wanted = %q", c.Repository(), tt.repository)
			}
		})
	}
}

func TestFetchAndComplete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/widgets/issues/42", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization: got = %q, wanted = %q", got, "Bearer test-token")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"number": 42,
			"title":  "Add subtraction",
			"body":   "Calculator needs subtract().",
		})
	})
	c := testClient(t, mux)
	ctx := context.Background()

	got, err := c.Fetch(ctx, "#42")
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	want := Issue{Number: "42", Title: "Add subtraction", Body: "Calculator needs subtract()."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fetch() mismatch (-want +got):\n%s", diff)
	}

	completed, err := c.Complete(ctx, Issue{Number: "42", Body: "from the workflow"})
	if err != nil {
		t.Fatalf("Complete() = %v", err)
	}
	want = Issue{Number: "42", Title: "Add subtraction", Body: "from the workflow"}
	if diff := cmp.Diff(want, completed); diff != "" {
		t.Errorf("Complete() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteSkipsFetch(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	in := Issue{Number: "7", Title: "t", Body: "b"}
	got, err := c.Complete(context.Background(), in)
	if err != nil {
		t.Fatalf("Complete() = %v", err)
	}
	if got != in {
		t.Errorf("Complete(): got = %v, wanted = %v", got, in)
	}
}

func TestComment(t *testing.T) {
	var posted string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo/widgets/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		posted = body.Body
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "body": body.Body})
	})
	c := testClient(t, mux)

	if err := c.Comment(context.Background(), "42", "All tests pass."); err != nil {
		t.Fatalf("Comment() = %v", err)
	}
	if posted != "All tests pass." {
		t.Errorf("posted body: got = %q, wanted = %q", posted, "All tests pass.")
	}
}

func TestInvalidNumber(t *testing.T) {
	c := testClient(t, http.NotFoundHandler())
	for _, n := range []string{"", "abc", "0", "-3"} {
		if _, err := c.Fetch(context.Background(), n); err == nil {
			t.Errorf("Fetch(%q) = nil, wanted error", n)
		}
	}
}

func TestFetchNotFound(t *testing.T) {
	c := testClient(t, http.NotFoundHandler())
	if _, err := c.Fetch(context.Background(), "1"); err == nil {
		t.Error("Fetch() = nil, wanted error")
	}
}

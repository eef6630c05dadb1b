/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{{
		name:  "plain text",
		input: "  All tests pass.\n",
		want:  "All tests pass.",
	}, {
		name:  "fenced with info string",
		input: "```markdown\n## Summary\nFixed the export.\n```",
		want:  "## Summary\nFixed the export.",
	}, {
		name:  "fenced without info string",
		input: "```\nDone\n```",
		want:  "Done",
	}, {
		name:  "inner fence is kept",
		input: "Changed:\n```java\nclass A {}\n```",
		want:  "Changed:\n```java\nclass A {}\n```",
	}, {
		name:  "two blocks are kept",
		input: "```\na\n```\ntext\n```\nb\n```",
		want:  "```\na\n```\ntext\n```\nb\n```",
	}, {
		name:  "empty",
		input: "",
		want:  "",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Clean(tt.input)); diff != "" {
				t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew(t *testing.T) {
	got := New("```\nDone\n```", 3, 5)
	want := &Result{Summary: "Done", Turns: 3, ToolCalls: 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}
}

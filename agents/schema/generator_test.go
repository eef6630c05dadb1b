/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"testing"

	"github.com/geminicli/issueagent/agents/schema"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

type writeArgs struct {
	Reasoning string `json:"reasoning,omitempty" jsonschema:"description=Why the file is written"`
	Path      string `json:"path" jsonschema:"required,description=Target path"`
	Content   string `json:"content" jsonschema:"required,description=Full file content"`
}

func TestReflectType(t *testing.T) {
	s := schema.ReflectType[*writeArgs]()
	if s == nil {
		t.Fatal("ReflectType: got = nil, wanted = schema")
	}
	if s.Type != "object" {
		t.Errorf("type: got = %q, wanted = %q", s.Type, "object")
	}
	if diff := cmp.Diff([]string{"path", "content"}, s.Required); diff != "" {
		t.Errorf("required: (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"reasoning", "path", "content"}, schema.PropertyNames(s)); diff != "" {
		t.Errorf("property order: (-want +got):\n%s", diff)
	}
}

func TestPropertiesMap(t *testing.T) {
	props, err := schema.PropertiesMap(schema.ReflectType[writeArgs]())
	if err != nil {
		t.Fatalf("PropertiesMap: unexpected error: %v", err)
	}
	want := map[string]any{
		"reasoning": map[string]any{"type": "string", "description": "Why the file is written"},
		"path":      map[string]any{"type": "string", "description": "Target path"},
		"content":   map[string]any{"type": "string", "description": "Full file content"},
	}
	if diff := cmp.Diff(want, props); diff != "" {
		t.Errorf("PropertiesMap: (-want +got):\n%s", diff)
	}
}

func TestGenai(t *testing.T) {
	got := schema.Genai(schema.ReflectType[writeArgs]())
	if got.Type != genai.TypeObject {
		t.Errorf("type: got = %q, wanted = %q", got.Type, genai.TypeObject)
	}
	if len(got.Properties) != 3 {
		t.Fatalf("properties: got = %d, wanted = 3", len(got.Properties))
	}
	path := got.Properties["path"]
	if path.Type != genai.TypeString || path.Description != "Target path" {
		t.Errorf("path: got = %+v", path)
	}
	if diff := cmp.Diff([]string{"path", "content"}, got.Required); diff != "" {
		t.Errorf("required: (-want +got):\n%s", diff)
	}
	if schema.Genai(nil) != nil {
		t.Error("Genai(nil): got = non-nil, wanted = nil")
	}
}

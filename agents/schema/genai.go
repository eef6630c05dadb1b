/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// Genai converts a JSON schema into the subset understood by Gemini function declarations.
func Genai(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Title:       s.Title,
		Format:      s.Format,
		Pattern:     s.Pattern,
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	for _, v := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(v))
	}
	if s.Default != nil {
		out.Default = s.Default
	}

	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = Genai(pair.Value)
		}
		out.PropertyOrdering = PropertyNames(s)
	}
	if s.Items != nil {
		out.Items = Genai(s.Items)
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return ""
	}
}

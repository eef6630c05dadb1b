/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives tool parameter schemas from Go argument structs and
// converts them into the shapes each model provider expects.
package schema

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with the defaults used for tool arguments.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator for flat, inlined tool argument schemas.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// ReflectType reflects the schema of T, dereferencing pointer types.
func ReflectType[T any]() *jsonschema.Schema {
	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return NewGenerator().Reflect(reflect.New(typ).Interface())
}

// PropertyNames returns the property names of s in declaration order.
func PropertyNames(s *jsonschema.Schema) []string {
	if s == nil || s.Properties == nil {
		return nil
	}
	names := make([]string, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// PropertiesMap renders the properties of s as plain JSON maps, keyed by name.
func PropertiesMap(s *jsonschema.Schema) (map[string]any, error) {
	out := map[string]any{}
	if s == nil || s.Properties == nil {
		return out, nil
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		data, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		var prop map[string]any
		if err := json.Unmarshal(data, &prop); err != nil {
			return nil, err
		}
		out[pair.Key] = prop
	}
	return out, nil
}

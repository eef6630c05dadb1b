/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode"
)

// stringLiteral only accepts untyped string constants from callers.
type stringLiteral string

// Prompt is a template with named placeholders. Binding returns a new Prompt.
type Prompt struct {
	template string
	bindings map[string]binding
}

// Bindable is implemented by executor requests to fill their prompt.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}

// Noop binds nothing.
type Noop struct{}

// Bind returns prompt unchanged.
func (Noop) Bind(prompt *Prompt) (*Prompt, error) {
	return prompt, nil
}

// NewPrompt parses template and records its placeholders as unbound.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)
	tmpl, err := expand(string(template), func(name string) (string, error) {
		bindings[name] = unbound{}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Prompt{template: tmpl, bindings: bindings}, nil
}

// MustNewPrompt is NewPrompt for package-level templates; it panics on error.
func MustNewPrompt(template stringLiteral) *Prompt {
	p, err := NewPrompt(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Placeholders returns the placeholder names in the template.
func (p *Prompt) Placeholders() []string {
	names := make([]string, 0, len(p.bindings))
	for name := range p.bindings {
		names = append(names, name)
	}
	return names
}

// BindStringLiteral binds developer-authored text.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.bind(name, literal(value))
}

// BindXML binds data rendered with encoding/xml.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.bind(name, encoded{format: formatXML, data: data})
}

// BindJSON binds data rendered with encoding/json.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.bind(name, encoded{format: formatJSON, data: data})
}

// BindYAML binds data rendered with yaml.v3.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.bind(name, encoded{format: formatYAML, data: data})
}

func (p *Prompt) bind(name string, b binding) (*Prompt, error) {
	current, ok := p.bindings[name]
	if !ok {
		return nil, fmt.Errorf("binding %q not found in template", name)
	}
	if _, free := current.(unbound); !free {
		return nil, fmt.Errorf("binding %q already bound", name)
	}
	next := &Prompt{template: p.template, bindings: maps.Clone(p.bindings)}
	next.bindings[name] = b
	return next, nil
}

// Build renders the template.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		v, err := b.render(name)
		if err != nil {
			return "", err
		}
		values[name] = v
	}
	return expand(p.template, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("internal error: binding %q not found", name)
		}
		return v, nil
	})
}

// expand replaces every {{name}} in template with resolve(name).
func expand(template string, resolve func(name string) (string, error)) (string, error) {
	var out strings.Builder
	for {
		start := strings.Index(template, "{{")
		if start < 0 {
			out.WriteString(template)
			return out.String(), nil
		}
		out.WriteString(template[:start])

		end := strings.Index(template[start:], "}}")
		if end < 0 {
			return "", errors.New("unclosed binding: missing '}}'")
		}
		name := strings.TrimSpace(template[start+2 : start+end])
		if !isIdentifier(name) {
			return "", fmt.Errorf("invalid binding identifier %q", name)
		}
		v, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(v)
		template = template[start+end+2:]
	}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder fills {{name}} placeholders in prompt templates.
//
// Templates must be string literals. Developer text is bound with
// BindStringLiteral; anything that came from outside (issue bodies,
// project files) is bound as XML, JSON or YAML so it stays data:
//
//	p := promptbuilder.MustNewPrompt(`Resolve this issue:
//	{{issue}}`)
//	p, err := p.BindXML("issue", req)
//	text, err := p.Build()
//
// Build fails while any placeholder is still unbound.
package promptbuilder

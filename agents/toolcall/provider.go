/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"github.com/geminicli/issueagent/agents/toolcall/callbacks"
)

// Provider builds tools from a set of callbacks.
type Provider[CB any] interface {
	Tools(cb CB) []Tool
}

// WorkspaceProvider provides the four workspace tools.
type WorkspaceProvider struct{}

var _ Provider[callbacks.WorkspaceCallbacks] = WorkspaceProvider{}

// Tools implements Provider.
func (WorkspaceProvider) Tools(cb callbacks.WorkspaceCallbacks) []Tool {
	return WorkspaceTools(cb)
}

// NewWorkspaceRegistry registers the workspace tools over cb.
func NewWorkspaceRegistry(cb callbacks.WorkspaceCallbacks) (Registry, error) {
	return NewRegistry(WorkspaceProvider{}.Tools(cb)...)
}

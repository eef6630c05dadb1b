/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package toolcall is the registry of tools an agent may call.
//
// The set of tool names is closed: readFile, writeFile, listFiles and
// runShellCommand. Each name maps to one provider-independent Tool whose
// parameters are reflected from a Go argument struct. The googletool and
// claudetool packages turn a Registry into provider declarations.
//
//	reg, err := toolcall.NewRegistry(toolcall.WorkspaceTools(ws.Callbacks())...)
//	result := reg.Dispatch(ctx, call, trace)
//
// Tool handlers never return errors. Failures are described in the result map
// (see the params package) so the model can read them and try again.
package toolcall

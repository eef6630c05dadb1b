/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudetool adapts the tool registry to Claude tool use.
//
// ToolParams declares the registered tools, ToToolCall decodes a tool_use
// block, and ResultBlock wraps a tool result as a tool_result block.
package claudetool

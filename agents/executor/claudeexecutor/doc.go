/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor runs the tool-use loop against Claude.
//
// It follows the same contract as googleexecutor: tool_use blocks run in
// order against a toolcall.Registry, their results return in one user
// message, a reply without tool_use ends the run, and the turn budget fails
// closed with ErrTurnBudgetExhausted.
package claudeexecutor

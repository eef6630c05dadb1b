/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package callbacks declares the operations the workspace tools are built on.
//
// It has no model SDK dependencies, so the workspace package can implement
// the callbacks without importing genai or anthropic.
package callbacks

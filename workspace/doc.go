/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package workspace implements the agent's file and shell callbacks over a
// project checkout.
//
// File access goes through an afero filesystem rooted at the workspace, so
// paths that resolve outside the root are rejected. Shell commands run in the
// root under a per-command timeout and a program allowlist.
package workspace

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package issue loads the GitHub issue an agent run works on and reports the
// outcome back to it.
//
// The issue normally arrives through the workflow environment. When a token
// and repository are configured, Client fills in missing fields from the
// GitHub API and posts the final report as an issue comment.
package issue

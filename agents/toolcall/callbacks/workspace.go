/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package callbacks

import (
	"context"
)

// WorkspaceCallbacks operate on the checked-out project. Paths are relative to its root.
type WorkspaceCallbacks struct {
	// ReadFile returns the text of a file.
	ReadFile func(ctx context.Context, path string) (string, error)

	// WriteFile replaces a file's content, creating parent directories.
	WriteFile func(ctx context.Context, path, content string) error

	// ListFiles returns every regular file under dir, recursively.
	ListFiles func(ctx context.Context, dir string) ([]string, error)

	// RunCommand runs a shell command in the root and returns its output.
	// A non-zero exit is an error whose text carries the exit code, stdout and stderr.
	RunCommand func(ctx context.Context, command string) (string, error)
}

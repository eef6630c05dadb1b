/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5"
)

// ChangedFiles lists paths that differ from HEAD in the git worktree containing dir,
// untracked files included. Paths are relative to the repository root.
func ChangedFiles(dir string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting worktree status: %w", err)
	}

	files := make([]string, 0, len(status))
	for path, fs := range status {
		if fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified {
			continue
		}
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/afero"

	"github.com/geminicli/issueagent/agents/toolcall/callbacks"
)

// DefaultCommandTimeout bounds a single shell command.
const DefaultCommandTimeout = 10 * time.Minute

// Workspace is a project checkout the agent may read, write and run commands in.
type Workspace struct {
	root    string
	fs      afero.Fs
	policy  Policy
	timeout time.Duration
}

// Option configures a Workspace.
type Option func(*Workspace) error

// WithPolicy sets the command allowlist.
func WithPolicy(p Policy) Option {
	return func(w *Workspace) error {
		w.policy = p
		return nil
	}
}

// WithCommandTimeout sets the per-command timeout.
func WithCommandTimeout(d time.Duration) Option {
	return func(w *Workspace) error {
		if d <= 0 {
			return fmt.Errorf("command timeout must be positive, got %v", d)
		}
		w.timeout = d
		return nil
	}
}

// New returns a workspace rooted at the directory root on the host filesystem.
func New(root string, opts ...Option) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening workspace root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", abs)
	}
	return NewWithFs(afero.NewBasePathFs(afero.NewOsFs(), abs), abs, opts...)
}

// NewWithFs returns a workspace over fs. Commands run in root on the host.
func NewWithFs(fs afero.Fs, root string, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		root:    root,
		fs:      fs,
		policy:  NewPolicy(DefaultAllowlist...),
		timeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Root is the workspace directory on the host.
func (w *Workspace) Root() string { return w.root }

// ReadFile returns the content of path.
func (w *Workspace) ReadFile(_ context.Context, path string) (string, error) {
	b, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile writes content to path, creating parent directories.
func (w *Workspace) WriteFile(_ context.Context, path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return afero.WriteFile(w.fs, path, []byte(content), 0o644)
}

// ListFiles returns every regular file under dir, at any depth.
func (w *Workspace) ListFiles(_ context.Context, dir string) ([]string, error) {
	var files []string
	err := afero.Walk(w.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// CommandError is a command that ran and failed, or was killed at the timeout.
type CommandError struct {
	Command  string
	ExitCode int
	TimedOut bool
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	reason := fmt.Sprintf("command failed with exit code %d", e.ExitCode)
	if e.TimedOut {
		reason = "command timed out"
	}
	return fmt.Sprintf("%s: %s\nSTDOUT: %s\nSTDERR: %s", reason, e.Command, e.Stdout, e.Stderr)
}

// RunCommand runs command with sh in the workspace root and returns its stdout.
// Anything written to stderr follows under a STDERR: heading.
func (w *Workspace) RunCommand(ctx context.Context, command string) (string, error) {
	log := clog.FromContext(ctx).With("command", command)
	if err := w.policy.Check(command); err != nil {
		log.Warn("Rejected command", "error", err)
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = w.root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 5 * time.Second

	start := time.Now()
	err := cmd.Run()
	log = log.With("duration", time.Since(start))
	if err == nil {
		log.Info("Command succeeded")
		if stderr.Len() == 0 {
			return stdout.String(), nil
		}
		log.Debug("Command wrote to stderr", "stderr", stderr.String())
		return stdout.String() + "\nSTDERR: " + stderr.String(), nil
	}

	cerr := &CommandError{
		Command:  command,
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		cerr.TimedOut = true
		log.Warn("Command timed out", "timeout", w.timeout)
		return "", cerr
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return "", fmt.Errorf("starting command: %w", err)
	}
	cerr.ExitCode = exitErr.ExitCode()
	log.Info("Command failed", "exit_code", cerr.ExitCode)
	return "", cerr
}

// Callbacks exposes the workspace to the workspace tools.
func (w *Workspace) Callbacks() callbacks.WorkspaceCallbacks {
	return callbacks.WorkspaceCallbacks{
		ReadFile:   w.ReadFile,
		WriteFile:  w.WriteFile,
		ListFiles:  w.ListFiles,
		RunCommand: w.RunCommand,
	}
}

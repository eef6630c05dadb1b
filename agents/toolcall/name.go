/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"errors"
	"fmt"
	"slices"
)

// Name identifies a tool.
type Name string

const (
	ReadFile        Name = "readFile"
	WriteFile       Name = "writeFile"
	ListFiles       Name = "listFiles"
	RunShellCommand Name = "runShellCommand"
)

// Names lists every tool name in declaration order.
var Names = []Name{ReadFile, WriteFile, ListFiles, RunShellCommand}

// Valid reports whether n is a known tool name.
func (n Name) Valid() bool {
	return slices.Contains(Names, n)
}

// ErrUnknownTool matches any *UnknownToolError.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolError reports a tool name that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownTool) hold.
func (e *UnknownToolError) Is(target error) bool {
	return target == ErrUnknownTool
}

// ParseName converts a model-supplied name into a Name.
func ParseName(s string) (Name, error) {
	if n := Name(s); n.Valid() {
		return n, nil
	}
	return "", &UnknownToolError{Name: s}
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrCommandNotAllowed is returned for commands whose programs are not on the allowlist.
var ErrCommandNotAllowed = errors.New("command not allowed")

// Unrestricted is the allowlist entry that permits any program.
const Unrestricted = "*"

// DefaultAllowlist covers building and testing a Gradle project plus read-only inspection.
var DefaultAllowlist = []string{
	"./gradlew", "gradle", "mvn", "java", "javac",
	"git", "cd", "ls", "cat", "find", "grep", "head", "tail", "wc", "pwd", "echo", "diff",
}

// Policy decides which commands may run.
type Policy struct {
	allowed []string
}

// NewPolicy returns a policy permitting the named programs. An entry of "*" permits everything.
// An empty list permits nothing.
func NewPolicy(programs ...string) Policy {
	var allowed []string
	for _, p := range programs {
		if p = strings.TrimSpace(p); p != "" {
			allowed = append(allowed, p)
		}
	}
	return Policy{allowed: allowed}
}

// Unrestricted reports whether the policy permits every program.
func (p Policy) Unrestricted() bool {
	return slices.Contains(p.allowed, Unrestricted)
}

// substitutions run commands that are not visible as pipeline segments.
var substitutions = []string{"`", "$(", "<(", ">("}

// execFlags make an otherwise allowed program run another one.
var execFlags = map[string][]string{
	"find": {"-exec", "-execdir", "-ok", "-okdir"},
}

// Check returns an error wrapping ErrCommandNotAllowed when any program in command is not allowed.
// Commands using substitution are rejected outright.
func (p Policy) Check(command string) error {
	if p.Unrestricted() {
		return nil
	}
	for _, sub := range substitutions {
		if strings.Contains(command, sub) {
			return fmt.Errorf("%w: %q substitution is not permitted", ErrCommandNotAllowed, sub)
		}
	}
	segs := segments(command)
	if len(segs) == 0 {
		return fmt.Errorf("%w: empty command", ErrCommandNotAllowed)
	}
	for _, words := range segs {
		prog := words[0]
		if !p.allows(prog) {
			return fmt.Errorf("%w: %q is not in the allowlist %v", ErrCommandNotAllowed, prog, p.allowed)
		}
		for _, flag := range execFlags[filepath.Base(prog)] {
			if slices.Contains(words[1:], flag) {
				return fmt.Errorf("%w: %s %s runs other programs", ErrCommandNotAllowed, prog, flag)
			}
		}
	}
	return nil
}

func (p Policy) allows(program string) bool {
	for _, a := range p.allowed {
		if program == a {
			return true
		}
		// A bare entry also matches the program invoked by path, e.g. "gradlew" and "./gradlew".
		if !strings.Contains(a, "/") && filepath.Base(program) == a {
			return true
		}
	}
	return false
}

// Programs returns the program of every segment in command, in order.
// Segments are separated by ;, &, &&, ||, | and newlines; & inside a
// redirection such as 2>&1 or &>file is not a separator. Leading environment
// assignments are skipped.
func Programs(command string) []string {
	var programs []string
	for _, words := range segments(command) {
		programs = append(programs, words[0])
	}
	return programs
}

// segments splits command into the words of each segment, starting at its program.
func segments(command string) [][]string {
	var out [][]string
	for _, seg := range splitSegments(command) {
		words := strings.Fields(seg)
		for len(words) > 0 && (isAssignment(words[0]) || strings.Trim(words[0], "(){}") == "") {
			words = words[1:]
		}
		if len(words) == 0 {
			continue
		}
		words[0] = strings.Trim(words[0], "(){}")
		out = append(out, words)
	}
	return out
}

func splitSegments(command string) []string {
	var (
		segs []string
		cur  strings.Builder
	)
	flush := func() {
		segs = append(segs, cur.String())
		cur.Reset()
	}
	for i := 0; i < len(command); i++ {
		c := command[i]
		switch c {
		case ';', '\n', '|':
			flush()
		case '&':
			prev, next := byte(0), byte(0)
			if i > 0 {
				prev = command[i-1]
			}
			if i+1 < len(command) {
				next = command[i+1]
			}
			// 2>&1, <&3 and &>file redirect; they do not start a command.
			if prev == '>' || prev == '<' || next == '>' {
				cur.WriteByte(c)
				continue
			}
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return segs
}

func isAssignment(word string) bool {
	name, _, ok := strings.Cut(word, "=")
	if !ok || name == "" {
		return false
	}
	for i, c := range name {
		if c != '_' && (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return true
}

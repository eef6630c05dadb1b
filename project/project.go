/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package project describes the repository the agent works on: its language,
// how to build and test it, and where sources live.
package project

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Context is the project description handed to the model.
type Context struct {
	Language     string   `yaml:"language" xml:"language"`
	BuildTool    string   `yaml:"buildTool" xml:"build_tool"`
	BuildCommand string   `yaml:"buildCommand" xml:"build_command"`
	TestCommand  string   `yaml:"testCommand" xml:"test_command"`
	SourceDir    string   `yaml:"sourceDir" xml:"source_dir"`
	TestDir      string   `yaml:"testDir" xml:"test_dir"`
	Notes        []string `yaml:"notes,omitempty" xml:"notes>note,omitempty"`
}

// Default is a Java project built with Gradle.
func Default() Context {
	return Context{
		Language:     "Java",
		BuildTool:    "Gradle",
		BuildCommand: "./gradlew build",
		TestCommand:  "./gradlew test",
		SourceDir:    "src/main/java",
		TestDir:      "src/test/java",
	}
}

// Load reads a YAML project file over the defaults. An empty path returns the defaults.
func Load(path string) (Context, error) {
	ctx := Default()
	if path == "" {
		return ctx, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Context{}, fmt.Errorf("reading project config: %w", err)
	}
	if err := yaml.Unmarshal(b, &ctx); err != nil {
		return Context{}, fmt.Errorf("parsing project config %s: %w", path, err)
	}
	if err := ctx.Validate(); err != nil {
		return Context{}, fmt.Errorf("project config %s: %w", path, err)
	}
	return ctx, nil
}

// Validate checks that the commands the agent is told to run are present.
func (c Context) Validate() error {
	var errs []error
	if c.BuildCommand == "" {
		errs = append(errs, errors.New("buildCommand is required"))
	}
	if c.TestCommand == "" {
		errs = append(errs, errors.New("testCommand is required"))
	}
	return errors.Join(errs...)
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/geminicli/issueagent/agents/promptbuilder"
	"github.com/geminicli/issueagent/issue"
	"github.com/geminicli/issueagent/project"
)

// Request is the issue to solve and the project it belongs to.
type Request struct {
	Issue   issue.Issue
	Project project.Context
}

// Bind implements promptbuilder.Bindable.
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	p, err := prompt.BindXML("issue", r.Issue)
	if err != nil {
		return nil, err
	}
	return p.BindYAML("project", r.Project)
}

var systemInstructions = promptbuilder.MustNewPrompt(`You are Gemini-CLI, an expert software engineer AI assistant.
You work inside a checkout of the project with four tools: readFile, writeFile, listFiles and runShellCommand.
Paths are relative to the project root. Shell commands run in the project root.

RULES:
- Read a file before you change it and keep unrelated content intact.
- Follow the conventions of the existing code.
- Never claim tests pass without running them.
- When a tool returns an error, read it and adjust instead of repeating the same call.`)

var userPrompt = promptbuilder.MustNewPrompt(`Your task is to solve the GitHub issue described below.
The user has requested a new feature or bug fix. Your goal is to implement it, test it, and ensure the code is ready to be committed.

**ISSUE:**
{{issue}}

**CONTEXT:**
{{project}}

**PLAN:**
1. First, understand the project structure. Use 'listFiles' on 'src' to see the existing files.
2. Based on the issue description, formulate a plan. Think step-by-step about which files to read, modify, or create.
3. Implement the changes using 'readFile' and 'writeFile'.
4. If you add new logic, you MUST add or update tests. Use 'readFile' to understand existing tests for context.
5. After making changes, ALWAYS run the test command to ensure you haven't broken anything.
6. If tests fail, debug the issue and fix it. Repeat until all tests pass.
7. Once all tests pass, respond with a final message summarizing the changes you made and the test results. Do not call any tools in that message.`)

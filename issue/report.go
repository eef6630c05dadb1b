/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/geminicli/issueagent/agents/agenttrace"
	"github.com/geminicli/issueagent/agents/result"
)

// Report is the comment posted when a run finishes.
type Report struct {
	Issue        Issue
	Model        string
	Result       *result.Result
	Err          error
	ToolCalls    []*agenttrace.ToolCall
	ChangedFiles []string
}

// Markdown renders the report.
func (r Report) Markdown() string {
	var sb strings.Builder

	switch {
	case r.Err != nil:
		fmt.Fprintf(&sb, "### Agent run for #%s failed\n\n", r.Issue.Number)
		fmt.Fprintf(&sb, "```\n%v\n```\n", r.Err)
	case r.Result != nil:
		fmt.Fprintf(&sb, "### Agent run for #%s\n\n", r.Issue.Number)
		sb.WriteString(r.Result.Summary)
		sb.WriteString("\n")
	}

	var stats []string
	if r.Model != "" {
		stats = append(stats, fmt.Sprintf("model `%s`", r.Model))
	}
	if r.Result != nil {
		stats = append(stats, fmt.Sprintf("%d turns", r.Result.Turns), fmt.Sprintf("%d tool calls", r.Result.ToolCalls))
	}
	if len(stats) > 0 {
		fmt.Fprintf(&sb, "\n_%s_\n", strings.Join(stats, ", "))
	}

	if len(r.ToolCalls) > 0 {
		sb.WriteString("\n<details><summary>Tool calls</summary>\n\n")
		writeToolCallTable(&sb, r.ToolCalls)
		sb.WriteString("\n</details>\n")
	}

	if len(r.ChangedFiles) > 0 {
		sb.WriteString("\n#### Changed files\n\n")
		for _, f := range r.ChangedFiles {
			fmt.Fprintf(&sb, "- `%s`\n", f)
		}
	}
	return sb.String()
}

func writeToolCallTable(sb *strings.Builder, calls []*agenttrace.ToolCall) {
	table := tablewriter.NewTable(sb,
		tablewriter.WithHeader([]string{"#", "Tool", "Argument", "Status", "Duration"}),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{Formatting: tw.CellFormatting{AutoFormat: tw.Off}},
		}),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
	for i, tc := range calls {
		status := "ok"
		if tc.Error != nil {
			status = "error"
		}
		_ = table.Append([]string{
			fmt.Sprint(i + 1),
			tc.Name,
			primaryArgument(tc.Params),
			status,
			tc.EndTime.Sub(tc.StartTime).Round(time.Millisecond).String(),
		})
	}
	_ = table.Render()
}

// primaryArgument picks the argument that identifies what a call touched.
func primaryArgument(params map[string]any) string {
	for _, k := range []string{"path", "directory", "command"} {
		if v, ok := params[k].(string); ok {
			v = strings.ReplaceAll(v, "|", `\|`)
			if len(v) > 60 {
				v = v[:57] + "..."
			}
			return "`" + v + "`"
		}
	}
	return ""
}

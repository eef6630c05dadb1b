/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

// Issue is the request an agent run works on.
type Issue struct {
	XMLName xml.Name `xml:"issue" json:"-"`
	Number  string   `xml:"number" json:"number"`
	Title   string   `xml:"title,omitempty" json:"title,omitempty"`
	Body    string   `xml:"body" json:"body"`
}

// Client reads and comments on issues of one repository.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// NewClient returns a client for repository ("owner/repo") authenticated with token.
func NewClient(ctx context.Context, token, repository string) (*Client, error) {
	if token == "" {
		return nil, errors.New("github token is required")
	}
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("repository must be owner/repo, got %q", repository)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		gh:    github.NewClient(oauth2.NewClient(ctx, ts)),
		owner: owner,
		repo:  repo,
	}, nil
}

// Repository returns "owner/repo".
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// Fetch loads an issue by number.
func (c *Client) Fetch(ctx context.Context, number string) (Issue, error) {
	n, err := parseNumber(number)
	if err != nil {
		return Issue{}, err
	}
	is, _, err := c.gh.Issues.Get(ctx, c.owner, c.repo, n)
	if err != nil {
		return Issue{}, fmt.Errorf("fetch issue: %w", err)
	}
	return Issue{
		Number: strconv.Itoa(is.GetNumber()),
		Title:  is.GetTitle(),
		Body:   is.GetBody(),
	}, nil
}

// Complete fills an empty title or body from the API. Fields already set are kept.
func (c *Client) Complete(ctx context.Context, is Issue) (Issue, error) {
	if is.Number == "" || (is.Title != "" && is.Body != "") {
		return is, nil
	}
	fetched, err := c.Fetch(ctx, is.Number)
	if err != nil {
		return is, err
	}
	if is.Title == "" {
		is.Title = fetched.Title
	}
	if is.Body == "" {
		is.Body = fetched.Body
	}
	return is, nil
}

// Comment posts body as a comment on the issue.
func (c *Client) Comment(ctx context.Context, number, body string) error {
	n, err := parseNumber(number)
	if err != nil {
		return err
	}
	comment, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, n, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	clog.FromContext(ctx).With("issue", n, "url", comment.GetHTMLURL()).Info("Posted agent report")
	return nil
}

func parseNumber(number string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(number), "#"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid issue number %q", number)
	}
	return n, nil
}

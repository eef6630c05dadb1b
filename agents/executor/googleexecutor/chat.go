/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"

	"google.golang.org/genai"
)

// Chat is an open conversation with a model.
type Chat interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Chats opens conversations.
type Chats interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (Chat, error)
}

type clientChats struct {
	client *genai.Client
}

// ClientChats opens conversations through a genai client.
func ClientChats(client *genai.Client) Chats {
	return clientChats{client: client}
}

func (c clientChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (Chat, error) {
	return c.client.Chats.Create(ctx, model, config, history)
}

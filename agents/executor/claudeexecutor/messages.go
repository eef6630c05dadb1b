/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// Messages sends one request and returns the complete reply.
type Messages interface {
	New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

type streamingMessages struct {
	client anthropic.Client
}

// ClientMessages streams replies through client and accumulates them.
func ClientMessages(client anthropic.Client) Messages {
	return streamingMessages{client: client}
}

func (s streamingMessages) New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	stream := s.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	var msg anthropic.Message
	for stream.Next() {
		if err := msg.Accumulate(stream.Current()); err != nil {
			return nil, fmt.Errorf("failed to accumulate event: %w", err)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return &msg, nil
}

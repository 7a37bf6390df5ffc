package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

func (c *Client) ChatHistory(ctx context.Context) ([]ChatMessage, error) {
	return call[[]ChatMessage](ctx, c, endpoint{op: "get chat history", method: http.MethodGet, path: "/chat", fallback: "Failed to get chat history"})
}

// SendMessage posts a user message and returns the assistant's reply.
func (c *Client) SendMessage(ctx context.Context, text string) (ChatMessage, error) {
	e := endpoint{
		op:       "send message",
		method:   http.MethodPost,
		path:     "/chat",
		body:     map[string]string{"message": text},
		fallback: "Failed to send message",
	}
	if strings.TrimSpace(text) == "" {
		return ChatMessage{}, e.validationError(errors.New("message is required"))
	}
	return call[ChatMessage](ctx, c, e)
}

func (c *Client) ResetChat(ctx context.Context) (Message, error) {
	return call[Message](ctx, c, endpoint{op: "reset chat history", method: http.MethodPost, path: "/chat/reset", fallback: "Failed to reset chat history"})
}

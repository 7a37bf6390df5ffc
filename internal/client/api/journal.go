package api

import (
	"context"
	"net/http"
)

func (c *Client) ListJournalEntries(ctx context.Context, page, limit int) (JournalPage, error) {
	return call[JournalPage](ctx, c, endpoint{
		op:       "list journal entries",
		method:   http.MethodGet,
		path:     "/journal",
		query:    pageQuery(page, limit),
		fallback: "Failed to get journal entries",
	})
}

func (c *Client) GetJournalEntry(ctx context.Context, id string) (JournalEntry, error) {
	e := endpoint{op: "get journal entry", method: http.MethodGet, fallback: "Failed to get journal entry"}
	if err := requireID(&e, "id", id, "/journal/%s"); err != nil {
		return JournalEntry{}, err
	}
	return call[JournalEntry](ctx, c, e)
}

func (c *Client) CreateJournalEntry(ctx context.Context, in JournalEntryInput) (JournalEntry, error) {
	e := endpoint{op: "create journal entry", method: http.MethodPost, path: "/journal", body: in, fallback: "Failed to create journal entry"}
	if err := c.checkInput(e, in); err != nil {
		return JournalEntry{}, err
	}
	return call[JournalEntry](ctx, c, e)
}

func (c *Client) UpdateJournalEntry(ctx context.Context, id string, in JournalEntryInput) (JournalEntry, error) {
	e := endpoint{op: "update journal entry", method: http.MethodPut, body: in, fallback: "Failed to update journal entry"}
	if err := requireID(&e, "id", id, "/journal/%s"); err != nil {
		return JournalEntry{}, err
	}
	if err := c.checkInput(e, in); err != nil {
		return JournalEntry{}, err
	}
	return call[JournalEntry](ctx, c, e)
}

func (c *Client) DeleteJournalEntry(ctx context.Context, id string) (Message, error) {
	e := endpoint{op: "delete journal entry", method: http.MethodDelete, fallback: "Failed to delete journal entry"}
	if err := requireID(&e, "id", id, "/journal/%s"); err != nil {
		return Message{}, err
	}
	return call[Message](ctx, c, e)
}

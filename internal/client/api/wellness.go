package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListMeditations returns the meditation catalogue. refresh asks the server
// to rebuild its recommendations.
func (c *Client) ListMeditations(ctx context.Context, refresh bool) ([]Meditation, error) {
	e := endpoint{op: "list meditations", method: http.MethodGet, path: "/meditation", fallback: "Failed to get meditations"}
	if refresh {
		e.query = url.Values{"refresh": {"true"}}
	}
	return call[[]Meditation](ctx, c, e)
}

func (c *Client) ListMoods(ctx context.Context) ([]MoodEntry, error) {
	return call[[]MoodEntry](ctx, c, endpoint{op: "list moods", method: http.MethodGet, path: "/mood", fallback: "Failed to get mood data"})
}

func (c *Client) SaveMood(ctx context.Context, in MoodInput) (MoodEntry, error) {
	e := endpoint{op: "save mood", method: http.MethodPost, path: "/mood", body: in, fallback: "Failed to save mood", offline: "Failed to save mood data"}
	if err := c.checkInput(e, in); err != nil {
		return MoodEntry{}, err
	}
	return call[MoodEntry](ctx, c, e)
}

func (c *Client) ListSleepRecords(ctx context.Context) ([]SleepRecord, error) {
	return call[[]SleepRecord](ctx, c, endpoint{op: "list sleep records", method: http.MethodGet, path: "/sleep", fallback: "Failed to get sleep records"})
}

func (c *Client) SaveSleepRecord(ctx context.Context, in SleepInput) (SleepRecord, error) {
	e := endpoint{op: "save sleep record", method: http.MethodPost, path: "/sleep", body: in, fallback: "Failed to save sleep record"}
	if err := c.checkInput(e, in); err != nil {
		return SleepRecord{}, err
	}
	return call[SleepRecord](ctx, c, e)
}

func (c *Client) UpdateSleepRecord(ctx context.Context, id string, in SleepInput) (SleepRecord, error) {
	e := endpoint{op: "update sleep record", method: http.MethodPut, body: in, fallback: "Failed to update sleep record"}
	if err := requireID(&e, "id", id, "/sleep/%s"); err != nil {
		return SleepRecord{}, err
	}
	if err := c.checkInput(e, in); err != nil {
		return SleepRecord{}, err
	}
	return call[SleepRecord](ctx, c, e)
}

func (c *Client) DeleteSleepRecord(ctx context.Context, id string) (Message, error) {
	e := endpoint{op: "delete sleep record", method: http.MethodDelete, fallback: "Failed to delete sleep record"}
	if err := requireID(&e, "id", id, "/sleep/%s"); err != nil {
		return Message{}, err
	}
	return call[Message](ctx, c, e)
}

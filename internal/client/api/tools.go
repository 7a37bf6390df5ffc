package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

func (c *Client) ReframeThought(ctx context.Context, thought string) (Reframe, error) {
	e := endpoint{op: "reframe thought", method: http.MethodPost, path: "/tools/reframe", body: map[string]string{"thought": thought}, fallback: "Failed to reframe thought"}
	if strings.TrimSpace(thought) == "" {
		return Reframe{}, e.validationError(errors.New("thought is required"))
	}
	return call[Reframe](ctx, c, e)
}

func (c *Client) AnalyzeEmotion(ctx context.Context, text string) (EmotionAnalysis, error) {
	e := endpoint{op: "analyze emotion", method: http.MethodPost, path: "/tools/analyze-emotion", body: map[string]string{"text": text}, fallback: "Failed to analyze emotion"}
	if strings.TrimSpace(text) == "" {
		return EmotionAnalysis{}, e.validationError(errors.New("text is required"))
	}
	return call[EmotionAnalysis](ctx, c, e)
}

func (c *Client) DailyChallenges(ctx context.Context) (ChallengeBoard, error) {
	return call[ChallengeBoard](ctx, c, endpoint{op: "get challenges", method: http.MethodGet, path: "/tools/challenges", fallback: "Failed to get challenges"})
}

func (c *Client) CompleteChallenge(ctx context.Context, id string) (ChallengeCompletion, error) {
	e := endpoint{op: "complete challenge", method: http.MethodPost, fallback: "Failed to complete challenge"}
	if err := requireID(&e, "id", id, "/tools/challenges/%s/complete"); err != nil {
		return ChallengeCompletion{}, err
	}
	return call[ChallengeCompletion](ctx, c, e)
}

package cli

import (
	"context"
	"fmt"
)

func (a *App) reframe(ctx context.Context) error {
	thought, err := a.prompt("What thought keeps coming back?")
	if err != nil {
		return err
	}
	res, err := a.client.ReframeThought(ctx, thought)
	if err != nil {
		return err
	}
	a.println(res.Reframed)
	return nil
}

func (a *App) analyze(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Describe how you feel", a.out)
	if err != nil {
		return err
	}
	res, err := a.client.AnalyzeEmotion(ctx, text)
	if err != nil {
		return err
	}
	a.printf("Primary emotion: %s (intensity %.0f%%)\n", res.PrimaryEmotion, res.Intensity*100)
	if res.Reflection != "" {
		a.println(res.Reflection)
	}
	for _, s := range res.Suggestions {
		a.printf("  - %s\n", s)
	}
	return nil
}

func (a *App) challenges(ctx context.Context) error {
	board, err := a.client.DailyChallenges(ctx)
	if err != nil {
		return err
	}
	a.printf("Streak: %d day(s)\n", board.Streak)
	for _, c := range board.Challenges {
		mark := " "
		if c.Completed {
			mark = "x"
		}
		a.printf("[%s] %s  %s\n", mark, c.Key(), c.Title)
		if c.Description != "" {
			a.printf("      %s\n", c.Description)
		}
	}
	return nil
}

func (a *App) completeChallenge(ctx context.Context, args []string) error {
	id, err := argID(args, "complete <id>")
	if err != nil {
		return err
	}
	res, err := a.client.CompleteChallenge(ctx, id)
	if err != nil {
		return err
	}
	a.println(orDefault(res.Message, "Challenge completed."))
	a.println(fmt.Sprintf("Streak: %d day(s)", res.Streak))
	return nil
}

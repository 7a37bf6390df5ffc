package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
)

const journalPageSize = 10

var overthinkingLevels = []string{"low", "medium", "high"}

func (a *App) listJournal(ctx context.Context, args []string) error {
	page, _, err := argPage(args)
	if err != nil {
		return err
	}
	res, err := a.client.ListJournalEntries(ctx, page, journalPageSize)
	if err != nil {
		return err
	}
	if len(res.Entries) == 0 {
		a.println("No journal entries yet. Type 'write' to add one.")
		return nil
	}
	for _, e := range res.Entries {
		a.printf("[%s] %s", e.Key(), e.Title)
		if e.Mood != "" {
			a.printf(" (%s)", e.Mood)
		}
		a.println()
		if e.Content != "" {
			a.printf("    %s\n", firstLine(e.Content))
		}
		if len(e.Triggers) > 0 {
			a.printf("    triggers: %s\n", strings.Join(e.Triggers, ", "))
		}
	}
	if res.TotalPages > 1 {
		a.printf("Page %d of %d\n", res.Page, res.TotalPages)
	}
	return nil
}

func (a *App) writeJournal(ctx context.Context) error {
	title, err := a.prompt("Title")
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return err
	}
	if title == "" || content == "" {
		return errors.New("title and content are required")
	}
	mood, err := a.prompt("Mood (optional)")
	if err != nil {
		return err
	}
	level, err := a.prompt("Overthinking level: " + strings.Join(overthinkingLevels, ", ") + " (optional)")
	if err != nil {
		return err
	}
	level = strings.ToLower(level)
	if level != "" && !contains(overthinkingLevels, level) {
		return errors.New("overthinking level must be one of " + strings.Join(overthinkingLevels, ", "))
	}
	triggers, err := GetList(a.reader, "Triggers", a.out)
	if err != nil {
		return err
	}

	entry, err := a.client.CreateJournalEntry(ctx, api.JournalEntryInput{
		Title:             title,
		Content:           content,
		Mood:              mood,
		OverthinkingLevel: level,
		Triggers:          triggers,
	})
	if err != nil {
		return err
	}
	a.printf("Journal entry saved (%s).\n", entry.Key())
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

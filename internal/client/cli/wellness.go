package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
)

var moods = []string{"happy", "neutral", "sad", "anxious"}

// mood with no argument lists the recorded moods; with one it records it.
func (a *App) mood(ctx context.Context, args []string) error {
	if len(args) == 0 {
		entries, err := a.client.ListMoods(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			a.printf("No moods recorded yet. Try 'mood <%s>'.\n", strings.Join(moods, "|"))
			return nil
		}
		for _, m := range entries {
			a.printf("%s  %s", shortDate(m.Date), m.Mood)
			if m.Note != "" {
				a.printf("  %s", m.Note)
			}
			a.println()
		}
		return nil
	}

	feeling := strings.ToLower(args[0])
	if !contains(moods, feeling) {
		return fmt.Errorf("mood must be one of %s", strings.Join(moods, ", "))
	}
	note, err := a.prompt("Note (optional)")
	if err != nil {
		return err
	}
	if _, err := a.client.SaveMood(ctx, api.MoodInput{Mood: feeling, Note: note}); err != nil {
		return err
	}
	a.printf("Mood saved: %s\n", feeling)
	return nil
}

func (a *App) meditations(ctx context.Context, args []string) error {
	refresh := len(args) > 0 && args[0] == "refresh"
	list, err := a.client.ListMeditations(ctx, refresh)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No meditations available.")
		return nil
	}
	for _, m := range list {
		a.printf("%s", m.Title)
		if m.Duration != "" {
			a.printf(" (%s)", m.Duration)
		}
		a.println()
		if m.Description != "" {
			a.printf("    %s\n", m.Description)
		}
		if m.VideoURL != "" {
			a.printf("    %s\n", m.VideoURL)
		}
	}
	return nil
}

func (a *App) sleep(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.sleepLog(ctx)
	}
	switch args[0] {
	case "add":
		in, err := a.readSleep()
		if err != nil {
			return err
		}
		if _, err := a.client.SaveSleepRecord(ctx, in); err != nil {
			return err
		}
		a.println("Sleep record saved.")
		return nil
	case "update":
		id, err := argID(args[1:], "sleep update <id>")
		if err != nil {
			return err
		}
		in, err := a.readSleep()
		if err != nil {
			return err
		}
		if _, err := a.client.UpdateSleepRecord(ctx, id, in); err != nil {
			return err
		}
		a.println("Sleep record updated.")
		return nil
	case "rm":
		id, err := argID(args[1:], "sleep rm <id>")
		if err != nil {
			return err
		}
		msg, err := a.client.DeleteSleepRecord(ctx, id)
		if err != nil {
			return err
		}
		a.println(orDefault(msg.Message, "Sleep record deleted."))
		return nil
	}
	return errors.New("usage: sleep [add | update <id> | rm <id>]")
}

func (a *App) sleepLog(ctx context.Context) error {
	records, err := a.client.ListSleepRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		a.println("No sleep records yet. Type 'sleep add' to log a night.")
		return nil
	}
	for _, r := range records {
		a.printf("[%s] %s  %s-%s  %.1fh  quality %d/10 (%s)\n",
			r.Key(), shortDate(r.Date), r.SleepTime, r.WakeTime, r.Duration, r.Quality, qualityLabel(r.Quality))
	}
	a.println(sleepSummary(records))
	return nil
}

func (a *App) readSleep() (api.SleepInput, error) {
	var in api.SleepInput
	bed, err := a.prompt("Bedtime (HH:MM)")
	if err != nil {
		return in, err
	}
	wake, err := a.prompt("Wake time (HH:MM)")
	if err != nil {
		return in, err
	}
	hours, err := sleepDuration(bed, wake)
	if err != nil {
		return in, err
	}
	q, err := a.prompt("Quality (0-10)")
	if err != nil {
		return in, err
	}
	quality, err := strconv.Atoi(q)
	if err != nil || quality < 0 || quality > 10 {
		return in, errors.New("quality must be a number from 0 to 10")
	}
	notes, err := a.prompt("Notes (optional)")
	if err != nil {
		return in, err
	}
	return api.SleepInput{
		Date:      time.Now().UTC().Format(time.RFC3339),
		SleepTime: bed,
		WakeTime:  wake,
		Quality:   quality,
		Duration:  hours,
		Notes:     notes,
	}, nil
}

// sleepDuration returns the hours from bed to wake, rounded to one
// decimal. A wake time before bedtime is on the next day.
func sleepDuration(bed, wake string) (float64, error) {
	from, err := time.Parse("15:04", bed)
	if err != nil {
		return 0, errors.New("invalid sleep duration: bedtime must look like 23:30")
	}
	to, err := time.Parse("15:04", wake)
	if err != nil {
		return 0, errors.New("invalid sleep duration: wake time must look like 07:00")
	}
	d := to.Sub(from)
	if d < 0 {
		d += 24 * time.Hour
	}
	return math.Round(d.Hours()*10) / 10, nil
}

func qualityLabel(q int) string {
	switch {
	case q <= 3:
		return "Poor"
	case q <= 6:
		return "Average"
	case q <= 8:
		return "Good"
	}
	return "Excellent"
}

// sleepSummary grades the average duration and quality of records.
func sleepSummary(records []api.SleepRecord) string {
	if len(records) == 0 {
		return ""
	}
	var hours, quality float64
	for _, r := range records {
		hours += r.Duration
		quality += float64(r.Quality)
	}
	n := float64(len(records))
	hours, quality = hours/n, quality/n

	var msg string
	switch {
	case hours < 6:
		msg = "You're not getting enough sleep. Try to get at least 7-8 hours of sleep each night."
	case hours > 9:
		msg = "You might be sleeping too much. 7-8 hours of sleep is typically optimal for adults."
	default:
		msg = "Your sleep duration looks good. Keep it up!"
	}
	if quality < 5 {
		return msg + " Your sleep quality could be better. Consider improving your sleep environment or routine."
	}
	return msg + " And your sleep quality is good!"
}

// shortDate trims an RFC 3339 timestamp to its date.
func shortDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

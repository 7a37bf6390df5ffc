package mockapi

import (
	"math"
	"sort"
	"strings"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
)

func seedMeditations() []api.Meditation {
	return []api.Meditation{
		{Identity: api.Identity{LegacyID: "med-breath"}, Title: "Box Breathing", Description: "Four counts in, hold, out, hold.", Duration: "5 min", Category: "anxiety"},
		{Identity: api.Identity{LegacyID: "med-body"}, Title: "Body Scan", Description: "Move attention slowly from head to toe.", Duration: "10 min", Category: "sleep"},
		{Identity: api.Identity{LegacyID: "med-kind"}, Title: "Loving Kindness", Description: "Wish yourself and others well.", Duration: "8 min", Category: "self-compassion"},
		{Identity: api.Identity{LegacyID: "med-ground"}, Title: "5-4-3-2-1 Grounding", Description: "Name what you can see, hear and touch.", Duration: "4 min", Category: "overthinking"},
	}
}

func seedTherapists() []api.Therapist {
	return []api.Therapist{
		{
			Identity:     api.Identity{LegacyID: "th-1"},
			Name:         "Dr. Maya Chen",
			Title:        "Clinical Psychologist",
			Specialties:  []string{"Anxiety", "CBT"},
			Experience:   "12 years",
			Bio:          "Works with anxious overthinkers using cognitive behavioural therapy.",
			Availability: []string{"Monday", "Wednesday", "Friday"},
		},
		{
			Identity:     api.Identity{LegacyID: "th-2"},
			Name:         "Samuel Okafor",
			Title:        "Licensed Counselor",
			Specialties:  []string{"Depression", "Grief"},
			Experience:   "8 years",
			Bio:          "Supports people through loss and low mood.",
			Availability: []string{"Tuesday", "Thursday"},
		},
		{
			Identity:     api.Identity{LegacyID: "th-3"},
			Name:         "Dr. Lena Ortiz",
			Title:        "Psychiatrist",
			Specialties:  []string{"Sleep", "Anxiety"},
			Experience:   "15 years",
			Bio:          "Focuses on insomnia and stress-related sleep problems.",
			Availability: []string{"Monday", "Thursday"},
		},
	}
}

func seedChallenges() []api.Challenge {
	return []api.Challenge{
		{Identity: api.Identity{LegacyID: "ch-gratitude"}, Title: "Three good things", Description: "Write down three things that went well today.", Type: "reflection"},
		{Identity: api.Identity{LegacyID: "ch-walk"}, Title: "Ten minute walk", Description: "Walk outside without your phone.", Type: "movement"},
		{Identity: api.Identity{LegacyID: "ch-breathe"}, Title: "Slow breathing", Description: "Take ten slow breaths before lunch.", Type: "mindfulness"},
	}
}

// replyTo produces the assistant's canned answer to a chat message.
func replyTo(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "sleep"):
		return "Sleep troubles can make everything feel heavier. What does your evening usually look like?"
	case strings.Contains(lower, "anxious") || strings.Contains(lower, "anxiety") || strings.Contains(lower, "worried"):
		return "That sounds stressful. Try one slow breath with me, then tell me what the worry is about."
	case strings.Contains(lower, "sad") || strings.Contains(lower, "down"):
		return "I'm sorry you're feeling low. What has been weighing on you most?"
	}
	return "Thank you for sharing. How long have you been feeling this way?"
}

func reframe(thought string) api.Reframe {
	t := strings.TrimSpace(thought)
	return api.Reframe{
		Original: t,
		Reframed: "It feels true that " + strings.TrimSuffix(lowerFirst(t), ".") +
			", but a feeling is not a fact. What would you tell a friend who thought this?",
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var emotionWords = map[string][]string{
	"anxiety": {"anxious", "worried", "nervous", "panic", "scared", "afraid", "overthinking"},
	"sadness": {"sad", "down", "lonely", "hopeless", "cry", "empty"},
	"anger":   {"angry", "furious", "annoyed", "frustrated", "mad"},
	"joy":     {"happy", "glad", "excited", "grateful", "calm", "proud"},
}

var emotionSuggestions = map[string][]string{
	"anxiety": {"Try box breathing for two minutes.", "Write the worry down and rate how likely it is."},
	"sadness": {"Reach out to someone you trust.", "Do one small thing you usually enjoy."},
	"anger":   {"Step away for a few minutes before responding.", "Name exactly what felt unfair."},
	"joy":     {"Note what made today good so you can return to it.", "Share the moment with someone."},
	"neutral": {"Check in with your body: where do you feel tension?"},
}

// analyzeEmotion scores text against a small word list.
func analyzeEmotion(text string) api.EmotionAnalysis {
	counts := map[string]int{}
	total := 0
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r == '\'')
	}) {
		for emotion, words := range emotionWords {
			for _, ew := range words {
				if w == ew {
					counts[emotion]++
					total++
				}
			}
		}
	}

	primary := "neutral"
	if total > 0 {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if counts[names[i]] != counts[names[j]] {
				return counts[names[i]] > counts[names[j]]
			}
			return names[i] < names[j]
		})
		primary = names[0]
	}

	return api.EmotionAnalysis{
		PrimaryEmotion: primary,
		Reflection:     "It sounds like you are experiencing " + primary + ".",
		Suggestions:    emotionSuggestions[primary],
		Intensity:      math.Min(1, float64(counts[primary])/3),
	}
}

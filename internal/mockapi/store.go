package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type post struct {
	id            string
	authorID      string
	authorName    string
	title         string
	content       string
	category      string
	anonymous     bool
	seekingAdvice bool
	likes         []string
	comments      []api.Comment
	createdAt     time.Time
}

type appointment struct {
	api.Appointment
	userID string
}

// store holds every collection of the stub behind one mutex. Per-user
// collections are keyed by user id.
type store struct {
	mu  sync.Mutex
	now func() time.Time

	journal      map[string][]api.JournalEntry
	moods        map[string][]api.MoodEntry
	sleep        map[string][]api.SleepRecord
	chat         map[string][]api.ChatMessage
	completed    map[string]map[string]string // user -> challenge id -> date
	streaks      map[string]int
	appointments []appointment
	posts        []*post

	meditations []api.Meditation
	therapists  []api.Therapist
	challenges  []api.Challenge
}

func newStore(now func() time.Time) *store {
	return &store{
		now:         now,
		journal:     make(map[string][]api.JournalEntry),
		moods:       make(map[string][]api.MoodEntry),
		sleep:       make(map[string][]api.SleepRecord),
		chat:        make(map[string][]api.ChatMessage),
		completed:   make(map[string]map[string]string),
		streaks:     make(map[string]int),
		meditations: seedMeditations(),
		therapists:  seedTherapists(),
		challenges:  seedChallenges(),
	}
}

func newID() string { return uuid.NewString() }

func (s *store) timestamp() string { return s.now().UTC().Format(time.RFC3339) }

func (s *store) today() string { return s.now().UTC().Format(dateLayout) }

// indexByKey finds the item whose id matches in a slice of entities.
func indexByKey[T interface{ Key() string }](items []T, id string) int {
	for i, it := range items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}

func (s *store) listJournal(userID string) []api.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.JournalEntry{}, s.journal[userID]...)
}

func (s *store) getJournal(userID, id string) (api.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.journal[userID]
	if i := indexByKey(entries, id); i >= 0 {
		return entries[i], true
	}
	return api.JournalEntry{}, false
}

func journalFromInput(e api.JournalEntry, in api.JournalEntryInput) api.JournalEntry {
	e.Title = in.Title
	e.Content = in.Content
	e.Mood = in.Mood
	e.OverthinkingLevel = in.OverthinkingLevel
	e.Triggers = in.Triggers
	e.ReframedThoughts = in.ReframedThoughts
	e.ActionSteps = in.ActionSteps
	e.ReflectionNotes = in.ReflectionNotes
	return e
}

// addJournal stores a new entry at the front; listings are newest first.
func (s *store) addJournal(userID string, in api.JournalEntryInput) api.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := journalFromInput(api.JournalEntry{
		Identity:  api.Identity{LegacyID: newID()},
		Date:      s.today(),
		CreatedAt: s.timestamp(),
	}, in)
	s.journal[userID] = append([]api.JournalEntry{e}, s.journal[userID]...)
	return e
}

func (s *store) updateJournal(userID, id string, in api.JournalEntryInput) (api.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.journal[userID]
	i := indexByKey(entries, id)
	if i < 0 {
		return api.JournalEntry{}, false
	}
	entries[i] = journalFromInput(entries[i], in)
	return entries[i], true
}

func (s *store) deleteJournal(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.journal[userID]
	i := indexByKey(entries, id)
	if i < 0 {
		return false
	}
	s.journal[userID] = append(entries[:i:i], entries[i+1:]...)
	return true
}

func (s *store) listMoods(userID string) []api.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.MoodEntry{}, s.moods[userID]...)
}

func (s *store) addMood(userID string, in api.MoodInput) api.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := api.MoodEntry{Identity: api.Identity{LegacyID: newID()}, Date: s.timestamp(), Mood: in.Mood, Note: in.Note}
	s.moods[userID] = append(s.moods[userID], m)
	return m
}

// listMeditations returns the catalogue. refresh rotates it by one so the
// caller sees a different first recommendation.
func (s *store) listMeditations(refresh bool) []api.Meditation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if refresh && len(s.meditations) > 1 {
		s.meditations = append(s.meditations[1:], s.meditations[0])
	}
	return append([]api.Meditation{}, s.meditations...)
}

func (s *store) listSleep(userID string) []api.SleepRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]api.SleepRecord{}, s.sleep[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func sleepFromInput(r api.SleepRecord, in api.SleepInput) api.SleepRecord {
	r.SleepTime = in.SleepTime
	r.WakeTime = in.WakeTime
	r.Quality = in.Quality
	r.Notes = in.Notes
	r.Duration = in.Duration
	if r.Duration == 0 {
		r.Duration = sleepHours(in.SleepTime, in.WakeTime)
	}
	if in.Date != "" {
		r.Date = in.Date
	}
	return r
}

// sleepHours computes the hours between two HH:MM clock times, wrapping
// past midnight. Unparseable times give 0.
func sleepHours(from, to string) float64 {
	a, err1 := time.Parse("15:04", from)
	b, err2 := time.Parse("15:04", to)
	if err1 != nil || err2 != nil {
		return 0
	}
	d := b.Sub(a)
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d.Hours()
}

func (s *store) addSleep(userID string, in api.SleepInput) api.SleepRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := sleepFromInput(api.SleepRecord{Identity: api.Identity{LegacyID: newID()}, Date: s.today()}, in)
	s.sleep[userID] = append(s.sleep[userID], r)
	return r
}

func (s *store) updateSleep(userID, id string, in api.SleepInput) (api.SleepRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.sleep[userID]
	i := indexByKey(records, id)
	if i < 0 {
		return api.SleepRecord{}, false
	}
	records[i] = sleepFromInput(records[i], in)
	return records[i], true
}

func (s *store) deleteSleep(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.sleep[userID]
	i := indexByKey(records, id)
	if i < 0 {
		return false
	}
	s.sleep[userID] = append(records[:i:i], records[i+1:]...)
	return true
}

func (s *store) chatHistory(userID string) []api.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.ChatMessage{}, s.chat[userID]...)
}

// converse records the user's message and the assistant's reply.
func (s *store) converse(userID, text string) api.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.timestamp()
	reply := api.ChatMessage{ID: newID(), Message: replyTo(text), Sender: "ai", Timestamp: ts}
	s.chat[userID] = append(s.chat[userID],
		api.ChatMessage{ID: newID(), Message: text, Sender: "user", Timestamp: ts},
		reply,
	)
	return reply
}

func (s *store) resetChat(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chat, userID)
}

func (s *store) render(p *post, viewerID string) api.Post {
	author := api.Author{ID: p.authorID, Name: p.authorName}
	if p.anonymous {
		author = api.Author{Name: "Anonymous"}
	}
	out := api.Post{
		Identity:      api.Identity{LegacyID: p.id},
		Title:         p.title,
		Content:       p.content,
		Author:        author,
		Category:      p.category,
		IsAnonymous:   p.anonymous,
		SeekingAdvice: p.seekingAdvice,
		Likes:         append([]string{}, p.likes...),
		Comments:      append([]api.Comment{}, p.comments...),
		CreatedAt:     p.createdAt.UTC().Format(time.RFC3339),
	}
	for _, id := range p.likes {
		if id == viewerID {
			out.UserLiked = true
		}
	}
	return out
}

// listPosts returns newest-first posts in category (all when empty) and
// the total before paging.
func (s *store) listPosts(viewerID, category string, page, limit int) ([]api.Post, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*post
	for i := len(s.posts) - 1; i >= 0; i-- {
		p := s.posts[i]
		if category == "" || strings.EqualFold(p.category, category) {
			matched = append(matched, p)
		}
	}
	from, to, pages := window(len(matched), page, limit)
	out := make([]api.Post, 0, to-from)
	for _, p := range matched[from:to] {
		out = append(out, s.render(p, viewerID))
	}
	return out, len(matched), pages
}

func (s *store) findPost(id string) *post {
	for _, p := range s.posts {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (s *store) getPost(viewerID, id string) (api.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPost(id)
	if p == nil {
		return api.Post{}, false
	}
	return s.render(p, viewerID), true
}

func (s *store) addPost(authorID, authorName string, in api.PostInput) api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &post{
		id:            newID(),
		authorID:      authorID,
		authorName:    authorName,
		title:         in.Title,
		content:       in.Content,
		category:      in.Category,
		anonymous:     in.IsAnonymous,
		seekingAdvice: in.SeekingAdvice,
		createdAt:     s.now(),
	}
	s.posts = append(s.posts, p)
	return s.render(p, authorID)
}

// toggleLike adds or removes userID from the post's likes.
func (s *store) toggleLike(userID, id string) (api.LikeStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPost(id)
	if p == nil {
		return api.LikeStatus{}, false
	}
	liked := false
	for i, uid := range p.likes {
		if uid == userID {
			p.likes = append(p.likes[:i:i], p.likes[i+1:]...)
			liked = true
			break
		}
	}
	if !liked {
		p.likes = append(p.likes, userID)
	}
	return api.LikeStatus{Likes: append([]string{}, p.likes...), UserLiked: !liked}, true
}

func (s *store) addComment(userID, userName, postID string, in api.CommentInput) ([]api.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPost(postID)
	if p == nil {
		return nil, false
	}
	author := api.Author{ID: userID, Name: userName}
	if in.IsAnonymous {
		author = api.Author{Name: "Anonymous"}
	}
	p.comments = append(p.comments, api.Comment{
		ID:          newID(),
		Content:     in.Content,
		Author:      author,
		IsAnonymous: in.IsAnonymous,
		CreatedAt:   s.timestamp(),
	})
	return append([]api.Comment{}, p.comments...), true
}

// challengeBoard lists today's challenges with the user's completion marks.
func (s *store) challengeBoard(userID string) api.ChallengeBoard {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.today()
	done := s.completed[userID]
	board := api.ChallengeBoard{Challenges: make([]api.Challenge, 0, len(s.challenges)), Streak: s.streaks[userID]}
	for _, c := range s.challenges {
		c.Date = today
		c.Completed = done[c.Key()] == today
		board.Challenges = append(board.Challenges, c)
	}
	return board
}

// completeChallenge marks a challenge done for today. The streak grows
// once per day, on the first completion of that day.
func (s *store) completeChallenge(userID, id string) (api.ChallengeCompletion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByKey(s.challenges, id)
	if i < 0 {
		return api.ChallengeCompletion{}, false
	}
	today := s.today()
	done := s.completed[userID]
	if done == nil {
		done = make(map[string]string)
		s.completed[userID] = done
	}

	firstToday := true
	for _, d := range done {
		if d == today {
			firstToday = false
			break
		}
	}
	msg := "Challenge already completed"
	if done[id] != today {
		done[id] = today
		msg = "Challenge completed"
		if firstToday {
			s.streaks[userID]++
		}
	}

	c := s.challenges[i]
	c.Completed = true
	c.Date = today
	return api.ChallengeCompletion{Message: msg, Streak: s.streaks[userID], Challenge: &c}, true
}

func (s *store) listTherapists(specialty string) []api.Therapist {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Therapist, 0, len(s.therapists))
	for _, t := range s.therapists {
		if specialty == "" || hasSpecialty(t, specialty) {
			out = append(out, t)
		}
	}
	return out
}

func hasSpecialty(t api.Therapist, want string) bool {
	for _, sp := range t.Specialties {
		if strings.EqualFold(sp, want) {
			return true
		}
	}
	return false
}

func (s *store) getTherapist(id string) (api.Therapist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexByKey(s.therapists, id); i >= 0 {
		return s.therapists[i], true
	}
	return api.Therapist{}, false
}

func (s *store) bookAppointment(userID string, in api.AppointmentInput) (api.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexByKey(s.therapists, in.TherapistID) < 0 {
		return api.Appointment{}, false
	}
	a := appointment{
		Appointment: api.Appointment{
			Identity:    api.Identity{LegacyID: newID()},
			TherapistID: in.TherapistID,
			Date:        in.Date,
			Time:        in.Time,
			Status:      "scheduled",
			Notes:       in.Notes,
		},
		userID: userID,
	}
	s.appointments = append(s.appointments, a)
	return a.Appointment, true
}

func (s *store) listAppointments(userID string) []api.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.Appointment{}
	for _, a := range s.appointments {
		if a.userID == userID {
			out = append(out, a.Appointment)
		}
	}
	return out
}

func (s *store) findAppointment(userID, id string) int {
	for i, a := range s.appointments {
		if a.userID == userID && a.Key() == id {
			return i
		}
	}
	return -1
}

func (s *store) updateAppointment(userID, id string, in api.AppointmentInput) (api.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findAppointment(userID, id)
	if i < 0 {
		return api.Appointment{}, false
	}
	a := &s.appointments[i]
	a.TherapistID = in.TherapistID
	a.Date = in.Date
	a.Time = in.Time
	a.Notes = in.Notes
	return a.Appointment, true
}

func (s *store) cancelAppointment(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findAppointment(userID, id)
	if i < 0 {
		return false
	}
	s.appointments = append(s.appointments[:i:i], s.appointments[i+1:]...)
	return true
}

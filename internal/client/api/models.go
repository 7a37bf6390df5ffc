package api

import (
	"encoding/json"
	"errors"
)

// Identity is the id every stored entity carries. The backend is not
// consistent about the key, so both "id" and "_id" are accepted.
type Identity struct {
	ID       string `json:"id,omitempty" validate:"required_without=LegacyID"`
	LegacyID string `json:"_id,omitempty" validate:"required_without=ID"`
}

// Key returns whichever id the server sent.
func (i Identity) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.LegacyID
}

// UserProfile is the authenticated user. /auth/me answers with "_id",
// login and signup with "id"; both end up in ID.
type UserProfile struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"required"`
}

func (u *UserProfile) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID       string `json:"id"`
		LegacyID string `json:"_id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	u.ID = raw.ID
	if u.ID == "" {
		u.ID = raw.LegacyID
	}
	u.Name = raw.Name
	u.Email = raw.Email
	return nil
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the body of a successful login or signup.
type AuthResponse struct {
	Token string      `json:"token" validate:"required"`
	User  UserProfile `json:"user" validate:"required"`
}

// Message is the acknowledgement returned by delete and reset endpoints.
type Message struct {
	Message string `json:"message,omitempty"`
}

type JournalEntry struct {
	Identity
	Date              string   `json:"date,omitempty"`
	Title             string   `json:"title" validate:"required"`
	Content           string   `json:"content"`
	Mood              string   `json:"mood,omitempty"`
	OverthinkingLevel string   `json:"overthinkingLevel,omitempty"`
	Triggers          []string `json:"triggers,omitempty"`
	ReframedThoughts  string   `json:"reframedThoughts,omitempty"`
	ActionSteps       []string `json:"actionSteps,omitempty"`
	ReflectionNotes   string   `json:"reflectionNotes,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
}

type JournalEntryInput struct {
	Title             string   `json:"title" validate:"required"`
	Content           string   `json:"content" validate:"required"`
	Mood              string   `json:"mood,omitempty"`
	OverthinkingLevel string   `json:"overthinkingLevel,omitempty"`
	Triggers          []string `json:"triggers,omitempty"`
	ReframedThoughts  string   `json:"reframedThoughts,omitempty"`
	ActionSteps       []string `json:"actionSteps,omitempty"`
	ReflectionNotes   string   `json:"reflectionNotes,omitempty"`
}

// JournalPage is one page of journal entries. Paging numbers are whatever
// the server reports; a bare array response leaves them zero.
type JournalPage struct {
	Entries    []JournalEntry `json:"entries" validate:"dive"`
	Page       int            `json:"currentPage,omitempty"`
	TotalPages int            `json:"totalPages,omitempty"`
	Total      int            `json:"total,omitempty"`
}

func (p *JournalPage) UnmarshalJSON(b []byte) error {
	var list []JournalEntry
	if err := json.Unmarshal(b, &list); err == nil {
		if list == nil {
			return errors.New("journal list is null")
		}
		*p = JournalPage{Entries: list}
		return nil
	}

	var env struct {
		Entries    []JournalEntry `json:"entries"`
		Page       int            `json:"currentPage"`
		TotalPages int            `json:"totalPages"`
		Total      int            `json:"total"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if env.Entries == nil {
		return errors.New("journal page has no entries field")
	}
	*p = JournalPage(env)
	return nil
}

type MoodEntry struct {
	Identity
	Date string `json:"date,omitempty"`
	Mood string `json:"mood" validate:"required"`
	Note string `json:"note,omitempty"`
}

type MoodInput struct {
	Mood string `json:"mood" validate:"required"`
	Note string `json:"note,omitempty"`
}

type Meditation struct {
	Identity
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Category    string `json:"category,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type ChatMessage struct {
	ID        string `json:"id,omitempty"`
	Message   string `json:"message" validate:"required"`
	Sender    string `json:"sender" validate:"required,oneof=user ai"`
	Timestamp string `json:"timestamp,omitempty"`
}

type Author struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

type Comment struct {
	ID          string `json:"_id,omitempty"`
	Content     string `json:"content" validate:"required"`
	Author      Author `json:"author"`
	IsAnonymous bool   `json:"isAnonymous"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type CommentInput struct {
	Content     string `json:"content" validate:"required"`
	IsAnonymous bool   `json:"isAnonymous"`
}

type Post struct {
	Identity
	Title         string    `json:"title" validate:"required"`
	Content       string    `json:"content"`
	Author        Author    `json:"author"`
	Category      string    `json:"category,omitempty"`
	IsAnonymous   bool      `json:"isAnonymous"`
	SeekingAdvice bool      `json:"seekingAdvice"`
	Likes         []string  `json:"likes,omitempty"`
	UserLiked     bool      `json:"userLiked"`
	Comments      []Comment `json:"comments,omitempty" validate:"dive"`
	CreatedAt     string    `json:"createdAt,omitempty"`
}

type PostInput struct {
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	Category      string `json:"category" validate:"required"`
	IsAnonymous   bool   `json:"isAnonymous"`
	SeekingAdvice bool   `json:"seekingAdvice"`
}

type PostPage struct {
	Posts       []Post `json:"posts" validate:"required,dive"`
	CurrentPage int    `json:"currentPage,omitempty"`
	TotalPages  int    `json:"totalPages,omitempty"`
	Total       int    `json:"total,omitempty"`
}

// LikeStatus is the server's answer to a like toggle.
type LikeStatus struct {
	Likes     []string `json:"likes"`
	UserLiked bool     `json:"userLiked"`
}

type Reframe struct {
	Original string `json:"original,omitempty"`
	Reframed string `json:"reframed" validate:"required"`
}

type EmotionAnalysis struct {
	PrimaryEmotion string   `json:"primaryEmotion" validate:"required"`
	Reflection     string   `json:"reflection,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	Intensity      float64  `json:"intensity" validate:"min=0"`
}

type Challenge struct {
	Identity
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Completed   bool   `json:"completed"`
	Date        string `json:"date,omitempty"`
}

type ChallengeBoard struct {
	Challenges []Challenge `json:"challenges" validate:"required,dive"`
	Streak     int         `json:"streak" validate:"min=0"`
}

type ChallengeCompletion struct {
	Message   string     `json:"message,omitempty"`
	Streak    int        `json:"streak" validate:"min=0"`
	Challenge *Challenge `json:"challenge,omitempty"`
}

type SleepRecord struct {
	Identity
	Date      string  `json:"date,omitempty"`
	SleepTime string  `json:"sleepTime" validate:"required"`
	WakeTime  string  `json:"wakeTime" validate:"required"`
	Quality   int     `json:"quality" validate:"min=0,max=10"`
	Duration  float64 `json:"duration" validate:"min=0"`
	Notes     string  `json:"notes,omitempty"`
}

type SleepInput struct {
	Date      string  `json:"date,omitempty"`
	SleepTime string  `json:"sleepTime" validate:"required"`
	WakeTime  string  `json:"wakeTime" validate:"required"`
	Quality   int     `json:"quality" validate:"min=0,max=10"`
	Duration  float64 `json:"duration" validate:"min=0"`
	Notes     string  `json:"notes,omitempty"`
}

type Therapist struct {
	Identity
	Name         string   `json:"name" validate:"required"`
	Title        string   `json:"title,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	Experience   string   `json:"experience,omitempty"`
	Image        string   `json:"image,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Availability []string `json:"availability,omitempty"`
}

type Appointment struct {
	Identity
	TherapistID string `json:"therapistId" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Status      string `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type AppointmentInput struct {
	TherapistID string `json:"therapistId" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Notes       string `json:"notes,omitempty"`
}

package mockapi

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
	"github.com/dmitrijs2005/mindhaven/internal/client/session"
	"github.com/dmitrijs2005/mindhaven/internal/mockapi/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memTokens struct{ token string }

func (m *memTokens) Load(context.Context) (string, error)      { return m.token, nil }
func (m *memTokens) Save(_ context.Context, t string) error    { m.token = t; return nil }
func (m *memTokens) Clear(context.Context) error               { m.token = ""; return nil }
func (m *memTokens) Token(ctx context.Context) (string, error) { return m.Load(ctx) }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	us := users.NewService(users.NewMemoryRepository(), "test-secret", time.Hour).WithHashCost(bcrypt.MinCost)
	srv := httptest.NewServer(NewServer(us, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// signedIn returns a client authenticated as a freshly registered user.
func signedIn(t *testing.T, srv *httptest.Server, email string) *api.Client {
	t.Helper()
	tokens := &memTokens{}
	c := api.New(srv.URL, tokens)
	m := session.NewManager(c, tokens, nil, nil)
	m.Start(context.Background())
	require.NoError(t, m.Signup(context.Background(), "Tester", email, "pw"))
	return c
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	tokens := &memTokens{}
	client := api.New(srv.URL, tokens)
	var routes []session.Route
	m := session.NewManager(client, tokens, session.NavigatorFunc(func(r session.Route) { routes = append(routes, r) }), nil)
	m.Start(ctx)
	require.Equal(t, session.PhaseUnauthenticated, m.State().Phase)

	require.NoError(t, m.Signup(ctx, "Ann", "ann@example.com", "secret"))
	assert.True(t, m.State().IsAuthenticated)

	err := m.Signup(ctx, "Ann", "ann@example.com", "secret")
	require.Error(t, err)
	assert.Equal(t, "User already exists", err.Error())

	m.Logout()
	assert.Empty(t, tokens.token)

	err = m.Login(ctx, "ann@example.com", "nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	require.NoError(t, m.Login(ctx, "ANN@example.com", "secret"))
	persisted := tokens.token
	require.NotEmpty(t, persisted)

	// a fresh manager over the same storage resumes the session
	m2 := session.NewManager(client, tokens, nil, nil)
	m2.Start(ctx)
	s := m2.State()
	assert.Equal(t, session.PhaseAuthenticated, s.Phase)
	assert.Equal(t, "Ann", s.User.Name)
	assert.Equal(t, persisted, s.Token)

	assert.Equal(t, []session.Route{session.RouteDashboard, session.RouteHome, session.RouteDashboard}, routes)
}

func TestStart_ForgedTokenIsDropped(t *testing.T) {
	srv := newTestServer(t)
	tokens := &memTokens{token: "forged"}
	m := session.NewManager(api.New(srv.URL, tokens), tokens, nil, nil)

	m.Start(context.Background())

	assert.Equal(t, session.PhaseUnauthenticated, m.State().Phase)
	assert.Empty(t, tokens.token)
}

func TestAuthHeaders(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/auth/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	anon := api.New(srv.URL, nil)
	_, err = anon.ListMoods(context.Background())
	require.Error(t, err)
	assert.Equal(t, "No token, authorization denied", err.Error())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", bearerToken(r))

	r.Header.Set("x-auth-token", "xyz")
	assert.Equal(t, "xyz", bearerToken(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearerToken(r))
}

func TestJournal(t *testing.T) {
	srv := newTestServer(t)
	c := signedIn(t, srv, "j@example.com")
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := c.CreateJournalEntry(ctx, api.JournalEntryInput{Title: title, Content: "text", Triggers: []string{"work"}})
		require.NoError(t, err)
	}

	page, err := c.ListJournalEntries(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "three", page.Entries[0].Title)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 3, page.Total)

	page, err = c.ListJournalEntries(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	id := page.Entries[0].Key()

	updated, err := c.UpdateJournalEntry(ctx, id, api.JournalEntryInput{Title: "first", Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "first", updated.Title)

	got, err := c.GetJournalEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	_, err = c.DeleteJournalEntry(ctx, id)
	require.NoError(t, err)
	_, err = c.GetJournalEntry(ctx, id)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.EqualError(t, err, "Journal entry not found")

	other := signedIn(t, srv, "k@example.com")
	page, err = other.ListJournalEntries(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
}

func TestWellness(t *testing.T) {
	srv := newTestServer(t)
	c := signedIn(t, srv, "w@example.com")
	ctx := context.Background()

	meds, err := c.ListMeditations(ctx, false)
	require.NoError(t, err)
	require.NotEmpty(t, meds)
	refreshed, err := c.ListMeditations(ctx, true)
	require.NoError(t, err)
	assert.NotEqual(t, meds[0].Key(), refreshed[0].Key())

	_, err = c.SaveMood(ctx, api.MoodInput{Mood: "calm", Note: "good day"})
	require.NoError(t, err)
	moods, err := c.ListMoods(ctx)
	require.NoError(t, err)
	require.Len(t, moods, 1)
	assert.Equal(t, "calm", moods[0].Mood)

	rec, err := c.SaveSleepRecord(ctx, api.SleepInput{SleepTime: "23:30", WakeTime: "07:00", Quality: 7})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, rec.Duration, 0.001)

	rec, err = c.UpdateSleepRecord(ctx, rec.Key(), api.SleepInput{SleepTime: "22:00", WakeTime: "06:00", Quality: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, rec.Quality)
	assert.InDelta(t, 8, rec.Duration, 0.001)

	records, err := c.ListSleepRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = c.DeleteSleepRecord(ctx, rec.Key())
	require.NoError(t, err)
	_, err = c.DeleteSleepRecord(ctx, rec.Key())
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestChat(t *testing.T) {
	srv := newTestServer(t)
	c := signedIn(t, srv, "c@example.com")
	ctx := context.Background()

	history, err := c.ChatHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	reply, err := c.SendMessage(ctx, "I can't sleep")
	require.NoError(t, err)
	assert.Equal(t, "ai", reply.Sender)
	assert.Contains(t, reply.Message, "Sleep")

	history, err = c.ChatHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Sender)

	_, err = c.ResetChat(ctx)
	require.NoError(t, err)
	history, err = c.ChatHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCommunity(t *testing.T) {
	srv := newTestServer(t)
	alice := signedIn(t, srv, "alice@example.com")
	bob := signedIn(t, srv, "bob@example.com")
	ctx := context.Background()

	p, err := alice.CreatePost(ctx, api.PostInput{Title: "Hello", Content: "First post", Category: "general"})
	require.NoError(t, err)
	_, err = alice.CreatePost(ctx, api.PostInput{Title: "Secret", Content: "Hard week", Category: "anxiety", IsAnonymous: true})
	require.NoError(t, err)

	page, err := bob.ListPosts(ctx, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "Secret", page.Posts[0].Title)
	assert.Equal(t, "Anonymous", page.Posts[0].Author.Name)
	assert.Empty(t, page.Posts[0].Author.ID)

	page, err = bob.ListPosts(ctx, 1, 10, "General")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "Tester", page.Posts[0].Author.Name)

	like, err := bob.LikePost(ctx, p.Key())
	require.NoError(t, err)
	assert.True(t, like.UserLiked)
	assert.Len(t, like.Likes, 1)
	like, err = bob.LikePost(ctx, p.Key())
	require.NoError(t, err)
	assert.False(t, like.UserLiked)
	assert.Empty(t, like.Likes)

	comments, err := bob.AddComment(ctx, p.Key(), api.CommentInput{Content: "Welcome!"})
	require.NoError(t, err)
	require.Len(t, comments, 1)

	got, err := alice.GetPost(ctx, p.Key())
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Welcome!", got.Comments[0].Content)

	_, err = bob.LikePost(ctx, "missing")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestTools(t *testing.T) {
	srv := newTestServer(t)
	c := signedIn(t, srv, "t@example.com")
	ctx := context.Background()

	rf, err := c.ReframeThought(ctx, "I always fail.")
	require.NoError(t, err)
	assert.Equal(t, "I always fail.", rf.Original)
	assert.Contains(t, rf.Reframed, "i always fail")

	an, err := c.AnalyzeEmotion(ctx, "I'm so anxious and worried, a bit sad too")
	require.NoError(t, err)
	assert.Equal(t, "anxiety", an.PrimaryEmotion)
	assert.NotEmpty(t, an.Suggestions)

	board, err := c.DailyChallenges(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, board.Challenges)
	assert.Zero(t, board.Streak)

	first := board.Challenges[0].Key()
	done, err := c.CompleteChallenge(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, done.Streak)
	require.NotNil(t, done.Challenge)
	assert.True(t, done.Challenge.Completed)

	done, err = c.CompleteChallenge(ctx, board.Challenges[1].Key())
	require.NoError(t, err)
	assert.Equal(t, 1, done.Streak, "streak grows once per day")

	board, err = c.DailyChallenges(ctx)
	require.NoError(t, err)
	assert.True(t, board.Challenges[0].Completed)

	_, err = c.CompleteChallenge(ctx, "nope")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestTherapy(t *testing.T) {
	srv := newTestServer(t)
	c := signedIn(t, srv, "p@example.com")
	ctx := context.Background()

	all, err := c.ListTherapists(ctx, "")
	require.NoError(t, err)
	anxiety, err := c.ListTherapists(ctx, "anxiety")
	require.NoError(t, err)
	assert.Less(t, len(anxiety), len(all))
	for _, th := range anxiety {
		assert.Contains(t, strings.ToLower(strings.Join(th.Specialties, ",")), "anxiety")
	}

	th, err := c.GetTherapist(ctx, all[0].Key())
	require.NoError(t, err)
	assert.Equal(t, all[0].Name, th.Name)

	_, err = c.BookAppointment(ctx, api.AppointmentInput{TherapistID: "missing", Date: "2026-11-02", Time: "10:00"})
	assert.ErrorIs(t, err, api.ErrNotFound)

	appt, err := c.BookAppointment(ctx, api.AppointmentInput{TherapistID: th.Key(), Date: "2026-11-02", Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", appt.Status)

	appt, err = c.UpdateAppointment(ctx, appt.Key(), api.AppointmentInput{TherapistID: th.Key(), Date: "2026-11-03", Time: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, "2026-11-03", appt.Date)

	list, err := c.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	other := signedIn(t, srv, "q@example.com")
	_, err = other.CancelAppointment(ctx, appt.Key())
	assert.ErrorIs(t, err, api.ErrNotFound)

	_, err = c.CancelAppointment(ctx, appt.Key())
	require.NoError(t, err)
	list, err = c.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServerValidatesInput(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/auth/signup", "application/json", strings.NewReader(`{"email":"x@y.z"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Post(srv.URL+"/api/auth/login", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                string
		n, page, limit      int
		from, to, wantPages int
	}{
		{"first page", 25, 1, 10, 0, 10, 3},
		{"last partial page", 25, 3, 10, 20, 25, 3},
		{"past the end", 25, 4, 10, 25, 25, 3},
		{"empty", 0, 1, 10, 0, 0, 0},
		{"huge page", 25, math.MaxInt, 10, 25, 25, 3},
		{"huge limit", 25, 2, math.MaxInt, 25, 25, 1},
		{"zero limit", 3, 1, 0, 0, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, pages := window(tt.n, tt.page, tt.limit)
			assert.Equal(t, []int{tt.from, tt.to, tt.wantPages}, []int{from, to, pages})
		})
	}
}

func TestPagingSurvivesExtremeQueries(t *testing.T) {
	srv := newTestServer(t)
	c := signedIn(t, srv, "pager@example.com")
	ctx := context.Background()

	_, err := c.CreateJournalEntry(ctx, api.JournalEntryInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	journal, err := c.ListJournalEntries(ctx, math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, journal.Entries)

	journal, err = c.ListJournalEntries(ctx, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, journal.Entries, 1)

	posts, err := c.ListPosts(ctx, math.MaxInt, math.MaxInt, "")
	require.NoError(t, err)
	assert.Empty(t, posts.Posts)
}

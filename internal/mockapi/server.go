package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
	"github.com/dmitrijs2005/mindhaven/internal/common"
	"github.com/dmitrijs2005/mindhaven/internal/logging"
	"github.com/dmitrijs2005/mindhaven/internal/mockapi/users"
)

const maxRequestBody = 1 << 20

type ctxKey string

const userKey ctxKey = "user"

// Server routes /api requests to the in-memory data.
type Server struct {
	users  *users.Service
	data   *store
	logger logging.Logger
	mux    *http.ServeMux
}

func NewServer(us *users.Service, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		users:  us,
		data:   newStore(time.Now),
		logger: logger.With("module", "mockapi"),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

func (s *Server) routes() {
	public := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		s.mux.Handle(method+" "+common.APIPrefix+path, h)
	}
	private := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		s.mux.Handle(method+" "+common.APIPrefix+path, s.authenticate(h))
	}

	public("POST /auth/signup", s.handleSignup)
	public("POST /auth/login", s.handleLogin)
	private("GET /auth/me", s.handleMe)

	private("GET /journal", s.handleListJournal)
	private("POST /journal", s.handleCreateJournal)
	private("GET /journal/{id}", s.handleGetJournal)
	private("PUT /journal/{id}", s.handleUpdateJournal)
	private("DELETE /journal/{id}", s.handleDeleteJournal)

	private("GET /meditation", s.handleListMeditations)
	private("GET /mood", s.handleListMoods)
	private("POST /mood", s.handleSaveMood)

	private("GET /sleep", s.handleListSleep)
	private("POST /sleep", s.handleSaveSleep)
	private("PUT /sleep/{id}", s.handleUpdateSleep)
	private("DELETE /sleep/{id}", s.handleDeleteSleep)

	private("GET /chat", s.handleChatHistory)
	private("POST /chat", s.handleSendMessage)
	private("POST /chat/reset", s.handleResetChat)

	private("GET /community", s.handleListPosts)
	private("POST /community", s.handleCreatePost)
	private("GET /community/{id}", s.handleGetPost)
	private("POST /community/{id}/like", s.handleLikePost)
	private("POST /community/{id}/comments", s.handleAddComment)

	private("POST /tools/reframe", s.handleReframe)
	private("POST /tools/analyze-emotion", s.handleAnalyzeEmotion)
	private("GET /tools/challenges", s.handleChallenges)
	private("POST /tools/challenges/{id}/complete", s.handleCompleteChallenge)

	private("GET /therapy/therapists", s.handleListTherapists)
	private("GET /therapy/therapists/{id}", s.handleGetTherapist)
	private("POST /therapy/appointment", s.handleBookAppointment)
	private("GET /therapy/appointments", s.handleListAppointments)
	private("PUT /therapy/appointment/{id}", s.handleUpdateAppointment)
	private("DELETE /therapy/appointment/{id}", s.handleCancelAppointment)

	s.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get(common.RequestIDHeaderName),
			"elapsed", time.Since(started),
		)
	})
}

// bearerToken reads the token from x-auth-token or, failing that, from an
// Authorization bearer header.
func bearerToken(r *http.Request) string {
	if tok := strings.TrimSpace(r.Header.Get(common.AuthTokenHeaderName)); tok != "" {
		return tok
	}
	h := r.Header.Get(common.AuthorizationHeaderName)
	if strings.HasPrefix(h, common.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, common.BearerPrefix))
	}
	return ""
}

func (s *Server) authenticate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, users.ErrUnauthorized) {
				s.logger.Error(r.Context(), "authenticate", "error", err)
			}
			writeError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

func currentUser(ctx context.Context) *users.User {
	u, _ := ctx.Value(userKey).(*users.User)
	return u
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.Message{Message: msg})
}

// decodeInput reads a JSON body into v and runs the same tag validation
// the client uses. On failure it has already written a 400.
func decodeInput(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := api.Validate(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// paging reads page and limit, defaulting to 1 and 10.
const maxPageSize = 100

func paging(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = min(l, maxPageSize)
	}
	return page, limit
}

// window returns the [from,to) bounds of page within n items and the
// total page count. Pages past the end are empty.
func window(n, page, limit int) (from, to, pages int) {
	limit = max(limit, 1)
	pages = n / limit
	if n%limit != 0 {
		pages++
	}
	if page < 1 || page-1 >= pages {
		return n, n, pages
	}
	from = (page - 1) * limit
	to = min(from+limit, n)
	return from, to, pages
}

func notFound(w http.ResponseWriter, what string) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", what))
}

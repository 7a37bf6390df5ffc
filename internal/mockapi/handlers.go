package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
	"github.com/dmitrijs2005/mindhaven/internal/mockapi/users"
)

func profile(u *users.User) api.UserProfile {
	return api.UserProfile{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in api.SignupRequest
	if !decodeInput(w, r, &in) {
		return
	}
	user, token, err := s.users.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		s.logger.Error(r.Context(), "signup", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, api.AuthResponse{Token: token, User: profile(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in api.Credentials
	if !decodeInput(w, r, &in) {
		return
	}
	user, token, err := s.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, users.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResponse{Token: token, User: profile(user)})
}

// handleMe answers with "_id", as the production backend does.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"_id": u.ID, "name": u.Name, "email": u.Email})
}

func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	page, limit := paging(r)
	all := s.data.listJournal(u.ID)
	from, to, pages := window(len(all), page, limit)
	writeJSON(w, http.StatusOK, api.JournalPage{Entries: all[from:to], Page: page, TotalPages: pages, Total: len(all)})
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	e, ok := s.data.getJournal(currentUser(r.Context()).ID, r.PathValue("id"))
	if !ok {
		notFound(w, "Journal entry")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	var in api.JournalEntryInput
	if !decodeInput(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusCreated, s.data.addJournal(currentUser(r.Context()).ID, in))
}

func (s *Server) handleUpdateJournal(w http.ResponseWriter, r *http.Request) {
	var in api.JournalEntryInput
	if !decodeInput(w, r, &in) {
		return
	}
	e, ok := s.data.updateJournal(currentUser(r.Context()).ID, r.PathValue("id"), in)
	if !ok {
		notFound(w, "Journal entry")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteJournal(w http.ResponseWriter, r *http.Request) {
	if !s.data.deleteJournal(currentUser(r.Context()).ID, r.PathValue("id")) {
		notFound(w, "Journal entry")
		return
	}
	writeJSON(w, http.StatusOK, api.Message{Message: "Journal entry deleted"})
}

func (s *Server) handleListMeditations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listMeditations(r.URL.Query().Get("refresh") == "true"))
}

func (s *Server) handleListMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listMoods(currentUser(r.Context()).ID))
}

func (s *Server) handleSaveMood(w http.ResponseWriter, r *http.Request) {
	var in api.MoodInput
	if !decodeInput(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusCreated, s.data.addMood(currentUser(r.Context()).ID, in))
}

func (s *Server) handleListSleep(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listSleep(currentUser(r.Context()).ID))
}

func (s *Server) handleSaveSleep(w http.ResponseWriter, r *http.Request) {
	var in api.SleepInput
	if !decodeInput(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusCreated, s.data.addSleep(currentUser(r.Context()).ID, in))
}

func (s *Server) handleUpdateSleep(w http.ResponseWriter, r *http.Request) {
	var in api.SleepInput
	if !decodeInput(w, r, &in) {
		return
	}
	rec, ok := s.data.updateSleep(currentUser(r.Context()).ID, r.PathValue("id"), in)
	if !ok {
		notFound(w, "Sleep record")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteSleep(w http.ResponseWriter, r *http.Request) {
	if !s.data.deleteSleep(currentUser(r.Context()).ID, r.PathValue("id")) {
		notFound(w, "Sleep record")
		return
	}
	writeJSON(w, http.StatusOK, api.Message{Message: "Sleep record deleted"})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.chatHistory(currentUser(r.Context()).ID))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message string `json:"message" validate:"required"`
	}
	if !decodeInput(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, s.data.converse(currentUser(r.Context()).ID, in.Message))
}

func (s *Server) handleResetChat(w http.ResponseWriter, r *http.Request) {
	s.data.resetChat(currentUser(r.Context()).ID)
	writeJSON(w, http.StatusOK, api.Message{Message: "Chat history reset"})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r)
	posts, total, pages := s.data.listPosts(currentUser(r.Context()).ID, r.URL.Query().Get("category"), page, limit)
	writeJSON(w, http.StatusOK, api.PostPage{Posts: posts, CurrentPage: page, TotalPages: pages, Total: total})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.data.getPost(currentUser(r.Context()).ID, r.PathValue("id"))
	if !ok {
		notFound(w, "Post")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in api.PostInput
	if !decodeInput(w, r, &in) {
		return
	}
	u := currentUser(r.Context())
	writeJSON(w, http.StatusCreated, s.data.addPost(u.ID, u.Name, in))
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	st, ok := s.data.toggleLike(currentUser(r.Context()).ID, r.PathValue("id"))
	if !ok {
		notFound(w, "Post")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var in api.CommentInput
	if !decodeInput(w, r, &in) {
		return
	}
	u := currentUser(r.Context())
	comments, ok := s.data.addComment(u.ID, u.Name, r.PathValue("id"), in)
	if !ok {
		notFound(w, "Post")
		return
	}
	writeJSON(w, http.StatusCreated, comments)
}

func (s *Server) handleReframe(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Thought string `json:"thought" validate:"required"`
	}
	if !decodeInput(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, reframe(in.Thought))
}

func (s *Server) handleAnalyzeEmotion(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text" validate:"required"`
	}
	if !decodeInput(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, analyzeEmotion(in.Text))
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.challengeBoard(currentUser(r.Context()).ID))
}

func (s *Server) handleCompleteChallenge(w http.ResponseWriter, r *http.Request) {
	res, ok := s.data.completeChallenge(currentUser(r.Context()).ID, r.PathValue("id"))
	if !ok {
		notFound(w, "Challenge")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListTherapists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listTherapists(strings.TrimSpace(r.URL.Query().Get("specialty"))))
}

func (s *Server) handleGetTherapist(w http.ResponseWriter, r *http.Request) {
	t, ok := s.data.getTherapist(r.PathValue("id"))
	if !ok {
		notFound(w, "Therapist")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleBookAppointment(w http.ResponseWriter, r *http.Request) {
	var in api.AppointmentInput
	if !decodeInput(w, r, &in) {
		return
	}
	a, ok := s.data.bookAppointment(currentUser(r.Context()).ID, in)
	if !ok {
		notFound(w, "Therapist")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.listAppointments(currentUser(r.Context()).ID))
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var in api.AppointmentInput
	if !decodeInput(w, r, &in) {
		return
	}
	a, ok := s.data.updateAppointment(currentUser(r.Context()).ID, r.PathValue("id"), in)
	if !ok {
		notFound(w, "Appointment")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	if !s.data.cancelAppointment(currentUser(r.Context()).ID, r.PathValue("id")) {
		notFound(w, "Appointment")
		return
	}
	writeJSON(w, http.StatusOK, api.Message{Message: "Appointment cancelled"})
}

package session

import "github.com/dmitrijs2005/mindhaven/internal/client/api"

// Phase is the coarse authentication status.
type Phase int

const (
	// PhaseUnknown lasts until the stored token has been verified (or found missing).
	PhaseUnknown Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseUnknown:
		return "unknown"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticated:
		return "authenticated"
	}
	return "invalid"
}

// State is an immutable snapshot of the session.
// IsAuthenticated is true exactly when both User and Token are set.
type State struct {
	User            *api.UserProfile
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Phase           Phase
}

// Route is a navigation target the session asks the UI to show.
type Route string

const (
	RouteHome      Route = "/"
	RouteDashboard Route = "/dashboard"
)

// Navigator moves the UI to another screen. Implemented by the UI layer.
type Navigator interface {
	Navigate(to Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(to Route)

func (f NavigatorFunc) Navigate(to Route) { f(to) }

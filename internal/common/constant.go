// Package common contains wire-level constants shared by the client and the
// local stub API, plus small byte helpers.
package common

// APIPrefix is the path prefix every endpoint lives under.
const APIPrefix = "/api"

// Header names. The backend accepts either auth scheme, so the client sends both.
const (
	AuthorizationHeaderName = "Authorization"
	AuthTokenHeaderName     = "x-auth-token"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// TokenStorageKey is the local storage key holding the raw credential token.
const TokenStorageKey = "token"

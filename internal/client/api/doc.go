// Package api is the client for the mindhaven REST API.
//
// Every operation issues exactly one JSON-over-HTTP request against the
// configured base URL and returns (T, error) where exactly one of the two is
// meaningful: either a decoded, schema-checked value and a nil error, or the
// zero value and an *Error.
//
// # Outcome mapping
//
//   - 2xx with a body that decodes into the endpoint's response type and
//     passes its validate tags: data.
//   - non-2xx: Kind Server, message taken from the body's "message" (then
//     "error") field, falling back to the operation's default text.
//   - no response, unreadable or malformed 2xx body: Kind Transport, message
//     is the operation's default followed by ". Please try again.".
//   - bad input (empty ids, missing credentials): Kind Validation, before any
//     network traffic.
//
// No operation retries, caches or panics. Every request except Login and
// Signup carries both "Authorization: Bearer <token>" and "x-auth-token"
// when the TokenSource has a token.
package api

// Package mockapi is an in-memory stand-in for the remote mindhaven API.
//
// It serves the same JSON endpoints under /api that the client talks to,
// issues HS256 tokens, accepts either the Authorization bearer header or
// x-auth-token, and answers failures with {"message": "..."} bodies. Data
// lives only as long as the process.
package mockapi

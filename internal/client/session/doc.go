// Package session owns the client's authentication lifecycle: the stored
// credential token, the current user and the loading flag.
//
// A Manager is created once at the application root and handed to every
// consumer. Consumers read it through State and Subscribe and change it
// through Start, Login, Signup and Logout.
//
// Each of those calls takes a new generation number. A network result is
// applied only while its generation is still the latest one, so a login
// that finishes after the user logged out (or after a newer login began)
// is dropped and its token is never persisted.
package session

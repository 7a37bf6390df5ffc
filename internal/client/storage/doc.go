// Package storage is the client's durable local key-value storage, the
// equivalent of a browser's localStorage.
//
// Values are strings keyed by strings and live in a single SQLite table
// (pure-Go modernc.org/sqlite driver) whose schema is managed with embedded
// goose migrations. Open creates the file when needed and migrates it.
//
// The session layer is the only writer; see session.StoredToken.
package storage

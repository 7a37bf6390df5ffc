// Package cli provides the interactive mindhaven terminal client.
//
// It wires configuration, local storage, the API client and the session
// manager into a read–eval–print loop. The App is the session's Navigator:
// a successful login moves it to the dashboard, a logout back home, and the
// prompt and available commands follow.
//
// Commands that need an account (journal, mood, chat, community, tools,
// sleep, therapy) are refused until the session is authenticated. Errors
// are printed as one-line notifications; nothing is retried automatically.
package cli

// Package credential stores OAuth credentials for calendar providers.
//
// A Credential couples an opaque id with a provider-specific Key blob
// (access token, refresh token, absolute expiry). Adapters hold a transient
// in-memory copy of the Key and write every mutation back through
// Store.Update before relying on the refreshed token.
//
// Two Store implementations are provided: SQLiteStore for local
// persistence and MemoryStore for tests.
package credential

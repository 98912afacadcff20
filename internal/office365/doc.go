// Package office365 provides the Microsoft Office 365 calendar adapter.
//
// This package wraps the Microsoft Graph calendar surface and provides
// functionality for:
//   - Listing the calendars visible to a stored credential
//   - Querying busy intervals across many calendars in one batched call
//   - Creating, updating and deleting events
//
// # Credentials
//
// The adapter is constructed around one stored OAuth credential. Access
// tokens are refreshed lazily: each operation asks the internal token cache
// for a valid token, and an expired token triggers exactly one refresh-token
// grant, whose result is persisted to the credential store before use.
// Concurrent operations share a single in-flight refresh per credential.
//
// # Example Usage
//
//	store, err := credential.NewSQLiteStore(dbPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cred, err := store.Get(ctx, credentialID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := office365.NewClient(cfg, cred, store, slog.Default(), nil)
//	busy, err := client.GetAvailability(ctx, from, to, nil)
package office365

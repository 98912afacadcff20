// Package logging provides structured logging utilities for calbridge.
//
// It centralizes attribute naming for the standard library's slog package
// so provider adapters and the CLI log with consistent keys.
//
// Create a logger scoped to an integration and credential:
//
//	logger := logging.WithCredential(
//	    logging.WithIntegration(slog.Default(), calendar.TypeOffice365),
//	    cred.ID)
//	logger.Info("calendars listed", logging.Status(logging.StatusSuccess))
//
// Tokens are never logged directly; use SanitizeToken when a token's
// presence needs to be recorded.
package logging

package office365

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/calbridge/calbridge/internal/calendar"
	"github.com/calbridge/calbridge/internal/credential"
	"github.com/calbridge/calbridge/internal/instrumentation"
	"github.com/calbridge/calbridge/internal/logging"
)

// refreshScope is requested on every refresh grant so the returned access
// token keeps the calendar permissions of the original consent.
const refreshScope = "User.Read Calendars.Read Calendars.ReadWrite"

// tokenCache wraps one stored credential and answers "give me a currently
// valid access token", refreshing and persisting transparently when the
// token is expired.
//
// Refreshes are serialized per credential: concurrent callers that observe
// an expired token share a single refresh request and a single persistence
// write instead of racing duplicate grants.
type tokenCache struct {
	mu    sync.Mutex
	group singleflight.Group

	cred       *credential.Credential
	store      credential.Store
	cfg        Config
	httpClient *http.Client
	tokenURL   string
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	now        func() time.Time
}

// token returns a currently valid access token. It never blocks the caller
// beyond one network round trip in the expired case.
func (t *tokenCache) token(ctx context.Context) (string, error) {
	t.mu.Lock()
	key := t.cred.Key
	t.mu.Unlock()

	if !key.Expired(t.now()) {
		return key.AccessToken, nil
	}

	v, err, _ := t.group.Do(t.cred.ID, func() (interface{}, error) {
		return t.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// refresh performs the refresh-token grant, updates the in-memory key and
// persists it. The new token is handed out only after the store write
// succeeded: a persisted copy must never be staler than the one in use.
func (t *tokenCache) refresh(ctx context.Context) (string, error) {
	const op = "token.refresh"

	t.mu.Lock()
	defer t.mu.Unlock()

	// A caller that lost the singleflight race re-enters here after the
	// winning refresh completed; the re-check avoids a second grant.
	if !t.cred.Key.Expired(t.now()) {
		return t.cred.Key.AccessToken, nil
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", t.cred.Key.RefreshToken)
	data.Set("client_id", t.cfg.ClientID)
	data.Set("client_secret", t.cfg.ClientSecret)
	data.Set("scope", refreshScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.metrics.RecordTokenRefresh(calendar.TypeOffice365, instrumentation.ResultError)
		return "", fmt.Errorf("failed to refresh access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.metrics.RecordTokenRefresh(calendar.TypeOffice365, instrumentation.ResultError)
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.metrics.RecordTokenRefresh(calendar.TypeOffice365, instrumentation.ResultError)
		return "", newAPIError(op, resp.StatusCode, body)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		t.metrics.RecordTokenRefresh(calendar.TypeOffice365, instrumentation.ResultError)
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	key := t.cred.Key
	key.AccessToken = tokenResp.AccessToken
	key.ExpiryDate = t.now().Unix() + tokenResp.ExpiresIn

	// Persist before adopting the new key: the in-memory copy must never be
	// ahead of the store.
	if err := t.store.Update(ctx, t.cred.ID, key); err != nil {
		t.metrics.RecordTokenRefresh(calendar.TypeOffice365, instrumentation.ResultError)
		return "", fmt.Errorf("failed to persist refreshed credential: %w", err)
	}
	t.cred.Key = key

	t.metrics.RecordTokenRefresh(calendar.TypeOffice365, instrumentation.ResultSuccess)
	t.logger.Debug("access token refreshed",
		logging.Operation(op),
		slog.String("token", logging.SanitizeToken(t.cred.Key.AccessToken)),
		slog.Int64("expiry_date", t.cred.Key.ExpiryDate))

	return t.cred.Key.AccessToken, nil
}

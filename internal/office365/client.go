package office365

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/calbridge/calbridge/internal/calendar"
	"github.com/calbridge/calbridge/internal/credential"
	"github.com/calbridge/calbridge/internal/instrumentation"
	"github.com/calbridge/calbridge/internal/logging"
)

const (
	graphBaseURL = "https://graph.microsoft.com/v1.0"
	tokenBaseURL = "https://login.microsoftonline.com/common/oauth2/v2.0/token"

	// graphTimeFormat is the naive timestamp layout Graph uses for zoned
	// datetimes.
	graphTimeFormat = "2006-01-02T15:04:05"
)

// Environment variables holding the OAuth client configuration.
const (
	EnvClientID     = "MS_GRAPH_CLIENT_ID"
	EnvClientSecret = "MS_GRAPH_CLIENT_SECRET"
)

// Config holds the OAuth client configuration for the refresh grant.
type Config struct {
	ClientID     string
	ClientSecret string
}

// ConfigFromEnv reads the OAuth client configuration from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}
	if cfg.ClientID == "" {
		return Config{}, fmt.Errorf("%s is not set", EnvClientID)
	}
	if cfg.ClientSecret == "" {
		return Config{}, fmt.Errorf("%s is not set", EnvClientSecret)
	}
	return cfg, nil
}

// Client is the Office 365 calendar adapter. It composes the token cache,
// event translation, calendar listing and availability aggregation into the
// generic Provider surface. Every operation begins by obtaining a valid
// access token from the token cache.
type Client struct {
	tokens     *tokenCache
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	baseURL    string
}

var _ calendar.Provider = (*Client)(nil)

// NewClient creates an adapter for one stored credential. The client holds
// a transient in-memory copy of the credential and writes every token
// mutation back through the store. metrics may be nil.
func NewClient(cfg Config, cred *credential.Credential, store credential.Store, logger *slog.Logger, metrics *instrumentation.Metrics) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithCredential(logging.WithIntegration(logger, calendar.TypeOffice365), cred.ID)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	return &Client{
		tokens: &tokenCache{
			cred:       cred,
			store:      store,
			cfg:        cfg,
			httpClient: httpClient,
			tokenURL:   tokenBaseURL,
			logger:     logger,
			metrics:    metrics,
			now:        time.Now,
		},
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
		baseURL:    graphBaseURL,
	}
}

// newRequest builds an authorized Graph request, obtaining a valid access
// token first.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.tokens.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return req, nil
}

// ListCalendars returns the remote calendars visible to the credential
// holder, normalized to the generic shape.
func (c *Client) ListCalendars(ctx context.Context) ([]calendar.IntegrationCalendar, error) {
	const op = "calendars.list"

	req, err := c.newRequest(ctx, http.MethodGet, "/me/calendars", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordProviderRequest(calendar.TypeOffice365, op, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(op, resp.StatusCode, body)
	}

	var result struct {
		Value []graphCalendar `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode calendar list: %w", err)
	}

	calendars := make([]calendar.IntegrationCalendar, len(result.Value))
	for i, cal := range result.Value {
		calendars[i] = normalizeCalendar(cal)
	}

	return calendars, nil
}

// CreateEvent creates an event on the credential holder's default calendar.
func (c *Client) CreateEvent(ctx context.Context, event *calendar.Event) (*calendar.EventReference, error) {
	const op = "events.create"

	payload, err := json.Marshal(translateEvent(event))
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/me/calendar/events", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordProviderRequest(calendar.TypeOffice365, op, resp.StatusCode)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(op, resp.StatusCode, body)
	}

	var created graphEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode created event: %w", err)
	}

	return &calendar.EventReference{ID: created.ID}, nil
}

// UpdateEvent applies the event fields to an existing provider event.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, event *calendar.Event) (*calendar.EventReference, error) {
	const op = "events.update"

	payload, err := json.Marshal(translateEvent(event))
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "/me/events/"+eventID, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordProviderRequest(calendar.TypeOffice365, op, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(op, resp.StatusCode, body)
	}

	var updated graphEvent
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated event: %w", err)
	}

	return &calendar.EventReference{ID: updated.ID}, nil
}

// DeleteEvent removes an event by id. Graph answers a delete with an empty
// body, so no response decoding happens on success.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	const op = "events.delete"

	req, err := c.newRequest(ctx, http.MethodDelete, "/me/events/"+eventID, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordProviderRequest(calendar.TypeOffice365, op, resp.StatusCode)

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return newAPIError(op, resp.StatusCode, body)
	}

	return nil
}

// GetEvent retrieves a single event by id, mapped back to the generic model.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*calendar.Event, error) {
	const op = "events.get"

	req, err := c.newRequest(ctx, http.MethodGet, "/me/events/"+eventID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordProviderRequest(calendar.TypeOffice365, op, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(op, resp.StatusCode, body)
	}

	var ev graphEvent
	if err := json.NewDecoder(resp.Body).Decode(&ev); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	return ev.toEvent(), nil
}

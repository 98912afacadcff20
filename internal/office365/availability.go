package office365

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/calbridge/calbridge/internal/calendar"
	"github.com/calbridge/calbridge/internal/logging"
)

// preferUTC forces Graph to return calendarView times in a fixed neutral
// timezone. Per-calendar local timezones would otherwise make interval
// comparison across calendars ambiguous.
const preferUTC = `outlook.timezone="Etc/GMT"`

type batchRequest struct {
	ID      string            `json:"id"`
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

type batchEnvelope struct {
	Requests []batchRequest `json:"requests"`
}

type busyEvent struct {
	Start struct {
		DateTime string `json:"dateTime"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
	} `json:"end"`
}

type batchResponse struct {
	Responses []struct {
		ID     string `json:"id"`
		Status int    `json:"status"`
		Body   struct {
			Value []busyEvent `json:"value"`
		} `json:"body"`
	} `json:"responses"`
}

// GetAvailability returns the busy intervals between dateFrom and dateTo
// (ISO-8601 strings) across the selected calendars, queried in a single
// batched round trip. An empty selection falls back to every calendar
// visible to the credential.
func (c *Client) GetAvailability(ctx context.Context, dateFrom, dateTo string, selected []calendar.SelectedCalendar) ([]calendar.BusyTime, error) {
	const op = "availability.get"

	busy, err := c.getAvailability(ctx, dateFrom, dateTo, selected)
	if err != nil {
		c.logger.Error("availability lookup failed", logging.Operation(op), logging.Err(err))
		return nil, err
	}
	return busy, nil
}

func (c *Client) getAvailability(ctx context.Context, dateFrom, dateTo string, selected []calendar.SelectedCalendar) ([]calendar.BusyTime, error) {
	const op = "availability.get"

	ids := make([]string, 0, len(selected))
	for _, sel := range selected {
		if sel.Integration != calendar.TypeOffice365 || sel.ExternalID == "" {
			continue
		}
		ids = append(ids, sel.ExternalID)
	}

	// The caller selected calendars, but none of them belong to this
	// provider. This adapter contributes zero busy time; querying anything
	// here would be spurious.
	if len(ids) == 0 && len(selected) > 0 {
		return []calendar.BusyTime{}, nil
	}

	// No selection at all: query every calendar visible to the credential.
	if len(selected) == 0 {
		calendars, err := c.ListCalendars(ctx)
		if err != nil {
			return nil, err
		}
		for _, cal := range calendars {
			ids = append(ids, cal.ExternalID)
		}
	}

	if len(ids) == 0 {
		return []calendar.BusyTime{}, nil
	}

	params := url.Values{}
	params.Set("startDateTime", dateFrom)
	params.Set("endDateTime", dateTo)

	requests := make([]batchRequest, len(ids))
	for i, id := range ids {
		requests[i] = batchRequest{
			ID:      strconv.Itoa(i + 1),
			Method:  http.MethodGet,
			URL:     "/me/calendars/" + id + "/calendarView?" + params.Encode(),
			Headers: map[string]string{"Prefer": preferUTC},
		}
	}

	payload, err := json.Marshal(batchEnvelope{Requests: requests})
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/$batch", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordProviderRequest(calendar.TypeOffice365, op, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(op, resp.StatusCode, body)
	}

	var parsed batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}

	busy := make([]calendar.BusyTime, 0)
	for _, sub := range parsed.Responses {
		for _, ev := range sub.Body.Value {
			// The Prefer header pinned every sub-response to Etc/GMT, so
			// the naive timestamps are UTC and the literal marker is safe.
			busy = append(busy, calendar.BusyTime{
				Start: ev.Start.DateTime + "Z",
				End:   ev.End.DateTime + "Z",
			})
		}
	}

	return busy, nil
}

package office365

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/calbridge/calbridge/internal/calendar"
)

// APIError is an error response from the Microsoft identity platform or the
// Graph API, carrying the parsed error payload.
type APIError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("office365: %s failed with status %d: %s: %s", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("office365: %s failed with status %d: %s", e.Op, e.StatusCode, e.Message)
}

// newAPIError parses an error body into an APIError. Graph errors look like
// {"error":{"code":...,"message":...}}; the token endpoint returns
// {"error":"invalid_grant","error_description":...}.
func newAPIError(op string, status int, body []byte) *APIError {
	apiErr := &APIError{Op: op, StatusCode: status}

	var envelope struct {
		Error            json.RawMessage `json:"error"`
		ErrorDescription string          `json:"error_description"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var graphErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &graphErr); err == nil && (graphErr.Code != "" || graphErr.Message != "") {
			apiErr.Code = graphErr.Code
			apiErr.Message = graphErr.Message
		} else {
			var code string
			if err := json.Unmarshal(envelope.Error, &code); err == nil {
				apiErr.Code = code
				apiErr.Message = envelope.ErrorDescription
			}
		}
	}

	if apiErr.Code == "" && apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	return apiErr
}

// dateTimeTimeZone is the Graph representation of a zoned timestamp.
type dateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type emailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type eventAttendee struct {
	EmailAddress emailAddress `json:"emailAddress"`
	Type         string       `json:"type"`
}

type eventLocation struct {
	DisplayName string `json:"displayName"`
}

// eventPayload is the wire shape of an event sent to Graph. Location is a
// pointer so that an event without a location omits the field entirely.
type eventPayload struct {
	Subject   string           `json:"subject"`
	Body      itemBody         `json:"body"`
	Start     dateTimeTimeZone `json:"start"`
	End       dateTimeTimeZone `json:"end"`
	Attendees []eventAttendee  `json:"attendees"`
	Location  *eventLocation   `json:"location,omitempty"`
}

// graphEvent is an event as returned by Graph.
type graphEvent struct {
	ID        string           `json:"id"`
	Subject   string           `json:"subject"`
	Body      itemBody         `json:"body"`
	Start     dateTimeTimeZone `json:"start"`
	End       dateTimeTimeZone `json:"end"`
	Location  eventLocation    `json:"location"`
	Attendees []eventAttendee  `json:"attendees"`
}

func (e *graphEvent) toEvent() *calendar.Event {
	ev := &calendar.Event{
		Title:       e.Subject,
		Description: e.Body.Content,
		Timezone:    e.Start.TimeZone,
		Location:    e.Location.DisplayName,
	}

	ev.Start = parseGraphTime(e.Start.DateTime, e.Start.TimeZone)
	ev.End = parseGraphTime(e.End.DateTime, e.End.TimeZone)

	for _, att := range e.Attendees {
		ev.Attendees = append(ev.Attendees, calendar.Attendee{
			Email: att.EmailAddress.Address,
			Name:  att.EmailAddress.Name,
		})
	}

	return ev
}

// parseGraphTime parses a Graph dateTime string in the given zone. Graph
// emits naive timestamps, optionally with a fractional-seconds suffix.
// Unparseable values yield the zero time.
func parseGraphTime(value, tz string) time.Time {
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	t, err := time.ParseInLocation(graphTimeFormat, value, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// graphCalendar is a calendar record as returned by Graph. The id, name and
// default flag are optional in the remote schema, hence the pointers.
type graphCalendar struct {
	ID                *string `json:"id"`
	Name              *string `json:"name"`
	IsDefaultCalendar *bool   `json:"isDefaultCalendar"`
}

// Normalization defaults for optional fields in Graph calendar records:
//
//	id                → "No id"
//	name              → "No calendar name"
//	isDefaultCalendar → false
const (
	defaultCalendarID   = "No id"
	defaultCalendarName = "No calendar name"
)

// normalizeCalendar maps a Graph calendar record to the generic shape.
// Callers never see empty or missing identifiers.
func normalizeCalendar(cal graphCalendar) calendar.IntegrationCalendar {
	normalized := calendar.IntegrationCalendar{
		ExternalID:  defaultCalendarID,
		Integration: calendar.TypeOffice365,
		Name:        defaultCalendarName,
	}

	if cal.ID != nil && *cal.ID != "" {
		normalized.ExternalID = *cal.ID
	}
	if cal.Name != nil && *cal.Name != "" {
		normalized.Name = *cal.Name
	}
	if cal.IsDefaultCalendar != nil {
		normalized.Primary = *cal.IsDefaultCalendar
	}

	return normalized
}

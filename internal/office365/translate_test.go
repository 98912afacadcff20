package office365

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calbridge/calbridge/internal/calendar"
)

func testEvent() *calendar.Event {
	return &calendar.Event{
		Title:       "Design review",
		Description: "<p>agenda</p>",
		Start:       time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
		Timezone:    "UTC",
		Attendees: []calendar.Attendee{
			{Email: "ann@example.com", Name: "Ann"},
			{Email: "bob@example.com", Name: "Bob"},
		},
	}
}

func TestTranslateEvent(t *testing.T) {
	payload := translateEvent(testEvent())

	assert.Equal(t, "Design review", payload.Subject)
	assert.Equal(t, itemBody{ContentType: "HTML", Content: "<p>agenda</p>"}, payload.Body)
	assert.Equal(t, dateTimeTimeZone{DateTime: "2024-01-15T12:00:00", TimeZone: "UTC"}, payload.Start)
	assert.Equal(t, dateTimeTimeZone{DateTime: "2024-01-15T13:00:00", TimeZone: "UTC"}, payload.End)

	require.Len(t, payload.Attendees, 2)
	for _, att := range payload.Attendees {
		assert.Equal(t, "required", att.Type)
	}
	assert.Equal(t, "ann@example.com", payload.Attendees[0].EmailAddress.Address)
	assert.Equal(t, "Ann", payload.Attendees[0].EmailAddress.Name)
}

func TestTranslateEvent_OrganizerTimezone(t *testing.T) {
	ev := testEvent()
	ev.Timezone = "Europe/Berlin"

	payload := translateEvent(ev)

	// 12:00 UTC on a January day is 13:00 in Berlin.
	assert.Equal(t, dateTimeTimeZone{DateTime: "2024-01-15T13:00:00", TimeZone: "Europe/Berlin"}, payload.Start)
	assert.Equal(t, dateTimeTimeZone{DateTime: "2024-01-15T14:00:00", TimeZone: "Europe/Berlin"}, payload.End)
}

func TestTranslateEvent_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	ev := testEvent()
	ev.Timezone = "Not/AZone"

	payload := translateEvent(ev)
	assert.Equal(t, "UTC", payload.Start.TimeZone)
	assert.Equal(t, "2024-01-15T12:00:00", payload.Start.DateTime)
}

func TestTranslateEvent_LocationOmittedWhenAbsent(t *testing.T) {
	payload := translateEvent(testEvent())
	require.Nil(t, payload.Location)

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), `"location"`)
}

func TestTranslateEvent_LocationPresent(t *testing.T) {
	ev := testEvent()
	ev.Location = "Room 4"

	payload := translateEvent(ev)
	require.NotNil(t, payload.Location)
	assert.Equal(t, "Room 4", payload.Location.DisplayName)

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"location":{"displayName":"Room 4"}`)
}

package office365

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calbridge/calbridge/internal/calendar"
)

func TestListCalendars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/me/calendars", r.URL.Path)
		assert.Equal(t, "Bearer cached-access-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"value":[
			{"id":"cal-1","name":"Calendar","isDefaultCalendar":true},
			{"id":"cal-2","name":"Team"}
		]}`)
	}))
	defer server.Close()

	client, _, _ := newTestClient(t, futureKey(), server.URL, "http://invalid.test")

	calendars, err := client.ListCalendars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []calendar.IntegrationCalendar{
		{ExternalID: "cal-1", Integration: calendar.TypeOffice365, Name: "Calendar", Primary: true},
		{ExternalID: "cal-2", Integration: calendar.TypeOffice365, Name: "Team", Primary: false},
	}, calendars)
}

func TestListCalendars_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"code":"InvalidAuthenticationToken","message":"Access token is empty."}}`)
	}))
	defer server.Close()

	client, _, _ := newTestClient(t, futureKey(), server.URL, "http://invalid.test")

	_, err := client.ListCalendars(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "InvalidAuthenticationToken", apiErr.Code)
}

func TestNormalizeCalendar(t *testing.T) {
	id := "cal-1"
	name := "Team"
	primary := true
	empty := ""

	tests := []struct {
		name string
		in   graphCalendar
		want calendar.IntegrationCalendar
	}{
		{
			name: "all fields present",
			in:   graphCalendar{ID: &id, Name: &name, IsDefaultCalendar: &primary},
			want: calendar.IntegrationCalendar{ExternalID: "cal-1", Integration: calendar.TypeOffice365, Name: "Team", Primary: true},
		},
		{
			name: "all fields missing",
			in:   graphCalendar{},
			want: calendar.IntegrationCalendar{ExternalID: "No id", Integration: calendar.TypeOffice365, Name: "No calendar name", Primary: false},
		},
		{
			name: "empty strings treated as missing",
			in:   graphCalendar{ID: &empty, Name: &empty},
			want: calendar.IntegrationCalendar{ExternalID: "No id", Integration: calendar.TypeOffice365, Name: "No calendar name", Primary: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCalendar(tt.in))
		})
	}
}

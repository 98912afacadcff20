package office365

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError_GraphErrorObject(t *testing.T) {
	body := []byte(`{"error":{"code":"ErrorAccessDenied","message":"Access is denied."}}`)

	err := newAPIError("calendars.list", 403, body)
	assert.Equal(t, "ErrorAccessDenied", err.Code)
	assert.Equal(t, "Access is denied.", err.Message)
	assert.Equal(t, "office365: calendars.list failed with status 403: ErrorAccessDenied: Access is denied.", err.Error())
}

func TestNewAPIError_TokenEndpointError(t *testing.T) {
	body := []byte(`{"error":"invalid_grant","error_description":"AADSTS70000: refresh token expired"}`)

	err := newAPIError("token.refresh", 400, body)
	assert.Equal(t, "invalid_grant", err.Code)
	assert.Contains(t, err.Message, "refresh token expired")
}

func TestNewAPIError_UnparsableBody(t *testing.T) {
	err := newAPIError("events.delete", 502, []byte("Bad Gateway\n"))
	assert.Empty(t, err.Code)
	assert.Equal(t, "Bad Gateway", err.Message)
	assert.Equal(t, "office365: events.delete failed with status 502: Bad Gateway", err.Error())
}

func TestParseGraphTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		tz    string
		want  time.Time
	}{
		{
			name:  "plain UTC",
			value: "2024-01-15T10:00:00",
			tz:    "UTC",
			want:  time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds stripped",
			value: "2024-01-15T10:00:00.0000000",
			tz:    "UTC",
			want:  time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "empty zone defaults to UTC",
			value: "2024-01-15T10:00:00",
			tz:    "",
			want:  time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "garbage yields zero time",
			value: "not-a-time",
			tz:    "UTC",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseGraphTime(tt.value, tt.tz)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseGraphTime_NamedZone(t *testing.T) {
	got := parseGraphTime("2024-01-15T13:00:00", "Europe/Berlin")
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))
}

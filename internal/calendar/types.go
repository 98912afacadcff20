package calendar

import "time"

// Integration type tags identify which provider adapter produced or should
// consume a calendar or selection entry.
const (
	TypeOffice365 = "office365_calendar"
)

// Event represents the input for creating or updating a calendar event.
// It is owned by the host application and treated as immutable by adapters.
type Event struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time

	// Timezone is the organizer's IANA timezone name (e.g. "Europe/Berlin").
	Timezone string

	Attendees []Attendee
	Location  string // optional; empty means no location
}

// Attendee represents a single event participant.
type Attendee struct {
	Email string
	Name  string
}

// EventReference identifies an event created or updated at the provider.
type EventReference struct {
	ID string
}

// IntegrationCalendar is the normalized representation of a remote calendar.
type IntegrationCalendar struct {
	ExternalID  string
	Integration string
	Name        string
	Primary     bool
}

// BusyTime is one opaque busy interval. Start and End are ISO-8601
// timestamp strings in UTC. No ordering is guaranteed across a list.
type BusyTime struct {
	Start string
	End   string
}

// SelectedCalendar is one (integration type, external id) pair chosen by
// the caller, potentially spanning multiple providers. Adapters must filter
// to the pairs tagged with their own integration type.
type SelectedCalendar struct {
	Integration string
	ExternalID  string
}

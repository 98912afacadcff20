package calendar

import "context"

// Provider is the uniform capability surface a calendar adapter exposes to
// the host application. Every operation is backed by a stored credential
// and may refresh it transparently.
type Provider interface {
	// ListCalendars returns the remote calendars visible to the credential
	// holder, normalized to IntegrationCalendar.
	ListCalendars(ctx context.Context) ([]IntegrationCalendar, error)

	// GetAvailability returns the busy intervals between dateFrom and
	// dateTo (ISO-8601 strings) across the selected calendars. An empty
	// selection means all calendars visible to the credential.
	GetAvailability(ctx context.Context, dateFrom, dateTo string, selected []SelectedCalendar) ([]BusyTime, error)

	// CreateEvent creates an event on the credential holder's default
	// calendar and returns a reference to it.
	CreateEvent(ctx context.Context, event *Event) (*EventReference, error)

	// UpdateEvent applies the event fields to an existing provider event.
	UpdateEvent(ctx context.Context, eventID string, event *Event) (*EventReference, error)

	// DeleteEvent removes an event by its provider-native identifier.
	DeleteEvent(ctx context.Context, eventID string) error
}

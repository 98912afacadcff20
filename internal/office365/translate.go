package office365

import (
	"time"

	"github.com/calbridge/calbridge/internal/calendar"
)

// translateEvent maps a generic event to the Graph wire schema. It is pure:
// no network, no validation. Start and end are rendered in the organizer's
// timezone; an unknown or empty zone name falls back to UTC. Every attendee
// is marked required. The location field is emitted only when a location
// string is present.
func translateEvent(ev *calendar.Event) eventPayload {
	tz := ev.Timezone
	loc, err := time.LoadLocation(tz)
	if tz == "" || err != nil {
		tz = "UTC"
		loc = time.UTC
	}

	attendees := make([]eventAttendee, len(ev.Attendees))
	for i, att := range ev.Attendees {
		attendees[i] = eventAttendee{
			EmailAddress: emailAddress{
				Address: att.Email,
				Name:    att.Name,
			},
			Type: "required",
		}
	}

	payload := eventPayload{
		Subject: ev.Title,
		Body: itemBody{
			ContentType: "HTML",
			Content:     ev.Description,
		},
		Start: dateTimeTimeZone{
			DateTime: ev.Start.In(loc).Format(graphTimeFormat),
			TimeZone: tz,
		},
		End: dateTimeTimeZone{
			DateTime: ev.End.In(loc).Format(graphTimeFormat),
			TimeZone: tz,
		},
		Attendees: attendees,
	}

	if ev.Location != "" {
		payload.Location = &eventLocation{DisplayName: ev.Location}
	}

	return payload
}

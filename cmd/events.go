package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calbridge/calbridge/internal/calendar"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage calendar events",
	}

	cmd.AddCommand(newEventsCreateCmd())
	cmd.AddCommand(newEventsUpdateCmd())
	cmd.AddCommand(newEventsDeleteCmd())
	cmd.AddCommand(newEventsGetCmd())

	return cmd
}

type eventFlags struct {
	title       string
	description string
	start       string
	end         string
	timezone    string
	location    string
	attendees   []string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "event title")
	cmd.Flags().StringVar(&f.description, "description", "", "event description")
	cmd.Flags().StringVar(&f.start, "start", "", "start time (RFC 3339)")
	cmd.Flags().StringVar(&f.end, "end", "", "end time (RFC 3339)")
	cmd.Flags().StringVar(&f.timezone, "timezone", "UTC", "IANA timezone for the event")
	cmd.Flags().StringVar(&f.location, "location", "", "event location")
	cmd.Flags().StringArrayVar(&f.attendees, "attendee", nil, "attendee as email or email:name (repeatable)")
}

// event builds a domain event from the flag values. Attendees are given
// as "email" or "email:name".
func (f *eventFlags) event() (*calendar.Event, error) {
	start, err := time.Parse(time.RFC3339, f.start)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, f.end)
	if err != nil {
		return nil, fmt.Errorf("invalid --end: %w", err)
	}

	var attendees []calendar.Attendee
	for _, a := range f.attendees {
		email, name, _ := strings.Cut(a, ":")
		attendees = append(attendees, calendar.Attendee{Email: email, Name: name})
	}

	return &calendar.Event{
		Title:       f.title,
		Description: f.description,
		Start:       start,
		End:         end,
		Timezone:    f.timezone,
		Location:    f.location,
		Attendees:   attendees,
	}, nil
}

func newEventsCreateCmd() *cobra.Command {
	var credentialID string
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event on the primary calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			provider, err := newProvider(cmd.Context(), credentialID, store)
			if err != nil {
				return err
			}

			event, err := flags.event()
			if err != nil {
				return err
			}

			ref, err := provider.CreateEvent(cmd.Context(), event)
			if err != nil {
				return fmt.Errorf("failed to create event: %w", err)
			}

			fmt.Printf("Created event %s\n", ref.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id to use")
	flags.register(cmd)
	cmd.MarkFlagRequired("credential")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func newEventsUpdateCmd() *cobra.Command {
	var credentialID string
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Update an existing event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			provider, err := newProvider(cmd.Context(), credentialID, store)
			if err != nil {
				return err
			}

			event, err := flags.event()
			if err != nil {
				return err
			}

			ref, err := provider.UpdateEvent(cmd.Context(), args[0], event)
			if err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}

			fmt.Printf("Updated event %s\n", ref.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id to use")
	flags.register(cmd)
	cmd.MarkFlagRequired("credential")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func newEventsDeleteCmd() *cobra.Command {
	var credentialID string

	cmd := &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			provider, err := newProvider(cmd.Context(), credentialID, store)
			if err != nil {
				return err
			}

			if err := provider.DeleteEvent(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}

			fmt.Printf("Deleted event %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id to use")
	cmd.MarkFlagRequired("credential")

	return cmd
}

func newEventsGetCmd() *cobra.Command {
	var credentialID string

	cmd := &cobra.Command{
		Use:   "get <event-id>",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			provider, err := newProvider(cmd.Context(), credentialID, store)
			if err != nil {
				return err
			}

			event, err := provider.GetEvent(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get event: %w", err)
			}

			fmt.Printf("Title:    %s\n", event.Title)
			fmt.Printf("Start:    %s\n", event.Start.Format(time.RFC3339))
			fmt.Printf("End:      %s\n", event.End.Format(time.RFC3339))
			fmt.Printf("Timezone: %s\n", event.Timezone)
			if event.Location != "" {
				fmt.Printf("Location: %s\n", event.Location)
			}
			for _, a := range event.Attendees {
				if a.Name != "" {
					fmt.Printf("Attendee: %s <%s>\n", a.Name, a.Email)
				} else {
					fmt.Printf("Attendee: %s\n", a.Email)
				}
			}
			if event.Description != "" {
				fmt.Printf("\n%s\n", event.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id to use")
	cmd.MarkFlagRequired("credential")

	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calbridge/calbridge/internal/calendar"
)

func newAvailabilityCmd() *cobra.Command {
	var credentialID, dateFrom, dateTo string
	var calendarIDs []string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Query busy intervals across calendars",
		Long: `Query the busy intervals between two timestamps. With --calendar flags
only the named calendars are queried; without them every calendar visible
to the credential is included. All calendars are fetched in a single
batched round trip.`,
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

			var selected []calendar.SelectedCalendar
			for _, id := range calendarIDs {
				selected = append(selected, calendar.SelectedCalendar{
					Integration: calendar.TypeOffice365,
					ExternalID:  id,
				})
			}

			busy, err := provider.GetAvailability(cmd.Context(), dateFrom, dateTo, selected)
			if err != nil {
				return fmt.Errorf("failed to query availability: %w", err)
			}

			if len(busy) == 0 {
				fmt.Println("No busy intervals")
				return nil
			}
			for _, interval := range busy {
				fmt.Printf("%s - %s\n", interval.Start, interval.End)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id to use")
	cmd.Flags().StringVar(&dateFrom, "from", "", "range start (ISO-8601)")
	cmd.Flags().StringVar(&dateTo, "to", "", "range end (ISO-8601)")
	cmd.Flags().StringArrayVar(&calendarIDs, "calendar", nil, "calendar id to include (repeatable)")
	cmd.MarkFlagRequired("credential")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCalendarsCmd() *cobra.Command {
	var credentialID string

	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List the remote calendars visible to a credential",
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

			calendars, err := provider.ListCalendars(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list calendars: %w", err)
			}

			for _, cal := range calendars {
				marker := " "
				if cal.Primary {
					marker = "*"
				}
				fmt.Printf("%s %s  %s\n", marker, cal.ExternalID, cal.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id to use")
	cmd.MarkFlagRequired("credential")

	return cmd
}

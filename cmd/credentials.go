package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calbridge/calbridge/internal/calendar"
	"github.com/calbridge/calbridge/internal/credential"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage stored Office 365 credentials",
	}

	cmd.AddCommand(newCredentialsAddCmd())
	cmd.AddCommand(newCredentialsListCmd())
	cmd.AddCommand(newCredentialsRemoveCmd())

	return cmd
}

func newCredentialsAddCmd() *cobra.Command {
	var accessToken, refreshToken string
	var expiryDate int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Import an existing Office 365 credential into the store",
		Long: `Import a credential obtained elsewhere (e.g. through the host
application's consent flow) into the local store. The expiry date is the
absolute expiry of the access token in seconds since epoch; an expired or
unknown expiry is fine, the adapter will refresh on first use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			cred := &credential.Credential{
				Type: calendar.TypeOffice365,
				Key: credential.Key{
					AccessToken:  accessToken,
					RefreshToken: refreshToken,
					ExpiryDate:   expiryDate,
				},
			}
			if err := store.Create(cmd.Context(), cred); err != nil {
				return fmt.Errorf("failed to store credential: %w", err)
			}

			fmt.Printf("Stored credential %s\n", cred.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&accessToken, "access-token", "", "OAuth access token")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "OAuth refresh token")
	cmd.Flags().Int64Var(&expiryDate, "expiry-date", 0, "access token expiry (seconds since epoch)")
	cmd.MarkFlagRequired("refresh-token")

	return cmd
}

func newCredentialsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			creds, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list credentials: %w", err)
			}

			if len(creds) == 0 {
				fmt.Println("No credentials stored")
				return nil
			}

			for _, cred := range creds {
				expiry := time.Unix(cred.Key.ExpiryDate, 0).UTC().Format(time.RFC3339)
				fmt.Printf("%s  %s  expires %s\n", cred.ID, cred.Type, expiry)
			}
			return nil
		},
	}
}

func newCredentialsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <credential-id>",
		Short: "Remove a stored credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to remove credential: %w", err)
			}

			fmt.Printf("Removed credential %s\n", args[0])
			return nil
		},
	}
}

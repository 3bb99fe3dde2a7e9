package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var clientID, signerKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login as a game client",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"client_id":  clientID,
				"signer_key": signerKey,
			}
			var result AuthResult

			if err := client.Post("/api/v1/clients/login", req, &result); err != nil {
				return err
			}

			// Save token and client id for subsequent commands
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			if err := cfg.SaveClientID(result.ClientID); err != nil {
				return fmt.Errorf("failed to save client id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Game client id (required)")
	cmd.Flags().StringVar(&signerKey, "signer-key", "", "Signer key issued at registration (required)")
	_ = cmd.MarkFlagRequired("client-id")
	_ = cmd.MarkFlagRequired("signer-key")

	return cmd
}

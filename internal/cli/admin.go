package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Platform administration commands (requires the admin token)",
	}

	cmd.AddCommand(newAdminInitCmd())
	cmd.AddCommand(newAdminRegisterClientCmd())
	cmd.AddCommand(newAdminAccountCmd())
	cmd.AddCommand(newAdminCreditCmd())

	return cmd
}

func newAdminInitCmd() *cobra.Command {
	var clientFeeBps, platformFeeBps uint16
	var platformAccount, denomination string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the game manager with its fee policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"client_fee_bps":   clientFeeBps,
				"platform_fee_bps": platformFeeBps,
			}
			if platformAccount != "" {
				req["platform_account"] = platformAccount
			}
			if denomination != "" {
				req["denomination"] = denomination
			}

			if err := client.Post("/api/v1/admin/init", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Manager initialized")
			return nil
		},
	}

	cmd.Flags().Uint16Var(&clientFeeBps, "client-fee-bps", 0, "Client fee in basis points")
	cmd.Flags().Uint16Var(&platformFeeBps, "platform-fee-bps", 0, "Platform fee in basis points")
	cmd.Flags().StringVar(&platformAccount, "platform-account", "", "Platform fee account id")
	cmd.Flags().StringVar(&denomination, "denomination", "", "Stake denomination label")

	return cmd
}

func newAdminRegisterClientCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register-client",
		Short: "Register a new game client and issue its signer key",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			var result RegisteredClient

			if err := client.Post("/api/v1/admin/clients", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Client display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAdminAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account <id>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Account

			if err := client.Get(fmt.Sprintf("/api/v1/admin/accounts/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminCreditCmd() *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "credit <id>",
		Short: "Credit an account with external value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int64{"amount": amount}
			var result Account

			if err := client.Post(fmt.Sprintf("/api/v1/admin/accounts/%s/credit", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount to credit (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerBalanceCmd())
	cmd.AddCommand(newPlayerStatsCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var username, loginKey string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player under the logged-in client",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username":  username,
				"login_key": loginKey,
			}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username (required)")
	cmd.Flags().StringVar(&loginKey, "login-key", "", "Player login key (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("login-key")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get(fmt.Sprintf("/api/v1/players/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <username>",
		Short: "Show a player's custody account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Account

			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/balance", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <username> <game-type>",
		Short: "Show a player's lifetime record for a game type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerStats

			path := fmt.Sprintf("/api/v1/players/%s/stats/%s", args[0], args[1])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

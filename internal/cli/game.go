package cli

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game lifecycle commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameCompleteCmd())
	cmd.AddCommand(newGameCancelCmd())

	return cmd
}

func parseGameID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid game id %q", arg)
	}
	return id, nil
}

func newGameCreateCmd() *cobra.Command {
	var gameType, player1, commitmentB64, secretFile string
	var stake int64
	var choice uint8

	cmd := &cobra.Command{
		Use:   "create <game-id>",
		Short: "Create a game, committing to a choice",
		Long: `Create a game with player 1's stake and committed choice.

Without --commitment the choice is committed locally: a fresh secret is
generated, stored next to the token file, and only the commitment digest is
sent. Pass --commitment to use one produced elsewhere (e.g. 'commit new').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var commitment []byte
			if commitmentB64 != "" {
				commitment, err = base64.StdEncoding.DecodeString(commitmentB64)
				if err != nil {
					return fmt.Errorf("invalid commitment encoding: %w", err)
				}
			} else {
				if !cmd.Flags().Changed("choice") {
					return fmt.Errorf("either --choice or --commitment is required")
				}
				committed, err := makeCommitment(gameID, choice, secretFile)
				if err != nil {
					return err
				}
				commitment = committed.Commitment
			}

			req := map[string]any{
				"game_id":    gameID,
				"game_type":  gameType,
				"player1":    player1,
				"stake":      stake,
				"commitment": commitment,
			}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameType, "type", "rps-basic", "Game type")
	cmd.Flags().StringVar(&player1, "player", "", "Player 1 username (required)")
	cmd.Flags().Int64Var(&stake, "stake", 0, "Per-player stake (required)")
	cmd.Flags().Uint8Var(&choice, "choice", 0, "Choice to commit to locally")
	cmd.Flags().StringVar(&commitmentB64, "commitment", "", "Base64 commitment produced elsewhere")
	cmd.Flags().StringVar(&secretFile, "secret-file", "", "Where to store the generated secret")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("stake")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result Game

			if err := client.Get(fmt.Sprintf("/api/v1/games/%d", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	var player2 string
	var choice uint8

	cmd := &cobra.Command{
		Use:   "join <game-id>",
		Short: "Join a game as player 2 with an open choice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			req := map[string]any{
				"player2": player2,
				"choice":  choice,
			}
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%d/join", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player2, "player", "", "Player 2 username (required)")
	cmd.Flags().Uint8Var(&choice, "choice", 0, "Player 2's choice (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("choice")

	return cmd
}

func newGameCompleteCmd() *cobra.Command {
	var proofB64, secretFile string
	var choice uint8

	cmd := &cobra.Command{
		Use:   "complete <game-id>",
		Short: "Reveal player 1's choice and settle the game",
		Long: `Reveal player 1's committed choice with an opening proof and settle.

Without --proof the proof is produced locally from the secret stored at game
creation. Pass --proof to use one produced elsewhere (e.g. 'commit prove').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var proofData []byte
			if proofB64 != "" {
				proofData, err = base64.StdEncoding.DecodeString(proofB64)
				if err != nil {
					return fmt.Errorf("invalid proof encoding: %w", err)
				}
			} else {
				proved, err := makeProof(gameID, choice, secretFile)
				if err != nil {
					return err
				}
				proofData = proved.Proof
			}

			req := map[string]any{
				"choice": choice,
				"proof":  proofData,
			}
			var result CompleteResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%d/complete", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint8Var(&choice, "choice", 0, "The committed choice being revealed (required)")
	cmd.Flags().StringVar(&proofB64, "proof", "", "Base64 proof produced elsewhere")
	cmd.Flags().StringVar(&secretFile, "secret-file", "", "Secret file from game creation")
	_ = cmd.MarkFlagRequired("choice")

	return cmd
}

func newGameCancelCmd() *cobra.Command {
	var player1 string

	cmd := &cobra.Command{
		Use:   "cancel <game-id>",
		Short: "Cancel an unjoined game and refund the stake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			req := map[string]string{"player1": player1}
			var result CancelResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%d/cancel", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player1, "player", "", "Player 1 username requesting the refund (required)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/zk"
)

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Local commitment helpers (nothing here talks to the server)",
	}

	cmd.AddCommand(newCommitNewCmd())
	cmd.AddCommand(newCommitProveCmd())

	return cmd
}

func newCommitNewCmd() *cobra.Command {
	var gameID uint64
	var choice uint8
	var secretFile string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a secret and commitment for a choice",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := makeCommitment(gameID, choice, secretFile)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&gameID, "game", 0, "Game id the commitment is bound to (required)")
	cmd.Flags().Uint8Var(&choice, "choice", 0, "Choice to commit to (required)")
	cmd.Flags().StringVar(&secretFile, "secret-file", "", "Where to store the secret (default: under the token directory)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("choice")

	return cmd
}

func newCommitProveCmd() *cobra.Command {
	var gameID uint64
	var choice uint8
	var secretFile string

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Produce an opening proof for a committed choice",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := makeProof(gameID, choice, secretFile)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&gameID, "game", 0, "Game id the commitment was bound to (required)")
	cmd.Flags().Uint8Var(&choice, "choice", 0, "Committed choice (required)")
	cmd.Flags().StringVar(&secretFile, "secret-file", "", "Secret file from 'commit new' or 'game create'")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("choice")

	return cmd
}

// makeCommitment generates a fresh secret, stores it, and returns the
// commitment bound to this client and game.
func makeCommitment(gameID uint64, choice uint8, secretFile string) (CommitResult, error) {
	clientID, err := requireClientID()
	if err != nil {
		return CommitResult{}, err
	}

	secret, err := zk.NewSecret()
	if err != nil {
		return CommitResult{}, fmt.Errorf("failed to generate secret: %w", err)
	}

	binding := zk.Binding{ClientID: model.ClientID(clientID), GameID: model.GameID(gameID)}
	commitment, err := zk.Commit(secret, binding, model.Choice(choice))
	if err != nil {
		return CommitResult{}, err
	}

	if secretFile == "" {
		secretFile = cfg.SecretFile(clientID, gameID)
	}
	if err := os.MkdirAll(filepath.Dir(secretFile), 0700); err != nil {
		return CommitResult{}, err
	}
	if err := os.WriteFile(secretFile, secret, 0600); err != nil {
		return CommitResult{}, fmt.Errorf("failed to save secret: %w", err)
	}

	return CommitResult{
		ClientID:   clientID,
		GameID:     gameID,
		Choice:     choice,
		Commitment: commitment,
		SecretFile: secretFile,
	}, nil
}

// makeProof reads the stored secret back and produces the opening proof
func makeProof(gameID uint64, choice uint8, secretFile string) (ProofResult, error) {
	clientID, err := requireClientID()
	if err != nil {
		return ProofResult{}, err
	}

	if secretFile == "" {
		secretFile = cfg.SecretFile(clientID, gameID)
	}
	secret, err := os.ReadFile(secretFile)
	if err != nil {
		return ProofResult{}, fmt.Errorf("failed to read secret file %s: %w", secretFile, err)
	}

	binding := zk.Binding{ClientID: model.ClientID(clientID), GameID: model.GameID(gameID)}
	proofData, err := zk.Prove(secret, binding, model.Choice(choice))
	if err != nil {
		return ProofResult{}, err
	}

	return ProofResult{
		ClientID: clientID,
		GameID:   gameID,
		Choice:   choice,
		Proof:    proofData,
	}, nil
}

func requireClientID() (string, error) {
	if cfg.ClientID == "" {
		return "", fmt.Errorf("client id unknown: login first or pass --client")
	}
	return cfg.ClientID, nil
}
